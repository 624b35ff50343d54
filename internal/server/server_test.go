package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/tether/internal/core"
	"github.com/agenthands/tether/internal/core/model"
	"github.com/agenthands/tether/internal/core/proposal"
	"github.com/agenthands/tether/internal/store"
)

func testServer() *Server {
	gin.SetMode(gin.TestMode)
	return &Server{
		Linker:   core.NewLinker(store.NewSeededFixtureStore(), nil),
		Proposer: proposal.NewProposer(),
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLinkEndpoint(t *testing.T) {
	router := testServer().SetupRouter()

	w := doJSON(t, router, http.MethodPost, "/link", `{"text": "Paris is the capital of France"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var record model.ExportRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, "Paris, France", record.LinkedEntities["Paris"].CanonicalName)
	assert.NotEmpty(t, record.CandidateBeliefs)
}

func TestLinkEndpointRejectsMissingText(t *testing.T) {
	router := testServer().SetupRouter()

	w := doJSON(t, router, http.MethodPost, "/link", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProposeEndpoint(t *testing.T) {
	router := testServer().SetupRouter()

	w := doJSON(t, router, http.MethodPost, "/propose", `{"text": "John is a teacher"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var prop proposal.Proposal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &prop))
	assert.Equal(t, proposal.QueryAssertion, prop.QueryType)
	assert.InDelta(t, 0.61, prop.Confidence, 1e-9)
}

func TestFuseEndpoint(t *testing.T) {
	router := testServer().SetupRouter()

	w := doJSON(t, router, http.MethodPost, "/fuse",
		`{"llm_confidence": 0.95, "store_confidence": 0.1, "entity_confidence": 0.7}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Confidence    float64 `json:"fused_confidence"`
		Hallucination bool    `json:"hallucination_flag"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Hallucination)
	assert.InDelta(t, 0.08, result.Confidence, 1e-9)

	// A zero confidence is a legal value, not a missing field.
	w = doJSON(t, router, http.MethodPost, "/fuse",
		`{"llm_confidence": 0, "store_confidence": 0, "entity_confidence": 0}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/fuse", `{"llm_confidence": 0.5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatsAndCacheClearEndpoints(t *testing.T) {
	srv := testServer()
	router := srv.SetupRouter()

	doJSON(t, router, http.MethodPost, "/link", `{"text": "John is a teacher"}`)

	w := doJSON(t, router, http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	var stats core.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.CandidateCacheSize)

	w = doJSON(t, router, http.MethodPost, "/cache/clear", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, srv.Linker.Stats().CandidateCacheSize)
}
