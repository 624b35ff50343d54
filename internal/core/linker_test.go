package core

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/tether/internal/core/model"
	"github.com/agenthands/tether/internal/store"
)

func TestLinkAmbiguousMention(t *testing.T) {
	l := NewLinker(store.NewSeededFixtureStore(), nil)

	result := l.Link(context.Background(), "Paris is the capital of France")

	paris, ok := result.LinkedEntities["Paris"]
	require.True(t, ok)
	assert.Equal(t, "Paris, France", paris.CanonicalName)
	assert.Equal(t, model.CategoryLocation, paris.Category)

	require.Len(t, result.Decisions, 1)
	assert.Equal(t, model.StrategyHybridScoring, result.Decisions[0].Strategy)
	assert.Equal(t, 2, result.Decisions[0].Alternatives)

	// Mean combined score 0.925 minus the 0.2 penalty: the one proposed
	// belief has an unresolved object and lands below the low bound.
	require.Len(t, result.Beliefs, 1)
	assert.InDelta(t, 0.725, result.Confidence, 1e-9)
}

func TestLinkProposesBeliefs(t *testing.T) {
	l := NewLinker(store.NewSeededFixtureStore(), nil)

	result := l.Link(context.Background(), "John is a teacher")

	john, ok := result.LinkedEntities["John"]
	require.True(t, ok)
	assert.Equal(t, "John Smith", john.CanonicalName)

	require.Len(t, result.Beliefs, 1)
	b := result.Beliefs[0]
	assert.Equal(t, "John", b.Subject)
	assert.Equal(t, "is", b.Predicate)
	assert.Equal(t, "teacher", b.Object)
	assert.InDelta(t, 0.4, b.Confidence, 1e-9)
	assert.True(t, b.RequiresValidation)
	assert.Equal(t, "John Smith", b.DisambiguationContext["john"])

	assert.InDelta(t, 0.73-0.2, result.Confidence, 1e-9)
}

func TestLinkBothSidesResolved(t *testing.T) {
	l := NewLinker(store.NewSeededFixtureStore(), nil)

	result := l.Link(context.Background(), "John works at Apple")

	assert.Equal(t, "John Smith", result.LinkedEntities["John"].CanonicalName)
	assert.Equal(t, "Apple Inc.", result.LinkedEntities["Apple"].CanonicalName)

	require.Len(t, result.Beliefs, 1)
	b := result.Beliefs[0]
	assert.Equal(t, "worksAt", b.Predicate)
	// min(0.73, 0.94) × 0.8; both sides resolved, so no default kicks in.
	assert.InDelta(t, 0.584, b.Confidence, 1e-9)
}

func TestLinkUnknownText(t *testing.T) {
	l := NewLinker(store.NewSeededFixtureStore(), nil)

	result := l.Link(context.Background(), "nothing resolvable here")
	assert.Empty(t, result.LinkedEntities)
	assert.Empty(t, result.Beliefs)
	assert.Zero(t, result.Confidence)
}

func TestLinkDegradesOnStoreFailure(t *testing.T) {
	fs := store.NewSeededFixtureStore()
	fs.Fail = errors.New("connection refused")
	l := NewLinker(fs, nil)

	// The pipeline never errors out: lookups degrade to unresolved mentions
	// and triples with no resolved side are dropped.
	result := l.Link(context.Background(), "John is a teacher")
	require.NotNil(t, result)
	assert.Empty(t, result.LinkedEntities)
	assert.Empty(t, result.Beliefs)
	assert.Zero(t, result.Confidence)
}

func TestStatsAndClearCaches(t *testing.T) {
	l := NewLinker(store.NewSeededFixtureStore(), nil)
	l.Link(context.Background(), "John is a teacher")

	stats := l.Stats()
	assert.Equal(t, 1, stats.CandidateCacheSize)
	assert.Equal(t, []string{"john:person"}, stats.CachedKeys)
	assert.Equal(t, 1, stats.RelationshipCacheSize)
	assert.Equal(t, 0.4, stats.DisambiguationWeights["context_similarity"])
	assert.Contains(t, stats.SupportedCategories, model.CategoryPerson)

	l.ClearCaches()
	stats = l.Stats()
	assert.Zero(t, stats.CandidateCacheSize)
	assert.Zero(t, stats.RelationshipCacheSize)
}

func TestExportRoundTrip(t *testing.T) {
	l := NewLinker(store.NewSeededFixtureStore(), nil)
	result := l.Link(context.Background(), "John is a teacher")

	exported := result.Export()
	data, err := json.Marshal(exported)
	require.NoError(t, err)

	var decoded model.ExportRecord
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, exported.OriginalText, decoded.OriginalText)
	assert.Equal(t, exported.OverallConfidence, decoded.OverallConfidence)
	assert.Equal(t, exported.LinkedEntities, decoded.LinkedEntities)

	require.Len(t, decoded.CandidateBeliefs, len(exported.CandidateBeliefs))
	for i, want := range exported.CandidateBeliefs {
		got := decoded.CandidateBeliefs[i]
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Subject, got.Subject)
		assert.Equal(t, want.Predicate, got.Predicate)
		assert.Equal(t, want.Object, got.Object)
		assert.Equal(t, want.Confidence, got.Confidence)
		assert.Equal(t, want.RequiresValidation, got.RequiresValidation)
		assert.Equal(t, want.Source, got.Source)
		assert.Equal(t, want.Evidence, got.Evidence)
		assert.Equal(t, want.DisambiguationContext, got.DisambiguationContext)
		assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
	}
}
