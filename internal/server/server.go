package server

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/tether/internal/config"
	"github.com/agenthands/tether/internal/core"
	"github.com/agenthands/tether/internal/core/fusion"
	"github.com/agenthands/tether/internal/core/proposal"
	"github.com/agenthands/tether/internal/llm"
	"github.com/agenthands/tether/internal/store"
)

type Server struct {
	Linker   *core.Linker
	Proposer *proposal.Proposer
	LLM      llm.LLMClient
}

func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Warning: could not load %s: %v. Using defaults.", cfgPath, err)
		cfg = config.Default()
	}

	// Env vars override file config.
	if v := os.Getenv("STORE_PROVIDER"); v != "" {
		cfg.Store.Provider = v
	}
	if v := os.Getenv("MEMGRAPH_URI"); v != "" {
		cfg.Store.URI = v
	}
	if v := os.Getenv("MEMGRAPH_USER"); v != "" {
		cfg.Store.User = v
	}
	if v := os.Getenv("MEMGRAPH_PASSWORD"); v != "" {
		cfg.Store.Password = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	st := newStore(cfg)

	// The LLM is optional: without one, /propose skips refinement.
	var client llm.LLMClient
	if cfg.LLM.Provider != "" {
		client, err = llm.NewClient(context.Background(), cfg.LLM)
		if err != nil {
			log.Fatalf("Failed to initialize LLM client: %v", err)
		}
	}

	return &Server{
		Linker:   core.NewLinker(st, cfg),
		Proposer: proposal.NewProposer(),
		LLM:      client,
	}
}

func newStore(cfg *config.Config) store.KnowledgeStore {
	switch cfg.Store.Provider {
	case "memory":
		log.Println("Using in-memory fixture store")
		return store.NewSeededFixtureStore()
	case "memgraph", "":
		uri := cfg.Store.URI
		if uri == "" {
			uri = "bolt://localhost:7687"
		}
		st, err := store.NewMemgraphStore(uri, cfg.Store.User, cfg.Store.Password)
		if err != nil {
			log.Fatalf("Failed to connect to Memgraph: %v", err)
		}
		return st
	default:
		log.Fatalf("Unsupported store provider: %s", cfg.Store.Provider)
		return nil
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.POST("/link", s.Link)
	r.POST("/propose", s.Propose)
	r.POST("/fuse", s.Fuse)
	r.POST("/cache/clear", s.ClearCaches)
	r.GET("/stats", s.Stats)

	return r
}

type LinkRequest struct {
	Text string `json:"text" binding:"required"`
}

func (s *Server) Link(c *gin.Context) {
	var req LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	result := s.Linker.Link(c.Request.Context(), req.Text)
	c.JSON(http.StatusOK, result.Export())
}

type ProposeRequest struct {
	Text   string `json:"text" binding:"required"`
	Refine bool   `json:"refine"`
}

func (s *Server) Propose(c *gin.Context) {
	var req ProposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	prop := s.Proposer.Propose(req.Text)
	if req.Refine && s.LLM != nil {
		prop = s.Proposer.Refine(c.Request.Context(), s.LLM, prop)
	}
	c.JSON(http.StatusOK, prop)
}

type FuseRequest struct {
	LLMConfidence    *float64 `json:"llm_confidence" binding:"required"`
	StoreConfidence  *float64 `json:"store_confidence" binding:"required"`
	EntityConfidence *float64 `json:"entity_confidence" binding:"required"`
}

func (s *Server) Fuse(c *gin.Context) {
	var req FuseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	result := fusion.Fuse(*req.LLMConfidence, *req.StoreConfidence, *req.EntityConfidence)
	c.JSON(http.StatusOK, result)
}

func (s *Server) ClearCaches(c *gin.Context) {
	s.Linker.ClearCaches()
	c.JSON(http.StatusOK, gin.H{"status": "caches cleared"})
}

func (s *Server) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, s.Linker.Stats())
}
