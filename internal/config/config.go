package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type StoreConfig struct {
	// Provider selects the knowledge store implementation: "memgraph" or
	// "memory" (in-memory fixture, for local runs and tests). Selection is
	// always explicit; there is no fallback based on what happens to be
	// reachable.
	Provider string `toml:"provider"`
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

// LinkingConfig holds the tunable constants of the linking pipeline. The
// defaults are the documented design constants; changing them shifts ranking
// outcomes.
type LinkingConfig struct {
	FuzzyThreshold   float64 `toml:"fuzzy_threshold"`   // min similarity for fuzzy lookup
	RelationshipNorm float64 `toml:"relationship_norm"` // relationship count mapped to strength 1.0
	FrequencyNorm    float64 `toml:"frequency_norm"`    // observation count mapped to score 1.0
	InferWindow      int     `toml:"infer_window"`      // words each side for category inference
	CacheSize        int     `toml:"cache_size"`        // candidates kept per cache entry
}

type Config struct {
	LLM     LLMConfig     `toml:"llm"`
	Store   StoreConfig   `toml:"store"`
	Linking LinkingConfig `toml:"linking"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.Linking.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills zero-valued linking tunables with the design constants.
func (l *LinkingConfig) ApplyDefaults() {
	if l.FuzzyThreshold == 0 {
		l.FuzzyThreshold = 0.8
	}
	if l.RelationshipNorm == 0 {
		l.RelationshipNorm = 20.0
	}
	if l.FrequencyNorm == 0 {
		l.FrequencyNorm = 100.0
	}
	if l.InferWindow == 0 {
		l.InferWindow = 10
	}
	if l.CacheSize == 0 {
		l.CacheSize = 5
	}
}

// Default returns a config with linking defaults applied and no collaborators
// configured. Used by tests and callers that wire collaborators themselves.
func Default() *Config {
	var cfg Config
	cfg.Linking.ApplyDefaults()
	return &cfg
}
