// Package core wires the linking pipeline together: mention extraction,
// candidate lookup, disambiguation and belief proposal over one knowledge
// store.
package core

import (
	"context"
	"strings"
	"time"

	"github.com/agenthands/tether/internal/config"
	"github.com/agenthands/tether/internal/core/belief"
	"github.com/agenthands/tether/internal/core/disambig"
	"github.com/agenthands/tether/internal/core/lookup"
	"github.com/agenthands/tether/internal/core/mention"
	"github.com/agenthands/tether/internal/core/model"
	"github.com/agenthands/tether/internal/store"
)

// lowConfidencePenalty scales the overall-confidence deduction for beliefs
// below the low-confidence bound.
const lowConfidencePenalty = 0.2

type Linker struct {
	Store         store.KnowledgeStore
	Extractor     *mention.Extractor
	Lookup        *lookup.Lookup
	Disambiguator *disambig.Disambiguator
	Proposer      *belief.Proposer
}

func NewLinker(st store.KnowledgeStore, cfg *config.Config) *Linker {
	if cfg == nil {
		cfg = config.Default()
	}
	extractor := mention.NewExtractor(mention.DefaultRules, cfg.Linking.InferWindow)
	scorer := lookup.NewScorer(cfg.Linking.RelationshipNorm, cfg.Linking.FrequencyNorm)

	return &Linker{
		Store:         st,
		Extractor:     extractor,
		Lookup:        lookup.New(st, scorer, cfg.Linking.FuzzyThreshold, cfg.Linking.CacheSize),
		Disambiguator: disambig.New(extractor),
		Proposer:      belief.NewProposer(st, belief.DefaultRelationPatterns),
	}
}

// Link runs the full pipeline over text. It never fails: collaborator errors
// degrade to unresolved mentions or assumed-novel beliefs, and the worst
// outcome is a lower confidence score.
func (l *Linker) Link(ctx context.Context, text string) *model.LinkingResult {
	mentions := l.Extractor.Extract(text)

	linked := make(map[string]model.Candidate)
	resolved := make(map[string]model.Candidate) // lowercased mention -> candidate
	var decisions []model.Decision

	for _, m := range mentions {
		candidates := l.Lookup.Find(ctx, m.Text, m.Category)
		if len(candidates) == 0 {
			// Not an error: the mention is simply omitted from the result.
			continue
		}

		chosen, decision := l.Disambiguator.Resolve(m.Text, candidates, text)
		linked[m.Text] = chosen
		resolved[strings.ToLower(m.Text)] = chosen
		decisions = append(decisions, decision)
	}

	beliefs := l.Proposer.Propose(ctx, text, resolved)

	return &model.LinkingResult{
		OriginalText:   text,
		LinkedEntities: linked,
		Beliefs:        beliefs,
		Decisions:      decisions,
		Confidence:     overallConfidence(linked, beliefs),
		ProcessedAt:    time.Now().UTC(),
	}
}

// overallConfidence is the mean combined score of linked entities, reduced in
// proportion to the share of low-confidence beliefs, floored at zero.
func overallConfidence(linked map[string]model.Candidate, beliefs []model.CandidateBelief) float64 {
	if len(linked) == 0 {
		return 0.0
	}

	var sum float64
	for _, cand := range linked {
		sum += cand.CombinedScore
	}
	confidence := sum / float64(len(linked))

	if len(beliefs) > 0 {
		low := 0
		for _, b := range beliefs {
			if b.Confidence < model.LowConfidenceBeliefBound {
				low++
			}
		}
		confidence -= float64(low) / float64(len(beliefs)) * lowConfidencePenalty
	}

	return max(0.0, confidence)
}

// ClearCaches drops both the candidate cache and the relationship cache.
func (l *Linker) ClearCaches() {
	l.Lookup.ClearCache()
	l.Proposer.ClearCache()
}

// Stats describes the linker's runtime state for the stats surface.
type Stats struct {
	CandidateCacheSize    int                `json:"candidate_cache_size"`
	CachedKeys            []string           `json:"cached_keys"`
	RelationshipCacheSize int                `json:"relationship_cache_size"`
	DisambiguationWeights map[string]float64 `json:"disambiguation_weights"`
	SupportedCategories   []model.Category   `json:"supported_categories"`
}

func (l *Linker) Stats() Stats {
	size, keys := l.Lookup.CacheStats()
	return Stats{
		CandidateCacheSize:    size,
		CachedKeys:            keys,
		RelationshipCacheSize: l.Proposer.CacheSize(),
		DisambiguationWeights: map[string]float64{
			"context_similarity":    disambig.ContextWeight,
			"relationship_strength": disambig.RelationshipWeight,
			"frequency_score":       disambig.FrequencyWeight,
			"type_consistency":      disambig.TypeConsistencyWeight,
		},
		SupportedCategories: model.Categories,
	}
}
