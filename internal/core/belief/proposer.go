// Package belief extracts provisional subject-predicate-object facts from
// text using resolved mentions.
package belief

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agenthands/tether/internal/core/model"
	"github.com/agenthands/tether/internal/store"
)

// beliefSource labels where proposed beliefs come from.
const beliefSource = "natural_language_input"

type Proposer struct {
	Store    store.KnowledgeStore
	Patterns []RelationPattern

	// relCache memoizes relationship-existence verdicts for the process
	// lifetime; cleared together with the candidate cache.
	relCache   map[string]bool
	relCacheMu sync.RWMutex
}

func NewProposer(st store.KnowledgeStore, patterns []RelationPattern) *Proposer {
	if patterns == nil {
		patterns = DefaultRelationPatterns
	}
	return &Proposer{
		Store:    st,
		Patterns: patterns,
		relCache: make(map[string]bool),
	}
}

// Propose extracts triples from text and emits a candidate belief for each
// one that is not already known to the store. A triple is retained only when
// its subject or object resolved to a store entity. Store failures during the
// novelty check are treated as "assume novel": over-reporting a candidate
// belief is preferred to silently dropping new knowledge.
func (p *Proposer) Propose(ctx context.Context, text string, resolved map[string]model.Candidate) []model.CandidateBelief {
	snapshot := contextSnapshot(resolved)

	var beliefs []model.CandidateBelief
	for _, triple := range p.extractTriples(text, resolved) {
		if !p.isNovel(ctx, triple.subject, triple.predicate, triple.object) {
			continue
		}

		confidence := model.BeliefDamping * min(
			linkConfidence(resolved, triple.subject),
			linkConfidence(resolved, triple.object),
		)

		beliefs = append(beliefs, model.CandidateBelief{
			ID:                    uuid.New().String(),
			Subject:               triple.subject,
			Predicate:             triple.predicate,
			Object:                triple.object,
			Confidence:            confidence,
			RequiresValidation:    confidence < model.ValidationThreshold,
			Source:                beliefSource,
			Evidence:              []string{text},
			CreatedAt:             time.Now().UTC(),
			DisambiguationContext: snapshot,
		})
	}
	return beliefs
}

type triple struct {
	subject   string
	predicate string
	object    string
}

func (p *Proposer) extractTriples(text string, resolved map[string]model.Candidate) []triple {
	var triples []triple
	for _, rp := range p.Patterns {
		for _, match := range rp.Pattern.FindAllStringSubmatch(text, -1) {
			subject, object := match[1], match[2]
			if !isResolved(resolved, subject) && !isResolved(resolved, object) {
				continue
			}
			triples = append(triples, triple{subject: subject, predicate: rp.Predicate, object: object})
		}
	}
	return triples
}

// isNovel checks the store for an existing relationship, memoizing verdicts.
// Fail-open: a store error means the triple is assumed novel.
func (p *Proposer) isNovel(ctx context.Context, subject, predicate, object string) bool {
	key := strings.ToLower(subject) + "|" + predicate + "|" + strings.ToLower(object)

	p.relCacheMu.RLock()
	exists, ok := p.relCache[key]
	p.relCacheMu.RUnlock()
	if ok {
		return !exists
	}

	exists, err := p.Store.RelationshipExists(ctx, subject, predicate, object)
	if err != nil {
		log.Printf("Warning: relationship check failed for %s %s %s: %v", subject, predicate, object, err)
		return true
	}

	p.relCacheMu.Lock()
	p.relCache[key] = exists
	p.relCacheMu.Unlock()

	return !exists
}

// ClearCache drops memoized relationship verdicts.
func (p *Proposer) ClearCache() {
	p.relCacheMu.Lock()
	defer p.relCacheMu.Unlock()
	p.relCache = make(map[string]bool)
}

// CacheSize reports how many relationship verdicts are memoized.
func (p *Proposer) CacheSize() int {
	p.relCacheMu.RLock()
	defer p.relCacheMu.RUnlock()
	return len(p.relCache)
}

func isResolved(resolved map[string]model.Candidate, name string) bool {
	_, ok := resolved[strings.ToLower(name)]
	return ok
}

func linkConfidence(resolved map[string]model.Candidate, name string) float64 {
	if cand, ok := resolved[strings.ToLower(name)]; ok {
		return cand.CombinedScore
	}
	return model.DefaultEntityConfidence
}

func contextSnapshot(resolved map[string]model.Candidate) map[string]string {
	if len(resolved) == 0 {
		return nil
	}
	snapshot := make(map[string]string, len(resolved))
	for mention, cand := range resolved {
		snapshot[mention] = cand.CanonicalName
	}
	return snapshot
}
