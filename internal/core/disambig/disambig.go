// Package disambig picks one candidate among several for a mention using
// weighted multi-factor evidence, and records the rationale.
package disambig

import (
	"github.com/agenthands/tether/internal/core/common"
	"github.com/agenthands/tether/internal/core/mention"
	"github.com/agenthands/tether/internal/core/model"
)

// Disambiguation weights. Context carries the most evidence, then the
// candidate's standing in the store, then type agreement.
const (
	ContextWeight         = 0.4
	RelationshipWeight    = 0.3
	FrequencyWeight       = 0.2
	TypeConsistencyWeight = 0.1
)

// contextWindow is the word window around a mention used for the
// context-similarity bonus. Narrower than the inference window on purpose:
// indicators right next to the mention are the ones that discriminate.
const contextWindow = 5

// indicatorBonus is added to the base context similarity per indicator
// keyword found; the sum is clamped at 1.0, so it saturates after five hits.
const (
	baseContextSimilarity = 0.5
	indicatorBonus        = 0.1
)

type Disambiguator struct {
	// Inferrer provides the independent category-from-context signal used
	// for type consistency.
	Inferrer *mention.Extractor
}

func New(inferrer *mention.Extractor) *Disambiguator {
	return &Disambiguator{Inferrer: inferrer}
}

// Resolve chooses among candidates for a mention. Candidates must already be
// ranked by combined score; ties on the disambiguation score keep the
// earliest candidate in that order, deterministically.
func (d *Disambiguator) Resolve(mentionText string, candidates []model.Candidate, fullText string) (model.Candidate, model.Decision) {
	if len(candidates) == 1 {
		only := candidates[0]
		return only, model.Decision{
			Mention:    mentionText,
			Strategy:   model.StrategySingleCandidate,
			Chosen:     only.CanonicalName,
			Confidence: only.CombinedScore,
			Breakdown: model.ScoreBreakdown{
				ContextSimilarity:    only.Confidence,
				RelationshipStrength: only.RelationshipStrength,
				FrequencyScore:       only.FrequencyScore,
			},
		}
	}

	bestIdx := 0
	bestScore := -1.0
	var bestContext float64
	for i, cand := range candidates {
		ctxSim := d.contextSimilarity(cand, mentionText, fullText)
		score := d.score(cand, ctxSim, mentionText, fullText)
		// Strictly-greater keeps the first of any tied pair.
		if score > bestScore {
			bestIdx = i
			bestScore = score
			bestContext = ctxSim
		}
	}

	winner := candidates[bestIdx]
	return winner, model.Decision{
		Mention:      mentionText,
		Strategy:     model.StrategyHybridScoring,
		Chosen:       winner.CanonicalName,
		Confidence:   bestScore,
		Alternatives: len(candidates) - 1,
		Breakdown: model.ScoreBreakdown{
			ContextSimilarity:    bestContext,
			RelationshipStrength: winner.RelationshipStrength,
			FrequencyScore:       winner.FrequencyScore,
		},
	}
}

func (d *Disambiguator) score(cand model.Candidate, ctxSim float64, mentionText, fullText string) float64 {
	typeConsistency := 0.5
	if cand.Category == d.Inferrer.InferCategory(mentionText, fullText) {
		typeConsistency = 1.0
	}

	return ctxSim*ContextWeight +
		cand.RelationshipStrength*RelationshipWeight +
		cand.FrequencyScore*FrequencyWeight +
		typeConsistency*TypeConsistencyWeight
}

// contextSimilarity starts at the base score and gains a bonus per indicator
// keyword of the candidate's category found near the mention.
func (d *Disambiguator) contextSimilarity(cand model.Candidate, mentionText, fullText string) float64 {
	window := common.ContextWindow(mentionText, fullText, contextWindow)

	sim := baseContextSimilarity
	for _, indicator := range mention.TypeIndicators[cand.Category] {
		if common.ContainsWord(window, indicator) {
			sim += indicatorBonus
		}
	}
	if sim > 1.0 {
		sim = 1.0
	}
	return sim
}
