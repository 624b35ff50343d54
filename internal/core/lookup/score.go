package lookup

import (
	"github.com/agenthands/tether/internal/core/model"
	"github.com/agenthands/tether/internal/store"
)

// defaultFuzzyConfidence is assumed when a fuzzy record arrives without a
// similarity value.
const defaultFuzzyConfidence = 0.8

// Scorer converts raw store records into scored candidates. The two
// normalization denominators are design constants; they are tunable through
// config but documented as part of the scoring contract.
type Scorer struct {
	RelationshipNorm float64 // relationship count that saturates strength at 1.0
	FrequencyNorm    float64 // observation count that saturates the score at 1.0
}

func NewScorer(relationshipNorm, frequencyNorm float64) *Scorer {
	if relationshipNorm <= 0 {
		relationshipNorm = 20.0
	}
	if frequencyNorm <= 0 {
		frequencyNorm = 100.0
	}
	return &Scorer{RelationshipNorm: relationshipNorm, FrequencyNorm: frequencyNorm}
}

// Score builds a candidate from a raw record. The record's own category is
// parsed as-is; an unrecognized category string maps to unknown rather than
// being coerced to the mention's guess.
func (s *Scorer) Score(rec store.EntityRecord, exactMatch bool) model.Candidate {
	confidence := 1.0
	if !exactMatch {
		confidence = rec.Similarity
		if confidence == 0 {
			confidence = defaultFuzzyConfidence
		}
	}

	relationshipStrength := capAtOne(float64(rec.RelationshipCount) / s.RelationshipNorm)
	frequencyScore := capAtOne(float64(rec.Frequency) / s.FrequencyNorm)

	return model.Candidate{
		CanonicalName:        rec.Name,
		Category:             model.ParseCategory(rec.Category),
		Confidence:           confidence,
		RelationshipStrength: relationshipStrength,
		FrequencyScore:       frequencyScore,
		CombinedScore:        model.Combine(confidence, relationshipStrength, frequencyScore),
	}
}

func capAtOne(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	return v
}
