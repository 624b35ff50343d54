package model

// Combined-score weights. Confidence dominates, relationship strength and
// observation frequency split the remainder evenly.
const (
	ConfidenceWeight   = 0.4
	RelationshipWeight = 0.3
	FrequencyWeight    = 0.3
)

// Candidate is a scored knowledge-store entry proposed as the referent of a
// mention.
type Candidate struct {
	CanonicalName string   `json:"canonical_name"`
	Category      Category `json:"category"`

	// Confidence is 1.0 for an exact name match, otherwise the fuzzy
	// similarity ratio in [0,1].
	Confidence float64 `json:"confidence"`

	// RelationshipStrength and FrequencyScore are normalized counts from the
	// store record, capped at 1.0.
	RelationshipStrength float64 `json:"relationship_strength"`
	FrequencyScore       float64 `json:"frequency_score"`

	// CombinedScore ranks candidates for one mention; always in [0,1].
	CombinedScore float64 `json:"combined_score"`
}

// Combine computes the weighted combined score from the three sub-scores.
func Combine(confidence, relationshipStrength, frequencyScore float64) float64 {
	return confidence*ConfidenceWeight +
		relationshipStrength*RelationshipWeight +
		frequencyScore*FrequencyWeight
}
