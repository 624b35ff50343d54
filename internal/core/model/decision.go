package model

// Disambiguation strategies recorded on decisions.
const (
	StrategySingleCandidate = "single_candidate"
	StrategyHybridScoring   = "hybrid_scoring"
)

// ScoreBreakdown holds the winner's raw sub-scores for audit.
type ScoreBreakdown struct {
	ContextSimilarity    float64 `json:"context_similarity"`
	RelationshipStrength float64 `json:"relationship_strength"`
	FrequencyScore       float64 `json:"frequency_score"`
}

// Decision records how a mention was resolved. It is immutable once produced
// and exists only for audit and explanation.
type Decision struct {
	Mention      string         `json:"mention"`
	Strategy     string         `json:"strategy"`
	Chosen       string         `json:"chosen"`
	Confidence   float64        `json:"confidence"`
	Alternatives int            `json:"alternatives"`
	Breakdown    ScoreBreakdown `json:"score_breakdown"`
}
