package model

import "time"

// Belief proposal constants: the conservative damping applied to the weaker
// entity confidence, the default for an unresolved side, and the floor below
// which a belief needs downstream validation.
const (
	BeliefDamping            = 0.8
	DefaultEntityConfidence  = 0.5
	ValidationThreshold      = 0.7
	LowConfidenceBeliefBound = 0.5
)

// CandidateBelief is a provisional subject-predicate-object fact proposed
// from text. It is created once per detected novel triple and never mutated;
// a downstream validator consumes it.
type CandidateBelief struct {
	ID        string `json:"id"`
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`

	// Confidence = min(subject link confidence, object link confidence) ×
	// BeliefDamping, so it never exceeds either entity's own confidence.
	Confidence float64 `json:"confidence"`

	RequiresValidation bool      `json:"requires_validation"`
	Source             string    `json:"source"`
	Evidence           []string  `json:"evidence"`
	CreatedAt          time.Time `json:"created_at"`

	// DisambiguationContext snapshots the mention-to-canonical-name map in
	// force when the belief was proposed, for traceability.
	DisambiguationContext map[string]string `json:"disambiguation_context,omitempty"`
}
