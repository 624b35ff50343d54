// Package fusion combines independently produced confidence scores into one
// trust verdict, flagging likely hallucination when the generative and
// symbolic sources disagree sharply.
package fusion

import "math"

// Hallucination condition: a confident language model contradicted by a
// near-silent store, or any gap above half the scale.
const (
	highLLMConfidence  = 0.8
	lowStoreConfidence = 0.3
	maxConfidenceGap   = 0.5

	// conservativeDamping collapses a flagged result below both inputs.
	conservativeDamping = 0.8
)

// Weighted-average weights for the agreeing case. Entity-linking confidence
// is a weaker signal than the two primary sources.
const (
	llmWeight    = 0.4
	storeWeight  = 0.4
	entityWeight = 0.2
)

// Result is a fused trust verdict. Ephemeral; recomputed on every call.
type Result struct {
	Confidence    float64 `json:"fused_confidence"`
	Hallucination bool    `json:"hallucination_flag"`
}

// Fuse combines language-model, knowledge-store and entity-linking
// confidences. Disagreement between the generative and symbolic sources is
// penalized harder than simple low confidence from agreement: a flagged
// result collapses to min(llm, store) × 0.8 instead of averaging.
func Fuse(llmConfidence, storeConfidence, entityConfidence float64) Result {
	gap := math.Abs(llmConfidence - storeConfidence)
	flagged := (llmConfidence > highLLMConfidence && storeConfidence < lowStoreConfidence) ||
		gap > maxConfidenceGap

	if flagged {
		return Result{
			Confidence:    min(llmConfidence, storeConfidence) * conservativeDamping,
			Hallucination: true,
		}
	}

	return Result{
		Confidence: llmConfidence*llmWeight +
			storeConfidence*storeWeight +
			entityConfidence*entityWeight,
	}
}
