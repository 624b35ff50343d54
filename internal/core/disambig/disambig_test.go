package disambig

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agenthands/tether/internal/core/mention"
	"github.com/agenthands/tether/internal/core/model"
)

func parisCandidates() []model.Candidate {
	// Scored candidates for the mention "Paris", ranked by combined score.
	return []model.Candidate{
		{
			CanonicalName:        "Paris, France",
			Category:             model.CategoryLocation,
			Confidence:           1.0,
			RelationshipStrength: 0.75,
			FrequencyScore:       1.0,
			CombinedScore:        0.925,
		},
		{
			CanonicalName:        "Paris Hilton",
			Category:             model.CategoryPerson,
			Confidence:           1.0,
			RelationshipStrength: 0.4,
			FrequencyScore:       0.25,
			CombinedScore:        0.595,
		},
		{
			CanonicalName:        "Paris, Texas",
			Category:             model.CategoryLocation,
			Confidence:           1.0,
			RelationshipStrength: 0.25,
			FrequencyScore:       0.1,
			CombinedScore:        0.505,
		},
	}
}

func TestResolveSingleCandidate(t *testing.T) {
	d := New(mention.NewExtractor(nil, 0))

	only := model.Candidate{
		CanonicalName: "John Smith",
		Category:      model.CategoryPerson,
		Confidence:    1.0,
		CombinedScore: 0.73,
	}
	chosen, decision := d.Resolve("John", []model.Candidate{only}, "John is a teacher")

	assert.Equal(t, "John Smith", chosen.CanonicalName)
	assert.Equal(t, model.StrategySingleCandidate, decision.Strategy)
	assert.Equal(t, 0.73, decision.Confidence)
	assert.Zero(t, decision.Alternatives)
}

func TestResolveAmbiguousMention(t *testing.T) {
	d := New(mention.NewExtractor(nil, 0))

	chosen, decision := d.Resolve("Paris", parisCandidates(), "Paris is the capital of France")

	assert.Equal(t, "Paris, France", chosen.CanonicalName)
	assert.Equal(t, model.StrategyHybridScoring, decision.Strategy)
	assert.Equal(t, 2, decision.Alternatives)

	// No location indicators near the mention and no inferable category, so
	// the winner's score is base context 0.5×0.4 + 0.75×0.3 + 1.0×0.2 +
	// neutral type consistency 0.5×0.1.
	assert.InDelta(t, 0.675, decision.Confidence, 1e-9)
	assert.InDelta(t, 0.5, decision.Breakdown.ContextSimilarity, 1e-9)
}

func TestResolveContextIndicatorBonus(t *testing.T) {
	d := New(mention.NewExtractor(nil, 0))

	// "city" is a location indicator inside the context window and also makes
	// the inferred category location, lifting both location candidates.
	_, decision := d.Resolve("Paris", parisCandidates(), "Paris is a beautiful city")

	assert.Equal(t, "Paris, France", decision.Chosen)
	assert.InDelta(t, 0.6, decision.Breakdown.ContextSimilarity, 1e-9)
	assert.InDelta(t, 0.6*0.4+0.75*0.3+1.0*0.2+1.0*0.1, decision.Confidence, 1e-9)
}

func TestResolveTieKeepsFirst(t *testing.T) {
	d := New(mention.NewExtractor(nil, 0))

	twin := func(name string) model.Candidate {
		return model.Candidate{
			CanonicalName:        name,
			Category:             model.CategoryPerson,
			Confidence:           1.0,
			RelationshipStrength: 0.5,
			FrequencyScore:       0.5,
			CombinedScore:        0.7,
		}
	}
	candidates := []model.Candidate{twin("First Twin"), twin("Second Twin")}

	for i := 0; i < 10; i++ {
		chosen, _ := d.Resolve("Twin", candidates, "Twin did something")
		assert.Equal(t, "First Twin", chosen.CanonicalName)
	}
}
