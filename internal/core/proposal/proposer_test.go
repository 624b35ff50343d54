package proposal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		text string
		want QueryType
	}{
		{"John is a teacher", QueryAssertion},
		{"Is John tall?", QuerySimple},
		{"Who are all tall people?", QueryComplex},
		{"Where does John live?", QueryComplex},
		{"If John is tall then he can reach the shelf", QueryInference},
		{"What is the meaning of justice", QueryDefinition},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, classify(tc.text), tc.text)
	}
}

func TestProposeAssertion(t *testing.T) {
	p := NewProposer()

	prop := p.Propose("John is a teacher")

	assert.Equal(t, QueryAssertion, prop.QueryType)
	assert.Equal(t, []string{"John"}, prop.Entities)
	require.Len(t, prop.Relationships, 1)
	assert.Equal(t, "is", prop.Relationships[0].Predicate)
	assert.Equal(t, "John", prop.Relationships[0].Subject)
	assert.Contains(t, prop.StoreOperation, "CreateBelief('John', 'is'")

	// One entity (0.3) and one relationship (0.4) with clean, specific text:
	// 0.3×0.3 + 0.4×0.3 + 1.0×0.2 + 1.0×0.2.
	assert.InDelta(t, 0.61, prop.Confidence, 1e-9)
	assert.True(t, prop.RequiresValidation)
}

func TestProposeSimpleQuery(t *testing.T) {
	p := NewProposer()

	prop := p.Propose("Is John tall?")

	assert.Equal(t, QuerySimple, prop.QueryType)
	assert.Contains(t, prop.StoreOperation, "QueryEntity(")
	assert.False(t, prop.QueryType == QueryComplex)
}

func TestProposeComplexQueryAlwaysNeedsValidation(t *testing.T) {
	p := NewProposer()

	prop := p.Propose("Who are all the people that John knows in Paris?")
	assert.Equal(t, QueryComplex, prop.QueryType)
	assert.True(t, prop.RequiresValidation)
	assert.Contains(t, prop.StoreOperation, "InferenceQuery(")
}

func TestProposeHedgingLowersConfidence(t *testing.T) {
	p := NewProposer()

	plain := p.Propose("John is tall")
	hedged := p.Propose("perhaps John is tall")
	assert.Less(t, hedged.Confidence, plain.Confidence)
}

func TestProposeReasoningTrace(t *testing.T) {
	p := NewProposer()

	prop := p.Propose("John is a teacher")
	require.NotEmpty(t, prop.ReasoningSteps)
	assert.Equal(t, "1. Identified query type: assertion", prop.ReasoningSteps[0])
	assert.Equal(t, "5. Translating to a store operation", prop.ReasoningSteps[len(prop.ReasoningSteps)-1])
}

func TestExtractEntitiesDedup(t *testing.T) {
	entities := extractEntities("John is tall and john is kind, said John")
	count := 0
	for _, e := range entities {
		if e == "John" || e == "john" {
			count++
		}
	}
	assert.Equal(t, 1, count, "entities must be deduplicated case-insensitively")
}
