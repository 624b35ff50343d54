package proposal

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLLM returns a canned response or error and records the last prompt.
type mockLLM struct {
	Response string
	Err      error

	LastPrompt string
}

func (m *mockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.LastPrompt = prompt
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func TestRefineNilClient(t *testing.T) {
	p := NewProposer()
	prop := p.Propose("John is a teacher")

	refined := p.Refine(context.Background(), nil, prop)
	assert.Equal(t, prop, refined)
}

func TestRefineHighConfidenceVerdict(t *testing.T) {
	p := NewProposer()
	prop := p.Propose("John is a teacher")
	mock := &mockLLM{Response: "The translation looks correct. Overall: high confidence."}

	refined := p.Refine(context.Background(), mock, prop)

	assert.InDelta(t, prop.Confidence+0.2, refined.Confidence, 1e-9)
	assert.False(t, refined.RequiresValidation)
	assert.Contains(t, refined.ReasoningSteps[len(refined.ReasoningSteps)-1], "LLM refinement:")

	// The prompt carries the proposal being assessed.
	assert.Contains(t, mock.LastPrompt, `"John is a teacher"`)
	assert.Contains(t, mock.LastPrompt, "assertion")
}

func TestRefineLowConfidenceVerdict(t *testing.T) {
	p := NewProposer()
	prop := p.Propose("John is a teacher")
	mock := &mockLLM{Response: "Entities look wrong: low confidence."}

	refined := p.Refine(context.Background(), mock, prop)
	assert.InDelta(t, prop.Confidence-0.2, refined.Confidence, 1e-9)
	assert.True(t, refined.RequiresValidation)
}

func TestRefineNeutralVerdict(t *testing.T) {
	p := NewProposer()
	prop := p.Propose("John is a teacher")
	mock := &mockLLM{Response: "Seems reasonable."}

	refined := p.Refine(context.Background(), mock, prop)
	assert.Equal(t, prop.Confidence, refined.Confidence)
}

func TestRefineFailsOpen(t *testing.T) {
	p := NewProposer()
	prop := p.Propose("John is a teacher")
	mock := &mockLLM{Err: errors.New("model unavailable")}

	refined := p.Refine(context.Background(), mock, prop)

	// The proposal survives with its confidence untouched and a note in the
	// trace.
	assert.Equal(t, prop.Confidence, refined.Confidence)
	require.NotEmpty(t, refined.ReasoningSteps)
	assert.Contains(t, refined.ReasoningSteps[len(refined.ReasoningSteps)-1], "LLM refinement failed")
}
