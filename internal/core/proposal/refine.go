package proposal

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/tether/internal/llm"
)

// confidenceNudge is how far a model verdict moves the heuristic confidence.
const confidenceNudge = 0.2

// Refine asks an LLM to assess the proposal and nudges the confidence when
// the verdict mentions high or low confidence. The model's analysis is
// appended to the reasoning steps either way. Fails open: on any model error
// the proposal comes back unchanged apart from a note in the trace.
func (p *Proposer) Refine(ctx context.Context, client llm.LLMClient, prop Proposal) Proposal {
	if client == nil {
		return prop
	}

	response, err := client.Generate(ctx, refinePrompt(prop))
	if err != nil {
		prop.ReasoningSteps = append(prop.ReasoningSteps, fmt.Sprintf("LLM refinement failed: %v", err))
		return prop
	}

	prop.ReasoningSteps = append(prop.ReasoningSteps, "LLM refinement: "+response)

	lowered := strings.ToLower(response)
	switch {
	case strings.Contains(lowered, "high confidence"):
		prop.Confidence = min(1.0, prop.Confidence+confidenceNudge)
	case strings.Contains(lowered, "low confidence"):
		prop.Confidence = max(0.0, prop.Confidence-confidenceNudge)
	}
	prop.RequiresValidation = prop.Confidence < validationThreshold || prop.QueryType == QueryComplex

	return prop
}

func refinePrompt(prop Proposal) string {
	var sb strings.Builder
	sb.WriteString("Analyze this natural-language to knowledge-store translation:\n\n")
	sb.WriteString(fmt.Sprintf("Original text: %q\n", prop.OriginalText))
	sb.WriteString(fmt.Sprintf("Query type: %s\n", prop.QueryType))
	sb.WriteString(fmt.Sprintf("Extracted entities: %s\n", strings.Join(prop.Entities, ", ")))
	for _, t := range prop.Relationships {
		sb.WriteString(fmt.Sprintf("Relationship: %s %s %s\n", t.Subject, t.Predicate, t.Object))
	}
	sb.WriteString(fmt.Sprintf("Store operation: %s\n", prop.StoreOperation))
	sb.WriteString(fmt.Sprintf("Current confidence: %.3f\n\n", prop.Confidence))
	sb.WriteString("Evaluate whether the entities and relationships are correctly identified ")
	sb.WriteString("and whether the operation is appropriate. ")
	sb.WriteString("State your overall assessment as 'high confidence' or 'low confidence' with a brief reason.")
	return sb.String()
}
