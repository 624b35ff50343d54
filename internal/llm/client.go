package llm

import (
	"context"
)

// LLMClient generates text for a prompt. The linking core never calls this;
// only the proposal refinement layer does.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
