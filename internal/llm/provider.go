package llm

import "context"

// Provider is the external text generator: one prompt in, free text out
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// Model returns the model the provider sends prompts to
	Model() string

	// Generate sends a single prompt and returns the raw generated text
	Generate(ctx context.Context, prompt string) (string, error)
}
