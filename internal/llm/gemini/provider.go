package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rrens/workout-planner/internal/config"
	"github.com/Rrens/workout-planner/internal/llm"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-2.0-flash"

// Provider implements llm.Provider on the Gemini API
type Provider struct {
	client      *genai.Client
	model       string
	temperature float32
}

var _ llm.Provider = (*Provider)(nil)

// NewProvider creates a Gemini client from config. The client is shared by
// all requests; call Close on shutdown.
func NewProvider(ctx context.Context, cfg config.GeminiConfig) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini provider is not configured (missing API key)")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	return &Provider{
		client:      client,
		model:       model,
		temperature: cfg.Temperature,
	}, nil
}

func (p *Provider) Name() string {
	return "gemini"
}

func (p *Provider) Model() string {
	return p.model
}

// Generate sends prompt to the configured model and concatenates the text
// parts of the first candidate
func (p *Provider) Generate(ctx context.Context, prompt string) (string, error) {
	generativeModel := p.client.GenerativeModel(p.model)
	temperature := p.temperature
	generativeModel.Temperature = &temperature
	generativeModel.ResponseMIMEType = "application/json"

	resp, err := generativeModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	var output strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			output.WriteString(string(text))
		}
	}

	return output.String(), nil
}

// Close releases the underlying client
func (p *Provider) Close() error {
	return p.client.Close()
}
