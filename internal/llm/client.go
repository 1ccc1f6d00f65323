package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rrens/workout-planner/internal/domain"
	"github.com/rs/zerolog/log"
)

// PlanClient asks the generator for a workout plan. It makes exactly one
// call per request and never retries.
type PlanClient struct {
	provider Provider
	timeout  time.Duration
	now      func() time.Time
}

// NewPlanClient creates a plan client. A zero timeout leaves the deadline
// to the caller's context.
func NewPlanClient(provider Provider, timeout time.Duration) *PlanClient {
	return &PlanClient{
		provider: provider,
		timeout:  timeout,
		now:      time.Now,
	}
}

// RequestPlan sends the plan prompt for description and date and returns the
// generator's raw text. An empty date means today on the server's wall clock.
func (c *PlanClient) RequestPlan(ctx context.Context, description, date string) (string, error) {
	if c.provider == nil {
		return "", fmt.Errorf("%w: no generator configured", domain.ErrGeneration)
	}

	if strings.TrimSpace(date) == "" {
		date = c.now().Format(domain.DateLayout)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	prompt := BuildWorkoutPrompt(description, date)

	start := time.Now()
	raw, err := c.provider.Generate(ctx, prompt)
	latency := time.Since(start)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %s timed out after %s: %v", domain.ErrGeneration, c.provider.Name(), latency.Round(time.Millisecond), err)
		}
		return "", fmt.Errorf("%w: %s: %v", domain.ErrGeneration, c.provider.Name(), err)
	}

	log.Debug().
		Str("provider", c.provider.Name()).
		Str("model", c.provider.Model()).
		Int64("latency_ms", latency.Milliseconds()).
		Int("response_length", len(raw)).
		Msg("Generator response received")

	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("%w: %s returned an empty response", domain.ErrGeneration, c.provider.Name())
	}

	return raw, nil
}
