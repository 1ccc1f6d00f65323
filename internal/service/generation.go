package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Rrens/workout-planner/internal/domain"
	"github.com/Rrens/workout-planner/internal/llm"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PlanRequester returns raw generator output for a plan request
type PlanRequester interface {
	RequestPlan(ctx context.Context, description, date string) (string, error)
}

// GenerationService turns a free-text description into a stored workout
type GenerationService struct {
	planner  PlanRequester
	workouts *WorkoutService
}

// NewGenerationService creates a new generation service
func NewGenerationService(planner PlanRequester, workouts *WorkoutService) *GenerationService {
	return &GenerationService{
		planner:  planner,
		workouts: workouts,
	}
}

// Generate asks the generator for a plan, validates it and stores it for
// userID. Nothing is stored unless every step succeeds.
func (s *GenerationService) Generate(ctx context.Context, userID uuid.UUID, req domain.GenerateRequest) (*domain.Workout, error) {
	if err := domain.Validate(req); err != nil {
		return nil, err
	}

	logger := log.With().Str("user_id", userID.String()).Logger()

	// The prompt gets the same UTC calendar day a stored workout would.
	date := ""
	if strings.TrimSpace(req.Date) != "" {
		d, err := domain.ParseDate(req.Date)
		if err != nil {
			return nil, &domain.ValidationError{Fields: map[string]string{"date": "invalid date, expected YYYY-MM-DD"}}
		}
		date = d.String()
	}

	raw, err := s.planner.RequestPlan(ctx, req.Description, date)
	if err != nil {
		logger.Error().Err(err).Msg("Workout generation request failed")
		return nil, err
	}

	obj, err := llm.ExtractJSON(raw)
	if err != nil {
		logger.Error().Err(err).Int("response_length", len(raw)).Msg("No workout plan in generator response")
		return nil, fmt.Errorf("%w: %w", domain.ErrGeneration, err)
	}

	draft, err := llm.ParseDraft(obj)
	if err != nil {
		logger.Error().Err(err).Msg("Generated workout plan failed validation")
		return nil, fmt.Errorf("%w: %w", domain.ErrGeneration, err)
	}

	workout, err := s.workouts.Create(ctx, userID, draft.Input())
	if err != nil {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			logger.Error().Err(err).Msg("Generated workout plan failed validation")
			return nil, fmt.Errorf("%w: %w", domain.ErrGeneration, err)
		}
		return nil, err
	}

	logger.Info().
		Str("workout_id", workout.ID.String()).
		Int("exercises", len(workout.Exercises)).
		Msg("Workout generated")

	return workout, nil
}
