package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rrens/workout-planner/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// WorkoutService handles workout CRUD for a single owner at a time
type WorkoutService struct {
	workoutRepo domain.WorkoutRepository
	cache       domain.WorkoutCache
}

// NewWorkoutService creates a new workout service. cache may be nil.
func NewWorkoutService(workoutRepo domain.WorkoutRepository, cache domain.WorkoutCache) *WorkoutService {
	return &WorkoutService{
		workoutRepo: workoutRepo,
		cache:       cache,
	}
}

// List returns the user's workouts ordered by date
func (s *WorkoutService) List(ctx context.Context, userID uuid.UUID) ([]domain.Workout, error) {
	var (
		version   int64
		cacheable bool
	)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, userID)
		if err != nil {
			log.Warn().Err(err).Str("user_id", userID.String()).Msg("Workout cache read failed")
		} else if cached != nil {
			return cached, nil
		}

		// The version must be read before the store so a concurrent write
		// makes the fill below a no-op.
		version, err = s.cache.Version(ctx, userID)
		if err != nil {
			log.Warn().Err(err).Str("user_id", userID.String()).Msg("Workout cache version read failed")
		} else {
			cacheable = true
		}
	}

	workouts, err := s.workoutRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	if cacheable {
		if err := s.cache.Set(ctx, userID, version, workouts); err != nil {
			log.Warn().Err(err).Str("user_id", userID.String()).Msg("Workout cache write failed")
		}
	}

	return workouts, nil
}

// Create stores a new workout owned by userID
func (s *WorkoutService) Create(ctx context.Context, userID uuid.UUID, input domain.WorkoutInput) (*domain.Workout, error) {
	date, err := prepareInput(&input)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	workout := &domain.Workout{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     input.Title,
		Date:      date,
		Exercises: input.Exercises,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.workoutRepo.Create(ctx, workout); err != nil {
		return nil, fmt.Errorf("failed to create workout: %w", err)
	}

	s.invalidate(ctx, userID)
	return workout, nil
}

// Update replaces every field of a workout owned by userID
func (s *WorkoutService) Update(ctx context.Context, userID, workoutID uuid.UUID, input domain.WorkoutInput) (*domain.Workout, error) {
	date, err := prepareInput(&input)
	if err != nil {
		return nil, err
	}

	workout, err := s.workoutRepo.UpdateOwned(ctx, userID, workoutID, input.Title, date, input.Exercises)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)
	return workout, nil
}

// Delete removes a workout owned by userID
func (s *WorkoutService) Delete(ctx context.Context, userID, workoutID uuid.UUID) error {
	if err := s.workoutRepo.DeleteOwned(ctx, userID, workoutID); err != nil {
		return err
	}

	s.invalidate(ctx, userID)
	return nil
}

func (s *WorkoutService) invalidate(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("Workout cache invalidation failed")
	}
}

// prepareInput trims text fields, validates input and parses its date
func prepareInput(input *domain.WorkoutInput) (domain.Date, error) {
	input.Title = strings.TrimSpace(input.Title)
	for i := range input.Exercises {
		input.Exercises[i].Name = strings.TrimSpace(input.Exercises[i].Name)
		input.Exercises[i].Description = strings.TrimSpace(input.Exercises[i].Description)
	}

	if err := domain.Validate(input); err != nil {
		return domain.Date{}, err
	}

	return domain.ParseDate(input.Date)
}
