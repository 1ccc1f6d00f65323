package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Rrens/workout-planner/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WorkoutRepository handles workout data access. Writes are always filtered
// by both id and owner in the same statement.
type WorkoutRepository struct {
	db *DB
}

var _ domain.WorkoutRepository = (*WorkoutRepository)(nil)

// NewWorkoutRepository creates a new workout repository
func NewWorkoutRepository(db *DB) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

const workoutColumns = `id, user_id, title, date, exercises, created_at, updated_at`

// Create inserts a new workout
func (r *WorkoutRepository) Create(ctx context.Context, workout *domain.Workout) error {
	exercises, err := json.Marshal(workout.Exercises)
	if err != nil {
		return fmt.Errorf("failed to marshal exercises: %w", err)
	}

	query := `
		INSERT INTO workouts (id, user_id, title, date, exercises, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.db.Pool.Exec(ctx, query,
		workout.ID,
		workout.UserID,
		workout.Title,
		workout.Date.Time,
		exercises,
		workout.CreatedAt,
		workout.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create workout: %w", err)
	}

	return nil
}

// ListByUser returns the user's workouts ordered by date
func (r *WorkoutRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Workout, error) {
	query := `
		SELECT ` + workoutColumns + `
		FROM workouts
		WHERE user_id = $1
		ORDER BY date ASC, created_at ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	defer rows.Close()

	workouts := []domain.Workout{}
	for rows.Next() {
		workout, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, *workout)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate workouts: %w", err)
	}

	return workouts, nil
}

// UpdateOwned replaces title, date and exercises of a workout owned by userID
func (r *WorkoutRepository) UpdateOwned(ctx context.Context, userID, workoutID uuid.UUID, title string, date domain.Date, exercises []domain.Exercise) (*domain.Workout, error) {
	exercisesJSON, err := json.Marshal(exercises)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal exercises: %w", err)
	}

	query := `
		UPDATE workouts
		SET title = $3,
		    date = $4,
		    exercises = $5,
		    updated_at = $6
		WHERE id = $1 AND user_id = $2
		RETURNING ` + workoutColumns

	row := r.db.Pool.QueryRow(ctx, query, workoutID, userID, title, date.Time, exercisesJSON, time.Now().UTC())
	workout, err := scanWorkout(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return workout, nil
}

// DeleteOwned deletes a workout owned by userID
func (r *WorkoutRepository) DeleteOwned(ctx context.Context, userID, workoutID uuid.UUID) error {
	query := `DELETE FROM workouts WHERE id = $1 AND user_id = $2`

	tag, err := r.db.Pool.Exec(ctx, query, workoutID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func scanWorkout(row pgx.Row) (*domain.Workout, error) {
	var workout domain.Workout
	var date time.Time
	var exercisesJSON []byte

	err := row.Scan(
		&workout.ID,
		&workout.UserID,
		&workout.Title,
		&date,
		&exercisesJSON,
		&workout.CreatedAt,
		&workout.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan workout: %w", err)
	}

	workout.Date = domain.NewDate(date)
	if err := json.Unmarshal(exercisesJSON, &workout.Exercises); err != nil {
		return nil, fmt.Errorf("failed to unmarshal exercises: %w", err)
	}

	return &workout, nil
}
