package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Rrens/workout-planner/internal/domain"
	"github.com/google/uuid"
)

// WorkoutRepository handles workout data access
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
		INSERT INTO workouts (` + workoutColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.db.ExecContext(ctx, query,
		workout.ID.String(),
		workout.UserID.String(),
		workout.Title,
		workout.Date.String(),
		string(exercises),
		workout.CreatedAt.UTC(),
		workout.UpdatedAt.UTC(),
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
		WHERE user_id = ?
		ORDER BY date ASC, created_at ASC
	`

	rows, err := r.db.db.QueryContext(ctx, query, userID.String())
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

	res, err := r.db.db.ExecContext(ctx, `
		UPDATE workouts
		SET title = ?, date = ?, exercises = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`,
		title,
		date.String(),
		string(exercisesJSON),
		time.Now().UTC(),
		workoutID.String(),
		userID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update workout: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to update workout: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrNotFound
	}

	query := `
		SELECT ` + workoutColumns + `
		FROM workouts
		WHERE id = ? AND user_id = ?
	`
	workout, err := scanWorkout(r.db.db.QueryRowContext(ctx, query, workoutID.String(), userID.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return workout, nil
}

// DeleteOwned deletes a workout owned by userID
func (r *WorkoutRepository) DeleteOwned(ctx context.Context, userID, workoutID uuid.UUID) error {
	res, err := r.db.db.ExecContext(ctx, `DELETE FROM workouts WHERE id = ? AND user_id = ?`, workoutID.String(), userID.String())
	if err != nil {
		return fmt.Errorf("failed to delete workout: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete workout: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWorkout(row scanner) (*domain.Workout, error) {
	var workout domain.Workout
	var id, userID, date, exercises string

	err := row.Scan(
		&id,
		&userID,
		&workout.Title,
		&date,
		&exercises,
		&workout.CreatedAt,
		&workout.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan workout: %w", err)
	}

	if workout.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid workout id %q: %w", id, err)
	}
	if workout.UserID, err = uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("invalid owner id %q: %w", userID, err)
	}
	if workout.Date, err = domain.ParseDate(date); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(exercises), &workout.Exercises); err != nil {
		return nil, fmt.Errorf("failed to unmarshal exercises: %w", err)
	}

	return &workout, nil
}
