package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Exercise is a single entry of a workout. It has no identity of its own.
type Exercise struct {
	Name        string `json:"name" bson:"name" validate:"required"`
	Description string `json:"description" bson:"description"`
	Sets        int    `json:"sets" bson:"sets" validate:"gt=0"`
	Reps        int    `json:"reps" bson:"reps" validate:"gt=0"`
}

// Workout is a dated, titled, ordered list of exercises owned by one user
type Workout struct {
	ID        uuid.UUID  `json:"_id"`
	UserID    uuid.UUID  `json:"userId"`
	Title     string     `json:"title"`
	Date      Date       `json:"date"`
	Exercises []Exercise `json:"exercises"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// WorkoutInput carries the fields a client may set. Updates replace all of them.
type WorkoutInput struct {
	Title     string     `json:"title" validate:"required"`
	Date      string     `json:"date" validate:"required,date"`
	Exercises []Exercise `json:"exercises" validate:"required,min=1,dive"`
}

// GenerationDraft is a workout candidate parsed from generator output.
// It only becomes a Workout after it passes schema validation.
type GenerationDraft struct {
	Title     string
	Date      Date
	Exercises []Exercise
}

// Input converts a validated draft into a create request
func (d *GenerationDraft) Input() WorkoutInput {
	return WorkoutInput{
		Title:     d.Title,
		Date:      d.Date.String(),
		Exercises: d.Exercises,
	}
}

// GenerateRequest is the body of a generation request
type GenerateRequest struct {
	Description string `json:"description" validate:"required,max=2000"`
	Date        string `json:"date" validate:"omitempty,date"`
}

// WorkoutRepository defines the interface for workout storage.
// Every operation is scoped by owner; UpdateOwned and DeleteOwned must match
// on id and owner in a single operation and return ErrNotFound otherwise.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *Workout) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Workout, error)
	UpdateOwned(ctx context.Context, userID, workoutID uuid.UUID, title string, date Date, exercises []Exercise) (*Workout, error)
	DeleteOwned(ctx context.Context, userID, workoutID uuid.UUID) error
}

// WorkoutCache stores per-user workout lists. Get returns (nil, nil) on a miss.
// Invalidate bumps the user's version; Set only writes when the version
// passed in is still current, so a list read before a write is never cached.
type WorkoutCache interface {
	Get(ctx context.Context, userID uuid.UUID) ([]Workout, error)
	Version(ctx context.Context, userID uuid.UUID) (int64, error)
	Set(ctx context.Context, userID uuid.UUID, version int64, workouts []Workout) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}
