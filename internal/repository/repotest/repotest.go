// Package repotest holds the behaviour every storage backend must share.
// Backend packages call Run from their own tests.
package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/Rrens/workout-planner/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises users and workouts against a live backend. Every test
// creates its own users, so a shared database is fine.
func Run(t *testing.T, users domain.UserRepository, workouts domain.WorkoutRepository) {
	t.Run("UserCreateAndLookup", func(t *testing.T) { testUserCreateAndLookup(t, users) })
	t.Run("UserDuplicateEmail", func(t *testing.T) { testUserDuplicateEmail(t, users) })
	t.Run("UserMissing", func(t *testing.T) { testUserMissing(t, users) })
	t.Run("WorkoutCreateAndList", func(t *testing.T) { testWorkoutCreateAndList(t, users, workouts) })
	t.Run("WorkoutListOrderedByDate", func(t *testing.T) { testWorkoutListOrdered(t, users, workouts) })
	t.Run("WorkoutListEmpty", func(t *testing.T) { testWorkoutListEmpty(t, users, workouts) })
	t.Run("WorkoutUpdateOwned", func(t *testing.T) { testWorkoutUpdateOwned(t, users, workouts) })
	t.Run("WorkoutOwnerIsolation", func(t *testing.T) { testWorkoutOwnerIsolation(t, users, workouts) })
	t.Run("WorkoutDeleteOwned", func(t *testing.T) { testWorkoutDeleteOwned(t, users, workouts) })
}

// NewUser builds a user with a unique email
func NewUser(name string) *domain.User {
	now := time.Now().UTC().Truncate(time.Millisecond)
	id := uuid.New()
	return &domain.User{
		ID:           id,
		Name:         name,
		Email:        id.String() + "@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuuN8Yk1TG3/bJ5y1rPpyQJ4R3wUj1/1cG",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewWorkout builds a workout for userID on date (YYYY-MM-DD)
func NewWorkout(t *testing.T, userID uuid.UUID, title, date string, exercises ...domain.Exercise) *domain.Workout {
	t.Helper()

	d, err := domain.ParseDate(date)
	require.NoError(t, err)

	if len(exercises) == 0 {
		exercises = []domain.Exercise{{Name: "Squat", Description: "barbell", Sets: 3, Reps: 10}}
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	return &domain.Workout{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Date:      d,
		Exercises: exercises,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func createUser(t *testing.T, users domain.UserRepository, name string) *domain.User {
	t.Helper()
	user := NewUser(name)
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func testUserCreateAndLookup(t *testing.T, users domain.UserRepository) {
	ctx := context.Background()
	user := createUser(t, users, "Ada")

	byID, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, user.Email, byID.Email)
	assert.Equal(t, user.Name, byID.Name)
	assert.Equal(t, user.PasswordHash, byID.PasswordHash)

	byEmail, err := users.GetByEmail(ctx, user.Email)
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)

	exists, err := users.EmailExists(ctx, user.Email)
	require.NoError(t, err)
	assert.True(t, exists)
}

func testUserDuplicateEmail(t *testing.T, users domain.UserRepository) {
	user := createUser(t, users, "Ada")

	dup := NewUser("Other")
	dup.Email = user.Email

	err := users.Create(context.Background(), dup)
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func testUserMissing(t *testing.T, users domain.UserRepository) {
	ctx := context.Background()

	byID, err := users.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, byID)

	byEmail, err := users.GetByEmail(ctx, "nobody-"+uuid.NewString()+"@example.com")
	require.NoError(t, err)
	assert.Nil(t, byEmail)

	exists, err := users.EmailExists(ctx, "nobody-"+uuid.NewString()+"@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func testWorkoutCreateAndList(t *testing.T, users domain.UserRepository, workouts domain.WorkoutRepository) {
	ctx := context.Background()
	user := createUser(t, users, "Ada")

	w := NewWorkout(t, user.ID, "Leg Day", "2024-05-01",
		domain.Exercise{Name: "Squat", Description: "barbell", Sets: 3, Reps: 10},
		domain.Exercise{Name: "Lunge", Description: "", Sets: 2, Reps: 12},
	)
	require.NoError(t, workouts.Create(ctx, w))

	list, err := workouts.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got := list[0]
	assert.Equal(t, w.ID, got.ID)
	assert.Equal(t, user.ID, got.UserID)
	assert.Equal(t, "Leg Day", got.Title)
	assert.Equal(t, "2024-05-01", got.Date.String())
	assert.Equal(t, w.Exercises, got.Exercises)
}

func testWorkoutListOrdered(t *testing.T, users domain.UserRepository, workouts domain.WorkoutRepository) {
	ctx := context.Background()
	user := createUser(t, users, "Ada")

	for _, date := range []string{"2024-05-03", "2024-05-01", "2024-05-02"} {
		require.NoError(t, workouts.Create(ctx, NewWorkout(t, user.ID, "W "+date, date)))
	}

	list, err := workouts.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2024-05-01", list[0].Date.String())
	assert.Equal(t, "2024-05-02", list[1].Date.String())
	assert.Equal(t, "2024-05-03", list[2].Date.String())
}

func testWorkoutListEmpty(t *testing.T, users domain.UserRepository, workouts domain.WorkoutRepository) {
	user := createUser(t, users, "Ada")

	list, err := workouts.ListByUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func testWorkoutUpdateOwned(t *testing.T, users domain.UserRepository, workouts domain.WorkoutRepository) {
	ctx := context.Background()
	user := createUser(t, users, "Ada")

	w := NewWorkout(t, user.ID, "Leg Day", "2024-05-01")
	require.NoError(t, workouts.Create(ctx, w))

	date, err := domain.ParseDate("2024-06-10")
	require.NoError(t, err)
	exercises := []domain.Exercise{{Name: "Deadlift", Description: "conventional", Sets: 5, Reps: 5}}

	updated, err := workouts.UpdateOwned(ctx, user.ID, w.ID, "Pull Day", date, exercises)
	require.NoError(t, err)
	assert.Equal(t, w.ID, updated.ID)
	assert.Equal(t, "Pull Day", updated.Title)
	assert.Equal(t, "2024-06-10", updated.Date.String())
	assert.Equal(t, exercises, updated.Exercises)

	list, err := workouts.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Pull Day", list[0].Title)
	assert.Equal(t, exercises, list[0].Exercises)
}

func testWorkoutOwnerIsolation(t *testing.T, users domain.UserRepository, workouts domain.WorkoutRepository) {
	ctx := context.Background()
	owner := createUser(t, users, "Owner")
	other := createUser(t, users, "Other")

	w := NewWorkout(t, owner.ID, "Leg Day", "2024-05-01")
	require.NoError(t, workouts.Create(ctx, w))

	list, err := workouts.ListByUser(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = workouts.UpdateOwned(ctx, other.ID, w.ID, "Hijacked", w.Date, w.Exercises)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = workouts.DeleteOwned(ctx, other.ID, w.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err = workouts.ListByUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Leg Day", list[0].Title)
}

func testWorkoutDeleteOwned(t *testing.T, users domain.UserRepository, workouts domain.WorkoutRepository) {
	ctx := context.Background()
	user := createUser(t, users, "Ada")

	w := NewWorkout(t, user.ID, "Leg Day", "2024-05-01")
	require.NoError(t, workouts.Create(ctx, w))

	require.NoError(t, workouts.DeleteOwned(ctx, user.ID, w.ID))

	list, err := workouts.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, workouts.DeleteOwned(ctx, user.ID, w.ID), domain.ErrNotFound)
	assert.ErrorIs(t, workouts.DeleteOwned(ctx, user.ID, uuid.New()), domain.ErrNotFound)

	_, err = workouts.UpdateOwned(ctx, user.ID, w.ID, "Gone", w.Date, w.Exercises)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
