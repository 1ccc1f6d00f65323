package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Rrens/workout-planner/internal/repository/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRepositories(t *testing.T) {
	db := newTestDB(t)
	repotest.Run(t, NewUserRepository(db), NewWorkoutRepository(db))
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workouts.db")

	db, err := Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, db.Ping(context.Background()))
	require.NoError(t, db.Close())

	// reopening must not fail on the existing schema
	db, err = Open(context.Background(), path)
	require.NoError(t, err)
	assert.NoError(t, db.Close())
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open(context.Background(), "")
	assert.Error(t, err)
}

func TestWorkoutRepository_DeleteCascadesWithUser(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	workouts := NewWorkoutRepository(db)

	user := repotest.NewUser("Ada")
	require.NoError(t, users.Create(ctx, user))
	require.NoError(t, workouts.Create(ctx, repotest.NewWorkout(t, user.ID, "Leg Day", "2024-05-01")))

	_, err := db.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, user.ID.String())
	require.NoError(t, err)

	list, err := workouts.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
