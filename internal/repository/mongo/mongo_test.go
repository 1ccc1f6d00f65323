package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Rrens/workout-planner/internal/config"
	"github.com/Rrens/workout-planner/internal/repository/repotest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Set TEST_MONGO_URI to run against a real server, e.g. mongodb://localhost:27017
func TestRepositories(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	ctx := context.Background()
	db, err := NewDB(ctx, config.MongoConfig{
		URI:            uri,
		Database:       "workouts_test_" + uuid.NewString()[:8],
		ConnectTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = db.Close()
	})

	repotest.Run(t, NewUserRepository(db), NewWorkoutRepository(db))
}
