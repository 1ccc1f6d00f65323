package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Rrens/workout-planner/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestGenerationService() (*GenerationService, *MockPlanRequester, *MockWorkoutRepository) {
	planner := new(MockPlanRequester)
	repo := new(MockWorkoutRepository)
	return NewGenerationService(planner, NewWorkoutService(repo, nil)), planner, repo
}

func TestGenerationService_Generate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	raw := "Sure! ```json\n" +
		`{"title":"Leg Day","date":"2024-05-01","exercises":[{"name":"Squat","description":"barbell","sets":3,"reps":10}]}` +
		"\n``` Hope that helps!"

	svc, requester, repo := newTestGenerationService()
	requester.On("RequestPlan", ctx, "legs please", "2024-05-01").Return(raw, nil).Once()
	repo.On("Create", ctx, mock.MatchedBy(func(w *domain.Workout) bool {
		return w.UserID == userID && w.Title == "Leg Day"
	})).Return(nil).Once()

	workout, err := svc.Generate(ctx, userID, domain.GenerateRequest{Description: "legs please", Date: "2024-05-01"})
	require.NoError(t, err)
	assert.Equal(t, userID, workout.UserID)
	assert.Equal(t, "Leg Day", workout.Title)
	assert.Equal(t, "2024-05-01", workout.Date.String())
	assert.Equal(t, []domain.Exercise{{Name: "Squat", Description: "barbell", Sets: 3, Reps: 10}}, workout.Exercises)

	requester.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestGenerationService_PromptDateIsUTCDay(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	tests := []struct {
		name string
		date string
		want string
	}{
		{"timestamp west of UTC", "2024-05-01T23:30:00-05:00", "2024-05-02"},
		{"timestamp east of UTC", "2024-05-02T01:00:00+09:00", "2024-05-01"},
		{"plain day", "2024-05-01", "2024-05-01"},
		{"empty means today", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, requester, repo := newTestGenerationService()
			requester.On("RequestPlan", ctx, "legs", tt.want).
				Return(`{"title":"Leg Day","date":"2024-05-02","exercises":[{"name":"Squat","description":"","sets":3,"reps":10}]}`, nil).
				Once()
			repo.On("Create", ctx, mock.Anything).Return(nil).Once()

			_, err := svc.Generate(ctx, userID, domain.GenerateRequest{Description: "legs", Date: tt.date})
			require.NoError(t, err)
			requester.AssertExpectations(t)
		})
	}
}

func TestGenerationService_NothingPersistedOnFailure(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	tests := []struct {
		name    string
		raw     string
		err     error
		errType any
	}{
		{
			name:    "missing sets",
			raw:     `{"title":"t","date":"2024-05-01","exercises":[{"name":"a","description":"","sets":1,"reps":1},{"name":"b","description":"","reps":8}]}`,
			errType: &domain.SchemaError{},
		},
		{
			name:    "prose only",
			raw:     "I'm sorry, I can't do that.",
			errType: &domain.ExtractionError{},
		},
		{
			name:    "malformed",
			raw:     `{"title": "x",}`,
			errType: &domain.ExtractionError{},
		},
		{
			name: "generator error",
			err:  fmt.Errorf("%w: gemini: quota exceeded", domain.ErrGeneration),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, requester, repo := newTestGenerationService()
			requester.On("RequestPlan", ctx, "anything", "").Return(tt.raw, tt.err).Once()

			workout, err := svc.Generate(ctx, userID, domain.GenerateRequest{Description: "anything"})
			assert.Nil(t, workout)
			assert.ErrorIs(t, err, domain.ErrGeneration)

			switch tt.errType.(type) {
			case *domain.SchemaError:
				var schemaErr *domain.SchemaError
				require.True(t, errors.As(err, &schemaErr))
				assert.Equal(t, "exercises[1].sets", schemaErr.Field)
			case *domain.ExtractionError:
				var extractionErr *domain.ExtractionError
				assert.True(t, errors.As(err, &extractionErr))
			}

			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestGenerationService_InvalidRequest(t *testing.T) {
	svc, requester, _ := newTestGenerationService()

	_, err := svc.Generate(context.Background(), uuid.New(), domain.GenerateRequest{Description: ""})

	var validationErr *domain.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Fields, "description")
	requester.AssertNotCalled(t, "RequestPlan", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerationService_StoreError(t *testing.T) {
	ctx := context.Background()
	svc, requester, repo := newTestGenerationService()

	requester.On("RequestPlan", ctx, "legs", "").
		Return(`{"title":"Leg Day","date":"2024-05-01","exercises":[{"name":"Squat","sets":3,"reps":10}]}`, nil).Once()
	repo.On("Create", ctx, mock.Anything).Return(errors.New("connection refused")).Once()

	_, err := svc.Generate(ctx, uuid.New(), domain.GenerateRequest{Description: "legs"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrGeneration)
}
