package service

import (
	"context"

	"github.com/Rrens/workout-planner/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks domain.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockWorkoutRepository mocks domain.WorkoutRepository
type MockWorkoutRepository struct {
	mock.Mock
}

func (m *MockWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) error {
	args := m.Called(ctx, workout)
	return args.Error(0)
}

func (m *MockWorkoutRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Workout, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workout), args.Error(1)
}

func (m *MockWorkoutRepository) UpdateOwned(ctx context.Context, userID, workoutID uuid.UUID, title string, date domain.Date, exercises []domain.Exercise) (*domain.Workout, error) {
	args := m.Called(ctx, userID, workoutID, title, date, exercises)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workout), args.Error(1)
}

func (m *MockWorkoutRepository) DeleteOwned(ctx context.Context, userID, workoutID uuid.UUID) error {
	args := m.Called(ctx, userID, workoutID)
	return args.Error(0)
}

// MockWorkoutCache mocks domain.WorkoutCache
type MockWorkoutCache struct {
	mock.Mock
}

func (m *MockWorkoutCache) Get(ctx context.Context, userID uuid.UUID) ([]domain.Workout, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workout), args.Error(1)
}

func (m *MockWorkoutCache) Version(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWorkoutCache) Set(ctx context.Context, userID uuid.UUID, version int64, workouts []domain.Workout) error {
	args := m.Called(ctx, userID, version, workouts)
	return args.Error(0)
}

func (m *MockWorkoutCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockPlanRequester mocks PlanRequester
type MockPlanRequester struct {
	mock.Mock
}

func (m *MockPlanRequester) RequestPlan(ctx context.Context, description, date string) (string, error) {
	args := m.Called(ctx, description, date)
	return args.String(0), args.Error(1)
}
