package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rrens/workout-planner/internal/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type workoutDocument struct {
	ID        string            `bson:"_id"`
	UserID    string            `bson:"userId"`
	Title     string            `bson:"title"`
	Date      time.Time         `bson:"date"`
	Exercises []domain.Exercise `bson:"exercises"`
	CreatedAt time.Time         `bson:"createdAt"`
	UpdatedAt time.Time         `bson:"updatedAt"`
}

func (d workoutDocument) toDomain() (*domain.Workout, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid workout id %q: %w", d.ID, err)
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner id %q: %w", d.UserID, err)
	}
	return &domain.Workout{
		ID:        id,
		UserID:    userID,
		Title:     d.Title,
		Date:      domain.NewDate(d.Date),
		Exercises: d.Exercises,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

// ownedFilter matches a workout only if it belongs to userID
func ownedFilter(userID, workoutID uuid.UUID) bson.M {
	return bson.M{"_id": workoutID.String(), "userId": userID.String()}
}

// WorkoutRepository stores workouts as single documents with embedded exercises
type WorkoutRepository struct {
	coll *mongo.Collection
}

var _ domain.WorkoutRepository = (*WorkoutRepository)(nil)

// NewWorkoutRepository creates a new workout repository
func NewWorkoutRepository(db *DB) *WorkoutRepository {
	return &WorkoutRepository{coll: db.db.Collection(workoutsCollection)}
}

// Create inserts a new workout
func (r *WorkoutRepository) Create(ctx context.Context, workout *domain.Workout) error {
	doc := workoutDocument{
		ID:        workout.ID.String(),
		UserID:    workout.UserID.String(),
		Title:     workout.Title,
		Date:      workout.Date.Time,
		Exercises: workout.Exercises,
		CreatedAt: workout.CreatedAt,
		UpdatedAt: workout.UpdatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create workout: %w", err)
	}
	return nil
}

// ListByUser returns the user's workouts ordered by date
func (r *WorkoutRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Workout, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "createdAt", Value: 1}})

	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID.String()}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	defer cursor.Close(ctx)

	workouts := []domain.Workout{}
	for cursor.Next(ctx) {
		var doc workoutDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode workout: %w", err)
		}
		workout, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, *workout)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate workouts: %w", err)
	}

	return workouts, nil
}

// UpdateOwned replaces title, date and exercises in one FindOneAndUpdate
func (r *WorkoutRepository) UpdateOwned(ctx context.Context, userID, workoutID uuid.UUID, title string, date domain.Date, exercises []domain.Exercise) (*domain.Workout, error) {
	update := bson.M{"$set": bson.M{
		"title":     title,
		"date":      date.Time,
		"exercises": exercises,
		"updatedAt": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc workoutDocument
	err := r.coll.FindOneAndUpdate(ctx, ownedFilter(userID, workoutID), update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update workout: %w", err)
	}

	return doc.toDomain()
}

// DeleteOwned deletes a workout owned by userID
func (r *WorkoutRepository) DeleteOwned(ctx context.Context, userID, workoutID uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, ownedFilter(userID, workoutID))
	if err != nil {
		return fmt.Errorf("failed to delete workout: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
