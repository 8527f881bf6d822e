package mongo

import (
	"context"
	"errors"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const trainingCollectionName = "trainings"

// mongoTrainingRepository implements the repository.TrainingRepository interface using MongoDB.
type mongoTrainingRepository struct {
	collection *mongo.Collection
}

// NewMongoTrainingRepository creates a new instance of mongoTrainingRepository.
func NewMongoTrainingRepository(db *mongo.Database) repository.TrainingRepository {
	return &mongoTrainingRepository{
		collection: db.Collection(trainingCollectionName),
	}
}

// GetAll retrieves every training in the collection, in store order.
func (r *mongoTrainingRepository) GetAll(ctx context.Context) ([]domain.Training, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	trainings := []domain.Training{}
	if err = cursor.All(ctx, &trainings); err != nil {
		return nil, err
	}
	return trainings, nil
}

// GetByID retrieves a training by its MongoDB ObjectID.
func (r *mongoTrainingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Training, error) {
	var training domain.Training
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&training)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &training, nil
}

// Save inserts the training when it has no ID yet, or replaces the
// stored document otherwise. The persisted training is returned.
func (r *mongoTrainingRepository) Save(ctx context.Context, training *domain.Training) (*domain.Training, error) {
	if training.ID == primitive.NilObjectID {
		training.ID = primitive.NewObjectID()
		if _, err := r.collection.InsertOne(ctx, training); err != nil {
			return nil, err
		}
		return training, nil
	}

	filter := bson.M{"_id": training.ID}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, filter, training, opts); err != nil {
		return nil, err
	}
	return training, nil
}

// EnsureTrainingIndexes creates necessary indexes for the trainings collection.
// Call this once during application startup.
func EnsureTrainingIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "activityType", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		_ = err
	}
}
