package memory

import (
	"context"
	"sync"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryTrainingRepository implements repository.TrainingRepository with an in-memory map.
type memoryTrainingRepository struct {
	mu        sync.RWMutex
	trainings map[primitive.ObjectID]domain.Training
	order     []primitive.ObjectID
}

// NewMemoryTrainingRepository creates an empty in-memory training repository.
func NewMemoryTrainingRepository() repository.TrainingRepository {
	return &memoryTrainingRepository{
		trainings: make(map[primitive.ObjectID]domain.Training),
	}
}

func (r *memoryTrainingRepository) GetAll(ctx context.Context) ([]domain.Training, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	trainings := make([]domain.Training, 0, len(r.order))
	for _, id := range r.order {
		if t, ok := r.trainings[id]; ok {
			trainings = append(trainings, t)
		}
	}
	return trainings, nil
}

func (r *memoryTrainingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Training, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	training, ok := r.trainings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &training, nil
}

func (r *memoryTrainingRepository) Save(ctx context.Context, training *domain.Training) (*domain.Training, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if training.ID == primitive.NilObjectID {
		training.ID = primitive.NewObjectID()
	}
	if _, exists := r.trainings[training.ID]; !exists {
		r.order = append(r.order, training.ID)
	}
	saved := *training
	r.trainings[training.ID] = saved
	return &saved, nil
}
