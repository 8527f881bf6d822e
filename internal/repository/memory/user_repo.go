// Package memory provides map-backed repository implementations.
// They serve unit tests and local runs without a MongoDB instance.
// The mutex only keeps map access safe; like the mongo-backed
// repositories there is no transactionality across calls.
package memory

import (
	"context"
	"sync"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryUserRepository implements repository.UserRepository with an in-memory map.
type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]domain.User
	order []primitive.ObjectID
}

// NewMemoryUserRepository creates an empty in-memory user repository.
func NewMemoryUserRepository() repository.UserRepository {
	return &memoryUserRepository{
		users: make(map[primitive.ObjectID]domain.User),
	}
}

func (r *memoryUserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.User, 0, len(r.order))
	for _, id := range r.order {
		if u, ok := r.users[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func (r *memoryUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r *memoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if u, ok := r.users[id]; ok && u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memoryUserRepository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == primitive.NilObjectID {
		user.ID = primitive.NewObjectID()
	}
	if _, exists := r.users[user.ID]; !exists {
		r.order = append(r.order, user.ID)
	}
	saved := *user
	r.users[user.ID] = saved
	return &saved, nil
}

func (r *memoryUserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Idempotent: deleting an absent ID is not an error.
	delete(r.users, id)
	return nil
}
