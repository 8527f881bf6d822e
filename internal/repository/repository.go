package repository

import (
	"context"

	"fittrack/fitness-tracker/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound = RepositoryError("not found")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
// Save assigns an ID when the user has none; Delete is a no-op for
// IDs that do not exist.
type UserRepository interface {
	GetAll(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TrainingRepository defines the interface for interacting with training data.
// Save assigns an ID when the training has none.
type TrainingRepository interface {
	GetAll(ctx context.Context) ([]domain.Training, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Training, error)
	Save(ctx context.Context, training *domain.Training) (*domain.Training, error)
}
