package memory

import (
	"context"
	"testing"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserRepositorySaveAssignsID(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	saved, err := repo.Save(ctx, &domain.User{FirstName: "Ann", Email: "ann@x.com"})
	require.NoError(t, err)
	assert.NotEqual(t, primitive.NilObjectID, saved.ID)

	fetched, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", fetched.Email)
}

func TestUserRepositorySaveReplacesExisting(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	saved, err := repo.Save(ctx, &domain.User{FirstName: "Ann", Email: "ann@x.com"})
	require.NoError(t, err)

	saved.Email = "ann@y.com"
	_, err = repo.Save(ctx, saved)
	require.NoError(t, err)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "ann@y.com", all[0].Email)
}

func TestUserRepositoryGetByEmail(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	_, err := repo.Save(ctx, &domain.User{FirstName: "Ann", Email: "ann@x.com"})
	require.NoError(t, err)

	found, err := repo.GetByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Ann", found.FirstName)

	_, err = repo.GetByEmail(ctx, "missing@x.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepositoryDeleteIsIdempotent(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	saved, err := repo.Save(ctx, &domain.User{FirstName: "Ann", Email: "ann@x.com"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, saved.ID))
	require.NoError(t, repo.Delete(ctx, saved.ID))
	require.NoError(t, repo.Delete(ctx, primitive.NewObjectID()))

	_, err = repo.GetByID(ctx, saved.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTrainingRepositorySaveAndGet(t *testing.T) {
	repo := NewMemoryTrainingRepository()
	ctx := context.Background()

	saved, err := repo.Save(ctx, &domain.Training{
		UserID:       primitive.NewObjectID(),
		ActivityType: domain.ActivityRunning,
		Distance:     5.0,
	})
	require.NoError(t, err)
	assert.NotEqual(t, primitive.NilObjectID, saved.ID)

	fetched, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ActivityRunning, fetched.ActivityType)

	_, err = repo.GetByID(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
