package service

import (
	"context"
	"testing"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTrainingFixture(t *testing.T) (TrainingService, UserService, *domain.User) {
	t.Helper()
	userService := NewUserService(memory.NewMemoryUserRepository())
	trainingService := NewTrainingService(memory.NewMemoryTrainingRepository(), userService)

	user, err := userService.CreateUser(context.Background(), &domain.User{
		FirstName: "Ann",
		LastName:  "Smith",
		Birthdate: localDate(1990, time.January, 1),
		Email:     "ann@x.com",
	})
	require.NoError(t, err)
	return trainingService, userService, user
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestCreateTrainingRequiresExistingUser(t *testing.T) {
	svc, _, _ := newTrainingFixture(t)

	_, err := svc.CreateTraining(context.Background(), TrainingInput{
		UserID:       primitive.NewObjectID(),
		ActivityType: "RUNNING",
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreateTrainingRejectsUnknownActivity(t *testing.T) {
	svc, _, user := newTrainingFixture(t)

	_, err := svc.CreateTraining(context.Background(), TrainingInput{
		UserID:       user.ID,
		ActivityType: "JOGGING",
	})
	assert.ErrorIs(t, err, ErrInvalidActivityType)
}

func TestCreateTrainingParsesActivityCaseInsensitively(t *testing.T) {
	svc, _, user := newTrainingFixture(t)

	created, err := svc.CreateTraining(context.Background(), TrainingInput{
		UserID:       user.ID,
		ActivityType: "running",
		Distance:     5.0,
		AverageSpeed: 10.0,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ActivityRunning, created.ActivityType)
}

func TestFindTrainingsByUserID(t *testing.T) {
	svc, userService, user := newTrainingFixture(t)
	ctx := context.Background()

	other, err := userService.CreateUser(ctx, &domain.User{FirstName: "Bob", Email: "bob@y.org"})
	require.NoError(t, err)

	_, err = svc.CreateTraining(ctx, TrainingInput{UserID: user.ID, ActivityType: "RUNNING"})
	require.NoError(t, err)
	_, err = svc.CreateTraining(ctx, TrainingInput{UserID: other.ID, ActivityType: "CYCLING"})
	require.NoError(t, err)

	trainings, err := svc.FindTrainingsByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, trainings, 1)
	assert.Equal(t, user.ID, trainings[0].UserID)
}

func TestFindTrainingsAfterDateBoundary(t *testing.T) {
	svc, _, user := newTrainingFixture(t)
	ctx := context.Background()

	midnight := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local)

	_, err := svc.CreateTraining(ctx, TrainingInput{
		UserID:       user.ID,
		ActivityType: "RUNNING",
		StartTime:    timePtr(midnight.Add(-time.Hour)),
		EndTime:      timePtr(midnight), // Exactly at the threshold: excluded.
	})
	require.NoError(t, err)

	included, err := svc.CreateTraining(ctx, TrainingInput{
		UserID:       user.ID,
		ActivityType: "RUNNING",
		StartTime:    timePtr(midnight),
		EndTime:      timePtr(midnight.Add(time.Second)),
	})
	require.NoError(t, err)

	// No end time: excluded.
	_, err = svc.CreateTraining(ctx, TrainingInput{
		UserID:       user.ID,
		ActivityType: "RUNNING",
		StartTime:    timePtr(midnight),
	})
	require.NoError(t, err)

	trainings, err := svc.FindTrainingsAfterDate(ctx, "2024-01-01")
	require.NoError(t, err)
	require.Len(t, trainings, 1)
	assert.Equal(t, included.ID, trainings[0].ID)
}

func TestFindTrainingsAfterDateRejectsMalformedDate(t *testing.T) {
	svc, _, _ := newTrainingFixture(t)

	_, err := svc.FindTrainingsAfterDate(context.Background(), "not-a-date")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestFindTrainingsByActivityTypeIsCaseInsensitive(t *testing.T) {
	svc, _, user := newTrainingFixture(t)
	ctx := context.Background()

	_, err := svc.CreateTraining(ctx, TrainingInput{UserID: user.ID, ActivityType: "RUNNING"})
	require.NoError(t, err)
	_, err = svc.CreateTraining(ctx, TrainingInput{UserID: user.ID, ActivityType: "CYCLING"})
	require.NoError(t, err)

	lower, err := svc.FindTrainingsByActivityType(ctx, "running")
	require.NoError(t, err)
	upper, err := svc.FindTrainingsByActivityType(ctx, "RUNNING")
	require.NoError(t, err)

	assert.Equal(t, lower, upper)
	require.Len(t, lower, 1)

	// An unrecognized type matches nothing; it is not an error.
	none, err := svc.FindTrainingsByActivityType(ctx, "JOGGING")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateTrainingAbsentFails(t *testing.T) {
	svc, _, user := newTrainingFixture(t)

	_, err := svc.UpdateTraining(context.Background(), primitive.NewObjectID(), TrainingInput{
		UserID:       user.ID,
		ActivityType: "RUNNING",
	})
	assert.ErrorIs(t, err, ErrTrainingNotFound)
}

func TestUpdateTrainingRevalidatesUser(t *testing.T) {
	svc, _, user := newTrainingFixture(t)
	ctx := context.Background()

	created, err := svc.CreateTraining(ctx, TrainingInput{UserID: user.ID, ActivityType: "RUNNING"})
	require.NoError(t, err)

	// A bad user reference fails the update even though ownership is
	// not meant to change.
	_, err = svc.UpdateTraining(ctx, created.ID, TrainingInput{
		UserID:       primitive.NewObjectID(),
		ActivityType: "RUNNING",
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestTrainingLifecycleScenario(t *testing.T) {
	svc, _, user := newTrainingFixture(t)
	ctx := context.Background()

	start := time.Date(2024, time.June, 1, 8, 0, 0, 0, time.Local)
	end := start.Add(30 * time.Minute)

	created, err := svc.CreateTraining(ctx, TrainingInput{
		UserID:       user.ID,
		ActivityType: "RUNNING",
		StartTime:    timePtr(start),
		EndTime:      timePtr(end),
		Distance:     5.0,
		AverageSpeed: 10.0,
	})
	require.NoError(t, err)

	owned, err := svc.FindTrainingsByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, created.ID, owned[0].ID)

	updated, err := svc.UpdateTraining(ctx, created.ID, TrainingInput{
		UserID:       user.ID,
		ActivityType: "CYCLING",
		StartTime:    timePtr(start),
		EndTime:      timePtr(end),
		Distance:     20.0,
		AverageSpeed: 25.0,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, domain.ActivityCycling, updated.ActivityType)

	cycling, err := svc.FindTrainingsByActivityType(ctx, "cycling")
	require.NoError(t, err)
	require.Len(t, cycling, 1)
	assert.Equal(t, created.ID, cycling[0].ID)

	running, err := svc.FindTrainingsByActivityType(ctx, "running")
	require.NoError(t, err)
	assert.Empty(t, running)
}
