package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrTrainingNotFound    = errors.New("training not found")
	ErrInvalidActivityType = errors.New("invalid activity type")
	ErrInvalidDate         = errors.New("invalid date, expected format yyyy-MM-dd")
)

// dateLayout is the calendar-date format accepted by FindTrainingsAfterDate.
const dateLayout = "2006-01-02"

// TrainingInput carries the caller-supplied fields of a training; the
// activity type arrives as a string and is parsed against the closed set.
type TrainingInput struct {
	UserID       primitive.ObjectID
	StartTime    *time.Time
	EndTime      *time.Time
	ActivityType string
	Distance     float64
	AverageSpeed float64
}

// TrainingService owns the training lifecycle and the training filters.
// User references are resolved through the read-only UserProvider.
type TrainingService interface {
	FindAllTrainings(ctx context.Context) ([]domain.Training, error)
	FindTrainingsByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Training, error)
	FindTrainingsAfterDate(ctx context.Context, date string) ([]domain.Training, error)
	FindTrainingsByActivityType(ctx context.Context, activityType string) ([]domain.Training, error)
	CreateTraining(ctx context.Context, input TrainingInput) (*domain.Training, error)
	UpdateTraining(ctx context.Context, id primitive.ObjectID, input TrainingInput) (*domain.Training, error)
}

// trainingService implements the TrainingService interface.
type trainingService struct {
	trainingRepo repository.TrainingRepository
	users        UserProvider
}

// NewTrainingService creates a new instance of trainingService.
func NewTrainingService(trainingRepo repository.TrainingRepository, users UserProvider) TrainingService {
	return &trainingService{
		trainingRepo: trainingRepo,
		users:        users,
	}
}

// FindAllTrainings returns every training in the store, order unspecified.
func (s *trainingService) FindAllTrainings(ctx context.Context) ([]domain.Training, error) {
	return s.trainingRepo.GetAll(ctx)
}

// FindTrainingsByUserID returns the trainings owned by the given user.
// Trainings without an owner reference simply never match.
func (s *trainingService) FindTrainingsByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Training, error) {
	trainings, err := s.trainingRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	matches := []domain.Training{}
	for _, t := range trainings {
		if t.UserID != primitive.NilObjectID && t.UserID == userID {
			matches = append(matches, t)
		}
	}
	return matches, nil
}

// FindTrainingsAfterDate returns trainings whose end time lies strictly
// after the start of the given calendar day in the local timezone.
// Trainings with no end time are excluded.
func (s *trainingService) FindTrainingsAfterDate(ctx context.Context, date string) ([]domain.Training, error) {
	parsed, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	threshold := parsed // Start of day already, no time component in the layout.

	trainings, err := s.trainingRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	matches := []domain.Training{}
	for _, t := range trainings {
		if t.EndTime != nil && t.EndTime.After(threshold) {
			matches = append(matches, t)
		}
	}
	return matches, nil
}

// FindTrainingsByActivityType returns trainings whose activity type
// matches the given name, ignoring case. An unrecognized name matches
// nothing and yields an empty result, not an error.
func (s *trainingService) FindTrainingsByActivityType(ctx context.Context, activityType string) ([]domain.Training, error) {
	trainings, err := s.trainingRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	matches := []domain.Training{}
	for _, t := range trainings {
		if strings.EqualFold(string(t.ActivityType), activityType) {
			matches = append(matches, t)
		}
	}
	return matches, nil
}

// CreateTraining resolves the owning user, parses the activity type and
// persists a new training.
func (s *trainingService) CreateTraining(ctx context.Context, input TrainingInput) (*domain.Training, error) {
	if err := s.resolveUser(ctx, input.UserID); err != nil {
		return nil, err
	}

	activity, err := domain.ParseActivityType(input.ActivityType)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidActivityType, input.ActivityType)
	}

	training := &domain.Training{
		UserID:       input.UserID,
		StartTime:    input.StartTime,
		EndTime:      input.EndTime,
		ActivityType: activity,
		Distance:     input.Distance,
		AverageSpeed: input.AverageSpeed,
	}
	return s.trainingRepo.Save(ctx, training)
}

// UpdateTraining overwrites the mutable fields of an existing training.
// The user reference in the input is re-resolved on every update as a
// validation step; ownership itself never changes.
func (s *trainingService) UpdateTraining(ctx context.Context, id primitive.ObjectID, input TrainingInput) (*domain.Training, error) {
	if err := s.resolveUser(ctx, input.UserID); err != nil {
		return nil, err
	}

	activity, err := domain.ParseActivityType(input.ActivityType)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidActivityType, input.ActivityType)
	}

	existing, err := s.trainingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainingNotFound
		}
		return nil, err
	}

	existing.StartTime = input.StartTime
	existing.EndTime = input.EndTime
	existing.ActivityType = activity
	existing.Distance = input.Distance
	existing.AverageSpeed = input.AverageSpeed

	return s.trainingRepo.Save(ctx, existing)
}

// resolveUser verifies that the referenced user exists.
func (s *trainingService) resolveUser(ctx context.Context, userID primitive.ObjectID) error {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return nil
}
