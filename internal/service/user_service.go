package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyPersisted = errors.New("user already has a database ID, update is not permitted")
	ErrUserNotFound         = errors.New("user not found")
)

// UserProvider is the read-only capability over users. Subsystems that
// only need lookups (e.g. the training service) depend on this instead
// of the full UserService.
type UserProvider interface {
	// GetUser returns (nil, nil) when no user has the given ID.
	// Absence is a normal outcome here, not an error.
	GetUser(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	// GetUserByEmail returns (nil, nil) when no user has the given email.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindAllUsers(ctx context.Context) ([]domain.User, error)
	FindByEmailFragment(ctx context.Context, fragment string) ([]domain.User, error)
	FindOlderThan(ctx context.Context, age int) ([]domain.User, error)
}

// UserService is the full read-write capability over users.
type UserService interface {
	UserProvider
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, user *domain.User) (*domain.User, error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
}

// userService implements UserService (and thereby UserProvider).
type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// CreateUser persists a new user. The input must not carry an ID yet;
// the store assigns one.
func (s *userService) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.IsPersisted() {
		return nil, ErrUserAlreadyPersisted
	}
	return s.userRepo.Save(ctx, user)
}

// GetUser looks a user up by ID. A missing user yields (nil, nil).
func (s *userService) GetUser(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// GetUserByEmail looks a user up by exact email. A missing user yields (nil, nil).
func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// FindAllUsers returns every user in the store, order unspecified.
func (s *userService) FindAllUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.GetAll(ctx)
}

// DeleteUser removes the user by ID. Deleting an absent ID is not an
// error; the operation is idempotent.
func (s *userService) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	return s.userRepo.Delete(ctx, id)
}

// UpdateUser overwrites the name, birthdate and email of an existing
// user and persists the result. The ID itself never changes.
func (s *userService) UpdateUser(ctx context.Context, id primitive.ObjectID, user *domain.User) (*domain.User, error) {
	existing, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.Birthdate = user.Birthdate
	existing.Email = user.Email

	return s.userRepo.Save(ctx, existing)
}

// FindByEmailFragment returns users whose email contains the fragment,
// ignoring case. The empty fragment matches every user.
func (s *userService) FindByEmailFragment(ctx context.Context, fragment string) ([]domain.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(fragment)
	matches := []domain.User{}
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Email), needle) {
			matches = append(matches, u)
		}
	}
	return matches, nil
}

// FindOlderThan returns users whose birthdate lies strictly before
// today minus the given number of years. Users with no birthdate are
// excluded. "Today" is evaluated at call time.
func (s *userService) FindOlderThan(ctx context.Context, age int) ([]domain.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := truncateToDate(time.Now()).AddDate(-age, 0, 0)
	matches := []domain.User{}
	for _, u := range users {
		if u.Birthdate == nil {
			continue
		}
		if truncateToDate(*u.Birthdate).Before(cutoff) {
			matches = append(matches, u)
		}
	}
	return matches, nil
}

// truncateToDate drops the time-of-day component in the local timezone,
// so birthdates compare at calendar-date granularity.
func truncateToDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}
