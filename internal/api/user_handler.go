package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// birthdateLayout is the wire format for birthdates (calendar date only).
const birthdateLayout = "2006-01-02"

// UserHandler holds the user service dependency.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// --- DTOs for API (Data Transfer Objects) ---

// UserDto is the transfer shape of a user. Birthdate travels as a
// yyyy-MM-dd string; empty means unknown.
type UserDto struct {
	ID        string `json:"id,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Birthdate string `json:"birthdate,omitempty"`
	Email     string `json:"email"`
}

// UserShortDto is the reduced transfer shape used by listings and search.
type UserShortDto struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// MapUserToDto converts a domain.User to its transfer shape.
func MapUserToDto(user *domain.User) UserDto {
	if user == nil {
		return UserDto{}
	}
	dto := UserDto{
		ID:        user.ID.Hex(),
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
	if user.Birthdate != nil {
		dto.Birthdate = user.Birthdate.Format(birthdateLayout)
	}
	return dto
}

// MapUsersToDto converts a slice of domain.User to transfer shapes.
func MapUsersToDto(users []domain.User) []UserDto {
	dtos := make([]UserDto, len(users))
	for i, u := range users {
		dtos[i] = MapUserToDto(&u)
	}
	return dtos
}

// MapUserToShortDto converts a domain.User to its reduced transfer shape.
func MapUserToShortDto(user *domain.User) UserShortDto {
	return UserShortDto{
		ID:        user.ID.Hex(),
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

// MapUsersToShortDto converts a slice of domain.User to reduced transfer shapes.
func MapUsersToShortDto(users []domain.User) []UserShortDto {
	dtos := make([]UserShortDto, len(users))
	for i, u := range users {
		dtos[i] = MapUserToShortDto(&u)
	}
	return dtos
}

// mapDtoToUser converts an incoming UserDto to a domain.User. The ID is
// carried over when present so the service can reject already-persisted
// users on creation.
func mapDtoToUser(dto UserDto) (*domain.User, error) {
	user := &domain.User{
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Email:     dto.Email,
	}
	if dto.ID != "" {
		id, err := primitive.ObjectIDFromHex(dto.ID)
		if err != nil {
			return nil, errors.New("invalid user ID format")
		}
		user.ID = id
	}
	if dto.Birthdate != "" {
		birthdate, err := time.ParseInLocation(birthdateLayout, dto.Birthdate, time.Local)
		if err != nil {
			return nil, errors.New("invalid birthdate, expected format yyyy-MM-dd")
		}
		user.Birthdate = &birthdate
	}
	return user, nil
}

// --- Handler Methods ---

// GetAllUsers returns every user.
// GET /api/v1/users
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := h.userService.FindAllUsers(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve users.")
		return
	}
	c.JSON(http.StatusOK, MapUsersToDto(users))
}

// GetAllUsersShort returns every user in the reduced shape.
// GET /api/v1/users/short
func (h *UserHandler) GetAllUsersShort(c *gin.Context) {
	users, err := h.userService.FindAllUsers(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve users.")
		return
	}
	c.JSON(http.StatusOK, MapUsersToShortDto(users))
}

// CreateUser persists a new user. The payload must not carry an ID.
// POST /api/v1/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var dto UserDto
	if err := c.ShouldBindJSON(&dto); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := mapDtoToUser(dto)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.userService.CreateUser(c.Request.Context(), user)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyPersisted) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create user.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapUserToDto(created))
}

// GetUserByID returns a single user or 404 when absent.
// GET /api/v1/users/:id
func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format.")
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve user.")
		return
	}
	if user == nil {
		abortWithError(c, http.StatusNotFound, "User not found.")
		return
	}
	c.JSON(http.StatusOK, MapUserToDto(user))
}

// UpdateUser overwrites the attributes of an existing user.
// PUT /api/v1/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format.")
		return
	}

	var dto UserDto
	if err := c.ShouldBindJSON(&dto); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	dto.ID = "" // The path parameter identifies the user; ignore any body ID.

	user, err := mapDtoToUser(dto)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.userService.UpdateUser(c.Request.Context(), id, user)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update user.")
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToDto(updated))
}

// DeleteUser removes a user. Always succeeds, even for absent IDs.
// DELETE /api/v1/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format.")
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to delete user.")
		return
	}
	c.Status(http.StatusNoContent)
}

// SearchUsers finds users by email fragment or by minimum age.
// Exactly one of the query parameters is expected; when both are
// present the email fragment wins.
// GET /api/v1/users/search?email=|ageGt=
func (h *UserHandler) SearchUsers(c *gin.Context) {
	if email, ok := c.GetQuery("email"); ok {
		users, err := h.userService.FindByEmailFragment(c.Request.Context(), email)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, "Failed to search users.")
			return
		}
		c.JSON(http.StatusOK, MapUsersToShortDto(users))
		return
	}

	if ageGtStr, ok := c.GetQuery("ageGt"); ok {
		ageGt, err := strconv.Atoi(ageGtStr)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid ageGt parameter, expected an integer.")
			return
		}
		users, err := h.userService.FindOlderThan(c.Request.Context(), ageGt)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, "Failed to search users.")
			return
		}
		c.JSON(http.StatusOK, MapUsersToShortDto(users))
		return
	}

	abortWithError(c, http.StatusBadRequest, "Specify either email or ageGt as query parameter.")
}
