package api

import (
	"errors"
	"net/http"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainingHandler holds the training service dependency.
type TrainingHandler struct {
	trainingService service.TrainingService
}

// NewTrainingHandler creates a new TrainingHandler.
func NewTrainingHandler(trainingService service.TrainingService) *TrainingHandler {
	return &TrainingHandler{trainingService: trainingService}
}

// --- DTOs for API (Data Transfer Objects) ---

// TrainingDto is the transfer shape of a training. The activity type
// travels as a string and timestamps as RFC 3339.
type TrainingDto struct {
	ID           string     `json:"id,omitempty"`
	UserID       string     `json:"userId"`
	StartTime    *time.Time `json:"startTime,omitempty"`
	EndTime      *time.Time `json:"endTime,omitempty"`
	ActivityType string     `json:"activityType"`
	Distance     float64    `json:"distance"`
	AverageSpeed float64    `json:"averageSpeed"`
}

// MapTrainingToDto converts a domain.Training to its transfer shape.
func MapTrainingToDto(training *domain.Training) TrainingDto {
	if training == nil {
		return TrainingDto{}
	}
	return TrainingDto{
		ID:           training.ID.Hex(),
		UserID:       training.UserID.Hex(),
		StartTime:    training.StartTime,
		EndTime:      training.EndTime,
		ActivityType: training.ActivityType.String(),
		Distance:     training.Distance,
		AverageSpeed: training.AverageSpeed,
	}
}

// MapTrainingsToDto converts a slice of domain.Training to transfer shapes.
func MapTrainingsToDto(trainings []domain.Training) []TrainingDto {
	dtos := make([]TrainingDto, len(trainings))
	for i, t := range trainings {
		dtos[i] = MapTrainingToDto(&t)
	}
	return dtos
}

// mapDtoToInput converts an incoming TrainingDto to the service input shape.
func mapDtoToInput(dto TrainingDto) (service.TrainingInput, error) {
	userID, err := primitive.ObjectIDFromHex(dto.UserID)
	if err != nil {
		return service.TrainingInput{}, errors.New("invalid user ID format")
	}
	return service.TrainingInput{
		UserID:       userID,
		StartTime:    dto.StartTime,
		EndTime:      dto.EndTime,
		ActivityType: dto.ActivityType,
		Distance:     dto.Distance,
		AverageSpeed: dto.AverageSpeed,
	}, nil
}

// --- Handler Methods ---

// GetAllTrainings returns every training.
// GET /api/v1/trainings
func (h *TrainingHandler) GetAllTrainings(c *gin.Context) {
	trainings, err := h.trainingService.FindAllTrainings(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve trainings.")
		return
	}
	c.JSON(http.StatusOK, MapTrainingsToDto(trainings))
}

// GetTrainingsForUser returns the trainings owned by one user.
// GET /api/v1/trainings/user/:userId
func (h *TrainingHandler) GetTrainingsForUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format.")
		return
	}

	trainings, err := h.trainingService.FindTrainingsByUserID(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve trainings.")
		return
	}
	c.JSON(http.StatusOK, MapTrainingsToDto(trainings))
}

// GetTrainingsAfter returns trainings that ended after the given date.
// GET /api/v1/trainings/after/:date
func (h *TrainingHandler) GetTrainingsAfter(c *gin.Context) {
	trainings, err := h.trainingService.FindTrainingsAfterDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve trainings.")
		}
		return
	}
	c.JSON(http.StatusOK, MapTrainingsToDto(trainings))
}

// GetTrainingsByActivity returns trainings of one activity type.
// GET /api/v1/trainings/activity/:type
func (h *TrainingHandler) GetTrainingsByActivity(c *gin.Context) {
	trainings, err := h.trainingService.FindTrainingsByActivityType(c.Request.Context(), c.Param("type"))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve trainings.")
		return
	}
	c.JSON(http.StatusOK, MapTrainingsToDto(trainings))
}

// CreateTraining persists a new training for an existing user.
// POST /api/v1/trainings
func (h *TrainingHandler) CreateTraining(c *gin.Context) {
	var dto TrainingDto
	if err := c.ShouldBindJSON(&dto); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	input, err := mapDtoToInput(dto)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.trainingService.CreateTraining(c.Request.Context(), input)
	if err != nil {
		h.abortWithServiceError(c, err, "Failed to create training.")
		return
	}
	c.JSON(http.StatusCreated, MapTrainingToDto(created))
}

// UpdateTraining overwrites the mutable fields of an existing training.
// PUT /api/v1/trainings/:id
func (h *TrainingHandler) UpdateTraining(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid training ID format.")
		return
	}

	var dto TrainingDto
	if err := c.ShouldBindJSON(&dto); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	input, err := mapDtoToInput(dto)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.trainingService.UpdateTraining(c.Request.Context(), id, input)
	if err != nil {
		h.abortWithServiceError(c, err, "Failed to update training.")
		return
	}
	c.JSON(http.StatusOK, MapTrainingToDto(updated))
}

// abortWithServiceError translates training service errors to HTTP statuses.
func (h *TrainingHandler) abortWithServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrTrainingNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidActivityType):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
