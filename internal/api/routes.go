package api

import (
	"net/http"

	"fittrack/fitness-tracker/internal/metrics"
	"fittrack/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers all API routes and shared middleware on the router.
func SetupRoutes(
	router *gin.Engine,
	userService service.UserService,
	trainingService service.TrainingService,
	collector *metrics.Collector,
) {
	userHandler := NewUserHandler(userService)
	trainingHandler := NewTrainingHandler(trainingService)

	router.Use(RequestIDMiddleware())
	if collector != nil {
		router.Use(MetricsMiddleware(collector))
		router.GET("/metrics", gin.WrapH(collector.Handler()))
	}

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		userGroup := apiV1.Group("/users")
		{
			userGroup.GET("", userHandler.GetAllUsers)
			userGroup.POST("", userHandler.CreateUser)
			userGroup.GET("/short", userHandler.GetAllUsersShort)
			userGroup.GET("/search", userHandler.SearchUsers)
			userGroup.GET("/:id", userHandler.GetUserByID)
			userGroup.PUT("/:id", userHandler.UpdateUser)
			userGroup.DELETE("/:id", userHandler.DeleteUser)
		}

		trainingGroup := apiV1.Group("/trainings")
		{
			trainingGroup.GET("", trainingHandler.GetAllTrainings)
			trainingGroup.POST("", trainingHandler.CreateTraining)
			trainingGroup.PUT("/:id", trainingHandler.UpdateTraining)
			trainingGroup.GET("/user/:userId", trainingHandler.GetTrainingsForUser)
			trainingGroup.GET("/after/:date", trainingHandler.GetTrainingsAfter)
			trainingGroup.GET("/activity/:type", trainingHandler.GetTrainingsByActivity)
		}
	}
}
