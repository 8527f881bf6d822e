package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fittrack/fitness-tracker/internal/api"
	"fittrack/fitness-tracker/internal/config"
	"fittrack/fitness-tracker/internal/metrics"
	"fittrack/fitness-tracker/internal/repository"
	"fittrack/fitness-tracker/internal/repository/memory"
	mongorepo "fittrack/fitness-tracker/internal/repository/mongo"
	"fittrack/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Fitness Tracker Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Repositories ---
	var userRepo repository.UserRepository
	var trainingRepo repository.TrainingRepository

	if cfg.Database.InMemory {
		log.Println("Using in-memory repositories (database.in_memory=true).")
		userRepo = memory.NewMemoryUserRepository()
		trainingRepo = memory.NewMemoryTrainingRepository()
	} else {
		dbClient, err := mongorepo.ConnectDB(cfg.Database.URI)
		if err != nil {
			log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
		}
		defer func() {
			log.Println("Disconnecting MongoDB...")
			if err := mongorepo.DisconnectDB(dbClient); err != nil {
				log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
			}
		}()
		appDB := dbClient.Database(cfg.Database.Name)
		log.Println("Database connection established.")

		log.Println("Ensuring database indexes...")
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
			defer cancel()
			mongorepo.EnsureUserIndexes(ctx, appDB.Collection("users"))
			mongorepo.EnsureTrainingIndexes(ctx, appDB.Collection("trainings"))
			log.Println("Index creation process completed.")
		}()

		userRepo = mongorepo.NewMongoUserRepository(appDB)
		trainingRepo = mongorepo.NewMongoTrainingRepository(appDB)
	}

	// --- Services ---
	log.Println("Initializing services...")
	userService := service.NewUserService(userRepo)
	trainingService := service.NewTrainingService(trainingRepo, userService)

	// --- Metrics ---
	collector := metrics.NewCollector()

	// --- Gin Engine & Routes ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, userService, trainingService, collector)

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
