package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"monggle/fitlog/internal/api"
	"monggle/fitlog/internal/config"
	"monggle/fitlog/internal/logging"
	"monggle/fitlog/internal/mail"
	mongorepo "monggle/fitlog/internal/repository/mongo"
	"monggle/fitlog/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logrus.Fatalf("FATAL: Could not load config: %v", err)
	}

	logging.Setup(logging.SetupParams{
		LogFileName: cfg.Log.FileName,
		LogToStdout: cfg.Log.ToStdout,
		LogLevel:    cfg.Log.Level,
	})
	logrus.Info("Starting fitlog server...")

	// --- Database Connection ---
	dbClient, err := mongorepo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logrus.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		logrus.Info("Disconnecting MongoDB...")
		if err := mongorepo.DisconnectDB(dbClient); err != nil {
			logrus.Errorf("Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logrus.Info("Database connection established.")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		ensurers := []struct {
			collection string
			ensure     func(context.Context, *mongo.Collection) error
		}{
			{"users", mongorepo.EnsureUserIndexes},
			{"workout_logs", mongorepo.EnsureWorkoutLogIndexes},
			{"daily_statuses", mongorepo.EnsureDailyStatusIndexes},
			{"weight_entries", mongorepo.EnsureWeightIndexes},
			{"diaries", mongorepo.EnsureDiaryIndexes},
			{"diet_memos", mongorepo.EnsureDietMemoIndexes},
			{"exercises", mongorepo.EnsureExerciseIndexes},
		}
		for _, e := range ensurers {
			if err := e.ensure(ctx, appDB.Collection(e.collection)); err != nil {
				logrus.Warnf("Failed to create indexes for %s: %v", e.collection, err)
			}
		}
		logrus.Info("Index creation process completed.")
	}()

	// --- Initialize Repositories ---
	userRepo := mongorepo.NewMongoUserRepository(appDB)
	logRepo := mongorepo.NewMongoWorkoutLogRepository(appDB)
	dailyRepo := mongorepo.NewMongoDailyStatusRepository(appDB)
	weightRepo := mongorepo.NewMongoWeightRepository(appDB)
	diaryRepo := mongorepo.NewMongoDiaryRepository(appDB)
	memoRepo := mongorepo.NewMongoDietMemoRepository(appDB)
	exerciseRepo := mongorepo.NewMongoExerciseRepository(appDB)

	// --- Initialize Services ---
	mailer := mail.NewSMTPMailer(mail.Config{
		Host:         cfg.Mail.Host,
		Port:         cfg.Mail.Port,
		Username:     cfg.Mail.Username,
		Password:     cfg.Mail.Password,
		From:         cfg.Mail.From,
		ResetURLBase: cfg.Mail.ResetURLBase,
		Enabled:      cfg.Mail.Enabled,
	})
	authService := service.NewAuthService(userRepo, mailer, cfg.JWT.Secret, cfg.JWT.Expiration)
	logService := service.NewWorkoutLogService(logRepo)
	trackerService := service.NewTrackerService(dailyRepo, weightRepo, diaryRepo, memoRepo)
	profileService := service.NewProfileService(userRepo)
	catalogService := service.NewCatalogService(exerciseRepo)

	// --- Seed Catalog ---
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := catalogService.SeedDefault(seedCtx); err != nil {
		logrus.Errorf("Failed to seed exercise catalog: %v", err)
	}
	seedCancel()

	// --- Initialize Gin Engine ---
	router := gin.New()
	router.Use(api.RequestLogger(), gin.Recovery())

	api.SetupRoutes(router, cfg.JWT.Secret, authService, logService, trackerService, profileService, catalogService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logrus.Infof("Server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("FATAL: ListenAndServe error: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logrus.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exiting.")
}
