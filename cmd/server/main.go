package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskforge/task-api/internal/api"
	"github.com/taskforge/task-api/internal/core/service"
	"github.com/taskforge/task-api/internal/infrastructure/config"
	mongodb "github.com/taskforge/task-api/internal/infrastructure/db/mongo"
	redisdb "github.com/taskforge/task-api/internal/infrastructure/db/redis"
	"github.com/taskforge/task-api/internal/infrastructure/queue"
	"github.com/taskforge/task-api/internal/infrastructure/token"
	"github.com/taskforge/task-api/pkg/logger"
)

// @title        TaskForge API
// @version      1.0
// @description  Task-tracking API with JWT authentication and role/ownership-based access control.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(rootCtx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(rootCtx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(rootCtx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	userRepo := mongodb.NewUserRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)
	if err := userRepo.EnsureIndexes(rootCtx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := taskRepo.EnsureIndexes(rootCtx); err != nil {
		log.Fatal().Err(err).Msg("task index creation failed")
	}

	// --- Core services ---
	tokens := token.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, log)
	hasher := service.NewPasswordHasher(cfg.Auth.BcryptCost)
	authService := service.NewAuthService(userRepo, tokens, hasher, log)

	recorder := queue.NewRecorder(0, activityRepo, log)
	recorder.Start(rootCtx)
	taskService := service.NewTaskService(taskRepo, activityRepo, recorder, log)

	throttle := redisdb.NewLoginThrottle(rdb, cfg.Auth.MaxAttempts, cfg.Auth.ThrottleWindow)

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		AuthService: authService,
		TaskService: taskService,
		Throttle:    throttle,
		Mongo:       db,
		Redis:       rdb,
		Logger:      log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-rootCtx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
