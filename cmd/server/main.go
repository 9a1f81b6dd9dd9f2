package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"google.golang.org/genai"

	"github.com/cero-ai/cero-backend/internal/assistant"
	"github.com/cero-ai/cero-backend/internal/calendar"
	"github.com/cero-ai/cero-backend/internal/config"
	"github.com/cero-ai/cero-backend/internal/functions"
	"github.com/cero-ai/cero-backend/internal/gemini"
	"github.com/cero-ai/cero-backend/internal/googleauth"
	"github.com/cero-ai/cero-backend/internal/httpapi"
	"github.com/cero-ai/cero-backend/internal/tasks"
	"github.com/cero-ai/cero-backend/internal/tokenstore"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		logger.Error("genai client init failed", "error", err)
		os.Exit(1)
	}

	store, closeStore, err := newTokenStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("token store init failed", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	auth := googleauth.NewConfig(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	calendarSvc := calendar.NewGoogleService(auth, cfg.Timezone)
	tasksSvc := tasks.NewGoogleService(auth)

	actions := []*assistant.Action{
		functions.CreateCalendarEventAction(calendarSvc),
		functions.ListCalendarEventsAction(calendarSvc),
		functions.ListTasksAction(tasksSvc),
		functions.CompleteTaskAction(tasksSvc),
	}

	modelClient := gemini.NewClient(genaiClient, cfg.Model, cfg.Timezone, actions)
	a := assistant.New(modelClient, store, logger, assistant.Options{
		Timeout:       cfg.ModelTimeout,
		MaxConcurrent: cfg.ModelMaxConcurrent,
	})
	for _, action := range actions {
		if err := a.AddAction(action); err != nil {
			logger.Error("registering action failed", "action", action.Name, "error", err)
			os.Exit(1)
		}
	}

	api := httpapi.New(httpapi.Deps{
		Logger:      logger,
		Assistant:   a,
		Tokens:      store,
		Calendar:    calendarSvc,
		Tasks:       tasksSvc,
		Auth:        auth,
		FrontendURL: cfg.FrontendURL,
		Timezone:    cfg.Timezone,
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.Handler(),
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "model", cfg.Model)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received, closing server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}

// newTokenStore picks the credential backend: MongoDB when configured,
// Redis next, in-memory demo store otherwise.
func newTokenStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (tokenstore.Store, func(), error) {
	switch {
	case cfg.MongoURI != "":
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using mongodb token store", "db", cfg.MongoDB)
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Warn("mongodb disconnect failed", "error", err)
			}
		}
		return tokenstore.NewMongoStore(client.Database(cfg.MongoDB), "tokens"), closeFn, nil

	case cfg.RedisAddr != "":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, err
		}
		logger.Info("using redis token store", "addr", cfg.RedisAddr)
		closeFn := func() {
			if err := client.Close(); err != nil {
				logger.Warn("redis close failed", "error", err)
			}
		}
		return tokenstore.NewRedisStore(client), closeFn, nil

	default:
		logger.Info("using in-memory token store")
		return tokenstore.NewMemoryStore(), func() {}, nil
	}
}
