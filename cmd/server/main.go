package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/K4elthaz/readify/internal/config"
	"github.com/K4elthaz/readify/internal/handlers"
	"github.com/K4elthaz/readify/internal/media"
	"github.com/K4elthaz/readify/internal/models"
	"github.com/K4elthaz/readify/internal/notify"
	"github.com/K4elthaz/readify/internal/routers"
	"github.com/K4elthaz/readify/internal/session"
	"github.com/K4elthaz/readify/internal/store"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	if err := db.AutoMigrate(&models.ChatMessage{}, &models.Notification{}); err != nil {
		logger.Fatal("failed to migrate schema", zap.Error(err))
	}

	mongoClient, err := store.NewMongoClient(context.Background(), cfg.MongoURI)
	if err != nil {
		logger.Fatal("failed to connect to mongo", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(ctx)
	}()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	chapters := store.NewChapterStore(mongoClient, cfg.DocsDBName, cfg.ChaptersCollection)
	messages := &store.MessageStore{DB: db}
	notifications := &store.NotificationStore{DB: db}

	notifier := notify.NewNotifier(notifications, rdb, logger)

	// Single outbound HTTP client for the whole process, shared by everything
	// that calls the media service.
	httpClient := &http.Client{Timeout: 30 * time.Second}
	uploader := media.NewHTTPUploader(httpClient, cfg.MediaUploadURL)

	registry := session.NewRegistry()
	broadcaster := session.NewBroadcaster(registry, logger)

	wsHandler := handlers.NewWSHandler(logger, cfg.JWTSecret, cfg.SendBufferSize, cfg.IdleTimeout,
		registry, broadcaster, chapters, messages, notifier, uploader)
	messageHandler := &handlers.MessageHandler{Store: messages, JWTSecret: cfg.JWTSecret, Log: logger}
	notificationHandler := &handlers.NotificationHandler{Store: notifications, JWTSecret: cfg.JWTSecret, Log: logger}

	router := routers.New(wsHandler, messageHandler, notificationHandler)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("realtime service starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("realtime service shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
