package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"image_table_api/config"
	"image_table_api/firebase"
	"image_table_api/gallery"
	"image_table_api/handlers"
	"image_table_api/middlewares"
	"image_table_api/notifications"
	"image_table_api/tools"

	"cloud.google.com/go/logging"
	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("%v\n", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	firebaseApp, err := firebase.InitFirebaseApp(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize Firebase: %w", err)
	}
	defer firebase.Close(firebaseApp)

	logger := firebaseApp.Logger
	bucket := tools.NewStorageBucket(firebaseApp.Storage, cfg.StorageBucket)

	r := gin.Default()

	// Disable TrustedProxies feature
	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))

	handlers.RegisterRoutes(r, handlers.Dependencies{
		Logger:         logger,
		Verifier:       firebaseApp.Auth,
		Bucket:         bucket,
		Tables:         gallery.NewRegistry(logger, bucket, cfg.TableTTL),
		Notifier:       notifications.NewNotifier(logger, firebaseApp.MessageClient, notifications.NewFirestoreTokenStore(firebaseApp.DB)),
		MaxUploadBytes: cfg.MaxUploadBytes,
	})

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.Port,
		Handler: r,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	logger.Log(logging.Entry{
		Severity: logging.Info,
		Payload:  "Server listening on port " + cfg.Port,
	})

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		logger.Log(logging.Entry{
			Severity: logging.Critical,
			Payload:  "Server failed: " + err.Error(),
		})
		return fmt.Errorf("failed to start server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
