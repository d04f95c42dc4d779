package firebase

import (
	"context"
	"fmt"

	"image_table_api/config"
	"image_table_api/types"

	"cloud.google.com/go/logging"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go"
)

func InitFirebaseApp(ctx context.Context, cfg *config.Config) (*types.FirebaseApp, error) {
	// Initialize logging client
	loggingClient, err := logging.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("error initializing logging client: %w", err)
	}
	logger := loggingClient.Logger(cfg.LogName)

	logger.Log(logging.Entry{
		Severity: logging.Info,
		Payload:  "Logging client initialized successfully",
		Labels:   map[string]string{"status": "success"},
	})

	logFailure := func(what string, err error) error {
		logger.Log(logging.Entry{
			Severity: logging.Error,
			Payload:  "Error initializing " + what,
			Labels:   map[string]string{"error": err.Error()},
		})
		loggingClient.Close()
		return fmt.Errorf("error initializing %s: %w", what, err)
	}

	logSuccess := func(what string) {
		logger.Log(logging.Entry{
			Severity: logging.Info,
			Payload:  what + " initialized successfully",
			Labels:   map[string]string{"status": "success"},
		})
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     cfg.ProjectID,
		StorageBucket: cfg.StorageBucket,
	})
	if err != nil {
		return nil, logFailure("Firebase app", err)
	}
	logSuccess("Firebase app")

	db, err := app.Firestore(ctx)
	if err != nil {
		return nil, logFailure("Firestore client", err)
	}
	logSuccess("Firestore client")

	gcs, err := storage.NewClient(ctx)
	if err != nil {
		return nil, logFailure("Google Cloud Storage client", err)
	}
	logSuccess("Storage client")

	auth, err := app.Auth(ctx)
	if err != nil {
		return nil, logFailure("Auth client", err)
	}
	logSuccess("Auth client")

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, logFailure("Messaging client", err)
	}
	logSuccess("Messaging client")

	return &types.FirebaseApp{
		Context:       ctx,
		Admin:         app,
		DB:            db,
		Storage:       gcs,
		Auth:          auth,
		LogClient:     loggingClient,
		Logger:        logger,
		MessageClient: messagingClient,
	}, nil
}

// Close flushes the logger and releases the clients.
func Close(app *types.FirebaseApp) {
	app.DB.Close()
	app.Storage.Close()
	app.LogClient.Close()
}
