package types

import (
	"context"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/logging"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go"
	"firebase.google.com/go/auth"
	"firebase.google.com/go/messaging"
)

type FirebaseApp struct {
	Context       context.Context
	Admin         *firebase.App
	DB            *firestore.Client
	Storage       *storage.Client
	Auth          *auth.Client
	LogClient     *logging.Client
	Logger        *logging.Logger
	MessageClient *messaging.Client
}
