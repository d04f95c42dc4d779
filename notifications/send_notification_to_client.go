package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"image_table_api/tools"
	"image_table_api/types"

	"cloud.google.com/go/logging"
	"firebase.google.com/go/messaging"
)

// Messenger sends push messages; satisfied by *messaging.Client.
type Messenger interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// Notifier tells a user's other open tables that their images changed.
type Notifier struct {
	logger    tools.Logger
	messenger Messenger
	tokens    TokenStore
}

func NewNotifier(logger tools.Logger, messenger Messenger, tokens TokenStore) *Notifier {
	return &Notifier{logger: logger, messenger: messenger, tokens: tokens}
}

func (n *Notifier) RegisterToken(ctx context.Context, uid, token string) error {
	return n.tokens.SetToken(ctx, uid, token)
}

// SendNotificationToClient pushes data to the client registered by uid.
// A user without a registered client is skipped.
func (n *Notifier) SendNotificationToClient(ctx context.Context, uid string, data types.NotificationMessage) error {
	tokenStr, err := n.tokens.Token(ctx, uid)
	if err != nil {
		n.logger.Log(logging.Entry{
			Severity: logging.Error,
			Payload:  "Error getting registration token",
			Labels:   map[string]string{"error": err.Error(), "uid": uid},
		})
		return err
	}

	if tokenStr == "" {
		n.logger.Log(logging.Entry{
			Severity: logging.Warning,
			Payload:  "No registration token, skipping notification",
			Labels:   map[string]string{"uid": uid, "event": data.Event},
		})
		return nil
	}

	dataJson, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error converting data to JSON: %w", err)
	}

	message := &messaging.Message{
		Data:  map[string]string{"data": string(dataJson)},
		Token: tokenStr,
	}

	if _, err = n.messenger.Send(ctx, message); err != nil {
		n.logger.Log(logging.Entry{
			Severity: logging.Error,
			Payload:  "Error sending message to client",
			Labels:   map[string]string{"error": err.Error(), "uid": uid},
		})
		return fmt.Errorf("error sending message to client: %w", err)
	}

	return nil
}
