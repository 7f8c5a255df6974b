package services

import (
	"context"
	"log"
	"unicode/utf8"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"github.com/Anjali11s/prolance/db"
	"github.com/Anjali11s/prolance/models"
	"google.golang.org/api/option"
)

// PushService sends device notifications through Firebase Cloud Messaging to
// recipients with no live connection. All sends are best-effort.
type PushService struct {
	client   *messaging.Client
	authRepo db.AuthRepository
}

func NewPushService(credentialsFile string, authRepo db.AuthRepository) (*PushService, error) {
	opt := option.WithCredentialsFile(credentialsFile)
	app, err := firebase.NewApp(context.Background(), nil, opt)
	if err != nil {
		return nil, err
	}

	client, err := app.Messaging(context.Background())
	if err != nil {
		return nil, err
	}

	return &PushService{
		client:   client,
		authRepo: authRepo,
	}, nil
}

const pushBodyLimit = 120

// PushNewMessage notifies an offline recipient about a new chat message.
func (s *PushService) PushNewMessage(userID uint, msg *models.Message) {
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		log.Printf("push skipped, could not load user %d: %v", userID, err)
		return
	}
	if user.DeviceToken == "" {
		return
	}

	body := msg.Content
	if utf8.RuneCountInString(body) > pushBodyLimit {
		body = string([]rune(body)[:pushBodyLimit]) + "…"
	}

	message := &messaging.Message{
		Token: user.DeviceToken,
		Notification: &messaging.Notification{
			Title: "New message",
			Body:  body,
		},
	}

	if _, err := s.client.Send(context.Background(), message); err != nil {
		log.Printf("error sending push to user %d: %v", userID, err)
		return
	}
}
