package push

import (
	"context"
	"fmt"
	"time"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"google.golang.org/api/option"
)

// Publisher delivers push messages to every device subscribed to a study.
type Publisher interface {
	PublishToStudy(studyID uint, title, body string, data map[string]string) error
}

// StudyTopic is the FCM topic devices subscribe to for a study.
func StudyTopic(studyID uint) string {
	return fmt.Sprintf("study-%d", studyID)
}

type FCM struct {
	client *messaging.Client
}

func NewFCM(ctx context.Context, credentialsFile string) (*FCM, error) {
	opt := option.WithCredentialsFile(credentialsFile)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Messaging client: %w", err)
	}
	return &FCM{client: client}, nil
}

func (f *FCM) PublishToStudy(studyID uint, title, body string, data map[string]string) error {
	message := &messaging.Message{
		Topic: StudyTopic(studyID),
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := f.client.Send(ctx, message); err != nil {
		return fmt.Errorf("fcm send to %s: %w", message.Topic, err)
	}
	return nil
}
