// Package notify pushes booking confirmations to the service team over
// Firebase Cloud Messaging. The whole package is optional: when no
// Firebase credentials are configured the assistant runs without it.
package notify

import (
	"context"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"github.com/MarcinSar/veteyealk/calendar"
)

// Service sends FCM topic messages.
type Service struct {
	App    *firebase.App
	Logger *logrus.Logger
}

// New initializes the Firebase app from a credentials file.
func New(ctx context.Context, credentialsFile string, logger *logrus.Logger) (*Service, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, err
	}
	return &Service{App: app, Logger: logger}, nil
}

// VisitBooked notifies subscribers of the given topic about a freshly
// booked service visit. Failures are logged, never surfaced to the
// user: the visit is already booked at this point.
func (s *Service) VisitBooked(ctx context.Context, topic, customerName string, when time.Time) {
	client, err := s.App.Messaging(ctx)
	if err != nil {
		s.Logger.WithFields(logrus.Fields{"error": err.Error()}).Error("getting messaging client failed")
		return
	}

	message := &messaging.Message{
		Topic: topic,
		Notification: &messaging.Notification{
			Title: "Nowa wizyta serwisowa",
			Body:  customerName + " - " + calendar.FormatSlot(when),
		},
		Data: map[string]string{
			"type":     "visit_booked",
			"customer": customerName,
			"time":     when.Format(time.RFC3339),
		},
	}

	response, err := client.Send(ctx, message)
	if err != nil {
		s.Logger.WithFields(logrus.Fields{"error": err.Error()}).Error("sending push failed")
		return
	}
	s.Logger.WithFields(logrus.Fields{"response": response}).Info("push sent")
}
