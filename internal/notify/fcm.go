// Package notify delivers booking updates to the patient's registered
// devices over Firebase Cloud Messaging. Delivery is best effort; a send
// failure never fails the transition that triggered it.
package notify

import (
	"context"
	"fmt"
	"time"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/carepulse/carepulse-api/internal/domain/appointment"
)

// Messenger is the subset of the FCM client used by Notifier.
type Messenger interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// Notifier formats and sends appointment notifications. A nil Messenger
// disables sending; every method then returns without error.
type Notifier struct {
	client Messenger
	log    *zap.Logger

	// OnFailure is invoked once per token that could not be delivered to.
	OnFailure func()
}

func NewNotifier(client Messenger, log *zap.Logger) *Notifier {
	return &Notifier{client: client, log: log}
}

// NewMessenger builds the FCM client from a service account file.
func NewMessenger(ctx context.Context, credentialsFile string) (Messenger, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating messaging client: %w", err)
	}
	return client, nil
}

func (n *Notifier) Enabled() bool {
	return n != nil && n.client != nil
}

// AppointmentScheduled tells the patient their requested slot is confirmed.
func (n *Notifier) AppointmentScheduled(ctx context.Context, a *appointment.Appointment, tokens []string) {
	body := fmt.Sprintf(
		"Greetings from CarePulse. Your appointment is confirmed for %s with Dr. %s.",
		a.Schedule.Format(slotFormat), a.PrimaryPhysician,
	)
	n.send(ctx, a, tokens, "Appointment confirmed", body)
}

// AppointmentCancelled tells the patient their request was declined.
func (n *Notifier) AppointmentCancelled(ctx context.Context, a *appointment.Appointment, tokens []string) {
	body := fmt.Sprintf(
		"We regret to inform that your appointment for %s is cancelled. Reason: %s.",
		a.Schedule.Format(slotFormat), a.CancellationReason,
	)
	n.send(ctx, a, tokens, "Appointment cancelled", body)
}

const slotFormat = "Jan 2, 2006 3:04 PM"

func (n *Notifier) send(ctx context.Context, a *appointment.Appointment, tokens []string, title, body string) {
	if !n.Enabled() || len(tokens) == 0 {
		return
	}

	for _, token := range tokens {
		msg := &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: map[string]string{
				"appointment_id": a.ID.String(),
				"status":         string(a.Status),
			},
		}

		sendCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		_, err := n.client.Send(sendCtx, msg)
		cancel()
		if err != nil {
			n.log.Warn("push notification failed",
				zap.String("appointment_id", a.ID.String()),
				zap.Error(err),
			)
			if n.OnFailure != nil {
				n.OnFailure()
			}
		}
	}
}
