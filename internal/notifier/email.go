// Package notifier sends booking confirmation mail. Callers treat sends as
// fire-and-forget: a failed mail must never fail the booking flow.
package notifier

import (
	"context"
	"fmt"
	"net/smtp"

	"bus-booking/internal/data/entity"
	"bus-booking/pkg/utils"

	"go.uber.org/zap"
)

type EmailSender struct {
	config  utils.EmailConfig
	baseURL string
	log     *zap.Logger
}

func NewEmailSender(config utils.EmailConfig, baseURL string, log *zap.Logger) *EmailSender {
	return &EmailSender{
		config:  config,
		baseURL: baseURL,
		log:     log.With(zap.String("notifier", "email")),
	}
}

// SendConfirmation mails the participant a booking confirmation with their
// cancellation link.
func (s *EmailSender) SendConfirmation(ctx context.Context, participant *entity.Participant, event *entity.Event) error {
	cancelLink := fmt.Sprintf("%s/cancel/%s", s.baseURL, participant.CancelToken.String())

	subject := fmt.Sprintf("Seat confirmed: %s", event.Name)
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\n"+
			"Your seat for %s is paid and confirmed.\r\n"+
			"Departure: %s\r\n"+
			"Amount: %d %s\r\n\r\n"+
			"Need to cancel? Use this link up to 48 hours before departure:\r\n%s\r\n",
		participant.Name,
		event.Name,
		event.Departure.Format("2006-01-02 15:04"),
		participant.PayAmount, "SEK",
		cancelLink,
	)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.config.From, participant.Email, subject, body)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	auth := smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)

	if err := smtp.SendMail(addr, auth, s.config.From, []string{participant.Email}, []byte(msg)); err != nil {
		return fmt.Errorf("send confirmation to %s: %w", participant.Email, err)
	}

	s.log.Info("Confirmation sent",
		zap.String("participant_id", participant.ID.String()),
		zap.String("event", event.Name),
	)
	return nil
}
