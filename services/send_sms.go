package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rpupo63/genai-portfolio-backend/models"
	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

const (
	maxSMSPreview = 140
	smsTimeout    = 10 * time.Second
)

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// SMSNotifier texts the site owner a short preview of each contact submission.
type SMSNotifier struct {
	api  messageCreator
	from string
	to   string
}

func NewSMSNotifier(accountSID, authToken, from, to string) *SMSNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	// twilio-go takes no context, so the HTTP client timeout is what bounds a send.
	client.SetTimeout(smsTimeout)
	return &SMSNotifier{api: client.Api, from: from, to: to}
}

func (n *SMSNotifier) NotifyContact(ctx context.Context, submission models.ContactSubmission) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("SMS notification not sent: %w", err)
	}

	preview := []rune(submission.Message)
	if len(preview) > maxSMSPreview {
		preview = append(preview[:maxSMSPreview], '…')
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(n.from)
	params.SetTo(n.to)
	params.SetBody(fmt.Sprintf("New contact from %s (%s): %s", submission.Name, submission.Email, string(preview)))

	msg, err := n.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send SMS via Twilio: %w", err)
	}
	if msg != nil && msg.Sid != nil {
		log.Info().Str("messageSid", *msg.Sid).Msg("Successfully sent SMS via Twilio")
	}
	return nil
}
