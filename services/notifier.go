// Package services talks to the outside world on behalf of the API.
package services

import (
	"context"
	"errors"

	"github.com/rpupo63/genai-portfolio-backend/config"
	"github.com/rpupo63/genai-portfolio-backend/models"
	"github.com/rs/zerolog/log"
)

// Notifier tells the site owner about a new contact submission.
type Notifier interface {
	NotifyContact(ctx context.Context, submission models.ContactSubmission) error
}

// Notifiers fans a notification out to every channel and joins their errors.
type Notifiers []Notifier

func (ns Notifiers) NotifyContact(ctx context.Context, submission models.ContactSubmission) error {
	var errs []error
	for _, n := range ns {
		if err := n.NotifyContact(ctx, submission); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NotifiersFromConfig enables each channel whose credentials are present.
func NotifiersFromConfig(cfg map[string]string) Notifiers {
	var ns Notifiers

	apiKey := config.GetString(cfg, "RESEND_API_KEY", "")
	from := config.GetString(cfg, "RESEND_FROM_EMAIL", "")
	recipients := config.GetStrings(cfg, "CONTACT_NOTIFY_EMAIL")
	if apiKey != "" && from != "" && len(recipients) > 0 {
		ns = append(ns, NewEmailNotifier(apiKey, from, recipients))
	}

	sid := config.GetString(cfg, "TWILIO_ACCOUNT_SID", "")
	token := config.GetString(cfg, "TWILIO_AUTH_TOKEN", "")
	fromNumber := config.GetString(cfg, "TWILIO_FROM_NUMBER", "")
	toNumber := config.GetString(cfg, "CONTACT_NOTIFY_PHONE", "")
	if sid != "" && token != "" && fromNumber != "" && toNumber != "" {
		ns = append(ns, NewSMSNotifier(sid, token, fromNumber, toNumber))
	}

	log.Info().Int("channels", len(ns)).Msg("contact notifications configured")
	return ns
}
