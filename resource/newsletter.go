package resource

import (
	"context"
	"net/mail"
	"strings"

	"github.com/rpupo63/genai-portfolio-backend/database"
	"github.com/rpupo63/genai-portfolio-backend/errs"
	"github.com/rpupo63/genai-portfolio-backend/models"
	"gorm.io/datatypes"
)

// Newsletter tracks the mailing list. A subscriber is either active or
// unsubscribed; unsubscribing keeps the record so a later subscribe
// reactivates it instead of inserting a duplicate.
type Newsletter struct {
	*subscriberEngine
}

// NormalizeEmail trims and lower-cases email and checks that it is a bare address.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", errs.NewMissingRequiredFieldError("email")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", errs.NewInvalidFieldError("email", "not a valid email address")
	}
	return email, nil
}

// Subscribe activates email. created reports whether a new record was inserted.
func (n *Newsletter) Subscribe(ctx context.Context, email string, tags []string) (sub *models.NewsletterSubscriber, created bool, err error) {
	if email, err = NormalizeEmail(email); err != nil {
		return nil, false, err
	}

	existing, err := n.FindOne(ctx, database.Filter{database.Eq("email", email)})
	switch {
	case errs.IsNotFound(err):
		sub, err = n.Create(ctx, &models.NewsletterSubscriber{
			Email:    email,
			IsActive: true,
			Tags:     datatypes.JSONSlice[string](tags),
		})
		if errs.IsConflict(err) {
			// Lost a race with a concurrent subscribe for the same address.
			existing, err = n.FindOne(ctx, database.Filter{database.Eq("email", email)})
			return existing, false, err
		}
		return sub, err == nil, err
	case err != nil:
		return nil, false, err
	case existing.IsActive:
		return existing, false, nil
	}

	sub, err = n.Update(ctx, existing.ID, database.Patch{"is_active": true})
	return sub, false, err
}

// Unsubscribe deactivates email. It fails with NotFound only when the
// address was never subscribed.
func (n *Newsletter) Unsubscribe(ctx context.Context, email string) error {
	email, err := NormalizeEmail(email)
	if err != nil {
		return err
	}

	existing, err := n.FindOne(ctx, database.Filter{database.Eq("email", email)})
	if errs.IsNotFound(err) {
		return errs.NewNotFoundError("Email not found in our subscriber list")
	}
	if err != nil {
		return err
	}
	if !existing.IsActive {
		return nil
	}
	_, err = n.Update(ctx, existing.ID, database.Patch{"is_active": false})
	return err
}

// Subscribers lists the mailing list, optionally only its active members.
func (n *Newsletter) Subscribers(ctx context.Context, activeOnly bool, params ListParams) (Page[models.NewsletterSubscriber], error) {
	if activeOnly {
		params.Filter = params.Filter.And(database.Eq("is_active", true))
	}
	return n.List(ctx, params)
}
