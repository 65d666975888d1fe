package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rpupo63/genai-portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

func submission() models.ContactSubmission {
	subject := "Hiring"
	return models.ContactSubmission{
		Name:    "Ada <Lovelace>",
		Email:   "ada@example.com",
		Subject: &subject,
		Message: "Would you like to chat?",
	}
}

func TestEmailNotifierPostsToResend(t *testing.T) {
	var got ResendEmailRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"email_123"}`))
	}))
	defer srv.Close()

	n := NewEmailNotifier("re_key", "Site <site@example.com>", []string{"me@example.com"})
	n.endpoint = srv.URL

	require.NoError(t, n.NotifyContact(context.Background(), submission()))
	assert.Equal(t, "Bearer re_key", auth)
	assert.Equal(t, []string{"me@example.com"}, got.To)
	assert.Equal(t, "Contact: Hiring", got.Subject)
	assert.Equal(t, "ada@example.com", got.ReplyTo)
	assert.Contains(t, got.Html, "Ada &lt;Lovelace&gt;")
}

func TestEmailNotifierReportsAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from address"}`))
	}))
	defer srv.Close()

	n := NewEmailNotifier("re_key", "bad", []string{"me@example.com"})
	n.endpoint = srv.URL

	err := n.NotifyContact(context.Background(), submission())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid from address")

	err = NewEmailNotifier("k", "f", nil).SendEmail(context.Background(), ResendEmailRequest{})
	assert.Error(t, err)
}

type fakeMessages struct {
	params *twilioApi.CreateMessageParams
	err    error
}

func (f *fakeMessages) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.params = params
	sid := "SM123"
	return &twilioApi.ApiV2010Message{Sid: &sid}, f.err
}

func TestSMSNotifier(t *testing.T) {
	fake := &fakeMessages{}
	n := &SMSNotifier{api: fake, from: "+15550001111", to: "+15552223333"}

	s := submission()
	s.Message = strings.Repeat("x", 200)
	require.NoError(t, n.NotifyContact(context.Background(), s))

	require.NotNil(t, fake.params)
	assert.Equal(t, "+15552223333", *fake.params.To)
	assert.Equal(t, "+15550001111", *fake.params.From)
	assert.Contains(t, *fake.params.Body, "Ada <Lovelace>")
	assert.Contains(t, *fake.params.Body, "…")
	assert.NotContains(t, *fake.params.Body, strings.Repeat("x", 141))

	fake.err = errors.New("boom")
	assert.Error(t, n.NotifyContact(context.Background(), s))
}

func TestSMSNotifierHonoursCancelledContext(t *testing.T) {
	fake := &fakeMessages{}
	n := &SMSNotifier{api: fake, from: "+15550001111", to: "+15552223333"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := n.NotifyContact(ctx, submission())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, fake.params)
}

type countingNotifier struct {
	calls int
	err   error
}

func (c *countingNotifier) NotifyContact(context.Context, models.ContactSubmission) error {
	c.calls++
	return c.err
}

func TestNotifiersFanOut(t *testing.T) {
	failing := &countingNotifier{err: errors.New("down")}
	ok := &countingNotifier{}

	err := Notifiers{failing, ok}.NotifyContact(context.Background(), submission())
	assert.EqualError(t, err, "down")
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, ok.calls)

	assert.NoError(t, Notifiers(nil).NotifyContact(context.Background(), submission()))
}

func TestNotifiersFromConfig(t *testing.T) {
	assert.Empty(t, NotifiersFromConfig(map[string]string{}))

	ns := NotifiersFromConfig(map[string]string{
		"RESEND_API_KEY":       "k",
		"RESEND_FROM_EMAIL":    "site@example.com",
		"CONTACT_NOTIFY_EMAIL": "me@example.com",
		"TWILIO_ACCOUNT_SID":   "AC1",
		"TWILIO_AUTH_TOKEN":    "t",
		"TWILIO_FROM_NUMBER":   "+1",
		"CONTACT_NOTIFY_PHONE": "+2",
	})
	require.Len(t, ns, 2)
	assert.IsType(t, &EmailNotifier{}, ns[0])
	assert.IsType(t, &SMSNotifier{}, ns[1])
}
