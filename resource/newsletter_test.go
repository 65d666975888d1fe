package resource

import (
	"context"
	"testing"

	"github.com/rpupo63/genai-portfolio-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeLifecycle(t *testing.T) {
	n := newEngines(t).Newsletter
	ctx := context.Background()

	sub, created, err := n.Subscribe(ctx, "  Reader@Example.com ", nil)
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, sub.IsActive)
	assert.Equal(t, "reader@example.com", sub.Email)

	again, created, err := n.Subscribe(ctx, "reader@example.com", nil)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, sub.ID, again.ID)
	assert.True(t, sub.UpdatedAt.Equal(again.UpdatedAt), "active subscribe is a no-op")

	require.NoError(t, n.Unsubscribe(ctx, "reader@example.com"))
	require.NoError(t, n.Unsubscribe(ctx, "reader@example.com"), "unsubscribing twice is fine")

	active, err := n.Subscribers(ctx, true, ListParams{})
	require.NoError(t, err)
	assert.Empty(t, active.Items)

	all, err := n.Subscribers(ctx, false, ListParams{})
	require.NoError(t, err)
	require.Len(t, all.Items, 1)
	assert.False(t, all.Items[0].IsActive)

	back, created, err := n.Subscribe(ctx, "reader@example.com", nil)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, sub.ID, back.ID)
	assert.True(t, back.IsActive)

	all, err = n.Subscribers(ctx, false, ListParams{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 1, "reactivation does not insert a duplicate")
}

func TestUnsubscribeUnknownEmail(t *testing.T) {
	n := newEngines(t).Newsletter

	err := n.Unsubscribe(context.Background(), "nobody@example.com")
	assert.True(t, errs.IsNotFound(err))
}

func TestNormalizeEmail(t *testing.T) {
	email, err := NormalizeEmail(" A@B.io ")
	require.NoError(t, err)
	assert.Equal(t, "a@b.io", email)

	_, err = NormalizeEmail("")
	assert.True(t, errs.IsMissingRequiredFieldError(err))
	_, err = NormalizeEmail("not an email")
	assert.True(t, errs.IsInvalidFieldError(err))
	_, err = NormalizeEmail("Name <a@b.io>")
	assert.True(t, errs.IsInvalidFieldError(err))
}
