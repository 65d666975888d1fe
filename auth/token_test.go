package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/genai-portfolio-backend/errs"
	"github.com/rpupo63/genai-portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	user := models.User{Role: models.RoleEditor}
	user.ID = uuid.New()

	token, expires, err := issuer.Issue(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	got, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, models.RoleEditor, got.Role)
}

func TestParseRejectsBadTokens(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	user := models.User{Role: models.RoleAdmin}
	user.ID = uuid.New()
	token, _, err := issuer.Issue(user)
	require.NoError(t, err)

	_, err = NewIssuer("other-secret", time.Hour).Parse(token)
	assert.True(t, errs.IsUnauthorized(err))

	expired := NewIssuer("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = expired.Parse(token)
	assert.True(t, errs.IsUnauthorized(err))

	_, err = issuer.Parse("not-a-token")
	assert.True(t, errs.IsUnauthorized(err))
}

func TestBearerToken(t *testing.T) {
	token, err := BearerToken("")
	require.NoError(t, err)
	assert.Empty(t, token)

	token, err = BearerToken("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	token, err = BearerToken("bearer   xyz")
	require.NoError(t, err)
	assert.Equal(t, "xyz", token)

	_, err = BearerToken("Basic abc")
	assert.True(t, errs.IsUnauthorized(err))
	_, err = BearerToken("Bearer")
	assert.True(t, errs.IsUnauthorized(err))
}

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "wrong horse"))

	_, err = HashPassword("short")
	assert.True(t, errs.IsInvalidFieldError(err))
}
