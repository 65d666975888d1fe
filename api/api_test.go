package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/genai-portfolio-backend/auth"
	"github.com/rpupo63/genai-portfolio-backend/database"
	"github.com/rpupo63/genai-portfolio-backend/database/dbtest"
	"github.com/rpupo63/genai-portfolio-backend/models"
	"github.com/rpupo63/genai-portfolio-backend/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "correct horse battery"

type testAPI struct {
	t       *testing.T
	router  http.Handler
	issuer  *auth.Issuer
	engines resource.Engines
}

func newTestAPI(t *testing.T, opts ...func(*router)) *testAPI {
	t.Helper()
	db := dbtest.New(t)
	issuer := auth.NewIssuer("test-secret", time.Hour)
	opts = append([]func(*router){withIssuer(issuer)}, opts...)

	return &testAPI{
		t:       t,
		router:  newRouter(db, opts...),
		issuer:  issuer,
		engines: resource.NewEngines(db),
	}
}

// login creates a user with role and returns it together with a bearer token.
func (a *testAPI) login(username string, role models.Role) (*models.User, string) {
	a.t.Helper()
	hash, err := auth.HashPassword(testPassword)
	require.NoError(a.t, err)

	user, err := a.engines.Users.Create(context.Background(), &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	})
	require.NoError(a.t, err)

	token, _, err := a.issuer.Issue(*user)
	require.NoError(a.t, err)
	return user, token
}

func (a *testAPI) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestCategoryRoleGate(t *testing.T) {
	a := newTestAPI(t)
	_, authorToken := a.login("writer", models.RoleAuthor)
	body := map[string]any{"name": "AI", "type": "blog"}

	rec := a.do(http.MethodPost, "/api/categories", body, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", decode[ErrorResponse](t, rec).Code)

	rec = a.do(http.MethodPost, "/api/categories", body, authorToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	resp := decode[ErrorResponse](t, rec)
	assert.Equal(t, "forbidden", resp.Code)
	assert.Equal(t, "error", resp.Status)
}

func TestCategoryConflictIsBadRequest(t *testing.T) {
	a := newTestAPI(t)
	_, token := a.login("editor", models.RoleEditor)
	body := map[string]any{"name": "AI", "type": "blog"}

	rec := a.do(http.MethodPost, "/api/categories", body, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[models.Category](t, rec)
	assert.Equal(t, "AI", created.Name)

	rec = a.do(http.MethodPost, "/api/categories", body, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[ErrorResponse](t, rec)
	assert.Equal(t, "conflict", resp.Code)
	assert.Contains(t, resp.Error, "name 'AI' and type 'blog'")

	rec = a.do(http.MethodPost, "/api/categories", map[string]any{"name": "AI", "type": "prompt"}, token)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = a.do(http.MethodPost, "/api/categories", map[string]any{"name": "AI", "type": "video"}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "type", decode[ErrorResponse](t, rec).Field)
}

func TestListSetsTotalCount(t *testing.T) {
	a := newTestAPI(t)
	_, token := a.login("editor", models.RoleEditor)
	for _, name := range []string{"go", "rust", "zig"} {
		rec := a.do(http.MethodPost, "/api/tags", map[string]any{"name": name, "type": "blog"}, token)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := a.do(http.MethodGet, "/api/tags?limit=2&sort_by=name&sort_order=asc", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3", rec.Header().Get(totalCountHeader))
	tags := decode[[]models.Tag](t, rec)
	require.Len(t, tags, 2)
	assert.Equal(t, "go", tags[0].Name)
	assert.Equal(t, "rust", tags[1].Name)

	for _, query := range []string{"limit=0", "limit=501", "skip=-1", "sort_by=name&sort_order=up"} {
		rec = a.do(http.MethodGet, "/api/tags?"+query, nil, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}

func TestDeleteThenGet(t *testing.T) {
	a := newTestAPI(t)
	_, token := a.login("editor", models.RoleEditor)

	rec := a.do(http.MethodPost, "/api/tags", map[string]any{"name": "go", "type": "blog"}, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	tag := decode[models.Tag](t, rec)
	path := "/api/tags/" + tag.ID.String()

	rec = a.do(http.MethodDelete, path, nil, token)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = a.do(http.MethodGet, path, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decode[ErrorResponse](t, rec).Code)

	rec = a.do(http.MethodDelete, path, nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMalformedIDIsNotFound(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(http.MethodGet, "/api/categories/not-a-uuid", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvalidTokenIsRejected(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(http.MethodGet, "/api/blog", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEmptyUpdateIsBadRequest(t *testing.T) {
	a := newTestAPI(t)
	_, token := a.login("editor", models.RoleEditor)

	rec := a.do(http.MethodPost, "/api/categories", map[string]any{"name": "AI", "type": "blog"}, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	category := decode[models.Category](t, rec)

	rec = a.do(http.MethodPut, "/api/categories/"+category.ID.String(), map[string]any{}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodPut, "/api/categories/"+category.ID.String(), map[string]any{"description": "Models"}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[models.Category](t, rec)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "Models", *updated.Description)
	assert.Equal(t, "AI", updated.Name)
}

func TestBlogPostOwnership(t *testing.T) {
	a := newTestAPI(t)
	author, authorToken := a.login("alice", models.RoleAuthor)
	_, otherToken := a.login("bob", models.RoleAuthor)
	_, editorToken := a.login("eve", models.RoleEditor)

	rec := a.do(http.MethodPost, "/api/blog", map[string]any{
		"title": "Hello, World Post",
		"body":  "<p>one two three</p><script>alert(1)</script>",
		"tags":  []string{"go"},
	}, authorToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	post := decode[models.BlogPost](t, rec)
	assert.Equal(t, "hello-world-post", post.Slug)
	assert.Equal(t, author.ID, post.AuthorID)
	assert.Equal(t, models.StatusDraft, post.Status)
	assert.NotContains(t, post.Body, "script")
	assert.Equal(t, 1, post.ReadTimeMinutes)
	assert.Nil(t, post.PublishedAt)

	path := "/api/blog/" + post.ID.String()

	rec = a.do(http.MethodPut, path, map[string]any{"title": "Hijacked"}, otherToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = a.do(http.MethodPut, path, map[string]any{"status": "published"}, editorToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	published := decode[models.BlogPost](t, rec)
	assert.Equal(t, models.StatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)

	rec = a.do(http.MethodPut, path, map[string]any{"status": "bogus"}, authorToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodGet, "/api/blog/slug/hello-world-post", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, post.ID, decode[models.BlogPost](t, rec).ID)

	rec = a.do(http.MethodGet, "/api/blog/slug/Not%20A%20Slug", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.do(http.MethodGet, "/api/blog?tag=go&status=published", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get(totalCountHeader))

	rec = a.do(http.MethodGet, "/api/blog?author_id=nope", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodDelete, path, nil, otherToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = a.do(http.MethodDelete, path, nil, authorToken)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestPromptCounters(t *testing.T) {
	a := newTestAPI(t)
	_, token := a.login("editor", models.RoleEditor)

	rec := a.do(http.MethodPost, "/api/prompts", map[string]any{
		"title":       "Summarize",
		"description": "Summarize a paper",
		"prompt_text": "Summarize the following paper.",
		"category":    "research",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	prompt := decode[models.Prompt](t, rec)
	assert.Zero(t, prompt.Views)
	assert.NotNil(t, prompt.Tags)

	path := "/api/prompts/" + prompt.ID.String()
	a.do(http.MethodGet, path, nil, "")
	rec = a.do(http.MethodGet, path, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decode[models.Prompt](t, rec).Views)

	rec = a.do(http.MethodPost, path+"/like", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	liked := decode[models.Prompt](t, rec)
	assert.Equal(t, 1, liked.Likes)
	assert.Equal(t, 2, liked.Views)

	rec = a.do(http.MethodPost, "/api/prompts/00000000-0000-0000-0000-000000000000/like", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubscribeLifecycle(t *testing.T) {
	a := newTestAPI(t)
	_, staffToken := a.login("editor", models.RoleEditor)

	rec := a.do(http.MethodPost, "/api/newsletter/subscribe", map[string]any{"email": " Reader@Example.com "}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "reader@example.com", decode[models.NewsletterSubscriber](t, rec).Email)

	rec = a.do(http.MethodPost, "/api/newsletter/subscribe", map[string]any{"email": "reader@example.com"}, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(http.MethodPost, "/api/newsletter/unsubscribe", map[string]any{"email": "reader@example.com"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Successfully unsubscribed", decode[MessageResponse](t, rec).Message)

	rec = a.do(http.MethodGet, "/api/newsletter/subscribers", nil, staffToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", rec.Header().Get(totalCountHeader))

	rec = a.do(http.MethodGet, "/api/newsletter/subscribers?active_only=false", nil, staffToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get(totalCountHeader))

	rec = a.do(http.MethodPost, "/api/newsletter/subscribe", map[string]any{"email": "reader@example.com"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[models.NewsletterSubscriber](t, rec).IsActive)

	rec = a.do(http.MethodPost, "/api/newsletter/unsubscribe", map[string]any{"email": "nobody@example.com"}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Email not found in our subscriber list", decode[ErrorResponse](t, rec).Error)

	rec = a.do(http.MethodPost, "/api/newsletter/subscribe", map[string]any{"email": "not an email"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodGet, "/api/newsletter/subscribers", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type recordingNotifier struct {
	got []models.ContactSubmission
}

func (n *recordingNotifier) NotifyContact(_ context.Context, submission models.ContactSubmission) error {
	n.got = append(n.got, submission)
	return nil
}

func TestContactMailbox(t *testing.T) {
	notifier := &recordingNotifier{}
	a := newTestAPI(t, withNotifier(notifier))
	_, staffToken := a.login("editor", models.RoleEditor)

	rec := a.do(http.MethodPost, "/api/contact/submit", map[string]any{
		"name":    "<b>Ada</b>",
		"email":   "ADA@example.com",
		"message": "Hello <script>there</script>",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	submission := decode[models.ContactSubmission](t, rec)
	assert.Equal(t, "Ada", submission.Name)
	assert.Equal(t, "ada@example.com", submission.Email)
	assert.NotContains(t, submission.Message, "<script>")
	assert.Equal(t, models.SubmissionNew, submission.Status)
	require.Len(t, notifier.got, 1)
	assert.Equal(t, submission.ID, notifier.got[0].ID)

	rec = a.do(http.MethodPost, "/api/contact/submit", map[string]any{"name": "Ada", "email": "ada@example.com"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodGet, "/api/contact/submissions", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	path := "/api/contact/submissions/" + submission.ID.String() + "/status"
	rec = a.do(http.MethodPut, path+"?status=read", nil, staffToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, models.SubmissionRead, decode[models.ContactSubmission](t, rec).Status)

	rec = a.do(http.MethodPut, path, map[string]any{"status": "responded"}, staffToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.SubmissionResponded, decode[models.ContactSubmission](t, rec).Status)

	rec = a.do(http.MethodPut, path+"?status=bogus", nil, staffToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodGet, "/api/contact/submissions?status=responded", nil, staffToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get(totalCountHeader))
}

func TestUsersAreAdminOnly(t *testing.T) {
	a := newTestAPI(t)
	admin, adminToken := a.login("root", models.RoleAdmin)
	_, editorToken := a.login("editor", models.RoleEditor)

	body := map[string]any{"username": "newbie", "email": "newbie@example.com", "password": "long enough"}
	rec := a.do(http.MethodPost, "/api/users", body, editorToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = a.do(http.MethodPost, "/api/users", body, adminToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "password")
	created := decode[models.User](t, rec)
	assert.Equal(t, models.RoleAuthor, created.Role)
	assert.True(t, created.IsActive)

	rec = a.do(http.MethodPost, "/api/users", map[string]any{"username": "newbie", "email": "other@example.com", "password": "long enough"}, adminToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "conflict", decode[ErrorResponse](t, rec).Code)

	rec = a.do(http.MethodPost, "/api/users", map[string]any{"username": "short", "email": "short@example.com", "password": "123"}, adminToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodDelete, "/api/users/"+admin.ID.String(), nil, adminToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodDelete, "/api/users/"+created.ID.String(), nil, adminToken)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestLoginAndMe(t *testing.T) {
	a := newTestAPI(t)
	user, _ := a.login("alice", models.RoleAuthor)

	rec := a.do(http.MethodPost, "/api/auth/login", LoginRequest{Username: "alice", Password: "wrong password"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = a.do(http.MethodPost, "/api/auth/login", LoginRequest{Username: "nobody", Password: testPassword}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = a.do(http.MethodPost, "/api/auth/login", LoginRequest{Username: "alice", Password: testPassword}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	login := decode[LoginResponse](t, rec)
	require.NotEmpty(t, login.Token)
	assert.Equal(t, user.ID, login.User.ID)
	assert.True(t, login.ExpiresAt.After(time.Now()))

	rec = a.do(http.MethodGet, "/api/auth/me", nil, login.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", decode[models.User](t, rec).Username)

	rec = a.do(http.MethodGet, "/api/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStatusEndpoints(t *testing.T) {
	a := newTestAPI(t, withStartupTime(time.Now()))

	rec := a.do(http.MethodGet, "/api/", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hello World", decode[MessageResponse](t, rec).Message)

	rec = a.do(http.MethodPost, "/api/status", map[string]any{"client_name": "frontend"}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	check := decode[models.StatusCheck](t, rec)
	assert.Equal(t, "frontend", check.ClientName)
	assert.False(t, check.Timestamp.IsZero())

	rec = a.do(http.MethodGet, "/api/status", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.StatusCheck](t, rec), 1)

	rec = a.do(http.MethodGet, "/healthz", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	health := decode[HealthResponse](t, rec)
	assert.Equal(t, "ok", health.Status)
	assert.NotEmpty(t, health.Uptime)
}

func TestEmptyBlogUpdateIsRejectedBeforeLookup(t *testing.T) {
	a := newTestAPI(t)
	_, token := a.login("alice", models.RoleAuthor)
	path := "/api/blog/" + uuid.NewString()

	for _, body := range []map[string]any{{}, {"title": nil}} {
		rec := a.do(http.MethodPut, path, body, token)
		assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		assert.Equal(t, "bad_request", decode[ErrorResponse](t, rec).Code)
	}

	rec := a.do(http.MethodPut, path, map[string]any{"title": "New"}, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTokenFollowsAccountState(t *testing.T) {
	a := newTestAPI(t)
	user, token := a.login("editor", models.RoleEditor)
	ctx := context.Background()

	rec := a.do(http.MethodPost, "/api/categories", map[string]any{"name": "AI", "type": "blog"}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	_, err := a.engines.Users.Update(ctx, user.ID, database.Patch{"role": models.RoleAuthor})
	require.NoError(t, err)
	rec = a.do(http.MethodPost, "/api/categories", map[string]any{"name": "ML", "type": "blog"}, token)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	_, err = a.engines.Users.Update(ctx, user.ID, database.Patch{"is_active": false})
	require.NoError(t, err)
	rec = a.do(http.MethodGet, "/api/auth/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	require.NoError(t, a.engines.Users.Delete(ctx, user.ID))
	rec = a.do(http.MethodGet, "/api/blog", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
