package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/genai-portfolio-backend/errs"
	"github.com/rpupo63/genai-portfolio-backend/models"
	"github.com/stretchr/testify/assert"
)

func actor(role models.Role) *Actor {
	return &Actor{ID: uuid.New(), Role: role}
}

func TestAuthorizeTaxonomyAndUsers(t *testing.T) {
	for _, res := range []Resource{Categories, Tags, Users} {
		for _, op := range []Operation{Create, Update, Delete} {
			err := Authorize(actor(models.RoleAuthor), op, res)
			assert.True(t, errs.IsForbidden(err), "author on %s", res)
			assert.False(t, errs.IsNotFound(err))
		}
	}

	assert.NoError(t, Authorize(actor(models.RoleEditor), Create, Categories))
	assert.NoError(t, Authorize(actor(models.RoleEditor), Delete, Tags))
	assert.True(t, errs.IsForbidden(Authorize(actor(models.RoleEditor), Create, Users)))
	assert.NoError(t, Authorize(actor(models.RoleAdmin), Delete, Users))
}

func TestAuthorizeReads(t *testing.T) {
	assert.NoError(t, Authorize(nil, Read, Categories))
	assert.NoError(t, Authorize(nil, Read, BlogPosts))
	assert.NoError(t, Authorize(nil, Read, Prompts))

	assert.True(t, errs.IsUnauthorized(Authorize(nil, Read, Users)))
	assert.True(t, errs.IsForbidden(Authorize(actor(models.RoleEditor), Read, Users)))
	assert.True(t, errs.IsForbidden(Authorize(actor(models.RoleAuthor), Read, Subscribers)))
	assert.NoError(t, Authorize(actor(models.RoleEditor), Read, ContactSubmissions))
}

func TestAuthorizePublicWrites(t *testing.T) {
	assert.NoError(t, Authorize(nil, Create, Subscribers))
	assert.NoError(t, Authorize(nil, Delete, Subscribers))
	assert.NoError(t, Authorize(nil, Create, ContactSubmissions))
	assert.NoError(t, Authorize(nil, Create, StatusChecks))

	assert.True(t, errs.IsUnauthorized(Authorize(nil, Create, BlogPosts)))
	assert.NoError(t, Authorize(actor(models.RoleAuthor), Create, BlogPosts))
	assert.True(t, errs.IsForbidden(Authorize(actor(models.RoleAdmin), Delete, StatusChecks)))
}

func TestAuthorizeOwner(t *testing.T) {
	author := actor(models.RoleAuthor)

	assert.NoError(t, AuthorizeOwner(author, author.ID))
	assert.True(t, errs.IsForbidden(AuthorizeOwner(author, uuid.New())))
	assert.NoError(t, AuthorizeOwner(actor(models.RoleEditor), author.ID))
	assert.NoError(t, AuthorizeOwner(actor(models.RoleAdmin), author.ID))
	assert.True(t, errs.IsUnauthorized(AuthorizeOwner(nil, author.ID)))
}

func TestGuardSelfDelete(t *testing.T) {
	admin := actor(models.RoleAdmin)

	assert.True(t, errs.IsBadRequest(GuardSelfDelete(admin, admin.ID)))
	assert.NoError(t, GuardSelfDelete(admin, uuid.New()))
}
