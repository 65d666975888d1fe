// Package auth decides who may do what and issues the tokens that say who they are.
package auth

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/genai-portfolio-backend/errs"
	"github.com/rpupo63/genai-portfolio-backend/models"
)

// Actor is the authenticated caller of a request.
type Actor struct {
	ID   uuid.UUID
	Role models.Role
}

func (a *Actor) elevated() bool {
	return a != nil && (a.Role == models.RoleAdmin || a.Role == models.RoleEditor)
}

type Operation int

const (
	Read Operation = iota
	Create
	Update
	Delete
)

type Resource string

const (
	BlogPosts          Resource = "blog_post"
	Categories         Resource = "category"
	Tags               Resource = "tag"
	Prompts            Resource = "prompt"
	Users              Resource = "user"
	Subscribers        Resource = "newsletter_subscriber"
	ContactSubmissions Resource = "contact_submission"
	StatusChecks       Resource = "status_check"
)

// rule gates one operation. A public rule admits anonymous callers; otherwise
// an actor is required and, when roles is non-empty, must hold one of them.
type rule struct {
	public bool
	roles  []models.Role
}

var (
	public        = rule{public: true}
	authenticated = rule{}
	staff         = rule{roles: []models.Role{models.RoleAdmin, models.RoleEditor}}
	adminOnly     = rule{roles: []models.Role{models.RoleAdmin}}
)

var policy = map[Resource]map[Operation]rule{
	Categories: {Read: public, Create: staff, Update: staff, Delete: staff},
	Tags:       {Read: public, Create: staff, Update: staff, Delete: staff},
	Users:      {Read: adminOnly, Create: adminOnly, Update: adminOnly, Delete: adminOnly},
	// Update and Delete additionally pass through AuthorizeOwner.
	BlogPosts: {Read: public, Create: authenticated, Update: authenticated, Delete: authenticated},
	Prompts:   {Read: public, Create: staff, Update: staff, Delete: staff},
	// Create and Delete are subscribe and unsubscribe.
	Subscribers:        {Read: staff, Create: public, Delete: public},
	ContactSubmissions: {Read: staff, Create: public, Update: staff},
	StatusChecks:       {Read: public, Create: public},
}

// Authorize returns nil when actor may perform op on res. A missing actor on a
// gated operation is Unauthorized; a wrong role is Forbidden.
func Authorize(actor *Actor, op Operation, res Resource) error {
	r, ok := policy[res][op]
	if !ok {
		return errs.NewForbiddenError("operation not permitted on " + string(res))
	}
	if r.public {
		return nil
	}
	if actor == nil {
		return errs.NewMissingTokenError()
	}
	if len(r.roles) == 0 {
		return nil
	}
	for _, role := range r.roles {
		if actor.Role == role {
			return nil
		}
	}
	names := make([]string, len(r.roles))
	for i, role := range r.roles {
		names[i] = string(role)
	}
	return errs.NewInsufficientRoleError(strings.Join(names, " or "))
}

// AuthorizeOwner admits the owner of a record as well as admins and editors.
func AuthorizeOwner(actor *Actor, ownerID uuid.UUID) error {
	if actor == nil {
		return errs.NewMissingTokenError()
	}
	if actor.ID == ownerID || actor.elevated() {
		return nil
	}
	return errs.NewForbiddenError("only the author, an editor or an admin may modify this post")
}

// GuardSelfDelete stops an account from deleting itself.
func GuardSelfDelete(actor *Actor, target uuid.UUID) error {
	if actor != nil && actor.ID == target {
		return errs.NewBadRequestError("cannot delete your own account")
	}
	return nil
}
