package api

import (
	"net/http"

	"github.com/rpupo63/genai-portfolio-backend/auth"
	"github.com/rpupo63/genai-portfolio-backend/database"
	"github.com/rpupo63/genai-portfolio-backend/errs"
	"github.com/rpupo63/genai-portfolio-backend/models"
	"github.com/rpupo63/genai-portfolio-backend/resource"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type userHandler struct {
	responder Responder
	logger    zerolog.Logger
	users     *resource.UserEngine
}

func newUserHandler(users *resource.UserEngine) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder: NewResponder(logger),
		logger:    logger,
		users:     users,
	}
}

type CreateUserRequest struct {
	Username string      `json:"username" example:"jdoe"`
	Email    string      `json:"email" example:"jdoe@example.com"`
	Password string      `json:"password"`
	FullName *string     `json:"full_name,omitempty"`
	Role     models.Role `json:"role,omitempty" example:"author"`
	IsActive *bool       `json:"is_active,omitempty"`
}

func (req CreateUserRequest) toModel() (*models.User, error) {
	username, err := requireText("username", req.Username)
	if err != nil {
		return nil, err
	}
	email, err := resource.NormalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, errs.NewMissingRequiredFieldError("password")
	}
	if req.Role != "" {
		if err := enumValue("role", req.Role, models.Role.Valid, models.Roles()); err != nil {
			return nil, err
		}
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		FullName:     req.FullName,
		PasswordHash: hash,
		Role:         req.Role,
		IsActive:     true,
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	return user, nil
}

type UpdateUserRequest struct {
	Username *string      `json:"username,omitempty"`
	Email    *string      `json:"email,omitempty"`
	Password *string      `json:"password,omitempty"`
	FullName *string      `json:"full_name,omitempty"`
	Role     *models.Role `json:"role,omitempty"`
	IsActive *bool        `json:"is_active,omitempty"`
}

func (req UpdateUserRequest) toPatch() (database.Patch, error) {
	patch := database.Patch{}
	if err := optionalText(patch, "username", req.Username); err != nil {
		return nil, err
	}
	if req.Email != nil {
		email, err := resource.NormalizeEmail(*req.Email)
		if err != nil {
			return nil, err
		}
		patch["email"] = email
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		patch["password_hash"] = hash
	}
	if req.Role != nil {
		if err := enumValue("role", *req.Role, models.Role.Valid, models.Roles()); err != nil {
			return nil, err
		}
		patch["role"] = *req.Role
	}
	optionalSet(patch, "full_name", req.FullName)
	optionalSet(patch, "is_active", req.IsActive)
	return patch, nil
}

func userFilter(r *http.Request) (database.Filter, error) {
	var filter database.Filter
	if s := r.URL.Query().Get("role"); s != "" {
		role := models.Role(s)
		if err := enumValue("role", role, models.Role.Valid, models.Roles()); err != nil {
			return nil, err
		}
		filter = append(filter, database.Eq("role", role))
	}
	if r.URL.Query().Has("is_active") {
		active, err := queryBool(r, "is_active", true)
		if err != nil {
			return nil, err
		}
		filter = append(filter, database.Eq("is_active", active))
	}
	return filter, nil
}

// createUser creates a new CMS account
// @Summary Create user
// @Tags Users
// @Accept json
// @Produce json
// @Param user body CreateUserRequest true "User data"
// @Success 201 {object} models.User "Created user"
// @Failure 400 {object} ErrorResponse "Bad Request - invalid data or username/email taken"
// @Failure 403 {object} ErrorResponse "Forbidden - admin only"
// @Router /api/users [post]
func (h userHandler) createUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := auth.Authorize(actorFromContext(r.Context()), auth.Create, auth.Users); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req CreateUserRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		user, err := req.toModel()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		created, err := h.users.Create(r.Context(), user)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.logger.Info().Str("userID", created.ID.String()).Str("role", string(created.Role)).Msg("user created")
		h.responder.WriteJSON(w, http.StatusCreated, created)
	}
}

// @Summary List users
// @Tags Users
// @Produce json
// @Param role query string false "admin, editor or author"
// @Param is_active query bool false "Only active or inactive accounts"
// @Param limit query int false "Page size (1-100)" default(20)
// @Param skip query int false "Offset"
// @Success 200 {array} models.User
// @Header 200 {integer} X-Total-Count "Number of matching users"
// @Failure 403 {object} ErrorResponse "Forbidden - admin only"
// @Router /api/users [get]
func (h userHandler) getUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := auth.Authorize(actorFromContext(r.Context()), auth.Read, auth.Users); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		params, err := listParams(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if params.Filter, err = userFilter(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		page, err := h.users.List(r.Context(), params)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		WritePage(h.responder, w, page)
	}
}

// @Summary Get user
// @Tags Users
// @Produce json
// @Param userID path string true "User ID" format(uuid)
// @Success 200 {object} models.User
// @Failure 403 {object} ErrorResponse "Forbidden - admin only"
// @Failure 404 {object} ErrorResponse "Not Found - User not found"
// @Router /api/users/{userID} [get]
func (h userHandler) getUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := auth.Authorize(actorFromContext(r.Context()), auth.Read, auth.Users); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		id, err := pathID(r, "userID", h.users.Entity())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.users.Get(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, user)
	}
}

// updateUser applies a partial update. A password in the body is hashed
// before it is stored.
// @Summary Update user
// @Tags Users
// @Accept json
// @Produce json
// @Param userID path string true "User ID" format(uuid)
// @Param user body UpdateUserRequest true "Fields to change"
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse "Bad Request - invalid data or username/email taken"
// @Failure 403 {object} ErrorResponse "Forbidden - admin only"
// @Failure 404 {object} ErrorResponse "Not Found - User not found"
// @Router /api/users/{userID} [put]
func (h userHandler) updateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := auth.Authorize(actorFromContext(r.Context()), auth.Update, auth.Users); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		id, err := pathID(r, "userID", h.users.Entity())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req UpdateUserRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		patch, err := req.toPatch()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		updated, err := h.users.Update(r.Context(), id, patch)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, updated)
	}
}

// @Summary Delete user
// @Tags Users
// @Param userID path string true "User ID" format(uuid)
// @Success 204
// @Failure 400 {object} ErrorResponse "Bad Request - cannot delete your own account"
// @Failure 403 {object} ErrorResponse "Forbidden - admin only"
// @Failure 404 {object} ErrorResponse "Not Found - User not found"
// @Router /api/users/{userID} [delete]
func (h userHandler) deleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := actorFromContext(r.Context())
		if err := auth.Authorize(actor, auth.Delete, auth.Users); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		id, err := pathID(r, "userID", h.users.Entity())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := auth.GuardSelfDelete(actor, id); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.users.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.logger.Info().Str("userID", id.String()).Msg("user deleted")
		h.responder.WriteNoContent(w)
	}
}
