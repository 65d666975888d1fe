package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/rpupo63/genai-portfolio-backend/auth"
	"github.com/rpupo63/genai-portfolio-backend/database"
	"github.com/rpupo63/genai-portfolio-backend/errs"
	"github.com/rpupo63/genai-portfolio-backend/models"
	"github.com/rpupo63/genai-portfolio-backend/resource"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	users     *resource.UserEngine
	issuer    *auth.Issuer
}

func newAuthHandler(users *resource.UserEngine, issuer *auth.Issuer) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		users:     users,
		issuer:    issuer,
	}
}

type LoginRequest struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string      `json:"access_token"`
	TokenType string      `json:"token_type" example:"bearer"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      models.User `json:"user"`
}

// login exchanges a username and password for a bearer token
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Username and password"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} ErrorResponse "Unauthorized - invalid username or password"
// @Router /api/auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		username := strings.TrimSpace(req.Username)
		if username == "" || req.Password == "" {
			h.responder.WriteError(w, errs.NewBadCredentialsError())
			return
		}

		user, err := h.users.FindOne(r.Context(), database.Filter{database.Eq("username", username)})
		if errs.IsNotFound(err) {
			h.responder.WriteError(w, errs.NewBadCredentialsError())
			return
		}
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if !auth.CheckPassword(user.PasswordHash, req.Password) || !user.IsActive {
			h.logger.Warn().Str("username", username).Msg("rejected login")
			h.responder.WriteError(w, errs.NewBadCredentialsError())
			return
		}

		token, expires, err := h.issuer.Issue(*user)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, LoginResponse{
			Token:     token,
			TokenType: "bearer",
			ExpiresAt: expires,
			User:      *user,
		})
	}
}

// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /api/auth/me [get]
func (h authHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := actorFromContext(r.Context())
		if actor == nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		user, err := h.users.Get(r.Context(), actor.ID)
		if errs.IsNotFound(err) {
			h.responder.WriteError(w, errs.NewInvalidTokenError())
			return
		}
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, user)
	}
}
