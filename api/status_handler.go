package api

import (
	"net/http"
	"time"

	"github.com/rpupo63/genai-portfolio-backend/auth"
	"github.com/rpupo63/genai-portfolio-backend/database"
	"github.com/rpupo63/genai-portfolio-backend/models"
	"github.com/rpupo63/genai-portfolio-backend/resource"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type statusHandler struct {
	responder   Responder
	logger      zerolog.Logger
	database    database.Database
	checks      *resource.StatusCheckEngine
	startupTime time.Time
}

func newStatusHandler(database database.Database, checks *resource.StatusCheckEngine, startupTime time.Time) statusHandler {
	logger := log.With().Str("handlerName", "statusHandler").Logger()

	return statusHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		database:    database,
		checks:      checks,
		startupTime: startupTime,
	}
}

type CreateStatusCheckRequest struct {
	ClientName string `json:"client_name" example:"frontend"`
}

type HealthResponse struct {
	Status    string `json:"status" example:"ok"`
	Database  string `json:"database" example:"ok"`
	StartedAt string `json:"started_at,omitempty"`
	Uptime    string `json:"uptime,omitempty" example:"3h2m1s"`
}

// @Summary API greeting
// @Tags Status
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /api/ [get]
func (h statusHandler) root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteMessage(w, "Hello World")
	}
}

// @Summary Record a status check
// @Tags Status
// @Accept json
// @Produce json
// @Param check body CreateStatusCheckRequest true "Client name"
// @Success 201 {object} models.StatusCheck
// @Failure 400 {object} ErrorResponse "Bad Request - missing client_name"
// @Router /api/status [post]
func (h statusHandler) createStatusCheck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := auth.Authorize(actorFromContext(r.Context()), auth.Create, auth.StatusChecks); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req CreateStatusCheckRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		name, err := requireText("client_name", req.ClientName)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		check, err := h.checks.Create(r.Context(), &models.StatusCheck{ClientName: name})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, http.StatusCreated, check)
	}
}

// @Summary List status checks
// @Tags Status
// @Produce json
// @Param limit query int false "Page size (1-1000)" default(1000)
// @Param skip query int false "Offset"
// @Success 200 {array} models.StatusCheck
// @Header 200 {integer} X-Total-Count "Number of status checks"
// @Router /api/status [get]
func (h statusHandler) getStatusChecks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := listParams(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		page, err := h.checks.List(r.Context(), params)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		WritePage(h.responder, w, page)
	}
}

// healthz reports whether the database answers.
// @Summary Health check
// @Tags Status
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /healthz [get]
func (h statusHandler) healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{Status: "ok", Database: "ok"}
		if !h.startupTime.IsZero() {
			resp.StartedAt = h.startupTime.UTC().Format(time.RFC3339)
			resp.Uptime = time.Since(h.startupTime).Round(time.Second).String()
		}

		if err := h.database.Ping(r.Context()); err != nil {
			h.logger.Error().Err(err).Msg("database ping failed")
			resp.Status, resp.Database = "degraded", "unreachable"
			h.responder.WriteJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, resp)
	}
}
