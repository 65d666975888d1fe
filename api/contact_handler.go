package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rpupo63/genai-portfolio-backend/auth"
	"github.com/rpupo63/genai-portfolio-backend/database"
	"github.com/rpupo63/genai-portfolio-backend/errs"
	"github.com/rpupo63/genai-portfolio-backend/models"
	"github.com/rpupo63/genai-portfolio-backend/resource"
	"github.com/rpupo63/genai-portfolio-backend/services"
	"github.com/rpupo63/genai-portfolio-backend/util"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const notifyTimeout = 10 * time.Second

type contactHandler struct {
	responder   Responder
	logger      zerolog.Logger
	submissions *resource.ContactEngine
	notifier    services.Notifier
}

func newContactHandler(submissions *resource.ContactEngine, notifier services.Notifier) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		submissions: submissions,
		notifier:    notifier,
	}
}

type ContactSubmitRequest struct {
	Name    string  `json:"name" example:"Ada Lovelace"`
	Email   string  `json:"email" example:"ada@example.com"`
	Subject *string `json:"subject,omitempty"`
	Message string  `json:"message"`
}

// toModel strips markup from every free-text field.
func (req ContactSubmitRequest) toModel() (*models.ContactSubmission, error) {
	name, err := requireText("name", util.StripHTML(req.Name))
	if err != nil {
		return nil, err
	}
	email, err := resource.NormalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	message, err := requireText("message", util.StripHTML(req.Message))
	if err != nil {
		return nil, err
	}

	submission := &models.ContactSubmission{Name: name, Email: email, Message: message}
	if req.Subject != nil {
		if subject := util.StripHTML(*req.Subject); subject != "" {
			submission.Subject = &subject
		}
	}
	return submission, nil
}

type UpdateSubmissionStatusRequest struct {
	Status models.SubmissionStatus `json:"status" example:"read"`
}

// submit stores a message from the contact form and notifies the site owner
// @Summary Submit contact form
// @Description Stores the submission with status new. Notification failures are logged and do not fail the request.
// @Tags Contact
// @Accept json
// @Produce json
// @Param submission body ContactSubmitRequest true "Contact form"
// @Success 201 {object} models.ContactSubmission
// @Failure 400 {object} ErrorResponse "Bad Request - missing name, email or message"
// @Router /api/contact/submit [post]
func (h contactHandler) submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := auth.Authorize(actorFromContext(r.Context()), auth.Create, auth.ContactSubmissions); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req ContactSubmitRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		submission, err := req.toModel()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		created, err := h.submissions.Create(r.Context(), submission)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// The submission is already stored; a client hanging up must not
		// cancel the notification.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), notifyTimeout)
		defer cancel()
		if err := h.notifier.NotifyContact(ctx, *created); err != nil {
			h.logger.Error().Err(err).Str("submissionID", created.ID.String()).Msg("failed to send contact notification")
		}

		h.responder.WriteJSON(w, http.StatusCreated, created)
	}
}

// @Summary List contact submissions
// @Tags Contact
// @Produce json
// @Param status query string false "new, read, responded or archived"
// @Param limit query int false "Page size (1-1000)" default(100)
// @Param skip query int false "Offset"
// @Success 200 {array} models.ContactSubmission
// @Header 200 {integer} X-Total-Count "Number of matching submissions"
// @Failure 403 {object} ErrorResponse "Forbidden - editor or admin only"
// @Router /api/contact/submissions [get]
func (h contactHandler) getSubmissions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := auth.Authorize(actorFromContext(r.Context()), auth.Read, auth.ContactSubmissions); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		params, err := listParams(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if s := r.URL.Query().Get("status"); s != "" {
			status := models.SubmissionStatus(s)
			if err := enumValue("status", status, models.SubmissionStatus.Valid, models.SubmissionStatuses()); err != nil {
				h.responder.WriteError(w, err)
				return
			}
			params.Filter = database.Filter{database.Eq("status", status)}
		}

		page, err := h.submissions.List(r.Context(), params)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		WritePage(h.responder, w, page)
	}
}

// updateSubmissionStatus moves a submission through new, read, responded and archived
// @Summary Update contact submission status
// @Description The status may be given as the status query parameter or in a JSON body.
// @Tags Contact
// @Accept json
// @Produce json
// @Param submissionID path string true "Submission ID" format(uuid)
// @Param status query string false "new, read, responded or archived"
// @Param body body UpdateSubmissionStatusRequest false "Status"
// @Success 200 {object} models.ContactSubmission
// @Failure 400 {object} ErrorResponse "Bad Request - invalid status"
// @Failure 403 {object} ErrorResponse "Forbidden - editor or admin only"
// @Failure 404 {object} ErrorResponse "Not Found - Submission not found"
// @Router /api/contact/submissions/{submissionID}/status [put]
func (h contactHandler) updateSubmissionStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := auth.Authorize(actorFromContext(r.Context()), auth.Update, auth.ContactSubmissions); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		id, err := pathID(r, "submissionID", h.submissions.Entity())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		status := models.SubmissionStatus(r.URL.Query().Get("status"))
		if status == "" {
			var req UpdateSubmissionStatusRequest
			if err := decodeJSON(w, r, &req); err != nil {
				h.responder.WriteError(w, err)
				return
			}
			status = req.Status
		}
		if status == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("status"))
			return
		}
		if err := enumValue("status", status, models.SubmissionStatus.Valid, models.SubmissionStatuses()); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		updated, err := h.submissions.Update(r.Context(), id, database.Patch{"status": status})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.logger.Info().Str("submissionID", id.String()).Str("status", string(status)).Msg("submission status changed")
		h.responder.WriteJSON(w, http.StatusOK, updated)
	}
}
