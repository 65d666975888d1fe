package api

import (
	"net/http"

	"github.com/rpupo63/genai-portfolio-backend/auth"
	"github.com/rpupo63/genai-portfolio-backend/resource"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type newsletterHandler struct {
	responder  Responder
	logger     zerolog.Logger
	newsletter *resource.Newsletter
}

func newNewsletterHandler(newsletter *resource.Newsletter) newsletterHandler {
	logger := log.With().Str("handlerName", "newsletterHandler").Logger()

	return newsletterHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		newsletter: newsletter,
	}
}

type SubscribeRequest struct {
	Email string   `json:"email" example:"reader@example.com"`
	Tags  []string `json:"tags,omitempty"`
}

type UnsubscribeRequest struct {
	Email string `json:"email" example:"reader@example.com"`
}

// subscribe adds an address to the mailing list or reactivates it
// @Summary Subscribe to newsletter
// @Description Returns 201 when the address is new and 200 when it was already known (reactivated or already active).
// @Tags Newsletter
// @Accept json
// @Produce json
// @Param subscription body SubscribeRequest true "Email to subscribe"
// @Success 201 {object} models.NewsletterSubscriber "New subscriber"
// @Success 200 {object} models.NewsletterSubscriber "Existing subscriber"
// @Failure 400 {object} ErrorResponse "Bad Request - invalid email"
// @Router /api/newsletter/subscribe [post]
func (h newsletterHandler) subscribe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := auth.Authorize(actorFromContext(r.Context()), auth.Create, auth.Subscribers); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req SubscribeRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		sub, created, err := h.newsletter.Subscribe(r.Context(), req.Email, req.Tags)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
			h.logger.Info().Str("subscriberID", sub.ID.String()).Msg("new newsletter subscriber")
		}
		h.responder.WriteJSON(w, status, sub)
	}
}

// @Summary Unsubscribe from newsletter
// @Tags Newsletter
// @Accept json
// @Produce json
// @Param subscription body UnsubscribeRequest true "Email to unsubscribe"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse "Not Found - Email not found in our subscriber list"
// @Router /api/newsletter/unsubscribe [post]
func (h newsletterHandler) unsubscribe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := auth.Authorize(actorFromContext(r.Context()), auth.Delete, auth.Subscribers); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req UnsubscribeRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.newsletter.Unsubscribe(r.Context(), req.Email); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, "Successfully unsubscribed")
	}
}

// @Summary List newsletter subscribers
// @Tags Newsletter
// @Produce json
// @Param active_only query bool false "Only active subscribers" default(true)
// @Param limit query int false "Page size (1-1000)" default(100)
// @Param skip query int false "Offset"
// @Success 200 {array} models.NewsletterSubscriber
// @Header 200 {integer} X-Total-Count "Number of matching subscribers"
// @Failure 403 {object} ErrorResponse "Forbidden - editor or admin only"
// @Router /api/newsletter/subscribers [get]
func (h newsletterHandler) getSubscribers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := auth.Authorize(actorFromContext(r.Context()), auth.Read, auth.Subscribers); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		params, err := listParams(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		activeOnly, err := queryBool(r, "active_only", true)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		params.Filter = queryFilter(r, "tag")

		page, err := h.newsletter.Subscribers(r.Context(), activeOnly, params)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		WritePage(h.responder, w, page)
	}
}
