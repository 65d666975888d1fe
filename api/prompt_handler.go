package api

import (
	"net/http"

	"github.com/rpupo63/genai-portfolio-backend/auth"
	"github.com/rpupo63/genai-portfolio-backend/database"
	"github.com/rpupo63/genai-portfolio-backend/models"
	"github.com/rpupo63/genai-portfolio-backend/resource"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

type promptHandler struct {
	responder Responder
	logger    zerolog.Logger
	prompts   *resource.Prompts
}

func newPromptHandler(prompts *resource.Prompts) promptHandler {
	logger := log.With().Str("handlerName", "promptHandler").Logger()

	return promptHandler{
		responder: NewResponder(logger),
		logger:    logger,
		prompts:   prompts,
	}
}

type CreatePromptRequest struct {
	Title       string   `json:"title" example:"Summarize a paper"`
	Description string   `json:"description"`
	PromptText  string   `json:"prompt_text"`
	Category    string   `json:"category" example:"research"`
	Tags        []string `json:"tags,omitempty"`
}

func (req CreatePromptRequest) toModel() (*models.Prompt, error) {
	prompt := &models.Prompt{Tags: datatypes.JSONSlice[string](req.Tags)}
	var err error
	if prompt.Title, err = requireText("title", req.Title); err != nil {
		return nil, err
	}
	if prompt.Description, err = requireText("description", req.Description); err != nil {
		return nil, err
	}
	if prompt.PromptText, err = requireText("prompt_text", req.PromptText); err != nil {
		return nil, err
	}
	if prompt.Category, err = requireText("category", req.Category); err != nil {
		return nil, err
	}
	return prompt, nil
}

// UpdatePromptRequest cannot touch the counters; they only move through
// views and likes.
type UpdatePromptRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	PromptText  *string   `json:"prompt_text,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

func (req UpdatePromptRequest) toPatch() (database.Patch, error) {
	patch := database.Patch{}
	fields := []struct {
		name  string
		value *string
	}{
		{"title", req.Title},
		{"description", req.Description},
		{"prompt_text", req.PromptText},
		{"category", req.Category},
	}
	for _, f := range fields {
		if err := optionalText(patch, f.name, f.value); err != nil {
			return nil, err
		}
	}
	if req.Tags != nil {
		patch["tags"] = datatypes.JSONSlice[string](*req.Tags)
	}
	return patch, nil
}

// createPrompt creates a new prompt
// @Summary Create prompt
// @Tags Prompts
// @Accept json
// @Produce json
// @Param prompt body CreatePromptRequest true "Prompt data"
// @Success 201 {object} models.Prompt "Created prompt"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid prompt data"
// @Failure 403 {object} ErrorResponse "Forbidden - editor or admin only"
// @Router /api/prompts [post]
func (h promptHandler) createPrompt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := auth.Authorize(actorFromContext(r.Context()), auth.Create, auth.Prompts); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req CreatePromptRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		prompt, err := req.toModel()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		created, err := h.prompts.Create(r.Context(), prompt)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, http.StatusCreated, created)
	}
}

// getPrompts lists prompts
// @Summary List prompts
// @Tags Prompts
// @Produce json
// @Param category query string false "Category"
// @Param tag query string false "Tag the prompt must carry"
// @Param limit query int false "Page size (1-100)" default(10)
// @Param skip query int false "Offset"
// @Param sort_by query string false "created_at, likes, views or title"
// @Param sort_order query string false "asc or desc"
// @Success 200 {array} models.Prompt
// @Header 200 {integer} X-Total-Count "Number of matching prompts"
// @Router /api/prompts [get]
func (h promptHandler) getPrompts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := listParams(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		params.Filter = queryFilter(r, "category", "tag")

		page, err := h.prompts.List(r.Context(), params)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		WritePage(h.responder, w, page)
	}
}

// getPrompt returns a prompt and counts the view
// @Summary Get prompt
// @Description Every successful read increments the prompt's view counter.
// @Tags Prompts
// @Produce json
// @Param promptID path string true "Prompt ID" format(uuid)
// @Success 200 {object} models.Prompt
// @Failure 404 {object} ErrorResponse "Not Found - Prompt not found"
// @Router /api/prompts/{promptID} [get]
func (h promptHandler) getPrompt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "promptID", h.prompts.Entity())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		prompt, err := h.prompts.View(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, prompt)
	}
}

// @Summary Update prompt
// @Tags Prompts
// @Accept json
// @Produce json
// @Param promptID path string true "Prompt ID" format(uuid)
// @Param prompt body UpdatePromptRequest true "Fields to change"
// @Success 200 {object} models.Prompt
// @Failure 400 {object} ErrorResponse "Bad Request - empty patch"
// @Failure 403 {object} ErrorResponse "Forbidden - editor or admin only"
// @Failure 404 {object} ErrorResponse "Not Found - Prompt not found"
// @Router /api/prompts/{promptID} [put]
func (h promptHandler) updatePrompt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := auth.Authorize(actorFromContext(r.Context()), auth.Update, auth.Prompts); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		id, err := pathID(r, "promptID", h.prompts.Entity())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req UpdatePromptRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		patch, err := req.toPatch()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		updated, err := h.prompts.Update(r.Context(), id, patch)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, updated)
	}
}

// @Summary Delete prompt
// @Tags Prompts
// @Param promptID path string true "Prompt ID" format(uuid)
// @Success 204
// @Failure 403 {object} ErrorResponse "Forbidden - editor or admin only"
// @Failure 404 {object} ErrorResponse "Not Found - Prompt not found"
// @Router /api/prompts/{promptID} [delete]
func (h promptHandler) deletePrompt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := auth.Authorize(actorFromContext(r.Context()), auth.Delete, auth.Prompts); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		id, err := pathID(r, "promptID", h.prompts.Entity())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.prompts.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.logger.Info().Str("promptID", id.String()).Msg("prompt deleted")
		h.responder.WriteNoContent(w)
	}
}

// likePrompt adds one like. Anyone may like a prompt, any number of times.
// @Summary Like prompt
// @Tags Prompts
// @Produce json
// @Param promptID path string true "Prompt ID" format(uuid)
// @Success 200 {object} models.Prompt
// @Failure 404 {object} ErrorResponse "Not Found - Prompt not found"
// @Router /api/prompts/{promptID}/like [post]
func (h promptHandler) likePrompt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "promptID", h.prompts.Entity())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		prompt, err := h.prompts.Like(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, prompt)
	}
}
