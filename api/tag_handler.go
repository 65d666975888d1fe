package api

import (
	"net/http"

	"github.com/rpupo63/genai-portfolio-backend/auth"
	"github.com/rpupo63/genai-portfolio-backend/database"
	"github.com/rpupo63/genai-portfolio-backend/models"
	"github.com/rpupo63/genai-portfolio-backend/resource"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type tagHandler struct {
	responder Responder
	logger    zerolog.Logger
	tags      *resource.TagEngine
}

func newTagHandler(tags *resource.TagEngine) tagHandler {
	logger := log.With().Str("handlerName", "tagHandler").Logger()

	return tagHandler{
		responder: NewResponder(logger),
		logger:    logger,
		tags:      tags,
	}
}

type CreateTagRequest struct {
	Name string              `json:"name" example:"golang"`
	Type models.TaxonomyType `json:"type" example:"blog"`
}

type UpdateTagRequest struct {
	Name *string              `json:"name,omitempty"`
	Type *models.TaxonomyType `json:"type,omitempty"`
}

func (req UpdateTagRequest) toPatch() (database.Patch, error) {
	patch := database.Patch{}
	if err := optionalText(patch, "name", req.Name); err != nil {
		return nil, err
	}
	if req.Type != nil {
		if err := enumValue("type", *req.Type, models.TaxonomyType.Valid, models.TaxonomyTypes()); err != nil {
			return nil, err
		}
		patch["type"] = *req.Type
	}
	return patch, nil
}

// createTag creates a new tag
// @Summary Create tag
// @Tags Tags
// @Accept json
// @Produce json
// @Param tag body CreateTagRequest true "Tag data"
// @Success 201 {object} models.Tag
// @Failure 400 {object} ErrorResponse "Bad Request - invalid data or duplicate name and type"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Router /api/tags [post]
func (h tagHandler) createTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := auth.Authorize(actorFromContext(r.Context()), auth.Create, auth.Tags); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req CreateTagRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		name, err := requireText("name", req.Name)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := enumValue("type", req.Type, models.TaxonomyType.Valid, models.TaxonomyTypes()); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		created, err := h.tags.Create(r.Context(), &models.Tag{Name: name, Type: req.Type})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, http.StatusCreated, created)
	}
}

// @Summary List tags
// @Tags Tags
// @Produce json
// @Param type query string false "blog or prompt"
// @Success 200 {array} models.Tag
// @Router /api/tags [get]
func (h tagHandler) getTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := listParams(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if params.Filter, err = taxonomyFilter(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		page, err := h.tags.List(r.Context(), params)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		WritePage(h.responder, w, page)
	}
}

// @Summary Get tag
// @Tags Tags
// @Produce json
// @Param tagID path string true "Tag ID" format(uuid)
// @Success 200 {object} models.Tag
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/tags/{tagID} [get]
func (h tagHandler) getTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "tagID", h.tags.Entity())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		tag, err := h.tags.Get(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, tag)
	}
}

// @Summary Update tag
// @Tags Tags
// @Accept json
// @Produce json
// @Param tagID path string true "Tag ID" format(uuid)
// @Param tag body UpdateTagRequest true "Fields to change"
// @Success 200 {object} models.Tag
// @Router /api/tags/{tagID} [put]
func (h tagHandler) updateTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := auth.Authorize(actorFromContext(r.Context()), auth.Update, auth.Tags); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		id, err := pathID(r, "tagID", h.tags.Entity())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req UpdateTagRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		patch, err := req.toPatch()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		updated, err := h.tags.Update(r.Context(), id, patch)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, updated)
	}
}

// @Summary Delete tag
// @Tags Tags
// @Param tagID path string true "Tag ID" format(uuid)
// @Success 204
// @Router /api/tags/{tagID} [delete]
func (h tagHandler) deleteTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := auth.Authorize(actorFromContext(r.Context()), auth.Delete, auth.Tags); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		id, err := pathID(r, "tagID", h.tags.Entity())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.tags.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.logger.Info().Str("tagID", id.String()).Msg("tag deleted")
		h.responder.WriteNoContent(w)
	}
}
