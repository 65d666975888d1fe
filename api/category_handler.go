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

type categoryHandler struct {
	responder  Responder
	logger     zerolog.Logger
	categories *resource.CategoryEngine
}

func newCategoryHandler(categories *resource.CategoryEngine) categoryHandler {
	logger := log.With().Str("handlerName", "categoryHandler").Logger()

	return categoryHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		categories: categories,
	}
}

type CreateCategoryRequest struct {
	Name        string              `json:"name" example:"Machine Learning"`
	Type        models.TaxonomyType `json:"type" example:"blog"`
	Description *string             `json:"description,omitempty"`
}

func (req CreateCategoryRequest) toModel() (*models.Category, error) {
	name, err := requireText("name", req.Name)
	if err != nil {
		return nil, err
	}
	if err := enumValue("type", req.Type, models.TaxonomyType.Valid, models.TaxonomyTypes()); err != nil {
		return nil, err
	}
	return &models.Category{Name: name, Type: req.Type, Description: req.Description}, nil
}

type UpdateCategoryRequest struct {
	Name        *string              `json:"name,omitempty"`
	Type        *models.TaxonomyType `json:"type,omitempty"`
	Description *string              `json:"description,omitempty"`
}

func (req UpdateCategoryRequest) toPatch() (database.Patch, error) {
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
	optionalSet(patch, "description", req.Description)
	return patch, nil
}

// taxonomyFilter reads the optional ?type= filter shared by categories and tags.
func taxonomyFilter(r *http.Request) (database.Filter, error) {
	t := models.TaxonomyType(r.URL.Query().Get("type"))
	if t == "" {
		return nil, nil
	}
	if err := enumValue("type", t, models.TaxonomyType.Valid, models.TaxonomyTypes()); err != nil {
		return nil, err
	}
	return database.Filter{database.Eq("type", t)}, nil
}

// createCategory creates a new category
// @Summary Create category
// @Tags Categories
// @Accept json
// @Produce json
// @Param category body CreateCategoryRequest true "Category data"
// @Success 201 {object} models.Category
// @Failure 400 {object} ErrorResponse "Bad Request - invalid data or duplicate name and type"
// @Failure 403 {object} ErrorResponse "Forbidden - admin or editor required"
// @Router /api/categories [post]
func (h categoryHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := auth.Authorize(actorFromContext(r.Context()), auth.Create, auth.Categories); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req CreateCategoryRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		category, err := req.toModel()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		created, err := h.categories.Create(r.Context(), category)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, http.StatusCreated, created)
	}
}

// getCategories lists categories
// @Summary List categories
// @Tags Categories
// @Produce json
// @Param type query string false "blog or prompt"
// @Param limit query int false "Page size (1-200)" default(50)
// @Param skip query int false "Offset"
// @Success 200 {array} models.Category
// @Header 200 {integer} X-Total-Count "Number of matching categories"
// @Router /api/categories [get]
func (h categoryHandler) getCategories() http.HandlerFunc {
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

		page, err := h.categories.List(r.Context(), params)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		WritePage(h.responder, w, page)
	}
}

// getCategory retrieves a category by ID
// @Summary Get category
// @Tags Categories
// @Produce json
// @Param categoryID path string true "Category ID" format(uuid)
// @Success 200 {object} models.Category
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/categories/{categoryID} [get]
func (h categoryHandler) getCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "categoryID", h.categories.Entity())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		category, err := h.categories.Get(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, category)
	}
}

// updateCategory applies a partial update to a category
// @Summary Update category
// @Tags Categories
// @Accept json
// @Produce json
// @Param categoryID path string true "Category ID" format(uuid)
// @Param category body UpdateCategoryRequest true "Fields to change"
// @Success 200 {object} models.Category
// @Failure 400 {object} ErrorResponse "Bad Request - empty patch, invalid type or duplicate name and type"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/categories/{categoryID} [put]
func (h categoryHandler) updateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := auth.Authorize(actorFromContext(r.Context()), auth.Update, auth.Categories); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		id, err := pathID(r, "categoryID", h.categories.Entity())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req UpdateCategoryRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		patch, err := req.toPatch()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		updated, err := h.categories.Update(r.Context(), id, patch)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, updated)
	}
}

// deleteCategory deletes a category by ID
// @Summary Delete category
// @Tags Categories
// @Param categoryID path string true "Category ID" format(uuid)
// @Success 204
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/categories/{categoryID} [delete]
func (h categoryHandler) deleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := auth.Authorize(actorFromContext(r.Context()), auth.Delete, auth.Categories); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		id, err := pathID(r, "categoryID", h.categories.Entity())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.categories.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.logger.Info().Str("categoryID", id.String()).Msg("category deleted")
		h.responder.WriteNoContent(w)
	}
}
