package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/genai-portfolio-backend/auth"
	"github.com/rpupo63/genai-portfolio-backend/database"
	"github.com/rpupo63/genai-portfolio-backend/errs"
	"github.com/rpupo63/genai-portfolio-backend/models"
	"github.com/rpupo63/genai-portfolio-backend/resource"
	"github.com/rpupo63/genai-portfolio-backend/util"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

type blogPostHandler struct {
	responder Responder
	logger    zerolog.Logger
	posts     *resource.BlogPostEngine
}

func newBlogPostHandler(posts *resource.BlogPostEngine) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder: NewResponder(logger),
		logger:    logger,
		posts:     posts,
	}
}

type CreateBlogPostRequest struct {
	Title         string               `json:"title" example:"Notes on prompt design"`
	Slug          string               `json:"slug,omitempty" example:"notes-on-prompt-design"`
	Excerpt       *string              `json:"excerpt,omitempty"`
	Body          string               `json:"body"`
	FeaturedImage *string              `json:"featured_image,omitempty"`
	CategoryID    *uuid.UUID           `json:"category_id,omitempty"`
	Tags          []string             `json:"tags,omitempty"`
	Status        models.ContentStatus `json:"status,omitempty" example:"draft"`
	PublishedAt   *time.Time           `json:"published_at,omitempty"`
}

func (req CreateBlogPostRequest) toModel(author uuid.UUID) (*models.BlogPost, error) {
	title, err := requireText("title", req.Title)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Body) == "" {
		return nil, errs.NewMissingRequiredFieldError("body")
	}
	if req.Status != "" {
		if err := enumValue("status", req.Status, models.ContentStatus.Valid, models.ContentStatuses()); err != nil {
			return nil, err
		}
	}
	return &models.BlogPost{
		Title:         title,
		Slug:          strings.TrimSpace(req.Slug),
		Excerpt:       req.Excerpt,
		Body:          req.Body,
		FeaturedImage: req.FeaturedImage,
		CategoryID:    req.CategoryID,
		Tags:          datatypes.JSONSlice[string](req.Tags),
		AuthorID:      author,
		Status:        req.Status,
		PublishedAt:   req.PublishedAt,
	}, nil
}

type UpdateBlogPostRequest struct {
	Title         *string               `json:"title,omitempty"`
	Slug          *string               `json:"slug,omitempty"`
	Excerpt       *string               `json:"excerpt,omitempty"`
	Body          *string               `json:"body,omitempty"`
	FeaturedImage *string               `json:"featured_image,omitempty"`
	CategoryID    *uuid.UUID            `json:"category_id,omitempty"`
	Tags          *[]string             `json:"tags,omitempty"`
	Status        *models.ContentStatus `json:"status,omitempty"`
	PublishedAt   *time.Time            `json:"published_at,omitempty"`
}

func (req UpdateBlogPostRequest) toPatch() (database.Patch, error) {
	patch := database.Patch{}
	if err := optionalText(patch, "title", req.Title); err != nil {
		return nil, err
	}
	if err := optionalText(patch, "slug", req.Slug); err != nil {
		return nil, err
	}
	if err := optionalText(patch, "body", req.Body); err != nil {
		return nil, err
	}
	optionalSet(patch, "excerpt", req.Excerpt)
	optionalSet(patch, "featured_image", req.FeaturedImage)
	optionalSet(patch, "category_id", req.CategoryID)
	if req.Tags != nil {
		patch["tags"] = datatypes.JSONSlice[string](*req.Tags)
	}
	if req.Status != nil {
		if err := enumValue("status", *req.Status, models.ContentStatus.Valid, models.ContentStatuses()); err != nil {
			return nil, err
		}
		patch["status"] = *req.Status
	}
	if req.PublishedAt != nil {
		patch["published_at"] = req.PublishedAt.UTC()
	}
	return patch, nil
}

func blogPostFilter(r *http.Request) (database.Filter, error) {
	q := r.URL.Query()
	filter := queryFilter(r, "tag")

	for _, column := range []string{"category_id", "author_id"} {
		if s := q.Get(column); s != "" {
			id, err := uuid.Parse(s)
			if err != nil {
				return nil, errs.NewInvalidFieldError(column, "must be a UUID")
			}
			filter = append(filter, database.Eq(column, id))
		}
	}

	if s := q.Get("status"); s != "" {
		status := models.ContentStatus(s)
		if err := enumValue("status", status, models.ContentStatus.Valid, models.ContentStatuses()); err != nil {
			return nil, err
		}
		filter = append(filter, database.Eq("status", status))
	}
	return filter, nil
}

// createBlogPost creates a new blog post authored by the caller
// @Summary Create blog post
// @Description Creates a blog post. The slug defaults to one derived from the title, the body is sanitized and the read time computed. Publishing on create stamps published_at.
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Param blogPost body CreateBlogPostRequest true "Blog post data"
// @Success 201 {object} models.BlogPost "Created blog post"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid blog post data"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /api/blog [post]
func (h blogPostHandler) createBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := actorFromContext(r.Context())
		if err := auth.Authorize(actor, auth.Create, auth.BlogPosts); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req CreateBlogPostRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		post, err := req.toModel(actor.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		created, err := h.posts.Create(r.Context(), post)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.logger.Info().Str("postID", created.ID.String()).Str("status", string(created.Status)).Msg("blog post created")
		h.responder.WriteJSON(w, http.StatusCreated, created)
	}
}

// getBlogPosts lists blog posts
// @Summary List blog posts
// @Tags Blog Posts
// @Produce json
// @Param category_id query string false "Category ID" format(uuid)
// @Param tag query string false "Tag the post must carry"
// @Param author_id query string false "Author ID" format(uuid)
// @Param status query string false "draft, pending_review, published or archived"
// @Param limit query int false "Page size (1-100)" default(10)
// @Param skip query int false "Offset"
// @Param sort_by query string false "created_at, published_at, updated_at, title or read_time_minutes"
// @Param sort_order query string false "asc or desc"
// @Success 200 {array} models.BlogPost
// @Header 200 {integer} X-Total-Count "Number of matching posts"
// @Router /api/blog [get]
func (h blogPostHandler) getBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := listParams(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if params.Filter, err = blogPostFilter(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		page, err := h.posts.List(r.Context(), params)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		WritePage(h.responder, w, page)
	}
}

// getBlogPost retrieves a specific blog post by ID
// @Summary Get blog post
// @Tags Blog Posts
// @Produce json
// @Param postID path string true "Blog Post ID" format(uuid)
// @Success 200 {object} models.BlogPost
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /api/blog/{postID} [get]
func (h blogPostHandler) getBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "postID", h.posts.Entity())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.posts.Get(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, post)
	}
}

// @Summary Get blog post by slug
// @Tags Blog Posts
// @Produce json
// @Param slug path string true "Slug"
// @Success 200 {object} models.BlogPost
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /api/blog/slug/{slug} [get]
func (h blogPostHandler) getBlogPostBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := strings.ToLower(chi.URLParam(r, "slug"))
		if !util.IsSlug(slug) {
			h.responder.WriteError(w, errs.NewNotFound(h.posts.Entity()))
			return
		}

		post, err := h.posts.FindOne(r.Context(), database.Filter{database.Eq("slug", slug)})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, post)
	}
}

// updateBlogPost applies a partial update to a blog post
// @Summary Update blog post
// @Description Only the author, an editor or an admin may update a post. Setting status to published stamps published_at unless the post already has one or the request supplies it.
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Param postID path string true "Blog Post ID" format(uuid)
// @Param blogPost body UpdateBlogPostRequest true "Fields to change"
// @Success 200 {object} models.BlogPost "Updated blog post"
// @Failure 400 {object} ErrorResponse "Bad Request - empty patch or invalid status"
// @Failure 403 {object} ErrorResponse "Forbidden - not the author"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /api/blog/{postID} [put]
func (h blogPostHandler) updateBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := actorFromContext(r.Context())
		if err := auth.Authorize(actor, auth.Update, auth.BlogPosts); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		id, err := pathID(r, "postID", h.posts.Entity())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req UpdateBlogPostRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		patch, err := req.toPatch()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		// The ownership check reads the post, so reject an empty patch first.
		if len(patch) == 0 {
			h.responder.WriteError(w, errs.NewEmptyPatchError())
			return
		}

		existing, err := h.posts.Get(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := auth.AuthorizeOwner(actor, existing.AuthorID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		updated, err := h.posts.Update(r.Context(), id, patch)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, updated)
	}
}

// deleteBlogPost deletes a blog post by ID
// @Summary Delete blog post
// @Tags Blog Posts
// @Param postID path string true "Blog Post ID" format(uuid)
// @Success 204
// @Failure 403 {object} ErrorResponse "Forbidden - not the author"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /api/blog/{postID} [delete]
func (h blogPostHandler) deleteBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := actorFromContext(r.Context())
		if err := auth.Authorize(actor, auth.Delete, auth.BlogPosts); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		id, err := pathID(r, "postID", h.posts.Entity())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.posts.Get(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := auth.AuthorizeOwner(actor, existing.AuthorID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.posts.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.logger.Info().Str("postID", id.String()).Msg("blog post deleted")
		h.responder.WriteNoContent(w)
	}
}
