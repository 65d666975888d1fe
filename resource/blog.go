package resource

import (
	"time"

	"github.com/rpupo63/genai-portfolio-backend/database"
	"github.com/rpupo63/genai-portfolio-backend/errs"
	"github.com/rpupo63/genai-portfolio-backend/models"
	"github.com/rpupo63/genai-portfolio-backend/util"
)

var BlogPostSpec = Spec[models.BlogPost]{
	Entity:       "Blog post",
	Sortable:     []string{"created_at", "published_at", "updated_at", "title", "read_time_minutes"},
	DefaultLimit: 10,
	MaxLimit:     100,
	OnCreate:     prepareBlogPost,
	OnUpdate:     deriveBlogPostPatch,
}

func prepareBlogPost(post *models.BlogPost, now time.Time) error {
	if post.Slug == "" {
		post.Slug = post.Title
	}
	post.Slug = util.Slugify(post.Slug)
	if post.Slug == "" {
		return errs.NewInvalidFieldError("slug", "must contain at least one letter or digit")
	}

	post.Body = util.SanitizeHTML(post.Body)
	post.ReadTimeMinutes = util.ReadTimeMinutes(post.Body)
	post.Tags = nonNilTags(post.Tags)

	if post.Status == "" {
		post.Status = models.StatusDraft
	}
	if !post.Status.Valid() {
		return errs.NewInvalidEnumError("status", string(post.Status), models.ContentStatuses())
	}
	if post.Status == models.StatusPublished && post.PublishedAt == nil {
		post.PublishedAt = &now
	}
	return nil
}

// deriveBlogPostPatch keeps slug, body, read time and published_at consistent
// with whatever the caller changed.
func deriveBlogPostPatch(current *models.BlogPost, patch database.Patch, now time.Time) error {
	if slug, ok := patch["slug"].(string); ok {
		if slug = util.Slugify(slug); slug == "" {
			return errs.NewInvalidFieldError("slug", "must contain at least one letter or digit")
		}
		patch["slug"] = slug
	}

	if body, ok := patch["body"].(string); ok {
		body = util.SanitizeHTML(body)
		patch["body"] = body
		patch["read_time_minutes"] = util.ReadTimeMinutes(body)
	}

	status, ok := patch["status"].(models.ContentStatus)
	if !ok {
		return nil
	}
	if !status.Valid() {
		return errs.NewInvalidEnumError("status", string(status), models.ContentStatuses())
	}
	if status == models.StatusPublished && !patch.Has("published_at") && current.PublishedAt == nil {
		patch["published_at"] = now
	}
	return nil
}
