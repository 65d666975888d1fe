package api

import (
	"time"

	"github.com/rpupo63/genai-portfolio-backend/auth"
	"github.com/rpupo63/genai-portfolio-backend/database"
	"github.com/rpupo63/genai-portfolio-backend/resource"
	"github.com/rpupo63/genai-portfolio-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, engines resource.Engines, issuer *auth.Issuer, notifier services.Notifier, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		statusHandler:     newStatusHandler(database, engines.StatusChecks, startupTime),
		authHandler:       newAuthHandler(engines.Users, issuer),
		blogPostHandler:   newBlogPostHandler(engines.BlogPosts),
		categoryHandler:   newCategoryHandler(engines.Categories),
		tagHandler:        newTagHandler(engines.Tags),
		promptHandler:     newPromptHandler(engines.Prompts),
		userHandler:       newUserHandler(engines.Users),
		newsletterHandler: newNewsletterHandler(engines.Newsletter),
		contactHandler:    newContactHandler(engines.ContactSubmissions, notifier),
	}
}
