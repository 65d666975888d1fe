package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts every resource under /api. Authentication is optional
// at this level; each handler applies its own authorization policy.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Use(authMiddleware.authenticate)

	// Legacy status checks
	r.Get("/", handlers.statusHandler.root())
	r.Post("/status", handlers.statusHandler.createStatusCheck())
	r.Get("/status", handlers.statusHandler.getStatusChecks())

	r.Post("/auth/login", handlers.authHandler.login())
	r.Get("/auth/me", handlers.authHandler.me())

	r.Route("/blog", func(r chi.Router) {
		r.Post("/", handlers.blogPostHandler.createBlogPost())
		r.Get("/", handlers.blogPostHandler.getBlogPosts())
		r.Get("/slug/{slug}", handlers.blogPostHandler.getBlogPostBySlug())
		r.Get("/{postID}", handlers.blogPostHandler.getBlogPost())
		r.Put("/{postID}", handlers.blogPostHandler.updateBlogPost())
		r.Delete("/{postID}", handlers.blogPostHandler.deleteBlogPost())
	})

	r.Route("/categories", func(r chi.Router) {
		r.Post("/", handlers.categoryHandler.createCategory())
		r.Get("/", handlers.categoryHandler.getCategories())
		r.Get("/{categoryID}", handlers.categoryHandler.getCategory())
		r.Put("/{categoryID}", handlers.categoryHandler.updateCategory())
		r.Delete("/{categoryID}", handlers.categoryHandler.deleteCategory())
	})

	r.Route("/tags", func(r chi.Router) {
		r.Post("/", handlers.tagHandler.createTag())
		r.Get("/", handlers.tagHandler.getTags())
		r.Get("/{tagID}", handlers.tagHandler.getTag())
		r.Put("/{tagID}", handlers.tagHandler.updateTag())
		r.Delete("/{tagID}", handlers.tagHandler.deleteTag())
	})

	r.Route("/prompts", func(r chi.Router) {
		r.Post("/", handlers.promptHandler.createPrompt())
		r.Get("/", handlers.promptHandler.getPrompts())
		r.Get("/{promptID}", handlers.promptHandler.getPrompt())
		r.Put("/{promptID}", handlers.promptHandler.updatePrompt())
		r.Delete("/{promptID}", handlers.promptHandler.deletePrompt())
		r.Post("/{promptID}/like", handlers.promptHandler.likePrompt())
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", handlers.userHandler.createUser())
		r.Get("/", handlers.userHandler.getUsers())
		r.Get("/{userID}", handlers.userHandler.getUser())
		r.Put("/{userID}", handlers.userHandler.updateUser())
		r.Delete("/{userID}", handlers.userHandler.deleteUser())
	})

	r.Route("/newsletter", func(r chi.Router) {
		r.Post("/subscribe", handlers.newsletterHandler.subscribe())
		r.Post("/unsubscribe", handlers.newsletterHandler.unsubscribe())
		r.Get("/subscribers", handlers.newsletterHandler.getSubscribers())
	})

	r.Route("/contact", func(r chi.Router) {
		r.Post("/submit", handlers.contactHandler.submit())
		r.Get("/submissions", handlers.contactHandler.getSubmissions())
		r.Put("/submissions/{submissionID}/status", handlers.contactHandler.updateSubmissionStatus())
	})
}
