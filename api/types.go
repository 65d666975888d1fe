package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	statusHandler     statusHandler
	authHandler       authHandler
	blogPostHandler   blogPostHandler
	categoryHandler   categoryHandler
	tagHandler        tagHandler
	promptHandler     promptHandler
	userHandler       userHandler
	newsletterHandler newsletterHandler
	contactHandler    contactHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Category with name 'AI' and type 'blog' already exists"`
	Code    string `json:"code" example:"conflict"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"name"`
	Details string `json:"details,omitempty" example:"Missing required field: name"`
}

type MessageResponse struct {
	Message string `json:"message" example:"Successfully unsubscribed"`
}
