package resource

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/genai-portfolio-backend/models"
)

// Prompts adds the view and like counters to the prompt engine. Neither
// counter is de-duplicated per caller.
type Prompts struct {
	*promptEngine
}

// View counts one view of the prompt and returns it.
func (p *Prompts) View(ctx context.Context, id uuid.UUID) (*models.Prompt, error) {
	return p.Increment(ctx, id, "views")
}

// Like counts one like of the prompt and returns it.
func (p *Prompts) Like(ctx context.Context, id uuid.UUID) (*models.Prompt, error) {
	return p.Increment(ctx, id, "likes")
}
