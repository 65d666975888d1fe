package api

import (
	"context"

	"github.com/rpupo63/genai-portfolio-backend/auth"
)

type keyType string

const actorKey keyType = "actor"

// ctxWithActor adds the authenticated caller to the context
func ctxWithActor(ctx context.Context, actor *auth.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// actorFromContext returns the authenticated caller, or nil for anonymous requests
func actorFromContext(ctx context.Context) *auth.Actor {
	actor, _ := ctx.Value(actorKey).(*auth.Actor)
	return actor
}
