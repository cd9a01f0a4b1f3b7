package main

import (
	"context"
	"net/http"

	"github.com/sushihentaime/inkpost/internal/userservice"
)

type contextKey string

const actorContextKey = contextKey("actor")

func (app *application) contextSetActor(r *http.Request, actor *userservice.Actor) *http.Request {
	ctx := context.WithValue(r.Context(), actorContextKey, actor)
	return r.WithContext(ctx)
}

// contextGetActor must only be called behind requireAuthUser.
func (app *application) contextGetActor(r *http.Request) *userservice.Actor {
	actor, ok := r.Context().Value(actorContextKey).(*userservice.Actor)
	if !ok {
		panic("missing actor value in request context")
	}

	return actor
}
