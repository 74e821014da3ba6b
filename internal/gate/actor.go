package gate

import (
	"context"
	"net/http"
)

// Actor is the subject of a request. An admin actor operates on any
// resource; a public actor is only identified by the share token it
// presents and is limited to viewing and signing the matching order.
type Actor struct {
	admin bool
	token string
}

// Admin returns the back-office actor.
func Admin() Actor { return Actor{admin: true} }

// Public returns a token-carrying actor. An empty token still yields a
// public actor; the policy will simply never match it to a resource.
func Public(token string) Actor { return Actor{token: token} }

func (a Actor) IsAdmin() bool { return a.admin }

// Token returns the presented share token; empty for admin actors.
func (a Actor) Token() string { return a.token }

type actorCtxKey struct{}

// WithActor stores the actor in context.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey{}, a)
}

// ActorFromContext extracts the actor; defaults to an empty public actor so
// that a missing middleware can never widen access.
func ActorFromContext(ctx context.Context) Actor {
	if a, ok := ctx.Value(actorCtxKey{}).(Actor); ok {
		return a
	}
	return Public("")
}

// FromRequest derives the actor from a request: any request carrying a
// ?hash= query parameter is a public one, everything else is admin (the
// admin surface is assumed to sit behind the deployment's own access
// control, out of scope here).
func FromRequest(r *http.Request) Actor {
	if h := r.URL.Query().Get("hash"); h != "" {
		return Public(h)
	}
	return Admin()
}
