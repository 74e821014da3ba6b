package gate

import "context"

// Policy defines authorization rules for a resource type.
// Implementations check whether actor may perform action on resource.
type Policy interface {
	// Can returns true if actor is authorized to perform action on
	// resource. For list/create, resource may be nil (context-only check).
	Can(ctx context.Context, actor Actor, action Action, resource any) bool
}

// PolicyFunc adapts a function to the Policy interface.
type PolicyFunc func(ctx context.Context, actor Actor, action Action, resource any) bool

func (f PolicyFunc) Can(ctx context.Context, actor Actor, action Action, resource any) bool {
	return f(ctx, actor, action, resource)
}

// AdminOnly is the policy for resources that have no public surface at all.
var AdminOnly Policy = PolicyFunc(func(_ context.Context, actor Actor, _ Action, _ any) bool {
	return actor.IsAdmin()
})
