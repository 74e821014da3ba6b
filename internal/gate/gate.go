// Package gate provides a Gate/Policy authorization checkpoint for the two
// caller kinds this application knows: the back office (admin) and an
// unauthenticated counter-party presenting a share token. The Gate is a
// registry of policies keyed by resource type; it has no dependency on
// domain models.
package gate

import "context"

// Gate is the central authorization checkpoint. Register policies by
// resource type name, then call Authorize or Can.
type Gate struct {
	policies map[string]Policy
}

// NewGate creates an empty Gate ready to register policies.
func NewGate() *Gate {
	return &Gate{policies: make(map[string]Policy)}
}

// Register adds a policy for a given resource type (e.g., "sales_order").
// Overwrites any existing policy for that type.
func (g *Gate) Register(resourceType string, p Policy) {
	g.policies[resourceType] = p
}

// Authorize checks authorization and returns an error if denied.
// Returns ErrPermission for a denied action and ErrNoPolicyDefined if
// resourceType has no registered policy.
func (g *Gate) Authorize(ctx context.Context, actor Actor, action Action, resourceType string, resource any) error {
	p, ok := g.policies[resourceType]
	if !ok {
		return ErrNoPolicyDefined
	}
	if !p.Can(ctx, actor, action, resource) {
		return ErrPermission
	}
	return nil
}

// Can is a convenience wrapper returning bool instead of error.
func (g *Gate) Can(ctx context.Context, actor Actor, action Action, resourceType string, resource any) bool {
	return g.Authorize(ctx, actor, action, resourceType, resource) == nil
}
