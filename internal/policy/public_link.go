package policy

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/diewo77/go-gescom/internal/gate"
	"github.com/diewo77/go-gescom/internal/models"
)

// PublicLinkPolicy governs sales orders. Admin actors may do everything.
// A token-carrying actor is restricted to viewing and signing, and only on
// the order whose stored hash matches the presented token and has not
// expired. Knowing an order id grants nothing without the matching token.
type PublicLinkPolicy struct {
	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewPublicLinkPolicy() *PublicLinkPolicy {
	return &PublicLinkPolicy{Now: time.Now}
}

func (p *PublicLinkPolicy) Can(_ context.Context, actor gate.Actor, action gate.Action, resource any) bool {
	if actor.IsAdmin() {
		return true
	}
	if action != gate.ActionView && action != gate.ActionSign {
		return false
	}
	order, ok := resource.(*models.SalesOrder)
	if !ok || order == nil {
		return false
	}
	if !order.HasToken() {
		return false
	}
	if !p.Now().Before(*order.HashExpiresAt) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(*order.PublicHash), []byte(actor.Token())) == 1
}
