package handlers

import (
	"net/http"
	"time"

	"github.com/diewo77/go-gescom/internal/gate"
	"github.com/diewo77/go-gescom/internal/httpx"
	"github.com/diewo77/go-gescom/internal/models"
	"github.com/diewo77/go-gescom/internal/services"
)

// PublicOrderHandler serves the unauthenticated counter-party. Every
// request must carry the share hash; the gate limits the actor to viewing
// the matching order and signing it, nothing else.
type PublicOrderHandler struct {
	Svc   *services.SalesOrderService
	Lines *services.SalesOrderLineService
	Gate  *gate.Gate
}

func NewPublicOrderHandler(svc *services.SalesOrderService, lines *services.SalesOrderLineService, g *gate.Gate) *PublicOrderHandler {
	return &PublicOrderHandler{Svc: svc, Lines: lines, Gate: g}
}

// publicOrderView is the read-only projection exposed to the counter-party:
// no token fields, no internal references.
type publicOrderView struct {
	ID       uint                  `json:"id"`
	Type     string                `json:"type"`
	Genre    string                `json:"genre"`
	Status   string                `json:"status"`
	Contact  string                `json:"contact"`
	SignedAt *time.Time            `json:"signed_at,omitempty"`
	Lines    []publicOrderLineView `json:"lines"`
	TotalHT  float64               `json:"total_ht"`
	TotalIT  float64               `json:"total_it"`
}

type publicOrderLineView struct {
	Product  string  `json:"product"`
	Genre    string  `json:"genre"`
	Quantity int     `json:"quantity"`
	PriceHT  float64 `json:"price_ht"`
	Tax      float64 `json:"tax"`
	PriceIT  float64 `json:"price_it"`
}

func (h *PublicOrderHandler) project(order *models.SalesOrder) (*publicOrderView, error) {
	lines, err := h.Lines.ListByOrder(order.ID)
	if err != nil {
		return nil, err
	}
	view := publicOrderView{
		ID:       order.ID,
		Type:     order.Type,
		Genre:    order.Genre,
		Status:   order.Status,
		Contact:  order.Contact.FullName(),
		SignedAt: order.SignedAt,
	}
	for _, l := range lines {
		view.Lines = append(view.Lines, publicOrderLineView{
			Product:  l.Product.Description,
			Genre:    l.Genre,
			Quantity: l.Quantity,
			PriceHT:  l.PriceHT,
			Tax:      l.Tax,
			PriceIT:  l.PriceIT,
		})
		view.TotalHT = models.Round2(view.TotalHT + l.TotalHT())
		view.TotalIT = models.Round2(view.TotalIT + l.PriceIT)
	}
	return &view, nil
}

// resolve maps the presented hash to its order and runs the gate. A miss,
// an expired token and a mismatched one all collapse into not_found so the
// endpoint leaks nothing about which orders exist.
func (h *PublicOrderHandler) resolve(r *http.Request, action gate.Action) (*models.SalesOrder, error) {
	actor := gate.ActorFromContext(r.Context())
	order, err := h.Svc.ResolveByToken(actor.Token())
	if err != nil {
		return nil, err
	}
	if err := h.Gate.Authorize(r.Context(), actor, action, "sales_order", order); err != nil {
		return nil, err
	}
	return order, nil
}

// View: GET /public/sales-order?hash=...
func (h *PublicOrderHandler) View(w http.ResponseWriter, r *http.Request) {
	order, err := h.resolve(r, gate.ActionView)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	view, err := h.project(order)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

// Sign: POST /public/sales-order/sign?hash=... – the one mutation a public
// caller may perform. The signing origin address is recorded with the
// signature.
func (h *PublicOrderHandler) Sign(w http.ResponseWriter, r *http.Request) {
	order, err := h.resolve(r, gate.ActionSign)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	signed, err := h.Svc.Sign(order.ID, clientAddr(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	view, err := h.project(signed)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}
