package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/diewo77/go-gescom/internal/httpx"
	"github.com/diewo77/go-gescom/internal/services"
)

// SalesOrderHandler is the back-office surface for quotes/orders and their
// lines. Public (token-carrying) access goes through PublicOrderHandler.
type SalesOrderHandler struct {
	Svc   *services.SalesOrderService
	Lines *services.SalesOrderLineService
	Inv   *services.InvoiceService
}

func NewSalesOrderHandler(svc *services.SalesOrderService, lines *services.SalesOrderLineService, inv *services.InvoiceService) *SalesOrderHandler {
	return &SalesOrderHandler{Svc: svc, Lines: lines, Inv: inv}
}

type salesOrderReq struct {
	ContactID uint   `json:"contact_id"`
	Genre     string `json:"genre"`
	Type      string `json:"type"`
}

func (r salesOrderReq) input() services.SalesOrderInput {
	return services.SalesOrderInput{ContactID: r.ContactID, Genre: r.Genre, Type: r.Type}
}

// List: GET /sales-orders[?type=Devis|Commande][&contact_id=N]
func (h *SalesOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var err error
	var orders any
	switch {
	case q.Get("type") != "":
		orders, err = h.Svc.ListByType(q.Get("type"))
	case q.Get("contact_id") != "":
		contactID, perr := strconv.ParseUint(q.Get("contact_id"), 10, 64)
		if perr != nil || contactID == 0 {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_contact_id", nil)
			return
		}
		orders, err = h.Svc.ListByContact(uint(contactID))
	default:
		orders, err = h.Svc.List()
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": orders})
}

// Get: GET /sales-orders/{id} – order plus its lines and line totals.
func (h *SalesOrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	order, err := h.Svc.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	lines, err := h.Lines.ListByOrder(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"sales_order": order, "lines": lines})
}

// Create: POST /sales-orders
func (h *SalesOrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req salesOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	order, err := h.Svc.Create(req.input())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}

// Update: POST /sales-orders/{id}
func (h *SalesOrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var req salesOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	order, err := h.Svc.Update(id, req.input())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

// Delete: DELETE /sales-orders/{id}
func (h *SalesOrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Svc.Delete(id); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Share: POST /sales-orders/{id}/share – issues (or reissues) the public
// link token. The returned URL carries the hash verbatim; the counter-party
// must forward it on every request.
func (h *SalesOrderHandler) Share(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	token, err := h.Svc.IssueShareToken(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	order, err := h.Svc.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"hash":       token,
		"expires_at": order.HashExpiresAt,
		"share_url":  "/public/sales-order?hash=" + token,
	})
}

// Sign: POST /sales-orders/{id}/sign – back-office signing (e.g. a signature
// received on paper). The client address is recorded like a public signing.
func (h *SalesOrderHandler) Sign(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	order, err := h.Svc.Sign(id, clientAddr(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

// Convert: POST /sales-orders/{id}/invoice – runs the conversion pipeline.
func (h *SalesOrderHandler) Convert(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	inv, err := h.Inv.ConvertFromSalesOrder(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}

type salesOrderLineReq struct {
	ProductID uint    `json:"product_id"`
	PriceHT   float64 `json:"price_ht"`
	Tax       float64 `json:"tax"`
	Quantity  int     `json:"quantity"`
	Date      string  `json:"date"` // YYYY-MM-DD
	Genre     string  `json:"genre"`
}

// CreateLine: POST /sales-orders/{id}/lines
func (h *SalesOrderHandler) CreateLine(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var req salesOrderLineReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_date", nil)
			return
		}
		date = parsed
	}
	line, err := h.Lines.Create(services.SalesOrderLineInput{
		SalesOrderID: id,
		ProductID:    req.ProductID,
		PriceHT:      req.PriceHT,
		Tax:          req.Tax,
		Quantity:     req.Quantity,
		Date:         date,
		Genre:        req.Genre,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, line)
}

// DeleteLine: DELETE /sales-orders/{id}/lines/{lineID}
func (h *SalesOrderHandler) DeleteLine(w http.ResponseWriter, r *http.Request) {
	lineID, ok := pathID(r, "lineID")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Lines.Delete(lineID); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
