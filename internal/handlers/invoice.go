package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/diewo77/go-gescom/internal/httpx"
	"github.com/diewo77/go-gescom/internal/services"
)

type InvoiceHandler struct {
	Svc *services.InvoiceService
}

func NewInvoiceHandler(svc *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{Svc: svc}
}

// List: GET /invoices
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	invs, err := h.Svc.List()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": invs})
}

// Get: GET /invoices/{id} – invoice with its lines.
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	inv, err := h.Svc.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	lines, err := h.Svc.Lines(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"invoice": inv, "lines": lines})
}

type invoiceUpdateReq struct {
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"` // YYYY-MM-DD, billing date
}

// Update: POST /invoices/{id} – accepts a status change, a billing-date
// change, or both (mirrors the two forms on the original detail page).
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var req invoiceUpdateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.Status == "" && req.CreatedAt == "" {
		httpx.JSONError(w, http.StatusBadRequest, "nothing_to_update", nil)
		return
	}
	if req.Status != "" {
		if _, err := h.Svc.UpdateStatus(id, req.Status); err != nil {
			writeServiceError(w, err)
			return
		}
	}
	if req.CreatedAt != "" {
		date, err := time.Parse("2006-01-02", req.CreatedAt)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_date", nil)
			return
		}
		if _, err := h.Svc.UpdateBillingDate(id, date); err != nil {
			writeServiceError(w, err)
			return
		}
	}
	inv, err := h.Svc.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// Delete: DELETE /invoices/{id}
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
