package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/diewo77/go-gescom/internal/httpx"
	"github.com/diewo77/go-gescom/internal/services"
)

type ProductHandler struct {
	Svc *services.ProductService
}

func NewProductHandler(svc *services.ProductService) *ProductHandler {
	return &ProductHandler{Svc: svc}
}

type productReq struct {
	Description string  `json:"description"`
	PriceHT     float64 `json:"price_ht"`
	Tax         float64 `json:"tax"`
	PriceIT     float64 `json:"price_it"`
	Type        string  `json:"type"`
}

func (r productReq) input() services.ProductInput {
	return services.ProductInput{
		Description: r.Description, PriceHT: r.PriceHT,
		Tax: r.Tax, PriceIT: r.PriceIT, Type: r.Type,
	}
}

// List: GET /products[?sellable=1]
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	var err error
	var products any
	if r.URL.Query().Get("sellable") == "1" {
		products, err = h.Svc.ListSellable()
	} else {
		products, err = h.Svc.List()
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": products})
}

// Get: GET /products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	product, err := h.Svc.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

// Create: POST /products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	product, err := h.Svc.Create(req.input())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, product)
}

// Update: POST /products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var req productReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	product, err := h.Svc.Update(id, req.input())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

// Delete: DELETE /products/{id} – refused while the product is referenced
// by any order or invoice line.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
