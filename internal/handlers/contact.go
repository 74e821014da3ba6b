package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/diewo77/go-gescom/internal/httpx"
	"github.com/diewo77/go-gescom/internal/services"
)

type ContactHandler struct {
	Svc *services.ContactService
}

func NewContactHandler(svc *services.ContactService) *ContactHandler {
	return &ContactHandler{Svc: svc}
}

type contactReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Type      string `json:"type"`
	SIRET     string `json:"siret"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
}

func (r contactReq) input() services.ContactInput {
	return services.ContactInput{
		FirstName: r.FirstName, LastName: r.LastName, Email: r.Email,
		Type: r.Type, SIRET: r.SIRET, Phone: r.Phone,
		Address: r.Address, City: r.City, State: r.State, ZipCode: r.ZipCode,
	}
}

// List: GET /contacts[?type=client|fournisseur]
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	var err error
	var contacts any
	if t := r.URL.Query().Get("type"); t != "" {
		contacts, err = h.Svc.ListByType(t)
	} else {
		contacts, err = h.Svc.List()
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": contacts})
}

// Get: GET /contacts/{id}
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	contact, err := h.Svc.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, contact)
}

// Create: POST /contacts
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req contactReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	contact, err := h.Svc.Create(req.input())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, contact)
}

// Update: POST /contacts/{id}
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var req contactReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	contact, err := h.Svc.Update(id, req.input())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, contact)
}

// Delete: DELETE /contacts/{id}
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
