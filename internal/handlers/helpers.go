package handlers

import (
	"errors"
	"net"
	"net/http"
	"strconv"

	"github.com/diewo77/go-gescom/internal/gate"
	"github.com/diewo77/go-gescom/internal/httpx"
	"github.com/diewo77/go-gescom/internal/services"
)

// pathID parses the {id} path segment.
func pathID(r *http.Request, name string) (uint, bool) {
	raw := r.PathValue(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// writeServiceError translates service errors into stable JSON responses.
// Every business failure is recoverable; only unknown errors become 500s.
func writeServiceError(w http.ResponseWriter, err error) {
	if ve, ok := services.AsValidation(err); ok {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", ve.Violations)
		return
	}
	switch {
	case errors.Is(err, services.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	case errors.Is(err, services.ErrAlreadySigned):
		httpx.JSONError(w, http.StatusConflict, "already_signed", nil)
	case errors.Is(err, services.ErrShareNotAllowed):
		httpx.JSONError(w, http.StatusConflict, "share_not_allowed", nil)
	case errors.Is(err, services.ErrNoLines):
		httpx.JSONError(w, http.StatusBadRequest, "sales_order_has_no_lines", nil)
	case errors.Is(err, services.ErrProductInUse):
		httpx.JSONError(w, http.StatusConflict, "product_in_use", nil)
	case errors.Is(err, gate.ErrPermission):
		httpx.JSONError(w, http.StatusForbidden, "permission_denied", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}

// clientAddr extracts the caller address, without the port.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
