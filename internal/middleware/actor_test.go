package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diewo77/go-gescom/internal/gate"
)

func adminWall(t *testing.T) (http.Handler, *bool) {
	t.Helper()
	reached := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})
	return Actor(RequireAdmin(inner)), &reached
}

func TestRequireAdminPassesPlainRequests(t *testing.T) {
	h, reached := adminWall(t)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/invoices", nil))
	if w.Code != http.StatusOK || !*reached {
		t.Fatalf("hash-less request must pass: code %d reached %v", w.Code, *reached)
	}
}

func TestRequireAdminBlocksTokenCarriers(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodDelete} {
		h, reached := adminWall(t)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(method, "/invoices?hash=sometoken", nil))
		if w.Code != http.StatusForbidden {
			t.Fatalf("%s with hash: expected 403 got %d", method, w.Code)
		}
		if *reached {
			t.Fatalf("%s with hash: handler must not run", method)
		}
	}
}

func TestRequireAdminWithoutActorMiddleware(t *testing.T) {
	// no Actor middleware: the context default is a public actor, so the
	// wall must stay closed rather than widen access
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})
	w := httptest.NewRecorder()
	RequireAdmin(inner).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/invoices", nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", w.Code)
	}
	// sanity: the policy itself agrees
	if gate.AdminOnly.Can(httptest.NewRequest(http.MethodGet, "/", nil).Context(), gate.Public("tok"), gate.ActionView, nil) {
		t.Fatal("AdminOnly must refuse public actors")
	}
}
