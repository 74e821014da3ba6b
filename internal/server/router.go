package server

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/go-gescom/internal/config"
	"github.com/diewo77/go-gescom/internal/gate"
	"github.com/diewo77/go-gescom/internal/handlers"
	"github.com/diewo77/go-gescom/internal/httpx"
	"github.com/diewo77/go-gescom/internal/middleware"
	"github.com/diewo77/go-gescom/internal/policy"
	"github.com/diewo77/go-gescom/internal/services"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, cfg config.Config) http.Handler {
	mux := http.NewServeMux()

	contactSvc := services.NewContactService(db)
	productSvc := services.NewProductService(db)
	orderSvc := services.NewSalesOrderService(db, cfg.TokenSecret, cfg.ShareTokenTTL)
	lineSvc := services.NewSalesOrderLineService(db)
	invoiceSvc := services.NewInvoiceService(db)
	dashSvc := services.NewDashboardService(db)

	g := gate.NewGate()
	g.Register("sales_order", policy.NewPublicLinkPolicy())

	ch := handlers.NewContactHandler(contactSvc)
	ph := handlers.NewProductHandler(productSvc)
	oh := handlers.NewSalesOrderHandler(orderSvc, lineSvc, invoiceSvc)
	ih := handlers.NewInvoiceHandler(invoiceSvc)
	eh := handlers.NewExportHandler(invoiceSvc)
	dh := handlers.NewDashboardHandler(dashSvc)
	pub := handlers.NewPublicOrderHandler(orderSvc, lineSvc, g)

	// --- Health endpoints ---
	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	//revive:enable:unused-parameter

	// Public share link routes. No admin gate here: the token in ?hash= is the
	// only credential and the policy decides what it may do.
	mux.HandleFunc("GET /public/sales-order", pub.View)
	mux.HandleFunc("POST /public/sales-order/sign", pub.Sign)

	// Back-office routes. RequireAdmin keeps share-token holders out even when
	// they guess internal ids.
	admin := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAdmin(h)
	}

	mux.Handle("GET /contacts", admin(ch.List))
	mux.Handle("POST /contacts", admin(ch.Create))
	mux.Handle("GET /contacts/{id}", admin(ch.Get))
	mux.Handle("POST /contacts/{id}", admin(ch.Update))
	mux.Handle("DELETE /contacts/{id}", admin(ch.Delete))

	mux.Handle("GET /products", admin(ph.List))
	mux.Handle("POST /products", admin(ph.Create))
	mux.Handle("GET /products/{id}", admin(ph.Get))
	mux.Handle("POST /products/{id}", admin(ph.Update))
	mux.Handle("DELETE /products/{id}", admin(ph.Delete))

	mux.Handle("GET /sales-orders", admin(oh.List))
	mux.Handle("POST /sales-orders", admin(oh.Create))
	mux.Handle("GET /sales-orders/{id}", admin(oh.Get))
	mux.Handle("POST /sales-orders/{id}", admin(oh.Update))
	mux.Handle("DELETE /sales-orders/{id}", admin(oh.Delete))
	mux.Handle("POST /sales-orders/{id}/share", admin(oh.Share))
	mux.Handle("POST /sales-orders/{id}/sign", admin(oh.Sign))
	mux.Handle("POST /sales-orders/{id}/invoice", admin(oh.Convert))
	mux.Handle("POST /sales-orders/{id}/lines", admin(oh.CreateLine))
	mux.Handle("DELETE /sales-orders/{id}/lines/{lineID}", admin(oh.DeleteLine))

	mux.Handle("GET /invoices", admin(ih.List))
	mux.Handle("GET /invoices/export/csv", admin(eh.CSV))
	mux.Handle("GET /invoices/export/xlsx", admin(eh.XLSX))
	mux.Handle("GET /invoices/{id}", admin(ih.Get))
	mux.Handle("POST /invoices/{id}", admin(ih.Update))
	mux.Handle("DELETE /invoices/{id}", admin(ih.Delete))

	mux.Handle("GET /dashboard", admin(dh.Stats))

	return middleware.Actor(middleware.Recover(middleware.Logging(mux)))
}
