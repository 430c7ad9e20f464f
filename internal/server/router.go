package server

import (
	"context"
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/cleanbiz/auth"
	"github.com/diewo77/cleanbiz/httpx"
	"github.com/diewo77/cleanbiz/internal/handlers"
	"github.com/diewo77/cleanbiz/internal/models"
	"github.com/diewo77/cleanbiz/internal/services"
	"github.com/diewo77/cleanbiz/internal/store"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	// Configure a user verifier so RequireAuth can ensure the user still exists.
	auth.SetUserVerifier(func(_ context.Context, uid uint) bool {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	// --- Health endpoints ---
	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		// Perform a lightweight DB check (SELECT 1) – ignore detailed errors in body
		if err := db.Exec("SELECT 1").Error; err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			if _, werr := w.Write([]byte(`{"status":"degraded"}`)); werr != nil {
				_ = werr
			}
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	st := store.New(db)

	// Auth endpoints (signup/login seed the demo dataset per user)
	authHandler := handlers.NewAuthHandler(db, st)
	authHandler.Register(mux)

	protect := func(h http.HandlerFunc) http.Handler {
		return auth.Middleware(auth.RequireAuth(h))
	}

	// Product endpoints. List/Create via /products; update/delete via
	// /products/update & /products/delete for simplicity.
	ph := handlers.NewProductHandler(services.NewProductService(st))
	mux.Handle("/products", protect(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ph.List(w, r)
		case http.MethodPost:
			ph.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	}))
	mux.Handle("/products/update", protect(ph.Update))
	mux.Handle("/products/delete", protect(ph.Delete))

	// Customer endpoints
	ch := handlers.NewCustomerHandler(services.NewCustomerService(st))
	mux.Handle("/customers", protect(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ch.List(w, r)
		case http.MethodPost:
			ch.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	}))
	mux.Handle("/customers/update", protect(ch.Update))
	mux.Handle("/customers/delete", protect(ch.Delete))

	// Invoice endpoints
	ih := handlers.NewInvoiceHandler(services.NewInvoiceService(st))
	mux.Handle("/invoices", protect(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ih.List(w, r)
		case http.MethodPost:
			ih.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	}))
	mux.Handle("/invoices/update", protect(ih.Update))
	mux.Handle("/invoices/status", protect(ih.SetStatus))
	mux.Handle("/invoices/delete", protect(ih.Delete))

	// Dashboard
	dh := handlers.NewDashboardHandler(services.NewStatsService(st))
	mux.Handle("/dashboard", protect(dh.Stats))

	return mux
}
