package server

import (
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/collabdesk/billing-api/httpx"
	"github.com/collabdesk/billing-api/internal/handlers"
)

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ","))
	httpx.Fail(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// New constructs the root http.Handler with all routes applied.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.OK(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		// Lightweight DB check (SELECT 1)
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.Fail(w, http.StatusServiceUnavailable, "degraded")
			return
		}
		httpx.OK(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	ph := handlers.NewProjectHandler(db)
	mux.HandleFunc("/projects", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			ph.Create(w, r)
		case http.MethodGet:
			ph.ListByCreator(w, r)
		case http.MethodDelete:
			ph.Remove(w, r)
		default:
			methodNotAllowed(w, "GET", "POST", "DELETE")
		}
	})
	mux.HandleFunc("/projects/members", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, "GET")
			return
		}
		ph.Members(w, r)
	})

	sh := handlers.NewServiceHandler(db)
	mux.HandleFunc("/services", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			sh.Create(w, r)
		case http.MethodGet:
			sh.List(w, r)
		case http.MethodPatch:
			sh.Edit(w, r)
		case http.MethodDelete:
			sh.Remove(w, r)
		default:
			methodNotAllowed(w, "GET", "POST", "PATCH", "DELETE")
		}
	})

	ih := handlers.NewInvoiceHandler(db)
	mux.HandleFunc("/invoice", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			ih.Create(w, r)
		case http.MethodDelete:
			ih.Remove(w, r)
		default:
			methodNotAllowed(w, "POST", "DELETE")
		}
	})
	mux.HandleFunc("/invoice/view", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, "GET")
			return
		}
		ih.View(w, r)
	})
	mux.HandleFunc("/invoice/payment-history", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, "GET")
			return
		}
		ih.PaymentHistory(w, r)
	})

	ch := handlers.NewClientHandler(db)
	mux.HandleFunc("/clients", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			ch.Create(w, r)
		case http.MethodGet:
			ch.List(w, r)
		default:
			methodNotAllowed(w, "GET", "POST")
		}
	})

	payh := handlers.NewPaymentHandler(db)
	mux.HandleFunc("/payments", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			payh.Create(w, r)
		case http.MethodGet:
			payh.List(w, r)
		default:
			methodNotAllowed(w, "GET", "POST")
		}
	})

	uh := handlers.NewUserHandler(db)
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			uh.Create(w, r)
		case http.MethodGet:
			uh.Get(w, r)
		default:
			methodNotAllowed(w, "GET", "POST")
		}
	})

	return mux
}
