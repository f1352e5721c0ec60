package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type RouterConfig struct {
	RequestTimeout     time.Duration
	MaxRequestBodySize int64
	Metrics            http.Handler
}

func NewRouter(h *CashierHandler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	if cfg.MaxRequestBodySize > 0 {
		r.Use(middleware.RequestSize(cfg.MaxRequestBodySize))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(TerminalMiddleware)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Post("/items", h.AddItem)
			r.Put("/items/{product_id}", h.SetQuantity)
			r.Post("/items/{product_id}/increment", h.Increment)
			r.Post("/items/{product_id}/decrement", h.Decrement)
			r.Delete("/items/{product_id}", h.RemoveItem)
			r.Put("/member", h.SelectMember)
			r.Delete("/member", h.ClearMember)
			r.Put("/discount", h.SetDiscount)
			r.Get("/receipt", h.Receipt)
			r.Get("/rewards", h.Rewards)
			r.Post("/checkout", h.Checkout)
		})

		r.Route("/hang-orders", func(r chi.Router) {
			r.Get("/", h.ListParked)
			r.Post("/", h.Park)
			r.Post("/{hang_id}/restore", h.Restore)
			r.Delete("/{hang_id}", h.Discard)
		})
	})

	return otelhttp.NewHandler(r, "cashier-http")
}
