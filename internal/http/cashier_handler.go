package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fjod/pharmacy_cashier/internal/cart"
	"github.com/fjod/pharmacy_cashier/internal/domain"
	"github.com/fjod/pharmacy_cashier/internal/metrics"
	"github.com/go-chi/chi/v5"
)

type CashierHandler struct {
	sessions *SessionRegistry
	timeout  time.Duration
	metrics  *metrics.Registry
	log      *slog.Logger
}

func NewCashierHandler(sessions *SessionRegistry, timeout time.Duration, m *metrics.Registry, log *slog.Logger) *CashierHandler {
	if log == nil {
		log = slog.Default()
	}
	return &CashierHandler{
		sessions: sessions,
		timeout:  timeout,
		metrics:  m,
		log:      log,
	}
}

type CartView struct {
	Lines   []domain.CartLine `json:"lines"`
	Member  *domain.Member    `json:"member,omitempty"`
	Summary domain.Summary    `json:"summary"`
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
}

// Quantity accepts a JSON number or the raw text typed by the operator.
type SetQuantityRequestDTO struct {
	Quantity json.RawMessage `json:"quantity"`
}

type SelectMemberRequestDTO struct {
	MemberID string `json:"member_id"`
}

type DiscountRequestDTO struct {
	Amount json.RawMessage `json:"amount"`
}

type CheckoutResponseDTO struct {
	OrderID string              `json:"order_id"`
	Order   domain.OrderPayload `json:"order"`
}

func viewOf(s *cart.Session) CartView {
	lines := s.Lines()
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return CartView{Lines: lines, Member: s.Member(), Summary: s.Summary()}
}

// run executes fn against the caller's terminal session with the request
// timeout applied.
func (h *CashierHandler) run(w http.ResponseWriter, r *http.Request, status int, fn func(ctx context.Context, s *cart.Session) (any, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var out any
	err := h.sessions.With(getTerminalID(r.Context()), func(s *cart.Session) error {
		var err error
		out, err = fn(ctx, s)
		return err
	})
	if err != nil {
		handleCartError(r.Context(), h.log, w, err)
		return
	}
	if out == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, status, out)
}

func (h *CashierHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, http.StatusOK, func(_ context.Context, s *cart.Session) (any, error) {
		return viewOf(s), nil
	})
}

func (h *CashierHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	h.mutate(w, r, http.StatusCreated, cart.Command{Action: cart.ActionAdd, ProductID: req.ProductID})
}

func (h *CashierHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var req SetQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	h.mutate(w, r, http.StatusOK, cart.Command{
		Action:    cart.ActionSetQuantity,
		ProductID: chi.URLParam(r, "product_id"),
		Quantity:  cart.ParseQuantity(rawText(req.Quantity)),
	})
}

func (h *CashierHandler) Increment(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, http.StatusOK, cart.Command{Action: cart.ActionIncrement, ProductID: chi.URLParam(r, "product_id")})
}

func (h *CashierHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, http.StatusOK, cart.Command{Action: cart.ActionDecrement, ProductID: chi.URLParam(r, "product_id")})
}

func (h *CashierHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, http.StatusOK, cart.Command{Action: cart.ActionRemove, ProductID: chi.URLParam(r, "product_id")})
}

func (h *CashierHandler) mutate(w http.ResponseWriter, r *http.Request, status int, cmd cart.Command) {
	h.run(w, r, status, func(ctx context.Context, s *cart.Session) (any, error) {
		if err := s.Dispatch(ctx, cmd); err != nil {
			return nil, err
		}
		return viewOf(s), nil
	})
}

func (h *CashierHandler) SelectMember(w http.ResponseWriter, r *http.Request) {
	var req SelectMemberRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	h.run(w, r, http.StatusOK, func(ctx context.Context, s *cart.Session) (any, error) {
		if err := s.SelectMember(ctx, req.MemberID); err != nil {
			return nil, err
		}
		return viewOf(s), nil
	})
}

func (h *CashierHandler) ClearMember(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, http.StatusOK, func(_ context.Context, s *cart.Session) (any, error) {
		s.ClearMember()
		return viewOf(s), nil
	})
}

func (h *CashierHandler) SetDiscount(w http.ResponseWriter, r *http.Request) {
	var req DiscountRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	h.run(w, r, http.StatusOK, func(_ context.Context, s *cart.Session) (any, error) {
		if err := s.SetDiscountInput(rawText(req.Amount)); err != nil {
			return nil, err
		}
		return viewOf(s), nil
	})
}

func (h *CashierHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, http.StatusOK, func(_ context.Context, s *cart.Session) (any, error) {
		return s.Receipt(), nil
	})
}

func (h *CashierHandler) Rewards(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, http.StatusOK, func(ctx context.Context, s *cart.Session) (any, error) {
		return s.MemberRewards(ctx)
	})
}

func (h *CashierHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var in cart.CheckoutInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil && err != io.EOF {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	h.run(w, r, http.StatusCreated, func(ctx context.Context, s *cart.Session) (any, error) {
		payload, err := s.Payload(in)
		if err != nil {
			return nil, err
		}
		orderID, err := s.Checkout(ctx, in)
		if err != nil {
			h.metrics.CheckoutFailures.Inc()
			return nil, err
		}
		h.metrics.Checkouts.Inc()
		return CheckoutResponseDTO{OrderID: orderID, Order: payload}, nil
	})
}

func (h *CashierHandler) ListParked(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, http.StatusOK, func(ctx context.Context, s *cart.Session) (any, error) {
		orders, err := s.ParkedOrders(ctx)
		if err != nil {
			return nil, err
		}
		if orders == nil {
			orders = []domain.ParkedOrder{}
		}
		return orders, nil
	})
}

func (h *CashierHandler) Park(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, http.StatusCreated, func(ctx context.Context, s *cart.Session) (any, error) {
		order, err := s.Park(ctx)
		if err != nil {
			return nil, err
		}
		h.metrics.Parked.Inc()
		return order, nil
	})
}

func (h *CashierHandler) Restore(w http.ResponseWriter, r *http.Request) {
	hangID := chi.URLParam(r, "hang_id")
	h.run(w, r, http.StatusOK, func(ctx context.Context, s *cart.Session) (any, error) {
		if _, err := s.Restore(ctx, hangID); err != nil {
			return nil, err
		}
		h.metrics.Restored.Inc()
		return viewOf(s), nil
	})
}

func (h *CashierHandler) Discard(w http.ResponseWriter, r *http.Request) {
	hangID := chi.URLParam(r, "hang_id")
	h.run(w, r, http.StatusNoContent, func(ctx context.Context, s *cart.Session) (any, error) {
		if err := s.Discard(ctx, hangID); err != nil {
			return nil, err
		}
		h.metrics.Discarded.Inc()
		return nil, nil
	})
}

// rawText returns the operator input carried by a JSON string or number.
func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return strings.TrimSpace(string(raw))
}
