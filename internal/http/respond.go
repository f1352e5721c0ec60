package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fjod/pharmacy_cashier/internal/cart"
	"github.com/fjod/pharmacy_cashier/pkg/logger"
)

type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleCartError maps the cashier error taxonomy onto HTTP statuses.
func handleCartError(ctx context.Context, log *slog.Logger, w http.ResponseWriter, err error) {
	var (
		status int
		code   string
	)
	switch {
	case errors.Is(err, cart.ErrEmptyCart):
		status, code = http.StatusConflict, "empty_cart"
	case errors.Is(err, cart.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, cart.ErrValidation):
		status, code = http.StatusBadRequest, "invalid_argument"
	case errors.Is(err, context.DeadlineExceeded):
		status, code = http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, cart.ErrCollaborator):
		status, code = http.StatusBadGateway, "backend_unavailable"
	default:
		status, code = http.StatusInternalServerError, "internal_error"
	}

	if status >= http.StatusInternalServerError {
		logger.WithTrace(ctx, log).Error("cashier request failed",
			"request_id", getRequestID(ctx),
			"terminal_id", getTerminalID(ctx),
			"code", code,
			"error", err,
		)
	}
	respondJSON(w, status, ErrorResponse{
		Error:     err.Error(),
		Code:      code,
		RequestID: getRequestID(ctx),
	})
}
