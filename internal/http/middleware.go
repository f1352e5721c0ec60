package http

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"time"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	terminalIDKey
)

const (
	TerminalHeader    = "X-Terminal-ID"
	DefaultTerminalID = "default"
)

var terminalIDPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,64}$`)

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = fmt.Sprintf("req-%d", time.Now().UnixNano())
		}

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TerminalMiddleware resolves which cashier terminal the request belongs to.
// Requests without the header share the default terminal.
func TerminalMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(TerminalHeader)
		if id == "" {
			id = DefaultTerminalID
		}
		if !terminalIDPattern.MatchString(id) {
			respondError(w, http.StatusBadRequest, "invalid_terminal", "malformed "+TerminalHeader+" header")
			return
		}
		ctx := context.WithValue(r.Context(), terminalIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}

func getTerminalID(ctx context.Context) string {
	if id, ok := ctx.Value(terminalIDKey).(string); ok {
		return id
	}
	return DefaultTerminalID
}
