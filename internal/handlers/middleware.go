package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"numbergalaxy/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const PinVerifiedContextKey ContextKey = "pinVerified"

// parentPinHeader carries the parental PIN on gated requests
const parentPinHeader = "X-Parent-Pin"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	settingsService *service.SettingsService
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(settingsService *service.SettingsService) *Middleware {
	return &Middleware{settingsService: settingsService}
}

// RequireParentPin is middleware that gates administrative requests behind
// the parental PIN, supplied in the X-Parent-Pin header.
func (m *Middleware) RequireParentPin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pin := r.Header.Get(parentPinHeader)
		if pin == "" {
			http.Error(w, "Parent PIN required", http.StatusUnauthorized)
			return
		}

		valid, err := m.settingsService.VerifyPin(pin)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error verifying parent PIN", err)
			return
		}
		if !valid {
			http.Error(w, "Incorrect parent PIN", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), PinVerifiedContextKey, true)
		next(w, r.WithContext(ctx))
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// PinVerified reports whether the request passed the parental gate
func PinVerified(ctx context.Context) bool {
	verified, ok := ctx.Value(PinVerifiedContextKey).(bool)
	return ok && verified
}
