package middleware

import (
	"log"
	"net/http"
	"strings"

	"Nest/internal/core/env"
	"Nest/internal/core/posts"
)

// CallerHeader carries the caller principal.
// The header is trusted; identity is established by whatever fronts this service.
const CallerHeader = "X-Nest-Caller"

// CallerMiddleware injects the caller principal into the request context
type CallerMiddleware struct{}

// NewCallerMiddleware creates a new caller middleware
func NewCallerMiddleware() *CallerMiddleware {
	return &CallerMiddleware{}
}

// RequireCaller rejects requests without a caller principal with 401.
// Otherwise the principal is placed in the context for env.System to read.
func (m *CallerMiddleware) RequireCaller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller := strings.TrimSpace(r.Header.Get(CallerHeader))
		if caller == "" {
			log.Printf("[AUTH_FAILURE] type=missing_caller ip=%s method=%s path=%s",
				r.RemoteAddr, r.Method, r.URL.Path)
			writeAuthError(w, "Missing "+CallerHeader+" header")
			return
		}

		ctx := env.WithCaller(r.Context(), posts.Principal(caller))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalCaller loads the caller principal if present, but doesn't require it
func (m *CallerMiddleware) OptionalCaller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller := strings.TrimSpace(r.Header.Get(CallerHeader))
		if caller == "" {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(env.WithCaller(r.Context(), posts.Principal(caller))))
	})
}

// GetCaller returns the caller principal injected by the middleware, or ""
func GetCaller(r *http.Request) posts.Principal {
	caller, _ := env.CallerFrom(r.Context())
	return caller
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	// Simple error response matching XRPC error format
	response := `{"error":"AuthRequired","message":"` + message + `"}`
	if _, err := w.Write([]byte(response)); err != nil {
		log.Printf("Failed to write auth error response: %v", err)
	}
}
