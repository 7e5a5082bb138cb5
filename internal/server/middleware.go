package server

import (
	"context"
	"net/http"
)

type userIDKey struct{}

// corsMiddleware applies permissive CORS headers and answers preflight
// requests unconditionally.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-User-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// identityMiddleware picks up the optional user identity forwarded by the
// auth proxy in front of this service. No header means an anonymous caller.
func identityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := r.Header.Get("X-User-ID"); id != "" {
			r = r.WithContext(context.WithValue(r.Context(), userIDKey{}, id))
		}
		next.ServeHTTP(w, r)
	})
}

// userIDFromContext returns the acting user's ID, or nil for anonymous
// requests.
func userIDFromContext(ctx context.Context) *string {
	if id, ok := ctx.Value(userIDKey{}).(string); ok {
		return &id
	}
	return nil
}
