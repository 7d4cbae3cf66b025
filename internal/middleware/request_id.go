package middleware

import (
	"context"
	"net/http"

	"github.com/fhuszti/rated-posters-ms-go/internal/api_context"
	"github.com/fhuszti/rated-posters-ms-go/internal/uuid"
)

const RequestIDHeader = "X-Request-ID"

// WithRequestID reuses a well-formed incoming request id or mints a new one.
func WithRequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(r.Header.Get(RequestIDHeader))
			if err != nil {
				id = uuid.NewUUID()
			}
			w.Header().Set(RequestIDHeader, id.String())

			ctx := context.WithValue(r.Context(), api_context.RequestIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
