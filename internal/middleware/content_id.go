package middleware

import (
	"context"
	"net/http"

	"github.com/fhuszti/rated-posters-ms-go/internal/api_context"
	"github.com/fhuszti/rated-posters-ms-go/internal/handler/api"
	"github.com/fhuszti/rated-posters-ms-go/internal/model"
	"github.com/go-chi/chi/v5"
)

func WithContentID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := chi.URLParam(r, "contentId")
			if raw == "" {
				api.WriteError(w, r, http.StatusBadRequest, api.ErrorResponse{Error: "Content ID is required"}, nil)
				return
			}
			id, err := model.ParseContentID(raw)
			if err != nil {
				api.WriteError(w, r, http.StatusBadRequest, api.ErrorResponse{
					Error:   "Invalid content ID",
					Message: err.Error(),
				}, nil)
				return
			}

			// stash it in context and call the real handler
			ctx := context.WithValue(r.Context(), api_context.ContentIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
