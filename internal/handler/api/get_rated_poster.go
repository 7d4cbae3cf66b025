package api

import (
	"errors"
	"net/http"

	"github.com/fhuszti/rated-posters-ms-go/internal/api_context"
	"github.com/fhuszti/rated-posters-ms-go/internal/logger"
	"github.com/fhuszti/rated-posters-ms-go/internal/port"
	"github.com/fhuszti/rated-posters-ms-go/internal/usecase/poster"
)

// GetRatedPosterHandler redirects to the stored rated poster.
func GetRatedPosterHandler(svc port.RatedPosterGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.ContentIDFromContext(r.Context())
		if !ok {
			WriteError(w, r, http.StatusBadRequest, ErrorResponse{Error: "Content ID is required"}, nil)
			return
		}

		url, err := svc.GetRatedPoster(r.Context(), id)
		if err != nil {
			if errors.Is(err, poster.ErrInvalidInput) {
				WriteError(w, r, http.StatusBadRequest, ErrorResponse{Error: "Invalid content ID", Message: err.Error()}, nil)
				return
			}
			if errors.Is(err, poster.ErrObjectNotFound) {
				RespondJSON(w, r, http.StatusNotFound, ErrorResponse{
					Error:   "Poster not found",
					Message: "No poster found for " + id.String(),
				})
				return
			}
			WriteError(w, r, http.StatusInternalServerError, ErrorResponse{
				Error:   "Failed to retrieve poster",
				Message: "Poster store lookup failed",
			}, err)
			return
		}

		w.Header().Set("Cache-Control", "no-cache")
		http.Redirect(w, r, url, http.StatusFound)
		logger.Infof(r.Context(), "✅  Redirected %s to its rated poster", id)
	}
}
