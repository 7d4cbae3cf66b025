package api

import (
	"errors"
	"net/http"

	"github.com/fhuszti/rated-posters-ms-go/internal/api_context"
	"github.com/fhuszti/rated-posters-ms-go/internal/logger"
	"github.com/fhuszti/rated-posters-ms-go/internal/port"
	"github.com/fhuszti/rated-posters-ms-go/internal/usecase/poster"
)

type DeleteRatedPosterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DeleteRatedPosterHandler removes the stored rated poster of a content id.
func DeleteRatedPosterHandler(svc port.RatedPosterDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.ContentIDFromContext(r.Context())
		if !ok {
			WriteError(w, r, http.StatusBadRequest, ErrorResponse{Error: "Content ID is required"}, nil)
			return
		}

		if err := svc.DeleteRatedPoster(r.Context(), id); err != nil {
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
				Error:   "Failed to delete poster",
				Message: "Poster store delete failed",
			}, err)
			return
		}

		RespondJSON(w, r, http.StatusOK, DeleteRatedPosterResponse{Success: true, Message: "Poster deleted successfully"})
		logger.Infof(r.Context(), "✅  Successfully deleted rated poster %s", id)
	}
}
