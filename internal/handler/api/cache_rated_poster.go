package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fhuszti/rated-posters-ms-go/internal/logger"
	"github.com/fhuszti/rated-posters-ms-go/internal/model"
	"github.com/fhuszti/rated-posters-ms-go/internal/port"
	"github.com/fhuszti/rated-posters-ms-go/internal/usecase/poster"
	"github.com/fhuszti/rated-posters-ms-go/internal/validation"
)

const maxRequestBody = 64 << 10

const (
	msgAlreadyCached = "Poster already cached"
	msgCreated       = "Poster created and cached"
)

type CacheRatedPosterRequest struct {
	PosterURL string       `json:"posterUrl" validate:"required,http_url"`
	Rating    model.Rating `json:"rating"`
	ContentID string       `json:"contentId" validate:"required,contentid"`
}

type CacheRatedPosterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	URL     string `json:"url"`
}

// CacheRatedPosterHandler returns the stored rated poster for a content id,
// creating it from posterUrl on a miss.
func CacheRatedPosterHandler(svc port.RatedPosterCacher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

		var req CacheRatedPosterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, http.StatusBadRequest, ErrorResponse{Error: "Invalid request", Message: err.Error()}, nil)
			return
		}

		if errs := validation.ValidateStruct(req); errs != nil {
			WriteError(w, r, http.StatusBadRequest, ErrorResponse{
				Error:   "Missing required parameters",
				Message: "posterUrl and contentId are required",
				Fields:  validation.ErrorsToMap(errs),
			}, nil)
			return
		}

		out, err := svc.CacheRatedPoster(r.Context(), port.CacheRatedPosterInput{
			PosterURL: req.PosterURL,
			Rating:    req.Rating,
			ContentID: model.ContentID(req.ContentID),
		})
		if err != nil {
			status, resp := cacheErrorResponse(err)
			WriteError(w, r, status, resp, err)
			return
		}

		msg := msgCreated
		if out.Cached {
			msg = msgAlreadyCached
		}
		RespondJSON(w, r, http.StatusOK, CacheRatedPosterResponse{Success: true, Message: msg, URL: out.URL})
		logger.Infof(r.Context(), "✅  %s for %s", msg, req.ContentID)
	}
}

func cacheErrorResponse(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, poster.ErrInvalidInput):
		return http.StatusBadRequest, ErrorResponse{Error: "Missing required parameters", Message: err.Error()}
	case errors.Is(err, poster.ErrDownload):
		return http.StatusInternalServerError, ErrorResponse{Error: "Failed to create rated poster", Message: "Failed to download poster image"}
	case errors.Is(err, poster.ErrComposition):
		return http.StatusInternalServerError, ErrorResponse{Error: "Failed to create rated poster", Message: "Failed to create rated poster"}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "Failed to create rated poster", Message: "Failed to store rated poster"}
	}
}
