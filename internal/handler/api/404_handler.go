package api

import (
	"net/http"
)

func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondJSON(w, r, http.StatusNotFound, ErrorResponse{
			Error:   "Not found",
			Message: "This endpoint does not exist",
		})
	}
}
