package api

import (
	"net/http"
)

func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondJSON(w, r, http.StatusMethodNotAllowed, ErrorResponse{
			Error:   "Method not allowed",
			Message: r.Method + " is not allowed on " + r.URL.Path,
		})
	}
}
