package api

import (
	"encoding/json"
	"net/http"

	"github.com/fhuszti/rated-posters-ms-go/internal/logger"
)

type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// WriteError logs err (if any) with the request context and writes resp.
func WriteError(w http.ResponseWriter, r *http.Request, status int, resp ErrorResponse, err error) {
	ctx := r.Context()
	if err != nil {
		logger.Errorf(ctx, "❌  %s: %v", resp.Error, err)
	} else if resp.Message != "" {
		logger.Errorf(ctx, "❌  %s: %s", resp.Error, resp.Message)
	} else {
		logger.Error(ctx, "❌  "+resp.Error)
	}
	w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
	RespondJSON(w, r, status, resp)
}

func RespondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf(r.Context(), "❌  Failed to encode JSON response: %v", err)
	}
}
