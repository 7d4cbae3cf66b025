package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fhuszti/rated-posters-ms-go/internal/api_context"
	"github.com/go-chi/chi/v5"
)

func TestWithContentIDMiddleware(t *testing.T) {
	mw := WithContentID()

	tests := []struct {
		name           string
		paramValue     string // what chi.URLParam(r, "contentId") returns
		wantStatus     int
		expectNextCall bool // if the next handler should run
	}{
		{"missing param", "", http.StatusBadRequest, false},
		{"path traversal", "..", http.StatusBadRequest, false},
		{"forbidden characters", "tt 123", http.StatusBadRequest, false},
		{"imdb id", "tt0111161", http.StatusNoContent, true},
		{"prefixed id", "kitsu:1234", http.StatusNoContent, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				if id, ok := api_context.ContentIDFromContext(r.Context()); ok {
					w.Header().Set("X-Content-ID", id.String())
				}
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest("GET", "/any", nil)
			// inject chi URLParam
			rctx := chi.NewRouteContext()
			if tc.paramValue != "" {
				rctx.URLParams.Add("contentId", tc.paramValue)
			}
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			rec := httptest.NewRecorder()
			mw(next).ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d; want %d", rec.Code, tc.wantStatus)
			}
			if nextCalled != tc.expectNextCall {
				t.Errorf("nextCalled = %v; want %v", nextCalled, tc.expectNextCall)
			}
			if tc.expectNextCall {
				if got := rec.Header().Get("X-Content-ID"); got != tc.paramValue {
					t.Errorf("content ID in context = %q; want %q", got, tc.paramValue)
				}
			} else if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q; want application/json", ct)
			}
		})
	}
}
