package handler

import (
	"net/http"

	"github.com/fhuszti/rated-posters-ms-go/internal/handler/api"
	cMiddleware "github.com/fhuszti/rated-posters-ms-go/internal/middleware"
	"github.com/fhuszti/rated-posters-ms-go/internal/port"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Services holds what the router dispatches to.
type Services struct {
	Cacher  port.RatedPosterCacher
	Getter  port.RatedPosterGetter
	Deleter port.RatedPosterDeleter

	// Files is mounted under FilesRoute when the local fs driver is in use.
	Files      http.Handler
	FilesRoute string

	// Metrics is mounted on /metrics when set.
	Metrics http.Handler
}

func NewRouter(svcs Services) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(cMiddleware.WithRequestID())
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cMiddleware.CORS())

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	r.Get("/healthz", api.HealthHandler())
	if svcs.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", svcs.Metrics)
	}

	r.Post("/cache-rated-poster", api.CacheRatedPosterHandler(svcs.Cacher))

	r.Route("/rated-poster/{contentId}", func(r chi.Router) {
		r.Use(cMiddleware.WithContentID())
		r.Get("/", api.GetRatedPosterHandler(svcs.Getter))
		r.Delete("/", api.DeleteRatedPosterHandler(svcs.Deleter))
	})

	if svcs.Files != nil && svcs.FilesRoute != "" {
		r.Method(http.MethodGet, svcs.FilesRoute+"/*", http.StripPrefix(svcs.FilesRoute, svcs.Files))
	}

	return r
}
