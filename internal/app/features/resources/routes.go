// internal/app/features/resources/routes.go
package resources

import (
	"github.com/dalemusser/resourcehub/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the browse page and its actions under whatever base path
// the caller chooses (typically "/resources" from bootstrap). Every request
// that reaches the API is subject to limiter; pass nil to disable limiting.
//
// Example from bootstrap:
//
//	h := resources.NewHandler(store, state, searchLog, errLog, logger)
//	r.Mount("/resources", resources.Routes(h, limiter))
func Routes(h *Handler, limiter *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()

	if limiter != nil {
		r.Use(limiter.Middleware)
	}

	// Full page (query overrides: page, q, cat)
	r.Get("/", h.ServeList)

	// HTMX actions; each falls back to a redirect for plain form posts.
	r.Post("/search", h.HandleSearch)
	r.Post("/categories/{id}/toggle", h.HandleToggleCategory)
	r.Post("/page/next", h.HandleNextPage)
	r.Post("/page/prev", h.HandlePrevPage)

	return r
}
