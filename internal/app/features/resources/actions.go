// internal/app/features/resources/actions.go
package resources

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/resourcehub/internal/app/system/limits"
	"github.com/dalemusser/resourcehub/internal/app/system/timeouts"
	"github.com/dalemusser/resourcehub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const loadFailedMsg = "The resource list could not be loaded. Please try again."

// HandleSearch replaces the search text (form field "q").
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxFormSize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	q := limits.ClampSearch(strings.TrimSpace(r.PostFormValue("q")))
	h.act(w, r, "search resources", func(ctx context.Context, b *Browser) error {
		return b.SetSearchQuery(ctx, q)
	})
}

// HandleToggleCategory checks or unchecks the category named in the path.
func (h *Handler) HandleToggleCategory(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	h.act(w, r, "toggle category", func(ctx context.Context, b *Browser) error {
		return b.ToggleCategory(ctx, id)
	})
}

// HandleNextPage moves forward one page.
func (h *Handler) HandleNextPage(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "next page", func(ctx context.Context, b *Browser) error {
		return b.NextPage(ctx)
	})
}

// HandlePrevPage moves back one page.
func (h *Handler) HandlePrevPage(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "previous page", func(ctx context.Context, b *Browser) error {
		return b.PrevPage(ctx)
	})
}

// act restores the visitor's browser, applies fn, saves the new state and
// answers with the results fragment (HTMX) or a redirect to the full page.
func (h *Handler) act(w http.ResponseWriter, r *http.Request, op string, fn func(context.Context, *Browser) error) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, op)
	defer cancel()

	b := h.browser(h.State.Load(r))

	start := time.Now()
	err := fn(ctx, b)
	// An action that left the query unchanged did not fetch; the fragment
	// still needs the current page.
	if err == nil && !b.Fetched() {
		err = b.LoadResources(ctx)
	}
	took := time.Since(start)

	h.saveState(w, r, b)

	if err != nil {
		if !isHTMX(r) {
			h.Log.Warn("browse: "+op+" failed", zap.Error(err))
			http.Redirect(w, r, "/resources", http.StatusSeeOther)
			return
		}
		h.ErrLog.LogServerError(w, r, "browse: "+op+" failed", err, loadFailedMsg, "/resources")
		return
	}

	snap := b.Snapshot()
	h.record(ctx, snap, took)

	if !isHTMX(r) {
		http.Redirect(w, r, "/resources", http.StatusSeeOther)
		return
	}
	base := viewdata.NewBaseVM(r, "Resources")
	templates.RenderSnippet(w, "resources_results", buildResults(snap, base.CSRFToken))
}
