// internal/app/features/resources/list.go
package resources

import (
	"net/http"
	"time"

	"github.com/dalemusser/resourcehub/internal/app/system/limits"
	"github.com/dalemusser/resourcehub/internal/app/system/paging"
	"github.com/dalemusser/resourcehub/internal/app/system/timeouts"
	"github.com/dalemusser/resourcehub/internal/app/system/uistate"
	"github.com/dalemusser/resourcehub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

const popularLimit = 5

// ServeList renders the browse page.
//
// The visitor's saved selection is the starting point; page, q and cat
// (repeatable) query parameters override it so a browse view can be shared
// as a link. A failed fetch still renders the page with whatever loaded and
// an alert.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "browse resources")
	defer cancel()

	st := applyOverrides(r, h.State.Load(r))
	b := h.browser(st)

	start := time.Now()
	err := b.Init(ctx)
	took := time.Since(start)

	snap := b.Snapshot()
	if err != nil {
		h.Log.Warn("browse: load failed",
			zap.Error(err),
			zap.Int("page", snap.CurrentPage),
			zap.String("q", snap.SearchQuery))
	} else {
		h.record(ctx, snap, took)
	}

	h.saveState(w, r, b)

	base := viewdata.NewBaseVM(r, "Resources")
	data := listData{
		BaseVM:     base,
		Categories: buildCategories(snap),
		Popular:    h.popularSearches(ctx, popularLimit),
		Results:    buildResults(snap, base.CSRFToken),
	}
	if err != nil {
		data.Results.Alert = loadFailedMsg
	}

	templates.Render(w, r, "resources_list", data)
}

// applyOverrides lets query parameters replace parts of the saved state.
func applyOverrides(r *http.Request, st uistate.State) uistate.State {
	if p, ok := paging.ParsePage(r); ok {
		st.Page = p
	}
	vals := r.URL.Query()
	if vals.Has("q") {
		st.Search = limits.ClampSearch(query.Search(r, "q"))
	}
	if vals.Has("cat") {
		st.CategoryIDs = nil
		for _, id := range vals["cat"] {
			if id != "" {
				st.CategoryIDs = append(st.CategoryIDs, id)
			}
		}
	}
	return st
}
