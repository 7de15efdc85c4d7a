// internal/app/features/resources/handler.go
package resources

import (
	"context"
	"net/http"
	"time"

	uierrors "github.com/dalemusser/resourcehub/internal/app/features/errors"
	"github.com/dalemusser/resourcehub/internal/app/store/searchlog"
	"github.com/dalemusser/resourcehub/internal/app/system/timeouts"
	"github.com/dalemusser/resourcehub/internal/app/system/uistate"
	"go.uber.org/zap"
)

// SearchLog records browse queries and reports the popular ones.
// *searchlog.Store satisfies it.
type SearchLog interface {
	Record(ctx context.Context, e searchlog.Entry) error
	TopSearches(ctx context.Context, since time.Time, n int) ([]searchlog.SearchCount, error)
}

// Handler serves the browse page and its HTMX actions.
//
// Every request builds a fresh Browser from the visitor's saved state, so no
// per-visitor data lives in the process.
type Handler struct {
	Catalog   Source
	State     *uistate.Store
	SearchLog SearchLog // nil disables recording and the popular-searches hint
	Log       *zap.Logger
	ErrLog    *uierrors.ErrorLogger
}

// NewHandler constructs a Handler. Pass a nil SearchLog to disable it.
func NewHandler(src Source, state *uistate.Store, sl SearchLog, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Catalog:   src,
		State:     state,
		SearchLog: sl,
		Log:       logger,
		ErrLog:    errLog,
	}
}

// browser returns a Browser positioned at st.
func (h *Handler) browser(st uistate.State) *Browser {
	b := NewBrowser(h.Catalog, h.Log)
	b.Restore(st.CategoryIDs, st.Search, st.Page)
	return b
}

// saveState persists the user-controlled part of b. A failure only costs the
// visitor their selection, so it is logged and otherwise ignored.
func (h *Handler) saveState(w http.ResponseWriter, r *http.Request, b *Browser) {
	snap := b.Snapshot()
	err := h.State.Save(w, r, uistate.State{
		CategoryIDs: snap.CheckedCategoryIDs,
		Search:      snap.SearchQuery,
		Page:        snap.CurrentPage,
	})
	if err != nil {
		h.Log.Warn("browse state: save failed", zap.Error(err))
	}
}

// record writes one search log entry for a completed fetch.
func (h *Handler) record(ctx context.Context, snap Snapshot, took time.Duration) {
	if h.SearchLog == nil || snap.CurrentPage < 1 {
		return
	}
	ctx, cancel := timeouts.WithTimeout(context.WithoutCancel(ctx), timeouts.Short(), h.Log, "record search")
	defer cancel()

	err := h.SearchLog.Record(ctx, searchlog.Entry{
		Search:      snap.SearchQuery,
		CategoryIDs: snap.CheckedCategoryIDs,
		Page:        snap.CurrentPage,
		TotalCount:  snap.TotalCount,
		TookMS:      took.Milliseconds(),
	})
	if err != nil {
		h.Log.Warn("search log: record failed", zap.Error(err))
	}
}

// popularSearches returns up to n searches recorded over the last 30 days.
func (h *Handler) popularSearches(ctx context.Context, n int) []string {
	if h.SearchLog == nil {
		return nil
	}
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Short(), h.Log, "popular searches")
	defer cancel()

	rows, err := h.SearchLog.TopSearches(ctx, time.Now().UTC().AddDate(0, 0, -30), n)
	if err != nil {
		h.Log.Warn("search log: top searches failed", zap.Error(err))
		return nil
	}
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.Display != "" {
			out = append(out, row.Display)
			continue
		}
		out = append(out, row.Search)
	}
	return out
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
