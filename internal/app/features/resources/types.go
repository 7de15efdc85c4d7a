// internal/app/features/resources/types.go
package resources

import (
	"html/template"

	"github.com/dalemusser/resourcehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/resourcehub/internal/app/system/paging"
	"github.com/dalemusser/resourcehub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/urlutil"
)

// categoryItem is one checkbox in the category filter.
type categoryItem struct {
	ID      string
	Title   string
	Checked bool
}

// resourceItem is one row in the results list.
type resourceItem struct {
	ID         string
	Title      string
	Summary    template.HTML // sanitized
	URL        string        // empty unless an absolute http(s) URL
	Type       string
	Categories []string
}

// resultsData is the view model for the "resources_results" fragment: the
// counts line, the list itself and the pager.
type resultsData struct {
	CSRFToken string
	Search    string

	Items []resourceItem

	TotalResources int
	TotalCount     int
	Page           int
	TotalPages     int
	Shown          int
	RangeStart     int
	RangeEnd       int
	HasPrev        bool
	HasNext        bool

	Alert string
}

// listData is the view model for the full browse page.
type listData struct {
	viewdata.BaseVM

	Categories []categoryItem
	Popular    []string
	Results    resultsData
}

func buildCategories(snap Snapshot) []categoryItem {
	items := make([]categoryItem, 0, len(snap.Categories))
	for _, c := range snap.Categories {
		items = append(items, categoryItem{
			ID:      c.ID,
			Title:   c.Title,
			Checked: snap.IsChecked(c.ID),
		})
	}
	return items
}

func buildResults(snap Snapshot, csrfToken string) resultsData {
	items := make([]resourceItem, 0, len(snap.Resources))
	for _, res := range snap.Resources {
		it := resourceItem{
			ID:      res.ID,
			Title:   res.Title,
			Summary: htmlsanitize.SanitizeToHTML(res.Summary),
		}
		if urlutil.IsValidAbsHTTPURL(res.URL) {
			it.URL = res.URL
		}
		if res.HasType() {
			it.Type = res.ResourceType.Title
		}
		for _, c := range res.ResourceCategories {
			it.Categories = append(it.Categories, c.Title)
		}
		items = append(items, it)
	}

	shown := len(items)
	rng := paging.ComputeRange(snap.CurrentPage, shown, snap.TotalPages)
	return resultsData{
		CSRFToken:      csrfToken,
		Search:         snap.SearchQuery,
		Items:          items,
		TotalResources: snap.TotalResources,
		TotalCount:     snap.TotalCount,
		Page:           snap.CurrentPage,
		TotalPages:     snap.TotalPages,
		Shown:          shown,
		RangeStart:     rng.Start,
		RangeEnd:       rng.End,
		HasPrev:        rng.HasPrev,
		HasNext:        rng.HasNext,
	}
}
