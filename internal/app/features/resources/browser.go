package resources

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/dalemusser/resourcehub/internal/app/store/catalog"
	"github.com/dalemusser/resourcehub/internal/app/system/paging"
	"github.com/dalemusser/resourcehub/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Source is what a Browser reads from. *catalog.Store satisfies it.
type Source interface {
	Categories(ctx context.Context) ([]models.Category, error)
	Resources(ctx context.Context, f catalog.Filter) (catalog.Page, error)
}

// State is the user-controlled and fetch-derived state of one Browser.
type State struct {
	CheckedCategoryIDs []string // kept in the order the user checked them
	SearchQuery        string
	CurrentPage        int

	TotalResources int
	TotalCount     int
	TotalPages     int
	Loading        bool
}

// Snapshot is a consistent copy of everything a Browser holds.
type Snapshot struct {
	State
	Categories []models.Category
	Resources  []models.Resource
}

// IsChecked reports whether the category id is part of the selection.
func (s Snapshot) IsChecked(id string) bool {
	return slices.Contains(s.CheckedCategoryIDs, id)
}

// Browser owns the category list, the current page of resources, and the
// filter/paging state that selects it.
//
// Mutators that change the page, the category selection, or the search text
// reload resources themselves. Loads run outside the lock; when loads overlap
// the last one to complete wins.
type Browser struct {
	src Source
	log *zap.Logger

	mu         sync.Mutex
	state      State
	categories []models.Category
	resources  []models.Resource
	inflight   int  // resource loads currently running
	fetched    bool // at least one resource load has started
}

// NewBrowser returns a Browser on page 1 with no filters.
func NewBrowser(src Source, logger *zap.Logger) *Browser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Browser{
		src:        src,
		log:        logger,
		state:      State{CurrentPage: 1, Loading: true},
		categories: []models.Category{},
		resources:  []models.Resource{},
	}
}

// Restore replaces the user-controlled part of the state (selection, search
// text, page) without fetching. Used to rehydrate a Browser from a session.
func (b *Browser) Restore(categoryIDs []string, search string, page int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.CheckedCategoryIDs = slices.Clone(categoryIDs)
	b.state.SearchQuery = search
	b.state.CurrentPage = page
}

// Init fetches categories and the current page of resources concurrently.
// A failure in one fetch does not cancel the other; the first error is
// returned once both have finished.
func (b *Browser) Init(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return b.LoadCategories(ctx) })
	g.Go(func() error { return b.LoadResources(ctx) })
	return g.Wait()
}

// LoadCategories replaces the category list with a fresh copy from the source.
func (b *Browser) LoadCategories(ctx context.Context) error {
	cats, err := b.src.Categories(ctx)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.categories = cats
	b.mu.Unlock()

	b.log.Debug("categories loaded", zap.Int("count", len(cats)))
	return nil
}

// LoadResources fetches the page selected by the current state. On failure
// the previous resources and counts stay in place.
func (b *Browser) LoadResources(ctx context.Context) error {
	b.mu.Lock()
	f := b.filterLocked()
	b.inflight++
	b.fetched = true
	b.state.Loading = true
	b.mu.Unlock()

	page, err := b.src.Resources(ctx, f)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.inflight--
	b.state.Loading = b.inflight > 0
	if err != nil {
		return err
	}
	b.resources = page.Entries
	b.state.TotalCount = page.TotalCount
	b.state.TotalResources = page.TotalResources
	b.state.TotalPages = paging.TotalPages(page.TotalCount)

	b.log.Debug("resources loaded",
		zap.Int("offset", f.Offset),
		zap.Int("shown", len(page.Entries)),
		zap.Int("total_count", page.TotalCount))
	return nil
}

// Fetched reports whether a resources load has been started on this Browser.
func (b *Browser) Fetched() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fetched
}

// ToggleCategory adds id to the selection, or removes it if already present.
func (b *Browser) ToggleCategory(ctx context.Context, id string) error {
	return b.mutate(ctx, func(s *State) {
		if i := slices.Index(s.CheckedCategoryIDs, id); i >= 0 {
			s.CheckedCategoryIDs = slices.Delete(slices.Clone(s.CheckedCategoryIDs), i, i+1)
			return
		}
		s.CheckedCategoryIDs = append(slices.Clone(s.CheckedCategoryIDs), id)
	})
}

// SetCategories replaces the whole selection.
func (b *Browser) SetCategories(ctx context.Context, ids []string) error {
	return b.mutate(ctx, func(s *State) {
		s.CheckedCategoryIDs = slices.Clone(ids)
	})
}

// SetSearchQuery replaces the free-text search.
func (b *Browser) SetSearchQuery(ctx context.Context, q string) error {
	return b.mutate(ctx, func(s *State) {
		s.SearchQuery = q
	})
}

// NextPage moves forward one page. There is no upper bound check.
func (b *Browser) NextPage(ctx context.Context) error {
	return b.mutate(ctx, func(s *State) {
		s.CurrentPage++
	})
}

// PrevPage moves back one page. There is no lower bound check.
func (b *Browser) PrevPage(ctx context.Context) error {
	return b.mutate(ctx, func(s *State) {
		s.CurrentPage--
	})
}

// Snapshot returns a copy of the current state and data.
func (b *Browser) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	st := b.state
	st.CheckedCategoryIDs = slices.Clone(b.state.CheckedCategoryIDs)
	return Snapshot{
		State:      st,
		Categories: slices.Clone(b.categories),
		Resources:  slices.Clone(b.resources),
	}
}

// mutate applies fn under the lock and reloads resources if any query input
// changed.
func (b *Browser) mutate(ctx context.Context, fn func(*State)) error {
	b.mu.Lock()
	before := queryKey(b.state)
	fn(&b.state)
	changed := queryKey(b.state) != before
	b.mu.Unlock()

	if !changed {
		return nil
	}
	return b.LoadResources(ctx)
}

func (b *Browser) filterLocked() catalog.Filter {
	return catalog.Filter{
		Offset:      paging.Offset(b.state.CurrentPage),
		Limit:       paging.PageSize,
		CategoryIDs: slices.Clone(b.state.CheckedCategoryIDs),
		Search:      b.state.SearchQuery,
	}
}

type queryInputs struct {
	page   int
	cats   string
	search string
}

// queryKey captures the inputs of a resources query. Category order is
// significant here because it is significant on the wire.
func queryKey(s State) queryInputs {
	return queryInputs{
		page:   s.CurrentPage,
		cats:   strings.Join(s.CheckedCategoryIDs, "\x00"),
		search: s.SearchQuery,
	}
}
