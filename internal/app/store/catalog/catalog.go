// Package catalog reads categories and resources from the remote CMS.
package catalog

import (
	"context"
	"fmt"

	"github.com/dalemusser/resourcehub/internal/app/system/graphql"
	"github.com/dalemusser/resourcehub/internal/domain/models"
)

// Filter holds the variables of a resources query.
type Filter struct {
	Offset      int
	Limit       int
	CategoryIDs []string
	Search      string
}

// Page is one page of resources plus the counts the API reports with it.
type Page struct {
	TotalResources int               // size of the whole section, unfiltered
	TotalCount     int               // size of the filtered set
	Entries        []models.Resource // at most Filter.Limit entries
}

// Store issues catalog queries through a GraphQL client.
type Store struct {
	gql *graphql.Client
}

// New returns a Store backed by gql.
func New(gql *graphql.Client) *Store {
	return &Store{gql: gql}
}

// Categories returns every category related to a resource, ordered by title.
func (s *Store) Categories(ctx context.Context) ([]models.Category, error) {
	var data struct {
		Entries []models.Category `json:"entries"`
	}
	if err := s.gql.Do(ctx, categoriesQuery, nil, &data); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if data.Entries == nil {
		data.Entries = []models.Category{}
	}
	return data.Entries, nil
}

// Resources returns the page of resources selected by f.
func (s *Store) Resources(ctx context.Context, f Filter) (Page, error) {
	ids := f.CategoryIDs
	if ids == nil {
		// The API treats an empty list as "no relation filter"; null would
		// be rejected by some CMS versions.
		ids = []string{}
	}
	vars := map[string]any{
		"offset":      f.Offset,
		"limit":       f.Limit,
		"catsIds":     ids,
		"searchQuery": f.Search,
	}

	var data struct {
		TotalResources int               `json:"totalResources"`
		TotalCount     int               `json:"totalCount"`
		Entries        []models.Resource `json:"entries"`
	}
	if err := s.gql.Do(ctx, resourcesQuery, vars, &data); err != nil {
		return Page{}, fmt.Errorf("list resources: %w", err)
	}
	if data.Entries == nil {
		data.Entries = []models.Resource{}
	}
	return Page{
		TotalResources: data.TotalResources,
		TotalCount:     data.TotalCount,
		Entries:        data.Entries,
	}, nil
}
