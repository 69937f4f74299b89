package services

import (
	"context"

	"docvault/internal/domain/models"
)

// NavigationProvider lists the children visible at a decoded virtual path,
// filtered through the caller's permission context. A restricted or missing
// location yields an empty list, never an error - authorization by omission,
// so the existence of restricted entities does not leak.
type NavigationProvider interface {
	List(ctx context.Context, pctx *models.PermissionContext, rawPath string) ([]models.Item, error)
}

// SearchEngine performs a restriction-filtered, cross-entity text search.
// Results are concatenated in fixed type order (company, department, folder,
// document), each group sorted by name; this is deliberate simple ordering,
// not relevance ranking. An empty term returns an empty list without
// touching storage.
type SearchEngine interface {
	Search(ctx context.Context, pctx *models.PermissionContext, term string) ([]models.Item, error)
}
