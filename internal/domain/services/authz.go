package services

import (
	"context"

	"docvault/internal/domain/models"
)

// PermissionResolver computes the effective authorization state for one
// request. Resolve never fails open: on any data-access error it returns a
// context with no capabilities and deny-all restrictions rather than an
// error, so downstream reads degrade to empty results.
//
// The result must be computed fresh per request - group membership and
// restrictions can change between requests, so nothing caches it.
type PermissionResolver interface {
	Resolve(ctx context.Context, userID int64, role string) *models.PermissionContext
}
