package services

import (
	"context"

	"docvault/internal/domain/models"
)

// UsageLimiter enforces per-user daily action quotas against the audit log.
// CheckAndRecord is advisory-before-action: it records the attempt when
// allowed but does not perform the action itself, so callers must not
// proceed when it returns false.
type UsageLimiter interface {
	CheckAndRecord(ctx context.Context, pctx *models.PermissionContext, userID int64, action models.ActionType, entityID int64) (bool, error)
}
