package repositories

import (
	"context"
	"time"

	"docvault/internal/domain/models"
)

// ActivityRepository defines data access for the append-only audit log.
type ActivityRepository interface {
	// Record appends an audit entry unconditionally.
	Record(ctx context.Context, entry *models.ActivityEntry) error

	// RecordIfUnderLimit appends the entry only if the user has fewer than
	// limit entries of the same action within [from, to). The count and the
	// insert are a single conditional statement, so concurrent requests
	// cannot push a user past the limit. Returns whether the entry was
	// recorded.
	RecordIfUnderLimit(ctx context.Context, entry *models.ActivityEntry, limit int, from, to time.Time) (bool, error)
}
