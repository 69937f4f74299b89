package repositories

import (
	"context"

	"docvault/internal/domain/models"
)

// UserRepository defines data access for user records.
type UserRepository interface {
	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// GroupRepository defines data access for permission groups.
type GroupRepository interface {
	// ActiveGroupsForUser returns every active group the user belongs to,
	// with capability and restriction documents already decoded.
	ActiveGroupsForUser(ctx context.Context, userID int64) ([]models.Group, error)
}
