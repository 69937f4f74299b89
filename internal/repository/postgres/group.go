package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
)

// PostgresGroupRepository implements the GroupRepository interface.
type PostgresGroupRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewGroupRepository creates a new group repository.
func NewGroupRepository(config *RepositoryConfig) repositories.GroupRepository {
	return &PostgresGroupRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// ActiveGroupsForUser returns the user's active groups with their capability
// and restriction documents decoded from JSONB into the typed schema.
// Version-0 payloads are migrated transparently on read.
func (r *PostgresGroupRepository) ActiveGroupsForUser(ctx context.Context, userID int64) ([]models.Group, error) {
	query := fmt.Sprintf(`
		SELECT g.id, g.name, g.status, g.capabilities, g.restrictions,
		       g.download_limit, g.upload_limit, g.created_at, g.updated_at
		FROM %s g
		JOIN %s m ON m.group_id = g.id
		WHERE m.user_id = $1 AND g.status = 'active'
		ORDER BY g.id
	`, r.tables.Groups, r.tables.GroupMembers)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list active groups: %w", err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		var capsRaw, restrRaw []byte

		err := rows.Scan(
			&g.ID,
			&g.Name,
			&g.Status,
			&capsRaw,
			&restrRaw,
			&g.DownloadLimit,
			&g.UploadLimit,
			&g.CreatedAt,
			&g.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}

		g.Capabilities, err = models.DecodeCapabilityDoc(capsRaw)
		if err != nil {
			return nil, fmt.Errorf("group %d: %w", g.ID, err)
		}
		g.Restrictions, err = models.DecodeRestrictionDoc(restrRaw)
		if err != nil {
			return nil, fmt.Errorf("group %d: %w", g.ID, err)
		}

		groups = append(groups, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate groups: %w", err)
	}

	if groups == nil {
		groups = []models.Group{}
	}

	return groups, nil
}
