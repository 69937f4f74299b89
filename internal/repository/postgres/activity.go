package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
)

// PostgresActivityRepository implements the ActivityRepository interface.
type PostgresActivityRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewActivityRepository creates a new activity repository.
func NewActivityRepository(config *RepositoryConfig) repositories.ActivityRepository {
	return &PostgresActivityRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Record appends an audit entry unconditionally.
func (r *PostgresActivityRepository) Record(ctx context.Context, entry *models.ActivityEntry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, action, entity_type, entity_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`, r.tables.ActivityLog)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		entry.UserID,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		entry.Detail,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("record activity: %w", err)
	}

	return nil
}

// RecordIfUnderLimit appends the entry only when the user's count of the
// same action within [from, to) is below limit. The count and the insert
// are a single INSERT ... SELECT ... WHERE statement, so two concurrent
// requests cannot both slip under the limit.
func (r *PostgresActivityRepository) RecordIfUnderLimit(ctx context.Context, entry *models.ActivityEntry, limit int, from, to time.Time) (bool, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, action, entity_type, entity_id, detail, created_at)
		SELECT $1, $2, $3, $4, $5, NOW()
		WHERE (
			SELECT COUNT(*) FROM %s
			WHERE user_id = $1 AND action = $2 AND created_at >= $6 AND created_at < $7
		) < $8
		RETURNING id, created_at
	`, r.tables.ActivityLog, r.tables.ActivityLog)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		entry.UserID,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		entry.Detail,
		from,
		to,
		limit,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		if IsPgNoRowsError(err) {
			// Conditional insert matched nothing: quota reached.
			return false, nil
		}
		return false, fmt.Errorf("record activity under limit: %w", err)
	}

	return true, nil
}
