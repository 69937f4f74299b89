package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
)

// PostgresCompanyRepository implements the CompanyRepository interface.
type PostgresCompanyRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewCompanyRepository creates a new company repository.
func NewCompanyRepository(config *RepositoryConfig) repositories.CompanyRepository {
	return &PostgresCompanyRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// GetByID retrieves a company regardless of status.
func (r *PostgresCompanyRepository) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	query := fmt.Sprintf(`
		SELECT id, name, description, status, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Companies)

	var c models.Company
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("company %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get company: %w", err)
	}

	return &c, nil
}

// ListActive lists active companies sorted by name. Counts aggregate active
// children only. allowedIDs nil means no ID filter.
func (r *PostgresCompanyRepository) ListActive(ctx context.Context, allowedIDs []int64) ([]models.Company, error) {
	query := fmt.Sprintf(`
		SELECT c.id, c.name, c.description, c.status, c.created_at, c.updated_at,
		       (SELECT COUNT(*) FROM %s d WHERE d.company_id = c.id AND d.status = 'active') AS department_count,
		       (SELECT COUNT(*) FROM %s doc WHERE doc.company_id = c.id AND doc.status = 'active') AS document_count
		FROM %s c
		WHERE c.status = 'active'
	`, r.tables.Departments, r.tables.Documents, r.tables.Companies)

	var args []interface{}
	if allowedIDs != nil {
		query += ` AND c.id = ANY($1)`
		args = append(args, allowedIDs)
	}
	query += ` ORDER BY c.name ASC`

	return r.queryCompanies(ctx, query, args...)
}

// Search finds active companies matching the term case-insensitively against
// name or description, sorted by name.
func (r *PostgresCompanyRepository) Search(ctx context.Context, term string, allowedIDs []int64) ([]models.Company, error) {
	query := fmt.Sprintf(`
		SELECT c.id, c.name, c.description, c.status, c.created_at, c.updated_at,
		       (SELECT COUNT(*) FROM %s d WHERE d.company_id = c.id AND d.status = 'active') AS department_count,
		       (SELECT COUNT(*) FROM %s doc WHERE doc.company_id = c.id AND doc.status = 'active') AS document_count
		FROM %s c
		WHERE c.status = 'active'
		  AND (c.name ILIKE '%%' || $1 || '%%' OR c.description ILIKE '%%' || $1 || '%%')
	`, r.tables.Departments, r.tables.Documents, r.tables.Companies)

	args := []interface{}{term}
	if allowedIDs != nil {
		query += ` AND c.id = ANY($2)`
		args = append(args, allowedIDs)
	}
	query += ` ORDER BY c.name ASC`

	return r.queryCompanies(ctx, query, args...)
}

func (r *PostgresCompanyRepository) queryCompanies(ctx context.Context, query string, args ...interface{}) ([]models.Company, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var companies []models.Company
	for rows.Next() {
		var c models.Company
		err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Description,
			&c.Status,
			&c.CreatedAt,
			&c.UpdatedAt,
			&c.DepartmentCount,
			&c.DocumentCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		companies = append(companies, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate companies: %w", err)
	}

	if companies == nil {
		companies = []models.Company{}
	}

	return companies, nil
}
