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

// PostgresDepartmentRepository implements the DepartmentRepository interface.
type PostgresDepartmentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewDepartmentRepository creates a new department repository.
func NewDepartmentRepository(config *RepositoryConfig) repositories.DepartmentRepository {
	return &PostgresDepartmentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// GetByID retrieves a department regardless of status.
func (r *PostgresDepartmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	query := fmt.Sprintf(`
		SELECT id, company_id, name, description, status, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Departments)

	var d models.Department
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&d.ID,
		&d.CompanyID,
		&d.Name,
		&d.Description,
		&d.Status,
		&d.CreatedAt,
		&d.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("department %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get department: %w", err)
	}

	return &d, nil
}

// ListByCompany lists the company's active departments sorted by name, with
// aggregate counts over active children.
func (r *PostgresDepartmentRepository) ListByCompany(ctx context.Context, companyID int64, allowedIDs []int64) ([]models.Department, error) {
	query := fmt.Sprintf(`
		SELECT d.id, d.company_id, d.name, d.description, d.status, d.created_at, d.updated_at,
		       (SELECT COUNT(*) FROM %s f WHERE f.department_id = d.id AND f.parent_id IS NULL AND f.status = 'active') AS folder_count,
		       (SELECT COUNT(*) FROM %s doc WHERE doc.department_id = d.id AND doc.status = 'active') AS document_count
		FROM %s d
		WHERE d.company_id = $1 AND d.status = 'active'
	`, r.tables.Folders, r.tables.Documents, r.tables.Departments)

	args := []interface{}{companyID}
	if allowedIDs != nil {
		query += ` AND d.id = ANY($2)`
		args = append(args, allowedIDs)
	}
	query += ` ORDER BY d.name ASC`

	return r.queryDepartments(ctx, query, args...)
}

// Search finds active departments of active companies matching the term,
// sorted by name.
func (r *PostgresDepartmentRepository) Search(ctx context.Context, term string, allowedCompanies, allowedDepartments []int64) ([]models.Department, error) {
	query := fmt.Sprintf(`
		SELECT d.id, d.company_id, d.name, d.description, d.status, d.created_at, d.updated_at,
		       (SELECT COUNT(*) FROM %s f WHERE f.department_id = d.id AND f.parent_id IS NULL AND f.status = 'active') AS folder_count,
		       (SELECT COUNT(*) FROM %s doc WHERE doc.department_id = d.id AND doc.status = 'active') AS document_count
		FROM %s d
		JOIN %s c ON c.id = d.company_id
		WHERE d.status = 'active' AND c.status = 'active'
		  AND (d.name ILIKE '%%' || $1 || '%%' OR d.description ILIKE '%%' || $1 || '%%')
	`, r.tables.Folders, r.tables.Documents, r.tables.Departments, r.tables.Companies)

	args := []interface{}{term}
	if allowedCompanies != nil {
		args = append(args, allowedCompanies)
		query += fmt.Sprintf(` AND d.company_id = ANY($%d)`, len(args))
	}
	if allowedDepartments != nil {
		args = append(args, allowedDepartments)
		query += fmt.Sprintf(` AND d.id = ANY($%d)`, len(args))
	}
	query += ` ORDER BY d.name ASC`

	return r.queryDepartments(ctx, query, args...)
}

func (r *PostgresDepartmentRepository) queryDepartments(ctx context.Context, query string, args ...interface{}) ([]models.Department, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	var departments []models.Department
	for rows.Next() {
		var d models.Department
		err := rows.Scan(
			&d.ID,
			&d.CompanyID,
			&d.Name,
			&d.Description,
			&d.Status,
			&d.CreatedAt,
			&d.UpdatedAt,
			&d.FolderCount,
			&d.DocumentCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		departments = append(departments, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate departments: %w", err)
	}

	if departments == nil {
		departments = []models.Department{}
	}

	return departments, nil
}
