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

// PostgresFolderRepository implements the FolderRepository interface.
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewFolderRepository creates a new folder repository.
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const folderColumns = `id, company_id, department_id, parent_id, name, description, folder_color, status, created_at, updated_at`

// GetByID retrieves a folder regardless of status.
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id int64) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, folderColumns, r.tables.Folders)

	var f models.Folder
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&f.ID,
		&f.CompanyID,
		&f.DepartmentID,
		&f.ParentID,
		&f.Name,
		&f.Description,
		&f.Color,
		&f.Status,
		&f.CreatedAt,
		&f.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &f, nil
}

// ListTopLevel lists the department's active top-level folders sorted by
// name, with aggregate counts over active children.
func (r *PostgresFolderRepository) ListTopLevel(ctx context.Context, departmentID int64) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT f.id, f.company_id, f.department_id, f.parent_id, f.name, f.description,
		       f.folder_color, f.status, f.created_at, f.updated_at,
		       (SELECT COUNT(*) FROM %s sub WHERE sub.parent_id = f.id AND sub.status = 'active') AS subfolder_count,
		       (SELECT COUNT(*) FROM %s doc WHERE doc.folder_id = f.id AND doc.status = 'active') AS document_count
		FROM %s f
		WHERE f.department_id = $1 AND f.parent_id IS NULL AND f.status = 'active'
		ORDER BY f.name ASC
	`, r.tables.Folders, r.tables.Documents, r.tables.Folders)

	return r.queryFoldersWithCounts(ctx, query, departmentID)
}

// ListByDepartment lists every active folder of the department sorted by
// name. Used by the dependent-list lookups, which need the full flat list.
func (r *PostgresFolderRepository) ListByDepartment(ctx context.Context, departmentID int64) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE department_id = $1 AND status = 'active'
		ORDER BY name ASC
	`, folderColumns, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, departmentID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var f models.Folder
		err := rows.Scan(
			&f.ID,
			&f.CompanyID,
			&f.DepartmentID,
			&f.ParentID,
			&f.Name,
			&f.Description,
			&f.Color,
			&f.Status,
			&f.CreatedAt,
			&f.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	if folders == nil {
		folders = []models.Folder{}
	}

	return folders, nil
}

// Search finds active folders whose company and department are both active,
// matching the term against name or description, sorted by name.
func (r *PostgresFolderRepository) Search(ctx context.Context, term string, allowedCompanies, allowedDepartments []int64) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT f.id, f.company_id, f.department_id, f.parent_id, f.name, f.description,
		       f.folder_color, f.status, f.created_at, f.updated_at,
		       (SELECT COUNT(*) FROM %s sub WHERE sub.parent_id = f.id AND sub.status = 'active') AS subfolder_count,
		       (SELECT COUNT(*) FROM %s doc WHERE doc.folder_id = f.id AND doc.status = 'active') AS document_count
		FROM %s f
		JOIN %s c ON c.id = f.company_id
		JOIN %s d ON d.id = f.department_id
		WHERE f.status = 'active' AND c.status = 'active' AND d.status = 'active'
		  AND (f.name ILIKE '%%' || $1 || '%%' OR f.description ILIKE '%%' || $1 || '%%')
	`, r.tables.Folders, r.tables.Documents, r.tables.Folders, r.tables.Companies, r.tables.Departments)

	args := []interface{}{term}
	if allowedCompanies != nil {
		args = append(args, allowedCompanies)
		query += fmt.Sprintf(` AND f.company_id = ANY($%d)`, len(args))
	}
	if allowedDepartments != nil {
		args = append(args, allowedDepartments)
		query += fmt.Sprintf(` AND f.department_id = ANY($%d)`, len(args))
	}
	query += ` ORDER BY f.name ASC`

	return r.queryFoldersWithCounts(ctx, query, args...)
}

func (r *PostgresFolderRepository) queryFoldersWithCounts(ctx context.Context, query string, args ...interface{}) ([]models.Folder, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var f models.Folder
		err := rows.Scan(
			&f.ID,
			&f.CompanyID,
			&f.DepartmentID,
			&f.ParentID,
			&f.Name,
			&f.Description,
			&f.Color,
			&f.Status,
			&f.CreatedAt,
			&f.UpdatedAt,
			&f.SubfolderCount,
			&f.DocumentCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	if folders == nil {
		folders = []models.Folder{}
	}

	return folders, nil
}
