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

// PostgresDocumentRepository implements the DocumentRepository interface.
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository.
func NewDocumentRepository(config *RepositoryConfig) repositories.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const documentColumns = `id, company_id, department_id, folder_id, document_type_id, name, description,
	original_filename, blob_key, size_bytes, status, version, uploaded_by, created_at, updated_at`

// GetByID retrieves a document regardless of status.
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id int64) (*models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, documentColumns, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	doc, err := scanDocument(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	return doc, nil
}

// Create inserts a new document row.
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (company_id, department_id, folder_id, document_type_id, name, description,
		                original_filename, blob_key, size_bytes, status, version, uploaded_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 1, $11, NOW(), NOW())
		RETURNING id, version, created_at, updated_at
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		doc.CompanyID,
		doc.DepartmentID,
		doc.FolderID,
		doc.DocumentTypeID,
		doc.Name,
		doc.Description,
		doc.OriginalFilename,
		doc.BlobKey,
		doc.SizeBytes,
		doc.Status,
		doc.UploadedBy,
	).Scan(&doc.ID, &doc.Version, &doc.CreatedAt, &doc.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("document %q already exists in this location: %w", doc.Name, domain.ErrConflict)
		}
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

// ListRootless lists the department's active documents that have no folder,
// sorted by name. allowedTypes nil means no document-type filter; documents
// without a type always pass the filter.
func (r *PostgresDocumentRepository) ListRootless(ctx context.Context, departmentID int64, allowedTypes []int64) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE department_id = $1 AND folder_id IS NULL AND status = 'active'
	`, documentColumns, r.tables.Documents)

	args := []interface{}{departmentID}
	if allowedTypes != nil {
		query += ` AND (document_type_id IS NULL OR document_type_id = ANY($2))`
		args = append(args, allowedTypes)
	}
	query += ` ORDER BY name ASC`

	return r.queryDocuments(ctx, query, args...)
}

// ListByFolder lists the folder's active documents sorted by name.
func (r *PostgresDocumentRepository) ListByFolder(ctx context.Context, folderID int64, allowedTypes []int64) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE folder_id = $1 AND status = 'active'
	`, documentColumns, r.tables.Documents)

	args := []interface{}{folderID}
	if allowedTypes != nil {
		query += ` AND (document_type_id IS NULL OR document_type_id = ANY($2))`
		args = append(args, allowedTypes)
	}
	query += ` ORDER BY name ASC`

	return r.queryDocuments(ctx, query, args...)
}

// Search finds active documents whose ancestors are all active, matching the
// term case-insensitively against name, description or original filename,
// sorted by name. A document with no department passes the department
// ancestor check by definition.
func (r *PostgresDocumentRepository) Search(ctx context.Context, term string, filter repositories.DocumentSearchFilter) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT doc.id, doc.company_id, doc.department_id, doc.folder_id, doc.document_type_id,
		       doc.name, doc.description, doc.original_filename, doc.blob_key, doc.size_bytes,
		       doc.status, doc.version, doc.uploaded_by, doc.created_at, doc.updated_at
		FROM %s doc
		JOIN %s c ON c.id = doc.company_id
		LEFT JOIN %s d ON d.id = doc.department_id
		LEFT JOIN %s f ON f.id = doc.folder_id
		WHERE doc.status = 'active'
		  AND c.status = 'active'
		  AND (doc.department_id IS NULL OR d.status = 'active')
		  AND (doc.folder_id IS NULL OR f.status = 'active')
		  AND (doc.name ILIKE '%%' || $1 || '%%'
		       OR doc.description ILIKE '%%' || $1 || '%%'
		       OR doc.original_filename ILIKE '%%' || $1 || '%%')
	`, r.tables.Documents, r.tables.Companies, r.tables.Departments, r.tables.Folders)

	args := []interface{}{term}
	if filter.Companies != nil {
		args = append(args, filter.Companies)
		query += fmt.Sprintf(` AND doc.company_id = ANY($%d)`, len(args))
	}
	if filter.Departments != nil {
		args = append(args, filter.Departments)
		query += fmt.Sprintf(` AND (doc.department_id IS NULL OR doc.department_id = ANY($%d))`, len(args))
	}
	if filter.DocumentTypes != nil {
		args = append(args, filter.DocumentTypes)
		query += fmt.Sprintf(` AND (doc.document_type_id IS NULL OR doc.document_type_id = ANY($%d))`, len(args))
	}
	query += ` ORDER BY doc.name ASC`

	return r.queryDocuments(ctx, query, args...)
}

// Move relocates a document into the target folder, updating department and
// bumping the version counter, all in one conditional write. Returns false
// without error when the expected version no longer matches - the caller
// lost a concurrent move.
func (r *PostgresDocumentRepository) Move(ctx context.Context, id, folderID, departmentID, expectedVersion int64) (bool, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET folder_id = $1, department_id = $2, version = version + 1, updated_at = NOW()
		WHERE id = $3 AND version = $4 AND status = 'active'
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, folderID, departmentID, id, expectedVersion)
	if err != nil {
		return false, fmt.Errorf("move document: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *PostgresDocumentRepository) queryDocuments(ctx context.Context, query string, args ...interface{}) ([]models.Document, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var documents []models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		documents = append(documents, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	if documents == nil {
		documents = []models.Document{}
	}

	return documents, nil
}

// scanDocument scans one row in documentColumns order.
func scanDocument(row interface{ Scan(...interface{}) error }) (*models.Document, error) {
	var doc models.Document
	err := row.Scan(
		&doc.ID,
		&doc.CompanyID,
		&doc.DepartmentID,
		&doc.FolderID,
		&doc.DocumentTypeID,
		&doc.Name,
		&doc.Description,
		&doc.OriginalFilename,
		&doc.BlobKey,
		&doc.SizeBytes,
		&doc.Status,
		&doc.Version,
		&doc.UploadedBy,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
