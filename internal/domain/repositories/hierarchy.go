package repositories

import (
	"context"

	"docvault/internal/domain/models"
)

// An allowedIDs argument of nil means "no ID filter" (unrestricted). An
// empty non-nil slice would match nothing; services never pass one - they
// short-circuit deny-all restrictions before reaching the repository.

// CompanyRepository defines data access for companies.
type CompanyRepository interface {
	// GetByID retrieves a company regardless of status.
	GetByID(ctx context.Context, id int64) (*models.Company, error)

	// ListActive lists active companies sorted by name, with aggregate
	// counts over active children.
	ListActive(ctx context.Context, allowedIDs []int64) ([]models.Company, error)

	// Search finds active companies whose name or description matches the
	// term case-insensitively, sorted by name.
	Search(ctx context.Context, term string, allowedIDs []int64) ([]models.Company, error)
}

// DepartmentRepository defines data access for departments.
type DepartmentRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Department, error)

	// ListByCompany lists the company's active departments sorted by name,
	// with aggregate counts.
	ListByCompany(ctx context.Context, companyID int64, allowedIDs []int64) ([]models.Department, error)

	// Search finds active departments with an active parent company
	// matching the term, sorted by name.
	Search(ctx context.Context, term string, allowedCompanies, allowedDepartments []int64) ([]models.Department, error)
}

// FolderRepository defines data access for folders.
type FolderRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Folder, error)

	// ListTopLevel lists the department's active top-level folders sorted
	// by name, with aggregate counts.
	ListTopLevel(ctx context.Context, departmentID int64) ([]models.Folder, error)

	// ListByDepartment lists the department's active folders for
	// dependent-list lookups, sorted by name.
	ListByDepartment(ctx context.Context, departmentID int64) ([]models.Folder, error)

	// Search finds active folders with active ancestors matching the term,
	// sorted by name.
	Search(ctx context.Context, term string, allowedCompanies, allowedDepartments []int64) ([]models.Folder, error)
}

// DocumentSearchFilter carries the restriction allow-lists for document
// search. Nil slices mean unrestricted.
type DocumentSearchFilter struct {
	Companies     []int64
	Departments   []int64
	DocumentTypes []int64
}

// DocumentRepository defines data access for documents.
type DocumentRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Document, error)

	// Create inserts a new document row.
	Create(ctx context.Context, doc *models.Document) error

	// ListRootless lists the department's active documents that have no
	// folder, sorted by name and filtered by document type.
	ListRootless(ctx context.Context, departmentID int64, allowedTypes []int64) ([]models.Document, error)

	// ListByFolder lists the folder's active documents sorted by name,
	// filtered by document type.
	ListByFolder(ctx context.Context, folderID int64, allowedTypes []int64) ([]models.Document, error)

	// Search finds active documents with active ancestors whose name,
	// description or original filename matches the term, sorted by name.
	Search(ctx context.Context, term string, filter DocumentSearchFilter) ([]models.Document, error)

	// Move relocates a document into the target folder, updating the
	// department alongside and bumping the version counter. Returns false
	// without error when expectedVersion no longer matches (lost race).
	Move(ctx context.Context, id, folderID, departmentID, expectedVersion int64) (bool, error)
}
