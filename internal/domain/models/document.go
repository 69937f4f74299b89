package models

import "time"

// Document always belongs to exactly one company. Department and folder are
// optional, but when a folder is set it must belong to the document's
// (company, department) pair. Version guards concurrent moves: every
// relocation increments it, and a move carrying a stale version is rejected.
type Document struct {
	ID               int64     `json:"id" db:"id"`
	CompanyID        int64     `json:"company_id" db:"company_id"`
	DepartmentID     *int64    `json:"department_id,omitempty" db:"department_id"`
	FolderID         *int64    `json:"folder_id,omitempty" db:"folder_id"`
	DocumentTypeID   *int64    `json:"document_type_id,omitempty" db:"document_type_id"`
	Name             string    `json:"name" db:"name"`
	Description      string    `json:"description" db:"description"`
	OriginalFilename string    `json:"original_filename" db:"original_filename"`
	BlobKey          string    `json:"-" db:"blob_key"`
	SizeBytes        int64     `json:"size_bytes" db:"size_bytes"`
	Status           string    `json:"status" db:"status"`
	Version          int64     `json:"version" db:"version"`
	UploadedBy       int64     `json:"uploaded_by" db:"uploaded_by"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

func (d *Document) Active() bool { return d.Status == StatusActive }
