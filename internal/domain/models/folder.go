package models

import "time"

// Folder belongs to exactly one (company, department) pair, which is
// immutable once created. ParentID is NULL for top-level folders.
type Folder struct {
	ID           int64     `json:"id" db:"id"`
	CompanyID    int64     `json:"company_id" db:"company_id"`
	DepartmentID int64     `json:"department_id" db:"department_id"`
	ParentID     *int64    `json:"parent_id,omitempty" db:"parent_id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	Color        string    `json:"folder_color" db:"folder_color"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`

	SubfolderCount int `json:"subfolder_count" db:"-"`
	DocumentCount  int `json:"document_count" db:"-"`
}

func (f *Folder) Active() bool { return f.Status == StatusActive }
