package models

import "time"

// Status values shared by every hierarchy entity. Deletion is always a
// status change, never a physical delete.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Company struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	// Aggregate counts over active children, populated by list queries.
	DepartmentCount int `json:"department_count" db:"-"`
	DocumentCount   int `json:"document_count" db:"-"`
}

func (c *Company) Active() bool { return c.Status == StatusActive }

type Department struct {
	ID          int64     `json:"id" db:"id"`
	CompanyID   int64     `json:"company_id" db:"company_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	FolderCount   int `json:"subfolder_count" db:"-"`
	DocumentCount int `json:"document_count" db:"-"`
}

func (d *Department) Active() bool { return d.Status == StatusActive }

// DocumentType is a flat lookup optionally referenced by documents.
// It is independently restrictable.
type DocumentType struct {
	ID     int64  `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	Status string `json:"status" db:"status"`
}
