package models

import "time"

// Roles carried in the auth token. Anything other than admin is an ordinary
// user as far as authorization is concerned.
const RoleAdmin = "admin"

type User struct {
	ID              int64     `json:"id" db:"id"`
	Role            string    `json:"role" db:"role"`
	CompanyID       *int64    `json:"company_id,omitempty" db:"company_id"`
	DownloadEnabled bool      `json:"download_enabled" db:"download_enabled"`
	Status          string    `json:"status" db:"status"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
