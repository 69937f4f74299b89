package models

import "time"

// ActionType names an auditable user action. Download and upload are the two
// quota-limited actions; the rest are trail-only.
type ActionType string

const (
	ActionDownload ActionType = "download"
	ActionUpload   ActionType = "upload"
	ActionMove     ActionType = "move"
)

// ActivityEntry is one append-only audit-log row. The activity log doubles
// as the counting source for daily quotas.
type ActivityEntry struct {
	ID         int64      `json:"id" db:"id"`
	UserID     int64      `json:"user_id" db:"user_id"`
	Action     ActionType `json:"action" db:"action"`
	EntityType string     `json:"entity_type" db:"entity_type"`
	EntityID   int64      `json:"entity_id" db:"entity_id"`
	Detail     string     `json:"detail" db:"detail"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}
