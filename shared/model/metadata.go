package model

import "time"

// Metadata is the audit part shared by stored rows.
type Metadata struct {
	CreatedAt time.Time `db:"created_at"`
	CreatedBy string    `db:"created_by"`
}
