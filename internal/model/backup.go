package model

import "time"

// Backup format constants.
const (
	BackupTypeJSON = "json"
	BackupTypeCSV  = "csv"
)

// BackupRecord is an audit entry for a completed export. It records
// where the backup was written, not the payload itself.
type BackupRecord struct {
	ID        string    `json:"id" db:"id"`
	Path      string    `json:"path" db:"path"`
	Type      string    `json:"type" db:"type"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
