package model

import (
	"time"

	"gorm.io/datatypes"
)

// Document type discriminators for History.DocType
const (
	DocTypeSoftware     = "software"
	DocTypeInstallation = "installation"
)

// History is one audit-log entry for a mutating write to a Software or
// Installation record. Entries are append-only: they are created exclusively
// as a side effect of a successful write to the parent document and are never
// mutated or deleted afterwards.
type History struct {
	ID      int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	DocType string         `gorm:"type:varchar(20);not null;index:idx_history_doc,priority:1" json:"docType"`
	DocID   int            `gorm:"not null;index:idx_history_doc,priority:2" json:"docId"`
	At      time.Time      `gorm:"not null" json:"at"`
	By      string         `gorm:"type:varchar(64);not null" json:"by"`
	Paths   datatypes.JSON `gorm:"type:json;not null" json:"paths"`
}

// TableName specifies the table name for History
func (History) TableName() string {
	return "history"
}
