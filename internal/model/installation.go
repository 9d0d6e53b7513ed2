package model

import (
	"time"

	"gorm.io/datatypes"
)

// Installation records a Software record deployed to a specific host. The
// (host, software_id) pair is unique across the store.
//
// SoftwareID is deliberately NOT a foreign key: the source system enforces no
// referential integrity against the software collection, and that looseness
// is a documented product decision rather than a gap to close here.
type Installation struct {
	BaseModel
	Host       string `gorm:"type:varchar(30);not null;uniqueIndex:uk_installations_host_software,priority:1" json:"host"`
	SoftwareID int    `gorm:"not null;index;uniqueIndex:uk_installations_host_software,priority:2" json:"software"`

	Name string `gorm:"type:varchar(30)" json:"name"`

	Area  datatypes.JSON `gorm:"type:json" json:"area"`
	Slots datatypes.JSON `gorm:"type:json" json:"slots"`

	Status     string     `gorm:"type:varchar(30);not null" json:"status"`
	StatusDate *time.Time `gorm:"type:date" json:"statusDate"`

	VVResultsLoc   datatypes.JSON `gorm:"type:json" json:"vvResultsLoc"`
	VVApprovalDate *time.Time     `gorm:"type:date" json:"vvApprovalDate"`

	DRR string `gorm:"type:varchar(30)" json:"drr"`
}

// TableName specifies the table name for Installation
func (Installation) TableName() string {
	return "installations"
}
