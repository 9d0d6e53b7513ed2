package model

import (
	"database/sql"
	"time"

	"gorm.io/datatypes"
)

// Software is a tracked software package/version/branch and its lifecycle
// metadata. The (name, version, branch) triple is unique across the store.
type Software struct {
	BaseModel
	Name    string `gorm:"type:varchar(40);not null;uniqueIndex:uk_software_name_version_branch,priority:1" json:"swName"`
	Version string `gorm:"type:varchar(30);uniqueIndex:uk_software_name_version_branch,priority:2" json:"version"`
	Branch  string `gorm:"type:varchar(30);uniqueIndex:uk_software_name_version_branch,priority:3" json:"branch"`

	Owner       string `gorm:"type:varchar(80);not null" json:"owner"`
	Engineer    string `gorm:"type:varchar(30)" json:"engineer"`
	LevelOfCare string `gorm:"type:varchar(30);not null" json:"levelOfCare"`

	Status     string     `gorm:"type:varchar(30);not null" json:"status"`
	StatusDate *time.Time `gorm:"type:date" json:"statusDate"`

	Desc      string `gorm:"type:varchar(2048)" json:"desc"`
	Platforms string `gorm:"type:varchar(30)" json:"platforms"`

	// Document locations
	DesignDescDocLoc string         `gorm:"type:varchar(2048)" json:"designDescDocLoc"`
	DescDocLoc       string         `gorm:"type:varchar(2048)" json:"descDocLoc"`
	VVProcLoc        datatypes.JSON `gorm:"type:json" json:"vvProcLoc"`
	VVResultsLoc     datatypes.JSON `gorm:"type:json" json:"vvResultsLoc"`

	// Revision control
	VersionControl    string `gorm:"type:varchar(30)" json:"versionControl"`
	VersionControlLoc string `gorm:"type:varchar(2048)" json:"versionControlLoc"`

	// Recertification
	RecertFreq   string     `gorm:"type:varchar(30)" json:"recertFreq"`
	RecertStatus string     `gorm:"type:varchar(30)" json:"recertStatus"`
	RecertDate   *time.Time `gorm:"type:date" json:"recertDate"`

	// Previous is a reference to the prior version's record, NULL when none
	Previous sql.NullInt32 `gorm:"index;default:null" json:"-"`

	Comment string `gorm:"type:varchar(2048)" json:"comment"`
}

// TableName specifies the table name for Software
func (Software) TableName() string {
	return "software"
}
