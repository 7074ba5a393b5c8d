package domain

import (
	"time"

	"gorm.io/datatypes"
)

// DesignDocument is a subordinate record always owned by exactly one Project.
type DesignDocument struct {
	ID              uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID       uint           `gorm:"column:project_id;not null;index" json:"project_id"`
	Project         *Project       `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProjectID;references:ID" json:"project,omitempty"`
	DocumentTitle   string         `gorm:"column:document_title" json:"document_title"`
	ProjectName     string         `gorm:"column:project_name" json:"project_name"`
	ProjectCode     string         `gorm:"column:project_code" json:"project_code"`
	Location        string         `gorm:"column:location" json:"location"`
	ExecutingOffice string         `gorm:"column:executing_office" json:"executing_office"`
	ContractDays    *int64         `gorm:"column:contract_days" json:"contract_days,omitempty"`
	BudgetCategory  string         `gorm:"column:budget_category" json:"budget_category"`
	Quantities      datatypes.JSON `gorm:"column:quantities" json:"quantities,omitempty"`
	SpecialSpecs    string         `gorm:"column:special_specs" json:"special_specs"`
	Raw             datatypes.JSON `gorm:"column:raw_json" json:"raw_json,omitempty"`
	FilePath        string         `gorm:"column:file_path" json:"file_path"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (DesignDocument) TableName() string { return "design_documents" }
