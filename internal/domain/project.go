package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ProjectTypePast    = "past"
	ProjectTypeCurrent = "current"
)

// Project is the authoritative record for one registered construction
// project. The flattened columns mirror the well-known extraction keys; the
// full extracted field map lives in Raw depending on the source's
// relational_mode.
type Project struct {
	ID             uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectType    string         `gorm:"column:project_type" json:"project_type"`
	ProjectCode    string         `gorm:"column:project_code;index" json:"project_code"`
	CorinsID       string         `gorm:"column:corins_id" json:"corins_id"`
	ProjectName    string         `gorm:"column:project_name" json:"project_name"`
	ContractAmount *int64         `gorm:"column:contract_amount" json:"contract_amount,omitempty"`
	StartDate      string         `gorm:"column:start_date" json:"start_date"`
	EndDate        string         `gorm:"column:end_date" json:"end_date"`
	Location       string         `gorm:"column:location" json:"location"`
	ClientName     string         `gorm:"column:client_name" json:"client_name"`
	ContractorName string         `gorm:"column:contractor_name" json:"contractor_name"`
	Field          string         `gorm:"column:field" json:"field"`
	WorkTypes      datatypes.JSON `gorm:"column:work_types" json:"work_types,omitempty"`
	Engineers      datatypes.JSON `gorm:"column:engineers" json:"engineers,omitempty"`
	Summary        string         `gorm:"column:summary" json:"summary"`
	Raw            datatypes.JSON `gorm:"column:raw_json" json:"raw_json,omitempty"`
	FolderPath     string         `gorm:"column:folder_path" json:"folder_path"`
	SavedToGraph   bool           `gorm:"column:saved_to_graph;not null;default:false" json:"saved_to_graph"`
	SavedToVector  bool           `gorm:"column:saved_to_vector;not null;default:false" json:"saved_to_vector"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Project) TableName() string { return "projects" }

// Engineer is one entry of a project's engineer list after role parsing.
type Engineer struct {
	Name string `json:"name"`
	Role string `json:"role"`
}
