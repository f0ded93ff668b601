package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type StepStatus string

const (
	StepStatusPlanned StepStatus = "planned"
	// StepStatusStop means the batch of work is finished and is pending
	// acceptance through the step's detail record. It does not mean paused.
	StepStatusStart     StepStatus = "start"
	StepStatusStop      StepStatus = "stop"
	StepStatusCompleted StepStatus = "completed"
)

// JobPlan is the ordered production pipeline generated for a job once its
// intake gates are complete. Step ordering by StepNo drives the progression
// gate and must be preserved.
type JobPlan struct {
	ID        uint           `json:"jobPlanId" gorm:"primaryKey"`
	NrcJobNo  string         `json:"nrcJobNo" gorm:"uniqueIndex;not null"`
	JobDemand JobDemand      `json:"jobDemand"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Steps []JobPlanStep `json:"steps" gorm:"foreignKey:JobPlanID"`
}

func (JobPlan) TableName() string {
	return "job_plans"
}

// MachineDetail is the snapshot of a machine assigned to a step. Stored
// inline on the step as JSONB rather than a join table, matching how the
// planning screens consume it.
type MachineDetail struct {
	MachineID   string `json:"machineId"`
	Unit        string `json:"unit"`
	MachineCode string `json:"machineCode"`
	MachineType string `json:"machineType"`
}

type JobPlanStep struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	JobPlanID uint       `json:"jobPlanId" gorm:"not null;index;uniqueIndex:idx_plan_step_no"`
	NrcJobNo  string     `json:"nrcJobNo" gorm:"index;not null"`
	StepNo    int        `json:"stepNo" gorm:"not null;uniqueIndex:idx_plan_step_no"`
	StepName  string     `json:"stepName" gorm:"not null"`
	Status    StepStatus `json:"status" gorm:"not null;default:'planned'"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	User      *string    `json:"user"`

	MachineDetails datatypes.JSONSlice[MachineDetail] `json:"machineDetails" gorm:"type:jsonb"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// At most one of these is populated, according to StepName. The detail
	// record's own status is the authoritative completion signal; Status
	// alone never is.
	PaperStore      *PaperStoreDetails      `json:"paperStoreDetails,omitempty" gorm:"foreignKey:JobStepID"`
	Corrugation     *CorrugationDetails     `json:"corrugationDetails,omitempty" gorm:"foreignKey:JobStepID"`
	Printing        *PrintingDetails        `json:"printingDetails,omitempty" gorm:"foreignKey:JobStepID"`
	FluteLamination *FluteLaminationDetails `json:"fluteLaminationDetails,omitempty" gorm:"foreignKey:JobStepID"`
	Punching        *PunchingDetails        `json:"punchingDetails,omitempty" gorm:"foreignKey:JobStepID"`
	FlapPasting     *FlapPastingDetails     `json:"flapPastingDetails,omitempty" gorm:"foreignKey:JobStepID"`
	QC              *QCDetails              `json:"qcDetails,omitempty" gorm:"foreignKey:JobStepID"`
	Dispatch        *DispatchDetails        `json:"dispatchDetails,omitempty" gorm:"foreignKey:JobStepID"`
}

func (JobPlanStep) TableName() string {
	return "job_plan_steps"
}
