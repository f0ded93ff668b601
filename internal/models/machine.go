package models

import (
	"time"

	"gorm.io/gorm"
)

type MachineStatus string

const (
	MachineAvailable MachineStatus = "available"
	MachineBusy      MachineStatus = "busy"
)

// Machine is master data. Operators never mutate it directly; capacity and
// status change only through seeding and the step machine-reassignment flow.
type Machine struct {
	ID                string         `json:"id" gorm:"primaryKey"`
	Unit              string         `json:"unit"`
	MachineCode       string         `json:"machineCode" gorm:"uniqueIndex;not null"`
	MachineType       string         `json:"machineType" gorm:"not null"`
	Description       string         `json:"description"`
	Type              string         `json:"type"`
	Capacity          int            `json:"capacity" gorm:"default:0"`
	RemainingCapacity int            `json:"remainingCapacity" gorm:"default:0"`
	Status            MachineStatus  `json:"status" gorm:"not null;default:'available'"`
	IsActive          bool           `json:"isActive" gorm:"default:true"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Machine) TableName() string {
	return "machines"
}
