package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DetailStatus is the per-step-type acceptance state. A step's work counts as
// done for progression only once its detail record reaches DetailAccept,
// regardless of the coarser JobPlanStep.Status.
type DetailStatus string

const (
	DetailInProgress DetailStatus = "in_progress"
	DetailAccept     DetailStatus = "accept"
)

type PaperStoreDetails struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	JobStepID    uint           `json:"jobStepId" gorm:"not null;uniqueIndex"`
	JobNrcJobNo  string         `json:"jobNrcJobNo" gorm:"index;not null"`
	Status       DetailStatus   `json:"status" gorm:"not null;default:'in_progress'"`
	SheetSize    string         `json:"sheetSize"`
	Quantity     int            `json:"quantity" gorm:"default:0"`
	AvailableQty int            `json:"available" gorm:"default:0"`
	IssuedDate   *time.Time     `json:"issuedDate"`
	Mill         string         `json:"mill"`
	Gsm          string         `json:"gsm"`
	Quality      string         `json:"quality"`
	ExtraMargin  string         `json:"extraMargin"`
	Shift        string         `json:"shift"`
	OperatorName string         `json:"oprName"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

func (PaperStoreDetails) TableName() string {
	return "paper_store_details"
}

type CorrugationDetails struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	JobStepID     uint           `json:"jobStepId" gorm:"not null;uniqueIndex"`
	JobNrcJobNo   string         `json:"jobNrcJobNo" gorm:"index;not null"`
	Status        DetailStatus   `json:"status" gorm:"not null;default:'in_progress'"`
	OperatorName  string         `json:"oprName"`
	MachineNo     string         `json:"machineNo"`
	Date          *time.Time     `json:"date"`
	Shift         string         `json:"shift"`
	NoOfSheets    int            `json:"noOfSheets" gorm:"default:0"`
	Size          string         `json:"size"`
	Gsm1          string         `json:"gsm1"`
	Gsm2          string         `json:"gsm2"`
	Flute         string         `json:"flute"`
	Remarks       string         `json:"remarks"`
	QcCheckSignBy string         `json:"qcCheckSignBy"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

func (CorrugationDetails) TableName() string {
	return "corrugation_details"
}

type PrintingDetails struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	JobStepID      uint           `json:"jobStepId" gorm:"not null;uniqueIndex"`
	JobNrcJobNo    string         `json:"jobNrcJobNo" gorm:"index;not null"`
	Status         DetailStatus   `json:"status" gorm:"not null;default:'in_progress'"`
	OperatorName   string         `json:"oprName"`
	Machine        string         `json:"machine"`
	Date           *time.Time     `json:"date"`
	Shift          string         `json:"shift"`
	NoOfColours    int            `json:"noOfColours" gorm:"default:0"`
	InksUsed       pq.StringArray `json:"inksUsed" gorm:"type:text[]"`
	Quantity       int            `json:"quantity" gorm:"default:0"`
	Wastage        int            `json:"wastage" gorm:"default:0"`
	ExtraSheets    int            `json:"extraSheets" gorm:"default:0"`
	CoatingType    string         `json:"coatingType"`
	SeparateSheets int            `json:"separateSheets" gorm:"default:0"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

func (PrintingDetails) TableName() string {
	return "printing_details"
}

type FluteLaminationDetails struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	JobStepID    uint           `json:"jobStepId" gorm:"not null;uniqueIndex"`
	JobNrcJobNo  string         `json:"jobNrcJobNo" gorm:"index;not null"`
	Status       DetailStatus   `json:"status" gorm:"not null;default:'in_progress'"`
	OperatorName string         `json:"oprName"`
	Date         *time.Time     `json:"date"`
	Shift        string         `json:"shift"`
	Film         string         `json:"film"`
	Adhesive     string         `json:"adhesive"`
	Quantity     int            `json:"quantity" gorm:"default:0"`
	Wastage      int            `json:"wastage" gorm:"default:0"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

func (FluteLaminationDetails) TableName() string {
	return "flute_lamination_details"
}

type PunchingDetails struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	JobStepID    uint           `json:"jobStepId" gorm:"not null;uniqueIndex"`
	JobNrcJobNo  string         `json:"jobNrcJobNo" gorm:"index;not null"`
	Status       DetailStatus   `json:"status" gorm:"not null;default:'in_progress'"`
	OperatorName string         `json:"oprName"`
	Machine      string         `json:"machine"`
	Date         *time.Time     `json:"date"`
	Shift        string         `json:"shift"`
	Die          string         `json:"die"`
	Quantity     int            `json:"quantity" gorm:"default:0"`
	Wastage      int            `json:"wastage" gorm:"default:0"`
	Remarks      string         `json:"remarks"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

func (PunchingDetails) TableName() string {
	return "punching_details"
}

type FlapPastingDetails struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	JobStepID    uint           `json:"jobStepId" gorm:"not null;uniqueIndex"`
	JobNrcJobNo  string         `json:"jobNrcJobNo" gorm:"index;not null"`
	Status       DetailStatus   `json:"status" gorm:"not null;default:'in_progress'"`
	OperatorName string         `json:"oprName"`
	Machine      string         `json:"machineNo"`
	Date         *time.Time     `json:"date"`
	Shift        string         `json:"shift"`
	Adhesive     string         `json:"adhesive"`
	Quantity     int            `json:"quantity" gorm:"default:0"`
	Wastage      int            `json:"wastage" gorm:"default:0"`
	Remarks      string         `json:"remarks"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

func (FlapPastingDetails) TableName() string {
	return "flap_pasting_details"
}

type QCDetails struct {
	ID                 uint           `json:"id" gorm:"primaryKey"`
	JobStepID          uint           `json:"jobStepId" gorm:"not null;uniqueIndex"`
	JobNrcJobNo        string         `json:"jobNrcJobNo" gorm:"index;not null"`
	Status             DetailStatus   `json:"status" gorm:"not null;default:'in_progress'"`
	CheckedBy          string         `json:"checkedBy"`
	Date               *time.Time     `json:"date"`
	Shift              string         `json:"shift"`
	Quantity           int            `json:"quantity" gorm:"default:0"`
	RejectedQty        int            `json:"rejectedQty" gorm:"default:0"`
	PassQty            int            `json:"passQty" gorm:"default:0"`
	ReasonForRejection string         `json:"reasonForRejection"`
	Readings           datatypes.JSON `json:"readings" gorm:"type:jsonb"`
	Remarks            string         `json:"remarks"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
	DeletedAt          gorm.DeletedAt `json:"-" gorm:"index"`
}

func (QCDetails) TableName() string {
	return "qc_details"
}

type DispatchDetails struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	JobStepID      uint           `json:"jobStepId" gorm:"not null;uniqueIndex"`
	JobNrcJobNo    string         `json:"jobNrcJobNo" gorm:"index;not null"`
	Status         DetailStatus   `json:"status" gorm:"not null;default:'in_progress'"`
	OperatorName   string         `json:"oprName"`
	DispatchNo     string         `json:"dispatchNo"`
	DispatchDate   *time.Time     `json:"dispatchDate"`
	Shift          string         `json:"shift"`
	NoOfBoxes      int            `json:"noOfBoxes" gorm:"default:0"`
	DispatchQty    int            `json:"dispatchQty" gorm:"default:0"`
	BalanceQty     int            `json:"balanceQty" gorm:"default:0"`
	InvoiceNumbers pq.StringArray `json:"invoiceNumbers" gorm:"type:text[]"`
	Remarks        string         `json:"remarks"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

func (DispatchDetails) TableName() string {
	return "dispatch_details"
}
