package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type JobDemand string

const (
	DemandHigh   JobDemand = "high"
	DemandMedium JobDemand = "medium"
	DemandLow    JobDemand = "low"
)

// Job is the pre-planning intake entity. It moves through three completion
// gates in order (artwork, purchase order, more information) before a JobPlan
// is generated for it. NrcJobNo is the natural key every downstream record
// references.
type Job struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	NrcJobNo      string         `json:"nrcJobNo" gorm:"uniqueIndex;not null"`
	StyleItemSKU  string         `json:"styleItemSKU"`
	CustomerName  string         `json:"customerName" gorm:"not null"`
	FluteType     string         `json:"fluteType"`
	BoardCategory string         `json:"boardCategory"`
	BoardSizes    pq.StringArray `json:"boardSizes" gorm:"type:text[]"`
	NoUps         int            `json:"noUps" gorm:"default:0"`
	Length        float64        `json:"length"`
	Width         float64        `json:"width"`
	Height        float64        `json:"height"`
	JobDemand     JobDemand      `json:"jobDemand"`
	SelectedSteps pq.StringArray `json:"selectedSteps" gorm:"type:text[]"`

	// Intake gates, in order. A nil timestamp means the gate has not been
	// passed yet.
	ArtworkReceivedDate   *time.Time `json:"artworkReceivedDate"`
	ArtworkApprovedDate   *time.Time `json:"artworkApprovedDate"`
	ShadeCardApprovalDate *time.Time `json:"shadeCardApprovalDate"`
	PoCompletedAt         *time.Time `json:"poCompletedAt"`
	MoreInfoCompletedAt   *time.Time `json:"moreInfoCompletedAt"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	PurchaseOrders []PurchaseOrder `json:"purchaseOrders,omitempty" gorm:"foreignKey:JobID"`
}

func (Job) TableName() string {
	return "jobs"
}

// ArtworkComplete reports whether the artwork gate has been passed.
func (j *Job) ArtworkComplete() bool {
	return j.ArtworkReceivedDate != nil && j.ArtworkApprovedDate != nil
}

// PoComplete reports whether the purchase-order gate has been passed.
func (j *Job) PoComplete() bool {
	return j.PoCompletedAt != nil
}

// MoreInfoComplete reports whether the final intake gate has been passed.
func (j *Job) MoreInfoComplete() bool {
	return j.MoreInfoCompletedAt != nil
}

// ReadyForPlanning is true once all three intake gates are complete.
func (j *Job) ReadyForPlanning() bool {
	return j.ArtworkComplete() && j.PoComplete() && j.MoreInfoComplete()
}

type PurchaseOrder struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	JobID           uint           `json:"jobId" gorm:"not null;index"`
	PoNumber        string         `json:"poNumber" gorm:"not null"`
	Customer        string         `json:"customer"`
	TotalPOQuantity int            `json:"totalPOQuantity" gorm:"default:0"`
	PendingQuantity int            `json:"pendingQuantity" gorm:"default:0"`
	Unit            string         `json:"unit"`
	PoDate          *time.Time     `json:"poDate"`
	DeliveryDate    *time.Time     `json:"deliveryDate"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`

	Job *Job `json:"job,omitempty" gorm:"foreignKey:JobID;references:ID"`
}

func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}
