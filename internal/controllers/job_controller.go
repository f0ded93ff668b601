package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/boxflow/backend/internal/logger"
	"github.com/boxflow/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// JobController owns job intake and the three pre-planning gates. The gates
// are strictly sequential: artwork, then purchase order, then more
// information. A gate endpoint refuses to run until its predecessor passed,
// the same accessibility rule the step pipeline uses.
type JobController struct {
	db *gorm.DB
}

func NewJobController(db *gorm.DB) *JobController {
	return &JobController{db: db}
}

type CreateJobRequest struct {
	NrcJobNo      string           `json:"nrcJobNo" binding:"required"`
	CustomerName  string           `json:"customerName" binding:"required"`
	StyleItemSKU  string           `json:"styleItemSKU"`
	FluteType     string           `json:"fluteType"`
	BoardCategory string           `json:"boardCategory"`
	BoardSizes    []string         `json:"boardSizes"`
	NoUps         int              `json:"noUps"`
	Length        float64          `json:"length"`
	Width         float64          `json:"width"`
	Height        float64          `json:"height"`
	JobDemand     models.JobDemand `json:"jobDemand"`
}

func (jc *JobController) CreateJob(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.Job
	if err := jc.db.Where("nrc_job_no = ?", req.NrcJobNo).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Job already exists"})
		return
	}

	job := models.Job{
		NrcJobNo:      req.NrcJobNo,
		CustomerName:  req.CustomerName,
		StyleItemSKU:  req.StyleItemSKU,
		FluteType:     req.FluteType,
		BoardCategory: req.BoardCategory,
		BoardSizes:    pq.StringArray(req.BoardSizes),
		NoUps:         req.NoUps,
		Length:        req.Length,
		Width:         req.Width,
		Height:        req.Height,
		JobDemand:     req.JobDemand,
	}

	if err := jc.db.Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job"})
		return
	}

	logger.WithJob(job.NrcJobNo).Info("Job created")
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    job,
	})
}

func (jc *JobController) GetJobs(c *gin.Context) {
	var jobs []models.Job
	if err := jc.db.Preload("PurchaseOrders").Order("created_at DESC").Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch jobs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    jobs,
	})
}

func (jc *JobController) GetJob(c *gin.Context) {
	var job models.Job
	err := jc.db.Preload("PurchaseOrders").
		Where("nrc_job_no = ?", c.Param("nrcJobNo")).First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch job"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    job,
	})
}

type ArtworkGateRequest struct {
	ArtworkReceivedDate   *time.Time `json:"artworkReceivedDate"`
	ArtworkApprovedDate   *time.Time `json:"artworkApprovedDate"`
	ShadeCardApprovalDate *time.Time `json:"shadeCardApprovalDate"`
}

// CompleteArtwork records the artwork dates. The gate counts as passed once
// both received and approved dates are present.
func (jc *JobController) CompleteArtwork(c *gin.Context) {
	var job models.Job
	if err := jc.db.Where("nrc_job_no = ?", c.Param("nrcJobNo")).First(&job).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	var req ArtworkGateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.ArtworkReceivedDate != nil {
		job.ArtworkReceivedDate = req.ArtworkReceivedDate
	}
	if req.ArtworkApprovedDate != nil {
		job.ArtworkApprovedDate = req.ArtworkApprovedDate
	}
	if req.ShadeCardApprovalDate != nil {
		job.ShadeCardApprovalDate = req.ShadeCardApprovalDate
	}

	if err := jc.db.Save(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update job"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"data":            job,
		"artworkComplete": job.ArtworkComplete(),
	})
}

type PoGateRequest struct {
	PoNumber        string     `json:"poNumber" binding:"required"`
	Customer        string     `json:"customer"`
	TotalPOQuantity int        `json:"totalPOQuantity"`
	Unit            string     `json:"unit"`
	PoDate          *time.Time `json:"poDate"`
	DeliveryDate    *time.Time `json:"deliveryDate"`
}

// CompletePO records a purchase order and passes the second gate. Blocked
// until the artwork gate is complete.
func (jc *JobController) CompletePO(c *gin.Context) {
	var job models.Job
	if err := jc.db.Where("nrc_job_no = ?", c.Param("nrcJobNo")).First(&job).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	if !job.ArtworkComplete() {
		c.JSON(http.StatusConflict, gin.H{"error": "Artwork gate must be completed first"})
		return
	}

	var req PoGateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	po := models.PurchaseOrder{
		JobID:           job.ID,
		PoNumber:        req.PoNumber,
		Customer:        req.Customer,
		TotalPOQuantity: req.TotalPOQuantity,
		PendingQuantity: req.TotalPOQuantity,
		Unit:            req.Unit,
		PoDate:          req.PoDate,
		DeliveryDate:    req.DeliveryDate,
	}
	if err := jc.db.Create(&po).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create purchase order"})
		return
	}

	now := time.Now()
	job.PoCompletedAt = &now
	if err := jc.db.Save(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update job"})
		return
	}

	logger.WithJob(job.NrcJobNo).Info("Purchase order gate completed")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    po,
	})
}

type MoreInfoGateRequest struct {
	JobDemand     models.JobDemand `json:"jobDemand"`
	SelectedSteps []string         `json:"selectedSteps"`
	BoardSizes    []string         `json:"boardSizes"`
	NoUps         *int             `json:"noUps"`
}

// CompleteMoreInfo passes the final intake gate and fixes the job demand and
// selected step list the plan will be generated from. Blocked until the PO
// gate is complete.
func (jc *JobController) CompleteMoreInfo(c *gin.Context) {
	var job models.Job
	if err := jc.db.Where("nrc_job_no = ?", c.Param("nrcJobNo")).First(&job).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	if !job.PoComplete() {
		c.JSON(http.StatusConflict, gin.H{"error": "Purchase order gate must be completed first"})
		return
	}

	var req MoreInfoGateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.JobDemand != "" {
		job.JobDemand = req.JobDemand
	}
	if len(req.SelectedSteps) > 0 {
		job.SelectedSteps = pq.StringArray(req.SelectedSteps)
	}
	if len(req.BoardSizes) > 0 {
		job.BoardSizes = pq.StringArray(req.BoardSizes)
	}
	if req.NoUps != nil {
		job.NoUps = *req.NoUps
	}

	now := time.Now()
	job.MoreInfoCompletedAt = &now
	if err := jc.db.Save(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update job"})
		return
	}

	logger.WithJob(job.NrcJobNo).Info("Job intake completed, ready for planning")
	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"data":             job,
		"readyForPlanning": job.ReadyForPlanning(),
	})
}
