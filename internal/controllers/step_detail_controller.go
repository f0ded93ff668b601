package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/boxflow/backend/internal/models"
	"github.com/boxflow/backend/internal/services"
	"github.com/boxflow/backend/internal/steps"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StepDetailController serves the per-step-type detail endpoints. The step
// type arrives as a URL slug and is resolved through the registry; every
// payload shape decision happens in the detail service, not here.
type StepDetailController struct {
	db            *gorm.DB
	detailService *services.DetailService
}

func NewStepDetailController(db *gorm.DB) *StepDetailController {
	return &StepDetailController{
		db:            db,
		detailService: services.NewDetailService(db),
	}
}

func (sc *StepDetailController) resolveStep(c *gin.Context) (steps.StepInfo, bool) {
	info, ok := steps.LookupSlug(c.Param("stepType"))
	if !ok {
		// Unknown step types get a graceful miss, not a hard failure.
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Unknown step type",
			"data":    nil,
		})
		return steps.StepInfo{}, false
	}
	return info, true
}

type CreateDetailRequest struct {
	JobStepID   uint            `json:"jobStepId" binding:"required"`
	JobNrcJobNo string          `json:"jobNrcJobNo" binding:"required"`
	Detail      json.RawMessage `json:"detail"`
}

// CreateDetail creates a detail record with in_progress status, the write
// that accompanies a step being started.
func (sc *StepDetailController) CreateDetail(c *gin.Context) {
	info, ok := sc.resolveStep(c)
	if !ok {
		return
	}

	var req CreateDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := services.BuildDetail(info.Name, req.JobStepID, req.JobNrcJobNo, models.DetailInProgress, req.Detail)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := sc.db.Create(record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create detail record"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    record,
	})
}

// GetDetailByJob returns the detail record for a job. 404 means the step has
// not been started yet, which callers treat as a normal state.
func (sc *StepDetailController) GetDetailByJob(c *gin.Context) {
	info, ok := sc.resolveStep(c)
	if !ok {
		return
	}

	record, err := sc.detailService.GetByJob(info.Name, c.Param("nrcJobNo"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Step not started yet",
				"data":    nil,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch detail record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    record,
	})
}

// UpdateDetail replaces the mutable fields of a detail record by id.
func (sc *StepDetailController) UpdateDetail(c *gin.Context) {
	info, ok := sc.resolveStep(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid detail record id"})
		return
	}

	var raw json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := sc.detailService.Update(info.Name, uint(id), raw)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Detail record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    record,
	})
}
