package controllers

import (
	"net/http"

	"github.com/boxflow/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MachineController struct {
	db *gorm.DB
}

func NewMachineController(db *gorm.DB) *MachineController {
	return &MachineController{db: db}
}

func (mc *MachineController) GetMachines(c *gin.Context) {
	var machines []models.Machine

	query := mc.db.Model(&models.Machine{})
	if machineType := c.Query("type"); machineType != "" {
		query = query.Where("machine_type = ?", machineType)
	}
	if c.DefaultQuery("activeOnly", "true") == "true" {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Order("machine_code ASC").Find(&machines).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch machines"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    machines,
	})
}

func (mc *MachineController) GetMachine(c *gin.Context) {
	var machine models.Machine
	if err := mc.db.Where("id = ?", c.Param("id")).First(&machine).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Machine not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    machine,
	})
}

type CreateMachineRequest struct {
	Unit        string `json:"unit"`
	MachineCode string `json:"machineCode" binding:"required"`
	MachineType string `json:"machineType" binding:"required"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Capacity    int    `json:"capacity"`
}

func (mc *MachineController) CreateMachine(c *gin.Context) {
	var req CreateMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	machine := models.Machine{
		ID:                uuid.NewString(),
		Unit:              req.Unit,
		MachineCode:       req.MachineCode,
		MachineType:       req.MachineType,
		Description:       req.Description,
		Type:              req.Type,
		Capacity:          req.Capacity,
		RemainingCapacity: req.Capacity,
		Status:            models.MachineAvailable,
		IsActive:          true,
	}

	if err := mc.db.Create(&machine).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create machine"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    machine,
	})
}

type UpdateMachineStatusRequest struct {
	Status   models.MachineStatus `json:"status" binding:"required"`
	IsActive *bool                `json:"isActive"`
}

func (mc *MachineController) UpdateMachineStatus(c *gin.Context) {
	var machine models.Machine
	if err := mc.db.Where("id = ?", c.Param("id")).First(&machine).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Machine not found"})
		return
	}

	var req UpdateMachineStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Status != models.MachineAvailable && req.Status != models.MachineBusy {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown machine status"})
		return
	}

	machine.Status = req.Status
	if req.IsActive != nil {
		machine.IsActive = *req.IsActive
	}

	if err := mc.db.Save(&machine).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update machine"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    machine,
	})
}
