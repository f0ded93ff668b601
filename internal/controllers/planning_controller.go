package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/boxflow/backend/internal/services"
	"github.com/boxflow/backend/internal/steps"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PlanningController struct {
	planService       *services.PlanService
	completionService *services.CompletionService
}

func NewPlanningController(planService *services.PlanService, completionService *services.CompletionService) *PlanningController {
	return &PlanningController{
		planService:       planService,
		completionService: completionService,
	}
}

type GeneratePlanRequest struct {
	NrcJobNo string                        `json:"nrcJobNo" binding:"required"`
	Steps    []services.PlannedStepRequest `json:"steps"`
}

func (pc *PlanningController) GeneratePlan(c *gin.Context) {
	var req GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := pc.planService.GeneratePlan(req.NrcJobNo, req.Steps)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		case errors.Is(err, services.ErrJobNotReady):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrPlanExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrMachineRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    plan,
	})
}

func (pc *PlanningController) GetPlans(c *gin.Context) {
	plans, err := pc.planService.GetPlans()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch job plans"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    plans,
	})
}

func (pc *PlanningController) GetPlan(c *gin.Context) {
	plan, err := pc.planService.GetPlan(c.Param("nrcJobNo"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch job plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":              true,
		"data":                 plan,
		"completionPercentage": steps.CompletionPercentage(plan.Steps),
	})
}

// Summary buckets all plans for the dashboard landing page.
func (pc *PlanningController) Summary(c *gin.Context) {
	summary, err := pc.planService.Summary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build summary"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    summary,
	})
}

// NextStep reports the next actionable step of one plan, or null when the
// pipeline is blocked or finished.
func (pc *PlanningController) NextStep(c *gin.Context) {
	next, err := pc.planService.NextStep(c.Param("nrcJobNo"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute next step"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    next,
	})
}

func (pc *PlanningController) stepNoParam(c *gin.Context) (int, bool) {
	stepNo, err := strconv.Atoi(c.Param("stepNo"))
	if err != nil || stepNo < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid step number"})
		return 0, false
	}
	return stepNo, true
}

func (pc *PlanningController) operatorFromContext(c *gin.Context) string {
	if email, exists := c.Get("user_email"); exists {
		if e, ok := email.(string); ok {
			return e
		}
	}
	return ""
}

// UpdateStep is the raw partial-update surface for a step, kept for parity
// with the legacy API. The guarded transitions live on /start, /stop and
// /complete.
func (pc *PlanningController) UpdateStep(c *gin.Context) {
	stepNo, ok := pc.stepNoParam(c)
	if !ok {
		return
	}

	var req services.StepUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	step, err := pc.planService.UpdateStep(c.Param("nrcJobNo"), stepNo, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Step not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    step,
	})
}

func (pc *PlanningController) StartStep(c *gin.Context) {
	stepNo, ok := pc.stepNoParam(c)
	if !ok {
		return
	}

	step, err := pc.planService.StartStep(c.Param("nrcJobNo"), stepNo, pc.operatorFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Step not found"})
		case errors.Is(err, services.ErrStepNotAccessible):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    step,
	})
}

func (pc *PlanningController) StopStep(c *gin.Context) {
	stepNo, ok := pc.stepNoParam(c)
	if !ok {
		return
	}

	step, err := pc.planService.StopStep(c.Param("nrcJobNo"), stepNo, pc.operatorFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Step not found"})
		case errors.Is(err, services.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    step,
	})
}

type ReassignMachinesRequest struct {
	MachineIDs []string `json:"machineIds" binding:"required"`
}

func (pc *PlanningController) ReassignMachines(c *gin.Context) {
	stepNo, ok := pc.stepNoParam(c)
	if !ok {
		return
	}

	var req ReassignMachinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	step, err := pc.planService.ReassignMachines(c.Param("nrcJobNo"), stepNo, req.MachineIDs)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Step not found"})
		case errors.Is(err, services.ErrMachineRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    step,
	})
}

type CompleteStepRequest struct {
	Detail json.RawMessage `json:"detail"`
}

// CompleteStep runs the four-write completion group. A partial failure is
// reported as 502 with the per-write outcomes so the operator can retry the
// whole group; the step is not treated as complete until every write lands.
func (pc *PlanningController) CompleteStep(c *gin.Context) {
	stepNo, ok := pc.stepNoParam(c)
	if !ok {
		return
	}

	var req CompleteStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := pc.completionService.CompleteStep(
		c.Param("nrcJobNo"), stepNo, pc.operatorFromContext(c), req.Detail)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Step not found"})
		case errors.Is(err, services.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if !result.Completed {
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "Step completion partially failed; the step may be in an inconsistent state. Retry the operation.",
			"data":    result,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}
