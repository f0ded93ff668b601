package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/boxflow/backend/internal/logger"
	"github.com/boxflow/backend/internal/models"
	"github.com/boxflow/backend/internal/steps"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrJobNotReady       = errors.New("job has not completed all intake gates")
	ErrPlanExists        = errors.New("job plan already exists for this job")
	ErrStepNotAccessible = errors.New("step is not accessible yet, predecessor incomplete")
	ErrInvalidTransition = errors.New("invalid step status transition")
	ErrMachineRequired   = errors.New("machine assignment is mandatory for high demand jobs")
)

type PlanService struct {
	db            *gorm.DB
	detailService *DetailService
}

func NewPlanService(db *gorm.DB) *PlanService {
	return &PlanService{
		db:            db,
		detailService: NewDetailService(db),
	}
}

// PlannedStepRequest describes one step of a plan being generated.
type PlannedStepRequest struct {
	StepName   string   `json:"stepName" binding:"required"`
	MachineIDs []string `json:"machineIds"`
}

// detailPreloads attaches every step-detail association so the progression
// gate sees the authoritative accept status.
func detailPreloads(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_no ASC")
		}).
		Preload("Steps.PaperStore").
		Preload("Steps.Corrugation").
		Preload("Steps.Printing").
		Preload("Steps.FluteLamination").
		Preload("Steps.Punching").
		Preload("Steps.FlapPasting").
		Preload("Steps.QC").
		Preload("Steps.Dispatch")
}

// GeneratePlan creates the ordered step pipeline for a job whose three intake
// gates are complete. StepNo is assigned from request order. High demand jobs
// must carry at least one machine on every registry step.
func (ps *PlanService) GeneratePlan(nrcJobNo string, requested []PlannedStepRequest) (*models.JobPlan, error) {
	var job models.Job
	if err := ps.db.Where("nrc_job_no = ?", nrcJobNo).First(&job).Error; err != nil {
		return nil, err
	}
	if !job.ReadyForPlanning() {
		return nil, ErrJobNotReady
	}

	var existing models.JobPlan
	if err := ps.db.Where("nrc_job_no = ?", nrcJobNo).First(&existing).Error; err == nil {
		return nil, ErrPlanExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Fall back to the step list selected at intake when the request does not
	// spell the pipeline out.
	if len(requested) == 0 {
		for _, name := range job.SelectedSteps {
			requested = append(requested, PlannedStepRequest{StepName: name})
		}
	}
	if len(requested) == 0 {
		return nil, fmt.Errorf("job %s has no steps selected", nrcJobNo)
	}

	plan := models.JobPlan{
		NrcJobNo:  nrcJobNo,
		JobDemand: job.JobDemand,
	}

	for i, req := range requested {
		machineDetails, err := ps.machineSnapshots(req.MachineIDs)
		if err != nil {
			return nil, err
		}
		if job.JobDemand == models.DemandHigh && len(machineDetails) == 0 {
			if _, registered := steps.Lookup(req.StepName); registered {
				return nil, fmt.Errorf("%w: step %s", ErrMachineRequired, req.StepName)
			}
		}
		plan.Steps = append(plan.Steps, models.JobPlanStep{
			NrcJobNo:       nrcJobNo,
			StepNo:         i + 1,
			StepName:       req.StepName,
			Status:         models.StepStatusPlanned,
			MachineDetails: machineDetails,
		})
	}

	if err := ps.db.Create(&plan).Error; err != nil {
		return nil, fmt.Errorf("failed to create job plan: %w", err)
	}

	logger.WithPlan(plan.ID, nrcJobNo).Info("Job plan generated")
	return &plan, nil
}

func (ps *PlanService) machineSnapshots(machineIDs []string) (datatypes.JSONSlice[models.MachineDetail], error) {
	if len(machineIDs) == 0 {
		return nil, nil
	}
	var machines []models.Machine
	if err := ps.db.Where("id IN ? AND is_active = ?", machineIDs, true).Find(&machines).Error; err != nil {
		return nil, fmt.Errorf("failed to load machines: %w", err)
	}
	if len(machines) != len(machineIDs) {
		return nil, fmt.Errorf("one or more machines not found or inactive")
	}
	details := make(datatypes.JSONSlice[models.MachineDetail], 0, len(machines))
	for _, m := range machines {
		details = append(details, models.MachineDetail{
			MachineID:   m.ID,
			Unit:        m.Unit,
			MachineCode: m.MachineCode,
			MachineType: m.MachineType,
		})
	}
	return details, nil
}

// GetPlans returns all plans with steps and detail records attached.
func (ps *PlanService) GetPlans() ([]models.JobPlan, error) {
	var plans []models.JobPlan
	if err := detailPreloads(ps.db).Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch job plans: %w", err)
	}
	return plans, nil
}

// GetPlan returns one plan by its job's natural key.
func (ps *PlanService) GetPlan(nrcJobNo string) (*models.JobPlan, error) {
	var plan models.JobPlan
	if err := detailPreloads(ps.db).Where("nrc_job_no = ?", nrcJobNo).First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (ps *PlanService) loadStep(plan *models.JobPlan, stepNo int) (*models.JobPlanStep, error) {
	for i := range plan.Steps {
		if plan.Steps[i].StepNo == stepNo {
			return &plan.Steps[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// StartStep transitions a planned step to start, stamps the start date and
// creates the step's detail record with in_progress status. The progression
// gate blocks starting a step whose predecessor is incomplete.
func (ps *PlanService) StartStep(nrcJobNo string, stepNo int, operator string) (*models.JobPlanStep, error) {
	plan, err := ps.GetPlan(nrcJobNo)
	if err != nil {
		return nil, err
	}
	step, err := ps.loadStep(plan, stepNo)
	if err != nil {
		return nil, err
	}

	if step.Status != models.StepStatusPlanned {
		return nil, fmt.Errorf("%w: cannot start step in status %s", ErrInvalidTransition, step.Status)
	}

	next := steps.NextActionableStep(plan.Steps)
	if next == nil || next.StepNo != stepNo {
		return nil, ErrStepNotAccessible
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     models.StepStatusStart,
		"start_date": &now,
		"user":       operator,
	}
	if err := ps.db.Model(&models.JobPlanStep{}).Where("id = ?", step.ID).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to start step: %w", err)
	}

	if _, registered := steps.Lookup(step.StepName); registered {
		if err := ps.detailService.CreateForStart(step.StepName, step.ID, nrcJobNo, operator); err != nil {
			return nil, fmt.Errorf("step started but detail record creation failed: %w", err)
		}
	}

	step.Status = models.StepStatusStart
	step.StartDate = &now
	step.User = &operator

	logger.WithStep(step.ID, step.StepName).Info("Step started")
	return step, nil
}

// StopStep transitions a started step to stop and stamps the end date. Stop
// means the batch of work is finished and pending acceptance, not paused.
func (ps *PlanService) StopStep(nrcJobNo string, stepNo int, operator string) (*models.JobPlanStep, error) {
	plan, err := ps.GetPlan(nrcJobNo)
	if err != nil {
		return nil, err
	}
	step, err := ps.loadStep(plan, stepNo)
	if err != nil {
		return nil, err
	}

	if step.Status != models.StepStatusStart {
		return nil, fmt.Errorf("%w: cannot stop step in status %s", ErrInvalidTransition, step.Status)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":   models.StepStatusStop,
		"end_date": &now,
		"user":     operator,
	}
	if err := ps.db.Model(&models.JobPlanStep{}).Where("id = ?", step.ID).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to stop step: %w", err)
	}

	step.Status = models.StepStatusStop
	step.EndDate = &now
	step.User = &operator

	logger.WithStep(step.ID, step.StepName).Info("Step stopped, pending acceptance")
	return step, nil
}

// StepUpdateRequest is the partial-update payload for a step. Nil fields are
// left untouched.
type StepUpdateRequest struct {
	Status    *models.StepStatus `json:"status"`
	StartDate *time.Time         `json:"startDate"`
	EndDate   *time.Time         `json:"endDate"`
	User      *string            `json:"user"`
}

// UpdateStep applies a partial update to step fields without transition
// validation. The dashboard uses the dedicated start/stop/complete operations;
// this is the raw PUT surface matching the legacy API.
func (ps *PlanService) UpdateStep(nrcJobNo string, stepNo int, req StepUpdateRequest) (*models.JobPlanStep, error) {
	plan, err := ps.GetPlan(nrcJobNo)
	if err != nil {
		return nil, err
	}
	step, err := ps.loadStep(plan, stepNo)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.StartDate != nil {
		updates["start_date"] = req.StartDate
	}
	if req.EndDate != nil {
		updates["end_date"] = req.EndDate
	}
	if req.User != nil {
		updates["user"] = *req.User
	}
	if len(updates) == 0 {
		return step, nil
	}

	if err := ps.db.Model(&models.JobPlanStep{}).Where("id = ?", step.ID).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update step: %w", err)
	}

	var fresh models.JobPlanStep
	if err := ps.db.First(&fresh, step.ID).Error; err != nil {
		return nil, err
	}
	return &fresh, nil
}

// ReassignMachines replaces the machine snapshot on a step. This is the only
// way machines change after planning.
func (ps *PlanService) ReassignMachines(nrcJobNo string, stepNo int, machineIDs []string) (*models.JobPlanStep, error) {
	plan, err := ps.GetPlan(nrcJobNo)
	if err != nil {
		return nil, err
	}
	step, err := ps.loadStep(plan, stepNo)
	if err != nil {
		return nil, err
	}

	machineDetails, err := ps.machineSnapshots(machineIDs)
	if err != nil {
		return nil, err
	}
	if plan.JobDemand == models.DemandHigh && len(machineDetails) == 0 {
		return nil, ErrMachineRequired
	}

	if err := ps.db.Model(&models.JobPlanStep{}).Where("id = ?", step.ID).
		Update("machine_details", machineDetails).Error; err != nil {
		return nil, fmt.Errorf("failed to reassign machines: %w", err)
	}

	step.MachineDetails = machineDetails
	logger.WithStep(step.ID, step.StepName).Info("Machines reassigned")
	return step, nil
}

// NextStep returns the next actionable step of a plan, or nil when nothing is
// actionable.
func (ps *PlanService) NextStep(nrcJobNo string) (*models.JobPlanStep, error) {
	plan, err := ps.GetPlan(nrcJobNo)
	if err != nil {
		return nil, err
	}
	return steps.NextActionableStep(plan.Steps), nil
}

// PlanSummary is the dashboard rollup: bucketed plans plus per-plan
// completion percentages.
type PlanSummary struct {
	Buckets     steps.PlanBuckets  `json:"buckets"`
	Percentages map[string]float64 `json:"percentages"`
}

func (ps *PlanService) Summary() (*PlanSummary, error) {
	plans, err := ps.GetPlans()
	if err != nil {
		return nil, err
	}
	summary := &PlanSummary{
		Buckets:     steps.Categorize(plans),
		Percentages: make(map[string]float64, len(plans)),
	}
	for _, plan := range plans {
		summary.Percentages[plan.NrcJobNo] = steps.CompletionPercentage(plan.Steps)
	}
	return summary, nil
}
