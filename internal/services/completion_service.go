package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/boxflow/backend/internal/logger"
	"github.com/boxflow/backend/internal/models"
	"github.com/boxflow/backend/internal/steps"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompletionService owns the "complete step" operation: four independent
// writes issued concurrently with no transaction across them, mirroring how
// the dashboard has always driven the API. Partial failure is a recognized
// outcome that gets reported, never compensated; every write is idempotent so
// retrying the whole group converges.
type CompletionService struct {
	db            *gorm.DB
	detailService *DetailService
}

func NewCompletionService(db *gorm.DB) *CompletionService {
	return &CompletionService{
		db:            db,
		detailService: NewDetailService(db),
	}
}

// WriteOutcome is the result of one of the four completion writes.
type WriteOutcome struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// CompletionResult reports the whole group. Completed is true only when all
// four writes succeeded; the step must not be treated as complete otherwise.
type CompletionResult struct {
	AttemptID string         `json:"attemptId"`
	NrcJobNo  string         `json:"nrcJobNo"`
	StepNo    int            `json:"stepNo"`
	Completed bool           `json:"completed"`
	Outcomes  []WriteOutcome `json:"outcomes"`
}

// Failed lists the names of the writes that did not succeed.
func (r *CompletionResult) Failed() []string {
	var failed []string
	for _, o := range r.Outcomes {
		if !o.OK {
			failed = append(failed, o.Name)
		}
	}
	return failed
}

type namedWrite struct {
	name string
	fn   func() error
}

// runWrites issues every write concurrently and collects all outcomes. It
// never short-circuits: a failure in one write does not cancel the others,
// matching the fire-together semantics of the original operation.
func runWrites(writes []namedWrite) []WriteOutcome {
	outcomes := make([]WriteOutcome, len(writes))
	var wg sync.WaitGroup
	for i, w := range writes {
		wg.Add(1)
		go func(i int, w namedWrite) {
			defer wg.Done()
			outcomes[i] = WriteOutcome{Name: w.name, OK: true}
			if err := w.fn(); err != nil {
				outcomes[i].OK = false
				outcomes[i].Error = err.Error()
			}
		}(i, w)
	}
	wg.Wait()
	return outcomes
}

// CompleteStep performs the four-write completion of a started step:
// operator, status to stop, end date, and the accepted detail record carrying
// the full step-specific field set. Generic (non-registry) steps skip the
// detail upsert; their stop + end date is already the completion signal.
func (cs *CompletionService) CompleteStep(nrcJobNo string, stepNo int, operator string, detailPayload json.RawMessage) (*CompletionResult, error) {
	var step models.JobPlanStep
	err := cs.db.Joins("JOIN job_plans ON job_plans.id = job_plan_steps.job_plan_id").
		Where("job_plans.nrc_job_no = ? AND job_plan_steps.step_no = ?", nrcJobNo, stepNo).
		First(&step).Error
	if err != nil {
		return nil, err
	}

	if step.Status != models.StepStatusStart && step.Status != models.StepStatusStop {
		return nil, fmt.Errorf("%w: cannot complete step in status %s", ErrInvalidTransition, step.Status)
	}

	now := time.Now()
	writes := []namedWrite{
		{name: "step_user", fn: func() error {
			return cs.db.Model(&models.JobPlanStep{}).Where("id = ?", step.ID).
				Update("user", operator).Error
		}},
		{name: "step_status", fn: func() error {
			return cs.db.Model(&models.JobPlanStep{}).Where("id = ?", step.ID).
				Update("status", models.StepStatusStop).Error
		}},
		{name: "step_end_date", fn: func() error {
			return cs.db.Model(&models.JobPlanStep{}).Where("id = ?", step.ID).
				Update("end_date", &now).Error
		}},
	}
	if _, registered := steps.Lookup(step.StepName); registered {
		writes = append(writes, namedWrite{name: "detail_accept", fn: func() error {
			return cs.detailService.UpsertAccepted(step.StepName, step.ID, nrcJobNo, detailPayload)
		}})
	}

	result := &CompletionResult{
		AttemptID: uuid.NewString(),
		NrcJobNo:  nrcJobNo,
		StepNo:    stepNo,
		Outcomes:  runWrites(writes),
	}
	result.Completed = len(result.Failed()) == 0

	if result.Completed {
		logger.WithStep(step.ID, step.StepName).Info("Step completed")
	} else {
		logger.WithStep(step.ID, step.StepName).WithField("failed_writes", result.Failed()).
			Warn("Step completion partially failed, step may be inconsistent")
	}
	return result, nil
}
