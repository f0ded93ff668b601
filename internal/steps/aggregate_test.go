package steps

import (
	"testing"
	"time"

	"github.com/boxflow/backend/internal/models"
)

func TestCompletionPercentageEmptyPlan(t *testing.T) {
	if pct := CompletionPercentage(nil); pct != 0 {
		t.Errorf("expected 0 for empty plan, got %f", pct)
	}
}

func TestCompletionPercentageAllComplete(t *testing.T) {
	stepList := []models.JobPlanStep{
		acceptedPaperStoreStep(1),
		acceptedPaperStoreStep(2),
		acceptedPaperStoreStep(3),
	}
	if pct := CompletionPercentage(stepList); pct != 100 {
		t.Errorf("expected 100, got %f", pct)
	}
}

func TestCompletionPercentageMonotonic(t *testing.T) {
	stepList := []models.JobPlanStep{
		{StepNo: 1, StepName: PaperStore, Status: models.StepStatusPlanned},
		{StepNo: 2, StepName: Printing, Status: models.StepStatusPlanned},
	}

	before := CompletionPercentage(stepList)

	stepList[0] = acceptedPaperStoreStep(1)
	mid := CompletionPercentage(stepList)
	if mid < before {
		t.Errorf("percentage decreased after completing a step: %f -> %f", before, mid)
	}

	stepList[1] = models.JobPlanStep{
		StepNo:   2,
		StepName: Printing,
		Status:   models.StepStatusStop,
		EndDate:  timePtr(time.Now()),
		Printing: &models.PrintingDetails{Status: models.DetailAccept},
	}
	after := CompletionPercentage(stepList)
	if after < mid {
		t.Errorf("percentage decreased after completing a step: %f -> %f", mid, after)
	}
	if after != 100 {
		t.Errorf("expected 100 with all steps complete, got %f", after)
	}
}

func TestCategorize(t *testing.T) {
	completed := models.JobPlan{
		NrcJobNo: "NRC-001",
		Steps:    []models.JobPlanStep{acceptedPaperStoreStep(1)},
	}
	inFlight := models.JobPlan{
		NrcJobNo: "NRC-002",
		Steps: []models.JobPlanStep{
			{StepNo: 1, StepName: PaperStore, Status: models.StepStatusStart, StartDate: timePtr(time.Now())},
		},
	}
	untouched := models.JobPlan{
		NrcJobNo: "NRC-003",
		Steps: []models.JobPlanStep{
			{StepNo: 1, StepName: PaperStore, Status: models.StepStatusPlanned},
		},
	}
	// Partially complete with nothing currently running still counts as in
	// progress, not planned.
	partial := models.JobPlan{
		NrcJobNo: "NRC-004",
		Steps: []models.JobPlanStep{
			acceptedPaperStoreStep(1),
			{StepNo: 2, StepName: Printing, Status: models.StepStatusPlanned},
		},
	}

	buckets := Categorize([]models.JobPlan{completed, inFlight, untouched, partial})

	if len(buckets.Completed) != 1 || buckets.Completed[0].NrcJobNo != "NRC-001" {
		t.Errorf("expected NRC-001 in completed, got %+v", buckets.Completed)
	}
	if len(buckets.InProgress) != 2 {
		t.Errorf("expected 2 plans in progress, got %d", len(buckets.InProgress))
	}
	if len(buckets.Planned) != 1 || buckets.Planned[0].NrcJobNo != "NRC-003" {
		t.Errorf("expected NRC-003 in planned, got %+v", buckets.Planned)
	}
}

func TestCategorizeStoppedPendingAcceptance(t *testing.T) {
	// A registry step that was stopped but not yet accepted is neither
	// running nor complete, but the plan has seen work and belongs in the
	// in-progress bucket.
	plan := models.JobPlan{
		NrcJobNo: "NRC-005",
		Steps: []models.JobPlanStep{
			{
				StepNo:     1,
				StepName:   PaperStore,
				Status:     models.StepStatusStop,
				EndDate:    timePtr(time.Now()),
				PaperStore: &models.PaperStoreDetails{Status: models.DetailInProgress},
			},
		},
	}

	buckets := Categorize([]models.JobPlan{plan})
	if len(buckets.InProgress) != 1 {
		t.Errorf("expected plan in progress, got %+v", buckets)
	}
}

func TestCategorizeEmptyPlanNotCompleted(t *testing.T) {
	buckets := Categorize([]models.JobPlan{{NrcJobNo: "NRC-EMPTY"}})
	if len(buckets.Completed) != 0 {
		t.Error("plan with no steps must not be bucketed as completed")
	}
	if len(buckets.Planned) != 1 {
		t.Error("plan with no steps should be bucketed as planned")
	}
}
