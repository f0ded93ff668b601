package steps

import (
	"math"
	"testing"
	"time"

	"github.com/boxflow/backend/internal/models"
)

func acceptedPaperStoreStep(stepNo int) models.JobPlanStep {
	return models.JobPlanStep{
		StepNo:     stepNo,
		StepName:   PaperStore,
		Status:     models.StepStatusStop,
		EndDate:    timePtr(time.Now()),
		PaperStore: &models.PaperStoreDetails{Status: models.DetailAccept},
	}
}

func TestNextActionableStepFirstPlanned(t *testing.T) {
	stepList := []models.JobPlanStep{
		{StepNo: 1, StepName: PaperStore, Status: models.StepStatusPlanned},
		{StepNo: 2, StepName: Printing, Status: models.StepStatusPlanned},
	}

	next := NextActionableStep(stepList)
	if next == nil || next.StepNo != 1 {
		t.Fatalf("expected step 1 to be actionable, got %+v", next)
	}
}

func TestNextActionableStepAfterCompletedPredecessor(t *testing.T) {
	stepList := []models.JobPlanStep{
		acceptedPaperStoreStep(1),
		{StepNo: 2, StepName: Printing, Status: models.StepStatusPlanned},
		{StepNo: 3, StepName: Punching, Status: models.StepStatusPlanned},
	}

	next := NextActionableStep(stepList)
	if next == nil || next.StepNo != 2 {
		t.Fatalf("expected step 2 to be actionable, got %+v", next)
	}
}

func TestNextActionableStepInFlightWins(t *testing.T) {
	stepList := []models.JobPlanStep{
		acceptedPaperStoreStep(1),
		{StepNo: 2, StepName: Printing, Status: models.StepStatusStart, StartDate: timePtr(time.Now())},
		{StepNo: 3, StepName: Punching, Status: models.StepStatusPlanned},
	}

	next := NextActionableStep(stepList)
	if next == nil || next.StepNo != 2 {
		t.Fatalf("expected in-flight step 2, got %+v", next)
	}
}

func TestNextActionableStepBlockedPipeline(t *testing.T) {
	// Step 1 stopped but not accepted: step 2 stays planned behind an
	// incomplete predecessor and nothing is actionable.
	stepList := []models.JobPlanStep{
		{
			StepNo:     1,
			StepName:   PaperStore,
			Status:     models.StepStatusStop,
			EndDate:    timePtr(time.Now()),
			PaperStore: &models.PaperStoreDetails{Status: models.DetailInProgress},
		},
		{StepNo: 2, StepName: Printing, Status: models.StepStatusPlanned},
	}

	if next := NextActionableStep(stepList); next != nil {
		t.Errorf("expected no actionable step, got step %d", next.StepNo)
	}
}

func TestNextActionableStepAllComplete(t *testing.T) {
	stepList := []models.JobPlanStep{
		acceptedPaperStoreStep(1),
		acceptedPaperStoreStep(2),
	}

	if next := NextActionableStep(stepList); next != nil {
		t.Errorf("expected nil for fully complete plan, got step %d", next.StepNo)
	}
}

func TestNextActionableStepUnorderedInput(t *testing.T) {
	// Steps arrive in arbitrary order; the scan must follow StepNo.
	stepList := []models.JobPlanStep{
		{StepNo: 3, StepName: Punching, Status: models.StepStatusPlanned},
		acceptedPaperStoreStep(1),
		{StepNo: 2, StepName: Printing, Status: models.StepStatusPlanned},
	}

	next := NextActionableStep(stepList)
	if next == nil || next.StepNo != 2 {
		t.Fatalf("expected step 2, got %+v", next)
	}
}

func TestGenericStepUnblocksSuccessor(t *testing.T) {
	// A plan whose first step is of an unrecognized type: stop + end date is
	// enough to open step 2.
	stepList := []models.JobPlanStep{
		{StepNo: 1, StepName: "Legacy", Status: models.StepStatusStop, EndDate: timePtr(time.Now())},
		{StepNo: 2, StepName: Printing, Status: models.StepStatusPlanned},
		{StepNo: 3, StepName: Punching, Status: models.StepStatusPlanned},
	}

	if !IsStepComplete(&stepList[0]) {
		t.Error("expected generic stopped step to be complete")
	}

	next := NextActionableStep(stepList)
	if next == nil || next.StepNo != 2 {
		t.Fatalf("expected step 2, got %+v", next)
	}

	pct := CompletionPercentage(stepList)
	if math.Abs(pct-100.0/3.0) > 1e-9 {
		t.Errorf("expected completion percentage 33.33, got %f", pct)
	}
}

func TestIsStepAccessible(t *testing.T) {
	stepList := []models.JobPlanStep{
		{StepNo: 1, StepName: PaperStore, Status: models.StepStatusPlanned},
		{StepNo: 2, StepName: Printing, Status: models.StepStatusPlanned},
	}

	if !IsStepAccessible(0, stepList) {
		t.Error("first step must always be accessible")
	}
	if IsStepAccessible(1, stepList) {
		t.Error("second step must be blocked behind incomplete first step")
	}

	stepList[0] = acceptedPaperStoreStep(1)
	if !IsStepAccessible(1, stepList) {
		t.Error("second step should open once first is complete")
	}

	if IsStepAccessible(-1, stepList) || IsStepAccessible(2, stepList) {
		t.Error("out-of-range index must not be accessible")
	}
}

func TestNextActionableStepIdempotent(t *testing.T) {
	stepList := []models.JobPlanStep{
		acceptedPaperStoreStep(1),
		{StepNo: 2, StepName: Printing, Status: models.StepStatusPlanned},
	}

	first := NextActionableStep(stepList)
	second := NextActionableStep(stepList)
	if first == nil || second == nil || first.StepNo != second.StepNo {
		t.Errorf("expected identical results, got %+v and %+v", first, second)
	}
}
