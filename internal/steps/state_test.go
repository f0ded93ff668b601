package steps

import (
	"testing"
	"time"

	"github.com/boxflow/backend/internal/models"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestIsStepCompleteRegistryTypes(t *testing.T) {
	tests := []struct {
		name     string
		step     models.JobPlanStep
		expected bool
	}{
		{
			name: "paper store accepted",
			step: models.JobPlanStep{
				StepName:   PaperStore,
				Status:     models.StepStatusStop,
				PaperStore: &models.PaperStoreDetails{Status: models.DetailAccept},
			},
			expected: true,
		},
		{
			name: "paper store still in progress despite stop status",
			step: models.JobPlanStep{
				StepName:   PaperStore,
				Status:     models.StepStatusStop,
				EndDate:    timePtr(time.Now()),
				PaperStore: &models.PaperStoreDetails{Status: models.DetailInProgress},
			},
			expected: false,
		},
		{
			name: "registry type with missing detail record",
			step: models.JobPlanStep{
				StepName: Corrugation,
				Status:   models.StepStatusStop,
				EndDate:  timePtr(time.Now()),
			},
			expected: false,
		},
		{
			name: "qc accepted",
			step: models.JobPlanStep{
				StepName: QualityDept,
				Status:   models.StepStatusStart,
				QC:       &models.QCDetails{Status: models.DetailAccept},
			},
			expected: true,
		},
		{
			name: "dispatch accepted",
			step: models.JobPlanStep{
				StepName: DispatchProcess,
				Dispatch: &models.DispatchDetails{Status: models.DetailAccept},
			},
			expected: true,
		},
	}

	for _, test := range tests {
		if got := IsStepComplete(&test.step); got != test.expected {
			t.Errorf("%s: expected %v, got %v", test.name, test.expected, got)
		}
	}
}

func TestIsStepCompleteGenericFallback(t *testing.T) {
	// Unrecognized step types count as complete once stopped with an end date.
	step := models.JobPlanStep{
		StepName: "DieCutting",
		Status:   models.StepStatusStop,
		EndDate:  timePtr(time.Now()),
	}
	if !IsStepComplete(&step) {
		t.Error("expected generic stopped step with end date to be complete")
	}

	step.EndDate = nil
	if IsStepComplete(&step) {
		t.Error("expected generic stopped step without end date to be incomplete")
	}

	step.EndDate = timePtr(time.Now())
	step.Status = models.StepStatusStart
	if IsStepComplete(&step) {
		t.Error("expected generic started step to be incomplete")
	}
}

func TestIsStepCompleteNilStep(t *testing.T) {
	if IsStepComplete(nil) {
		t.Error("expected nil step to be incomplete")
	}
}

func TestIsStepStarted(t *testing.T) {
	tests := []struct {
		name     string
		step     models.JobPlanStep
		expected bool
	}{
		{
			name:     "started with start date",
			step:     models.JobPlanStep{Status: models.StepStatusStart, StartDate: timePtr(time.Now())},
			expected: true,
		},
		{
			name:     "start status without start date",
			step:     models.JobPlanStep{Status: models.StepStatusStart},
			expected: false,
		},
		{
			name:     "planned",
			step:     models.JobPlanStep{Status: models.StepStatusPlanned},
			expected: false,
		},
	}

	for _, test := range tests {
		if got := IsStepStarted(&test.step); got != test.expected {
			t.Errorf("%s: expected %v, got %v", test.name, test.expected, got)
		}
	}
}

func TestIsStepCompleteIdempotent(t *testing.T) {
	step := models.JobPlanStep{
		StepName:   PaperStore,
		Status:     models.StepStatusStop,
		PaperStore: &models.PaperStoreDetails{Status: models.DetailAccept},
	}
	first := IsStepComplete(&step)
	second := IsStepComplete(&step)
	if first != second {
		t.Errorf("expected idempotent result, got %v then %v", first, second)
	}
}
