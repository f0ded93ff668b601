package steps

import "github.com/boxflow/backend/internal/models"

// detailStatus returns the status of the detail record matching the step's
// type. ok is false when the step type is outside the registry, or when the
// expected detail record has not been created yet.
func detailStatus(step *models.JobPlanStep) (models.DetailStatus, bool) {
	switch step.StepName {
	case PaperStore:
		if step.PaperStore != nil {
			return step.PaperStore.Status, true
		}
	case Corrugation:
		if step.Corrugation != nil {
			return step.Corrugation.Status, true
		}
	case Printing:
		if step.Printing != nil {
			return step.Printing.Status, true
		}
	case FluteLamination:
		if step.FluteLamination != nil {
			return step.FluteLamination.Status, true
		}
	case Punching:
		if step.Punching != nil {
			return step.Punching.Status, true
		}
	case FlapPasting:
		if step.FlapPasting != nil {
			return step.FlapPasting.Status, true
		}
	case QualityDept:
		if step.QC != nil {
			return step.QC.Status, true
		}
	case DispatchProcess:
		if step.Dispatch != nil {
			return step.Dispatch.Status, true
		}
	}
	return "", false
}

// IsStepComplete reports whether a step's work is done for progression
// purposes. For registry step types the detail record's accept status is
// authoritative; a missing detail record means not complete. Step types
// outside the registry fall back to stop + a recorded end date.
// JobPlanStep.Status alone is never sufficient.
func IsStepComplete(step *models.JobPlanStep) bool {
	if step == nil {
		return false
	}
	if _, registered := Lookup(step.StepName); registered {
		status, ok := detailStatus(step)
		return ok && status == models.DetailAccept
	}
	return step.Status == models.StepStatusStop && step.EndDate != nil
}

// IsStepStarted reports whether work on the step is underway.
func IsStepStarted(step *models.JobPlanStep) bool {
	if step == nil {
		return false
	}
	return step.Status == models.StepStatusStart && step.StartDate != nil
}
