package steps

import (
	"sort"

	"github.com/boxflow/backend/internal/models"
)

// ordered returns the plan's steps sorted by StepNo. The input slice is not
// modified; callers may pass steps straight off a preloaded plan.
func ordered(stepList []models.JobPlanStep) []*models.JobPlanStep {
	out := make([]*models.JobPlanStep, len(stepList))
	for i := range stepList {
		out[i] = &stepList[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StepNo < out[j].StepNo
	})
	return out
}

// NextActionableStep scans the plan in StepNo order and returns the step an
// operator should act on next: the first planned step whose predecessors are
// all complete, or the first step already in flight. Returns nil when nothing
// is actionable (all steps done, or the pipeline is blocked on a step that is
// neither planned nor in flight).
func NextActionableStep(stepList []models.JobPlanStep) *models.JobPlanStep {
	prevComplete := true
	for _, step := range ordered(stepList) {
		if step.Status == models.StepStatusPlanned && prevComplete {
			return step
		}
		if step.Status == models.StepStatusStart {
			return step
		}
		prevComplete = IsStepComplete(step)
	}
	return nil
}

// IsStepAccessible reports whether the step at index may be acted on in a
// strictly sequential flow: the first step is always accessible, every later
// step only once its predecessor is complete.
func IsStepAccessible(index int, stepList []models.JobPlanStep) bool {
	if index < 0 || index >= len(stepList) {
		return false
	}
	if index == 0 {
		return true
	}
	steps := ordered(stepList)
	return IsStepComplete(steps[index-1])
}
