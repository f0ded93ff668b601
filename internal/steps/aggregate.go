package steps

import "github.com/boxflow/backend/internal/models"

// PlanBuckets groups whole plans into the dashboard categories.
type PlanBuckets struct {
	Completed  []models.JobPlan `json:"completed"`
	InProgress []models.JobPlan `json:"inProgress"`
	Planned    []models.JobPlan `json:"planned"`
}

// CompletionPercentage returns the share of complete steps in [0,100].
// An empty plan is 0, not NaN.
func CompletionPercentage(stepList []models.JobPlanStep) float64 {
	if len(stepList) == 0 {
		return 0
	}
	complete := 0
	for i := range stepList {
		if IsStepComplete(&stepList[i]) {
			complete++
		}
	}
	return 100 * float64(complete) / float64(len(stepList))
}

// allComplete reports whether every step of a non-empty plan is complete.
func allComplete(stepList []models.JobPlanStep) bool {
	if len(stepList) == 0 {
		return false
	}
	for i := range stepList {
		if !IsStepComplete(&stepList[i]) {
			return false
		}
	}
	return true
}

// Categorize buckets plans for the dashboard: completed when every step is
// complete, in progress when any step has been started or finished, planned
// otherwise.
func Categorize(plans []models.JobPlan) PlanBuckets {
	var buckets PlanBuckets
	for _, plan := range plans {
		switch {
		case allComplete(plan.Steps):
			buckets.Completed = append(buckets.Completed, plan)
		case anyActivity(plan.Steps):
			buckets.InProgress = append(buckets.InProgress, plan)
		default:
			buckets.Planned = append(buckets.Planned, plan)
		}
	}
	return buckets
}

func anyActivity(stepList []models.JobPlanStep) bool {
	for i := range stepList {
		if stepList[i].Status != models.StepStatusPlanned || IsStepComplete(&stepList[i]) {
			return true
		}
	}
	return false
}
