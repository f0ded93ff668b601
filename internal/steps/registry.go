package steps

import "github.com/boxflow/backend/internal/models"

// Step names are a closed set. Anything outside it is still rendered and
// progressed with generic semantics rather than rejected, because legacy
// plans carry step names that predate the registry.
const (
	PaperStore      = "PaperStore"
	Corrugation     = "Corrugation"
	Printing        = "PrintingDetails"
	FluteLamination = "FluteLamination"
	Punching        = "Punching"
	FlapPasting     = "FlapPasting"
	QualityDept     = "QualityDept"
	DispatchProcess = "DispatchProcess"
)

// StepInfo describes how one step type is wired: which detail table backs it,
// the URL slug its detail endpoints live under, and which input form the
// dashboard renders for it.
type StepInfo struct {
	Name   string
	Slug   string
	Table  string
	FormID string
}

var registry = map[string]StepInfo{
	PaperStore:      {Name: PaperStore, Slug: "paper-store", Table: models.PaperStoreDetails{}.TableName(), FormID: "paper_store"},
	Corrugation:     {Name: Corrugation, Slug: "corrugation", Table: models.CorrugationDetails{}.TableName(), FormID: "corrugation"},
	Printing:        {Name: Printing, Slug: "printing-details", Table: models.PrintingDetails{}.TableName(), FormID: "printing"},
	FluteLamination: {Name: FluteLamination, Slug: "flute-laminate-board-conversion", Table: models.FluteLaminationDetails{}.TableName(), FormID: "flute_lamination"},
	Punching:        {Name: Punching, Slug: "punching", Table: models.PunchingDetails{}.TableName(), FormID: "punching"},
	FlapPasting:     {Name: FlapPasting, Slug: "side-flap-pasting", Table: models.FlapPastingDetails{}.TableName(), FormID: "flap_pasting"},
	QualityDept:     {Name: QualityDept, Slug: "quality-dept", Table: models.QCDetails{}.TableName(), FormID: "qc"},
	DispatchProcess: {Name: DispatchProcess, Slug: "dispatch-process", Table: models.DispatchDetails{}.TableName(), FormID: "dispatch"},
}

var bySlug = func() map[string]StepInfo {
	m := make(map[string]StepInfo, len(registry))
	for _, info := range registry {
		m[info.Slug] = info
	}
	return m
}()

// Lookup resolves a step name to its registry entry. ok is false for unknown
// names; callers must fall back to generic step semantics, never fail hard.
func Lookup(stepName string) (StepInfo, bool) {
	info, ok := registry[stepName]
	return info, ok
}

// LookupSlug resolves a URL slug (e.g. "paper-store") to its registry entry.
func LookupSlug(slug string) (StepInfo, bool) {
	info, ok := bySlug[slug]
	return info, ok
}

// Names returns the closed step-name set in pipeline order.
func Names() []string {
	return []string{
		PaperStore,
		Printing,
		Corrugation,
		FluteLamination,
		Punching,
		FlapPasting,
		QualityDept,
		DispatchProcess,
	}
}
