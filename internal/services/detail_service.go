package services

import (
	"encoding/json"
	"fmt"

	"github.com/boxflow/backend/internal/models"
	"github.com/boxflow/backend/internal/steps"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DetailService owns the eight step-detail record types. All dispatch on step
// type happens here, keyed by the registry, so controllers and the completion
// flow never re-derive payload shapes.
type DetailService struct {
	db *gorm.DB
}

func NewDetailService(db *gorm.DB) *DetailService {
	return &DetailService{db: db}
}

// newDetail returns a zero detail model for a registry step name with its
// foreign keys and status populated.
func newDetail(stepName string, jobStepID uint, nrcJobNo string, status models.DetailStatus) (interface{}, error) {
	switch stepName {
	case steps.PaperStore:
		return &models.PaperStoreDetails{JobStepID: jobStepID, JobNrcJobNo: nrcJobNo, Status: status}, nil
	case steps.Corrugation:
		return &models.CorrugationDetails{JobStepID: jobStepID, JobNrcJobNo: nrcJobNo, Status: status}, nil
	case steps.Printing:
		return &models.PrintingDetails{JobStepID: jobStepID, JobNrcJobNo: nrcJobNo, Status: status}, nil
	case steps.FluteLamination:
		return &models.FluteLaminationDetails{JobStepID: jobStepID, JobNrcJobNo: nrcJobNo, Status: status}, nil
	case steps.Punching:
		return &models.PunchingDetails{JobStepID: jobStepID, JobNrcJobNo: nrcJobNo, Status: status}, nil
	case steps.FlapPasting:
		return &models.FlapPastingDetails{JobStepID: jobStepID, JobNrcJobNo: nrcJobNo, Status: status}, nil
	case steps.QualityDept:
		return &models.QCDetails{JobStepID: jobStepID, JobNrcJobNo: nrcJobNo, Status: status}, nil
	case steps.DispatchProcess:
		return &models.DispatchDetails{JobStepID: jobStepID, JobNrcJobNo: nrcJobNo, Status: status}, nil
	}
	return nil, fmt.Errorf("unknown step type %q", stepName)
}

// BuildDetail unmarshals a step-specific payload into its concrete model and
// stamps the foreign keys and status. This is the single tagged-union point
// for the per-step payload shapes.
func BuildDetail(stepName string, jobStepID uint, nrcJobNo string, status models.DetailStatus, raw json.RawMessage) (interface{}, error) {
	record, err := newDetail(stepName, jobStepID, nrcJobNo, status)
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, record); err != nil {
			return nil, fmt.Errorf("invalid %s payload: %w", stepName, err)
		}
	}
	// Re-stamp after unmarshal so the payload cannot redirect the record.
	switch r := record.(type) {
	case *models.PaperStoreDetails:
		r.JobStepID, r.JobNrcJobNo, r.Status = jobStepID, nrcJobNo, status
	case *models.CorrugationDetails:
		r.JobStepID, r.JobNrcJobNo, r.Status = jobStepID, nrcJobNo, status
	case *models.PrintingDetails:
		r.JobStepID, r.JobNrcJobNo, r.Status = jobStepID, nrcJobNo, status
	case *models.FluteLaminationDetails:
		r.JobStepID, r.JobNrcJobNo, r.Status = jobStepID, nrcJobNo, status
	case *models.PunchingDetails:
		r.JobStepID, r.JobNrcJobNo, r.Status = jobStepID, nrcJobNo, status
	case *models.FlapPastingDetails:
		r.JobStepID, r.JobNrcJobNo, r.Status = jobStepID, nrcJobNo, status
	case *models.QCDetails:
		r.JobStepID, r.JobNrcJobNo, r.Status = jobStepID, nrcJobNo, status
	case *models.DispatchDetails:
		r.JobStepID, r.JobNrcJobNo, r.Status = jobStepID, nrcJobNo, status
	}
	return record, nil
}

// CreateForStart creates the detail record that accompanies a step entering
// the start status, with in_progress status and the operator recorded where
// the shape carries one.
func (ds *DetailService) CreateForStart(stepName string, jobStepID uint, nrcJobNo, operator string) error {
	record, err := newDetail(stepName, jobStepID, nrcJobNo, models.DetailInProgress)
	if err != nil {
		return err
	}
	switch r := record.(type) {
	case *models.PaperStoreDetails:
		r.OperatorName = operator
	case *models.CorrugationDetails:
		r.OperatorName = operator
	case *models.PrintingDetails:
		r.OperatorName = operator
	case *models.FluteLaminationDetails:
		r.OperatorName = operator
	case *models.PunchingDetails:
		r.OperatorName = operator
	case *models.FlapPastingDetails:
		r.OperatorName = operator
	case *models.QCDetails:
		r.CheckedBy = operator
	case *models.DispatchDetails:
		r.OperatorName = operator
	}
	if err := ds.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create %s detail record: %w", stepName, err)
	}
	return nil
}

// GetByJob returns the detail record of a step type for a job. A
// gorm.ErrRecordNotFound here is a valid "not yet started" signal, not a
// server error; callers translate it to 404.
func (ds *DetailService) GetByJob(stepName, nrcJobNo string) (interface{}, error) {
	record, err := newDetail(stepName, 0, "", "")
	if err != nil {
		return nil, err
	}
	if err := ds.db.Where("job_nrc_job_no = ?", nrcJobNo).First(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// Update replaces the mutable fields of a detail record by id, keeping the
// record bound to its original step.
func (ds *DetailService) Update(stepName string, id uint, raw json.RawMessage) (interface{}, error) {
	existing, err := newDetail(stepName, 0, "", "")
	if err != nil {
		return nil, err
	}
	if err := ds.db.First(existing, id).Error; err != nil {
		return nil, err
	}

	jobStepID, nrcJobNo, status := detailKeys(existing)

	// The payload may move the record to accept; any other status value in
	// it is ignored.
	var statusField struct {
		Status models.DetailStatus `json:"status"`
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &statusField); err == nil {
			if statusField.Status == models.DetailAccept || statusField.Status == models.DetailInProgress {
				status = statusField.Status
			}
		}
	}

	updated, err := BuildDetail(stepName, jobStepID, nrcJobNo, status, raw)
	if err != nil {
		return nil, err
	}
	setDetailID(updated, id)

	if err := ds.db.Save(updated).Error; err != nil {
		return nil, fmt.Errorf("failed to update %s detail record: %w", stepName, err)
	}
	return updated, nil
}

// UpsertAccepted writes the full accepted detail record for a step, creating
// it if the start-time record is missing. Used by the completion flow; the
// upsert keys on job_step_id so a whole-group retry converges.
func (ds *DetailService) UpsertAccepted(stepName string, jobStepID uint, nrcJobNo string, raw json.RawMessage) error {
	record, err := BuildDetail(stepName, jobStepID, nrcJobNo, models.DetailAccept, raw)
	if err != nil {
		return err
	}
	err = ds.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "job_step_id"}},
		UpdateAll: true,
	}).Create(record).Error
	if err != nil {
		return fmt.Errorf("failed to upsert %s detail record: %w", stepName, err)
	}
	return nil
}

func detailKeys(record interface{}) (uint, string, models.DetailStatus) {
	switch r := record.(type) {
	case *models.PaperStoreDetails:
		return r.JobStepID, r.JobNrcJobNo, r.Status
	case *models.CorrugationDetails:
		return r.JobStepID, r.JobNrcJobNo, r.Status
	case *models.PrintingDetails:
		return r.JobStepID, r.JobNrcJobNo, r.Status
	case *models.FluteLaminationDetails:
		return r.JobStepID, r.JobNrcJobNo, r.Status
	case *models.PunchingDetails:
		return r.JobStepID, r.JobNrcJobNo, r.Status
	case *models.FlapPastingDetails:
		return r.JobStepID, r.JobNrcJobNo, r.Status
	case *models.QCDetails:
		return r.JobStepID, r.JobNrcJobNo, r.Status
	case *models.DispatchDetails:
		return r.JobStepID, r.JobNrcJobNo, r.Status
	}
	return 0, "", ""
}

func setDetailID(record interface{}, id uint) {
	switch r := record.(type) {
	case *models.PaperStoreDetails:
		r.ID = id
	case *models.CorrugationDetails:
		r.ID = id
	case *models.PrintingDetails:
		r.ID = id
	case *models.FluteLaminationDetails:
		r.ID = id
	case *models.PunchingDetails:
		r.ID = id
	case *models.FlapPastingDetails:
		r.ID = id
	case *models.QCDetails:
		r.ID = id
	case *models.DispatchDetails:
		r.ID = id
	}
}
