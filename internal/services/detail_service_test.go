package services

import (
	"encoding/json"
	"testing"

	"github.com/boxflow/backend/internal/models"
	"github.com/boxflow/backend/internal/steps"
)

func TestBuildDetailTypedPayloads(t *testing.T) {
	raw := json.RawMessage(`{"oprName":"ramesh","machineNo":"COR-01","noOfSheets":1200,"flute":"B"}`)

	record, err := BuildDetail(steps.Corrugation, 42, "NRC-100", models.DetailAccept, raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	detail, ok := record.(*models.CorrugationDetails)
	if !ok {
		t.Fatalf("expected *CorrugationDetails, got %T", record)
	}
	if detail.OperatorName != "ramesh" || detail.MachineNo != "COR-01" || detail.NoOfSheets != 1200 {
		t.Errorf("payload fields not bound: %+v", detail)
	}
	if detail.Flute != "B" {
		t.Errorf("expected flute B, got %s", detail.Flute)
	}
}

func TestBuildDetailStampsKeys(t *testing.T) {
	// The payload must not be able to redirect the record to another step or
	// smuggle a different status in.
	raw := json.RawMessage(`{"jobStepId":999,"jobNrcJobNo":"NRC-EVIL","status":"accept","quantity":10}`)

	record, err := BuildDetail(steps.PaperStore, 7, "NRC-7", models.DetailInProgress, raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	detail := record.(*models.PaperStoreDetails)
	if detail.JobStepID != 7 {
		t.Errorf("expected jobStepId 7, got %d", detail.JobStepID)
	}
	if detail.JobNrcJobNo != "NRC-7" {
		t.Errorf("expected NRC-7, got %s", detail.JobNrcJobNo)
	}
	if detail.Status != models.DetailInProgress {
		t.Errorf("expected in_progress, got %s", detail.Status)
	}
	if detail.Quantity != 10 {
		t.Errorf("expected quantity bound from payload, got %d", detail.Quantity)
	}
}

func TestBuildDetailEveryRegistryType(t *testing.T) {
	for _, name := range steps.Names() {
		record, err := BuildDetail(name, 1, "NRC-1", models.DetailInProgress, nil)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
			continue
		}
		if record == nil {
			t.Errorf("%s: expected a record", name)
		}
	}
}

func TestBuildDetailUnknownStep(t *testing.T) {
	if _, err := BuildDetail("DieCutting", 1, "NRC-1", models.DetailInProgress, nil); err == nil {
		t.Error("expected error for unknown step type")
	}
}

func TestBuildDetailMalformedPayload(t *testing.T) {
	raw := json.RawMessage(`{"quantity":"not-a-number"`)
	if _, err := BuildDetail(steps.Punching, 1, "NRC-1", models.DetailAccept, raw); err == nil {
		t.Error("expected error for malformed payload")
	}
}
