package httptransport

import (
	"context"
	"errors"
	"net/http"
	"time"

	"contacttrace/internal/cases/models"
	"contacttrace/pkg/platform/sentinel"
)

//go:generate mockgen -source=handlers_cases.go -destination=mocks/cases-mocks.go -package=mocks CaseService
type CaseService interface {
	ReportSymptoms(ctx context.Context, caseID string, labels []string) (models.ReportResult, error)
	ListCasesSince(ctx context.Context, since time.Time) ([]string, error)
	GetSymptoms(ctx context.Context, caseID string) ([]models.SymptomEntry, error)
	AppendSymptoms(ctx context.Context, ownerID string, labels []string) (models.BatchOutcome, error)
}

type reportSymptomsRequest struct {
	CaseID   string   `json:"case_id" validate:"required"`
	Symptoms []string `json:"symptoms"`
}

type reportSymptomsResponse struct {
	Success bool      `json:"success"`
	TS      time.Time `json:"ts"`
}

type getSymptomsRequest struct {
	CaseID string `json:"case_id" validate:"required"`
}

type getSymptomsResponse struct {
	Symptoms []models.SymptomEntry `json:"symptoms"`
}

type getCasesRequest struct {
	Since time.Time `json:"since" validate:"required"`
}

type getCasesResponse struct {
	CaseIDs []string `json:"case_ids"`
}

type appendSymptomsRequest struct {
	SymptomID string   `json:"symptom_id" validate:"required"`
	Symptoms  []string `json:"symptoms" validate:"required,min=1"`
}

// handleReportSymptoms answers 200 with success=false when the batch was
// rejected, so the caller still learns the timestamp that was used.
func (h *Handler) handleReportSymptoms(w http.ResponseWriter, r *http.Request) {
	var req reportSymptomsRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, "report_symptoms", err)
		return
	}

	result, err := h.cases.ReportSymptoms(r.Context(), req.CaseID, req.Symptoms)
	if err != nil && !errors.Is(err, sentinel.ErrPartialBatch) {
		h.writeError(w, r, "report_symptoms", err)
		return
	}
	writeJSON(w, http.StatusOK, reportSymptomsResponse{Success: result.Success(), TS: result.At})
}

func (h *Handler) handleGetSymptoms(w http.ResponseWriter, r *http.Request) {
	var req getSymptomsRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, "get_symptoms", err)
		return
	}

	entries, err := h.cases.GetSymptoms(r.Context(), req.CaseID)
	if err != nil {
		h.writeError(w, r, "get_symptoms", err)
		return
	}
	writeJSON(w, http.StatusOK, getSymptomsResponse{Symptoms: entries})
}

func (h *Handler) handleGetCases(w http.ResponseWriter, r *http.Request) {
	var req getCasesRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, "get_cases", err)
		return
	}

	ids, err := h.cases.ListCasesSince(r.Context(), req.Since)
	if err != nil {
		h.writeError(w, r, "get_cases", err)
		return
	}
	writeJSON(w, http.StatusOK, getCasesResponse{CaseIDs: ids})
}

func (h *Handler) handleAppendSymptoms(w http.ResponseWriter, r *http.Request) {
	var req appendSymptomsRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, "append_symptoms", err)
		return
	}

	if _, err := h.cases.AppendSymptoms(r.Context(), req.SymptomID, req.Symptoms); err != nil {
		h.writeError(w, r, "append_symptoms", err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse)
}

var okResponse = map[string]string{"status": "ok"}
