package httptransport

import (
	"context"
	"net/http"
	"time"

	casemodels "contacttrace/internal/cases/models"
	"contacttrace/internal/exposure/models"
	"contacttrace/internal/interaction"
	pstrings "contacttrace/pkg/platform/strings"
)

//go:generate mockgen -source=handlers_exposure.go -destination=mocks/exposure-mocks.go -package=mocks ExposureService
type ExposureService interface {
	LinkInteractions(ctx context.Context, geo string, interactionIDs []string, ownerID string) error
	Exposures(ctx context.Context, interactionIDs []string) ([]models.OwnerLog, error)
	ConfirmInteractions(ctx context.Context, interactionIDs []string) ([]string, error)
	InteractionsSince(ctx context.Context, lastCheck time.Time, geos, interactionIDs []string) ([]models.Interaction, error)
	ConfirmExposures(ctx context.Context, edges []models.Edge) error
	AddSymptoms(ctx context.Context, ownerID string, entries []casemodels.SymptomEntry) error
	AddCase(ctx context.Context, rec models.CaseRecord) error
	AddClient(ctx context.Context, clientID string) (models.Client, error)
	ClearOldInteractions(ctx context.Context) (int64, error)
}

type linkInteractionsRequest struct {
	UUIDs     []string `json:"uuids" validate:"required,min=1,dive,required"`
	SymptomID string   `json:"symptom_id" validate:"required"`
	Geo       string   `json:"geo"`
}

type interactionIDsRequest struct {
	UUIDs []string `json:"uuids" validate:"required,dive,required"`
}

type confirmInteractionsResponse struct {
	OwnerIDs []string `json:"owner_ids"`
}

type interactionsSinceRequest struct {
	LastCheck time.Time `json:"last_check" validate:"required"`
	Geos      []string  `json:"geos" validate:"required,min=1,dive,required"`
	UUIDs     []string  `json:"uuids" validate:"required,dive,required"`
}

type interactionsSinceResponse struct {
	Interactions []models.Interaction `json:"interactions"`
}

type confirmExposuresRequest struct {
	Exposures []models.Edge `json:"exposures" validate:"required,min=1,dive"`
}

type addSymptomsRequest struct {
	OwnerID  string                    `json:"owner_id" validate:"required"`
	Symptoms []casemodels.SymptomEntry `json:"symptoms" validate:"required,min=1"`
}

type addClientRequest struct {
	ID string `json:"id"`
}

type clearInteractionsResponse struct {
	Removed int64 `json:"removed"`
}

func (h *Handler) handleLinkInteractions(w http.ResponseWriter, r *http.Request) {
	var req linkInteractionsRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, "link_interactions", err)
		return
	}

	ids, err := interaction.NormalizeIDs(req.UUIDs)
	if err != nil {
		h.writeError(w, r, "link_interactions", err)
		return
	}
	if err := h.exposures.LinkInteractions(r.Context(), req.Geo, ids, req.SymptomID); err != nil {
		h.writeError(w, r, "link_interactions", err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse)
}

// handleGetExposures returns one symptom log per distinct linked owner.
func (h *Handler) handleGetExposures(w http.ResponseWriter, r *http.Request) {
	var req interactionIDsRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, "get_exposures", err)
		return
	}

	logs, err := h.exposures.Exposures(r.Context(), pstrings.DedupeAndTrim(req.UUIDs))
	if err != nil {
		h.writeError(w, r, "get_exposures", err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (h *Handler) handleConfirmInteractions(w http.ResponseWriter, r *http.Request) {
	var req interactionIDsRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, "confirm_interactions", err)
		return
	}

	owners, err := h.exposures.ConfirmInteractions(r.Context(), pstrings.DedupeAndTrim(req.UUIDs))
	if err != nil {
		h.writeError(w, r, "confirm_interactions", err)
		return
	}
	writeJSON(w, http.StatusOK, confirmInteractionsResponse{OwnerIDs: owners})
}

func (h *Handler) handleInteractionsSince(w http.ResponseWriter, r *http.Request) {
	var req interactionsSinceRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, "interactions_since", err)
		return
	}

	found, err := h.exposures.InteractionsSince(r.Context(), req.LastCheck, pstrings.DedupeAndTrim(req.Geos), pstrings.DedupeAndTrim(req.UUIDs))
	if err != nil {
		h.writeError(w, r, "interactions_since", err)
		return
	}
	writeJSON(w, http.StatusOK, interactionsSinceResponse{Interactions: found})
}

func (h *Handler) handleConfirmExposures(w http.ResponseWriter, r *http.Request) {
	var req confirmExposuresRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, "confirm_exposures", err)
		return
	}

	if err := h.exposures.ConfirmExposures(r.Context(), req.Exposures); err != nil {
		h.writeError(w, r, "confirm_exposures", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAddSymptoms(w http.ResponseWriter, r *http.Request) {
	var req addSymptomsRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, "add_symptoms", err)
		return
	}

	if err := h.exposures.AddSymptoms(r.Context(), req.OwnerID, req.Symptoms); err != nil {
		h.writeError(w, r, "add_symptoms", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAddCase(w http.ResponseWriter, r *http.Request) {
	var req models.CaseRecord
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, "add_case", err)
		return
	}

	if err := h.exposures.AddCase(r.Context(), req); err != nil {
		h.writeError(w, r, "add_case", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAddClient(w http.ResponseWriter, r *http.Request) {
	var req addClientRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, "add_client", err)
		return
	}

	client, err := h.exposures.AddClient(r.Context(), req.ID)
	if err != nil {
		h.writeError(w, r, "add_client", err)
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

func (h *Handler) handleClearInteractions(w http.ResponseWriter, r *http.Request) {
	n, err := h.exposures.ClearOldInteractions(r.Context())
	if err != nil {
		h.writeError(w, r, "clear_interactions", err)
		return
	}
	writeJSON(w, http.StatusOK, clearInteractionsResponse{Removed: n})
}
