package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"contacttrace/internal/platform/metrics"
	"contacttrace/pkg/platform/sentinel"
)

// HealthCheck reports whether one backing pool is usable.
type HealthCheck func(ctx context.Context) error

// Handler is the thin HTTP layer. It decodes, validates and delegates to the
// services; no storage decisions live here.
type Handler struct {
	cases     CaseService
	exposures ExposureService
	logger    *slog.Logger
	validate  *validator.Validate
}

func NewHandler(cases CaseService, exposures ExposureService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		cases:     cases,
		exposures: exposures,
		logger:    logger,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Register registers the service routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/report_symptoms", h.handleReportSymptoms)
	r.Post("/get_symptoms", h.handleGetSymptoms)
	r.Post("/get_cases", h.handleGetCases)
	r.Post("/append_symptoms", h.handleAppendSymptoms)

	r.Post("/link_interactions", h.handleLinkInteractions)
	r.Post("/get_exposures", h.handleGetExposures)
	r.Post("/confirm_interactions", h.handleConfirmInteractions)
	r.Post("/interactions_since", h.handleInteractionsSince)
	r.Post("/confirm_exposures", h.handleConfirmExposures)
	r.Post("/add_symptoms", h.handleAddSymptoms)
	r.Post("/add_case", h.handleAddCase)
	r.Post("/add_client", h.handleAddClient)
	r.Post("/admin/clear_interactions", h.handleClearInteractions)
}

// NewRouter wires middleware, the service routes, /healthz and /metrics.
func NewRouter(h *Handler, checks ...HealthCheck) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(metrics.Middleware)

	h.Register(r)
	r.Get("/healthz", healthz(checks))
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func healthz(checks []HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// decode reads a JSON body into dst and runs its validate tags.
func (h *Handler) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errBadJSON
	}
	if err := h.validate.Struct(dst); err != nil {
		return errInvalidRequest
	}
	return nil
}

var (
	errBadJSON        = errors.New("invalid json body")
	errInvalidRequest = errors.New("request failed validation")
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError logs and writes the JSON error envelope for err.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			"op", op,
			"request_id", chimw.GetReqID(r.Context()),
			"error", err,
		)
	} else {
		h.logger.WarnContext(r.Context(), "request rejected",
			"op", op,
			"request_id", chimw.GetReqID(r.Context()),
			"error", err,
		)
	}
	writeJSON(w, status, map[string]string{"error": code})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, errBadJSON):
		return http.StatusBadRequest, "bad_json"
	case errors.Is(err, errInvalidRequest), errors.Is(err, sentinel.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, sentinel.ErrPartialBatch):
		return http.StatusBadGateway, "partial_batch"
	case errors.Is(err, sentinel.ErrSerialization):
		return http.StatusInternalServerError, "serialization"
	case errors.Is(err, sentinel.ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable"
	case errors.Is(err, sentinel.ErrStoreFailure):
		return http.StatusServiceUnavailable, "store_failure"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
