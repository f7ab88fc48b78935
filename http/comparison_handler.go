package http

import (
	"encoding/json"
	"net/http"

	"deal-engine/domain"
	"deal-engine/logger"
	"deal-engine/service"
)

// AddComparisonRequest adds either a ready-made comparison entry or a
// property whose entry is computed from a long-term rental worksheet.
type AddComparisonRequest struct {
	Property *domain.PropertyComparison `json:"property,omitempty"`
	Facts    *domain.PropertyFacts      `json:"facts,omitempty"`
	LTR      *domain.LTRInput           `json:"ltr,omitempty"`
}

type ComparisonHandler struct {
	service   *service.ComparisonService
	validator *Validator
	log       logger.Logger
}

func NewComparisonHandler(service *service.ComparisonService, validator *Validator, log logger.Logger) *ComparisonHandler {
	return &ComparisonHandler{service: service, validator: validator, log: log}
}

// Get handles GET /comparisons/{setID}.
func (h *ComparisonHandler) Get(w http.ResponseWriter, r *http.Request) {
	set, err := h.service.Get(r.Context(), r.PathValue("setID"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

// Add handles POST /comparisons/{setID}.
func (h *ComparisonHandler) Add(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if err := h.validator.Validate(schemaComparison, body); err != nil {
		writeError(w, h.log, err)
		return
	}

	var req AddComparisonRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, h.log, domain.NewValidationError("body", "malformed input: %v", err))
		return
	}

	setID := r.PathValue("setID")
	var added domain.PropertyComparison
	if req.Property != nil {
		added, err = h.service.Add(r.Context(), setID, *req.Property)
	} else {
		added, err = h.service.AddFromLTR(r.Context(), setID, *req.Facts, *req.LTR)
	}
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

// Remove handles DELETE /comparisons/{setID}/{propertyID}.
func (h *ComparisonHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Remove(r.Context(), r.PathValue("setID"), r.PathValue("propertyID")); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Clear handles DELETE /comparisons/{setID}.
func (h *ComparisonHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context(), r.PathValue("setID")); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Rank handles GET /comparisons/{setID}/rank?by=metric.
func (h *ComparisonHandler) Rank(w http.ResponseWriter, r *http.Request) {
	metric := domain.ComparisonMetric(r.URL.Query().Get("by"))
	ranking, err := h.service.Rank(r.Context(), r.PathValue("setID"), metric)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, ranking)
}
