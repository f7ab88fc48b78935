package http

import (
	"encoding/json"
	"io"
	"net/http"

	"deal-engine/domain"
	"deal-engine/logger"
	"deal-engine/service"
)

const maxBodyBytes = 1 << 20

type WorksheetHandler struct {
	service   *service.WorksheetService
	validator *Validator
	log       logger.Logger
}

func NewWorksheetHandler(service *service.WorksheetService, validator *Validator, log logger.Logger) *WorksheetHandler {
	return &WorksheetHandler{service: service, validator: validator, log: log}
}

// Calculate handles POST /worksheet/{strategy}.
func (h *WorksheetHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	strategy := domain.Strategy(r.PathValue("strategy"))
	if !strategy.Valid() {
		writeError(w, h.log, domain.NewValidationError("strategy", "unknown strategy %q", strategy))
		return
	}

	body, ok := h.readBody(w, r, string(strategy))
	if !ok {
		return
	}

	result, err := h.service.Calculate(r.Context(), strategy, body)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Amortization handles POST /amortization.
func (h *WorksheetHandler) Amortization(w http.ResponseWriter, r *http.Request) {
	var input domain.AmortizationInput
	if !h.decode(w, r, schemaAmortization, &input) {
		return
	}

	result, err := service.CalculateAmortization(input)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Grade handles POST /grade.
func (h *WorksheetHandler) Grade(w http.ResponseWriter, r *http.Request) {
	var input domain.GradeRequest
	if !h.decode(w, r, schemaGrade, &input) {
		return
	}

	result, err := service.GradeMetric(input.Metric, input.Strategy, input.Value)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// DealGap handles POST /deal-gap.
func (h *WorksheetHandler) DealGap(w http.ResponseWriter, r *http.Request) {
	var input domain.DealGapInput
	if !h.decode(w, r, schemaDealGap, &input) {
		return
	}

	result, err := service.CalculateDealGapLadder(input)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *WorksheetHandler) decode(w http.ResponseWriter, r *http.Request, schema string, dst any) bool {
	body, ok := h.readBody(w, r, schema)
	if !ok {
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		writeError(w, h.log, domain.NewValidationError("body", "malformed input: %v", err))
		return false
	}
	return true
}

func (h *WorksheetHandler) readBody(w http.ResponseWriter, r *http.Request, schema string) ([]byte, bool) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, h.log, err)
		return nil, false
	}
	if err := h.validator.Validate(schema, body); err != nil {
		writeError(w, h.log, err)
		return nil, false
	}
	return body, true
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, domain.NewValidationError("body", "unreadable request body: %v", err)
	}
	return body, nil
}
