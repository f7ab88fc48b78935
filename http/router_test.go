package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deal-engine/domain"
	"deal-engine/logger"
	"deal-engine/repository"
	"deal-engine/service"
)

func newTestRouter(t *testing.T, capacity int) http.Handler {
	t.Helper()
	log := logger.NewTestLogger(t)
	engine := service.NewEngine(domain.DefaultAssumptions())

	validator, err := NewValidator()
	require.NoError(t, err)

	worksheets := NewWorksheetHandler(
		service.NewWorksheetService(engine, repository.NewMemoryCache(), log),
		validator, log,
	)
	comparisons := NewComparisonHandler(
		service.NewComparisonService(repository.NewComparisonRepositoryMemory(), engine, log),
		validator, log,
	)

	limiter := NewRateLimiter(capacity, time.Minute)
	t.Cleanup(limiter.Stop)

	return NewRouter(worksheets, comparisons, limiter, log)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

const ltrBody = `{
	"purchasePrice": 300000,
	"monthlyRent": 2200,
	"downPaymentPct": 0.2,
	"interestRate": 0.07,
	"loanTermYears": 30,
	"propertyTaxesAnnual": 3600,
	"insuranceAnnual": 1200
}`

func TestWorksheetHandler_LTR_OK(t *testing.T) {
	router := newTestRouter(t, 100)

	w := do(t, router, http.MethodPost, "/worksheet/ltr", ltrBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var result domain.LTRResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 60000.0, result.DownPayment)
	assert.Equal(t, 1596.73, result.MonthlyPayment)
	assert.Len(t, result.Projection, 10)
}

func TestWorksheetHandler_MissingField(t *testing.T) {
	router := newTestRouter(t, 100)

	w := do(t, router, http.MethodPost, "/worksheet/flip", `{"listPrice": 150000, "arv": 200000}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeError(t, w)
	assert.Equal(t, domain.ErrCodeValidation, resp.Code)
	assert.Equal(t, "holdingMonths", resp.Field)
}

func TestWorksheetHandler_RentalsRequireTaxes(t *testing.T) {
	router := newTestRouter(t, 100)

	bodies := map[string]string{
		"ltr": `{"purchasePrice": 300000, "monthlyRent": 2200, "interestRate": 0.07, "loanTermYears": 30}`,
		"str": `{"purchasePrice": 400000, "nightlyRate": 230, "occupancyRate": 0.65, "averageStayNights": 3,
			"interestRate": 0.07, "loanTermYears": 30}`,
		"brrrr": `{"purchasePrice": 150000, "arv": 240000, "monthlyRent": 1900, "initialLoanPct": 0.8,
			"refinanceLtv": 0.75, "refinanceRate": 0.07, "refinanceTermYears": 30}`,
		"house-hack": `{"purchasePrice": 500000, "totalUnits": 4, "ownerUnits": 1, "rentPerUnit": 1500,
			"interestRate": 0.065, "loanTermYears": 30}`,
	}

	for strategy, body := range bodies {
		t.Run(strategy, func(t *testing.T) {
			w := do(t, router, http.MethodPost, "/worksheet/"+strategy, body)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, "propertyTaxesAnnual", decodeError(t, w).Field)
		})
	}
}

func TestWorksheetHandler_EngineValidation(t *testing.T) {
	router := newTestRouter(t, 100)

	body := `{"contractPrice": 0, "arv": 200000, "assignmentFee": 5000}`
	w := do(t, router, http.MethodPost, "/worksheet/wholesale", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "contractPrice", decodeError(t, w).Field)
}

func TestWorksheetHandler_UnknownStrategy(t *testing.T) {
	router := newTestRouter(t, 100)

	w := do(t, router, http.MethodPost, "/worksheet/timeshare", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "strategy", decodeError(t, w).Field)
}

func TestWorksheetHandler_MalformedJSON(t *testing.T) {
	router := newTestRouter(t, 100)

	w := do(t, router, http.MethodPost, "/worksheet/ltr", `{"purchasePrice": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWorksheetHandler_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(t, 100)

	w := do(t, router, http.MethodGet, "/worksheet/ltr", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestAmortizationHandler(t *testing.T) {
	router := newTestRouter(t, 100)

	w := do(t, router, http.MethodPost, "/amortization", `{"principal": 12000, "annualRate": 0, "termYears": 1}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result domain.AmortizationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 1000.0, result.MonthlyPayment)
	require.Len(t, result.Schedule, 1)
	assert.Equal(t, 0.0, result.Schedule[0].RemainingBalance)
}

func TestGradeHandler(t *testing.T) {
	router := newTestRouter(t, 100)

	w := do(t, router, http.MethodPost, "/grade", `{"metric": "cashOnCash", "value": 9.5}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result domain.GradeResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, domain.GradeB, result.Grade)
	assert.Equal(t, "GOOD", result.Label)

	w = do(t, router, http.MethodPost, "/grade", `{"metric": "luck", "value": 1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDealGapHandler(t *testing.T) {
	router := newTestRouter(t, 100)

	body := `{"listPrice": 400000, "incomeValue": 340000, "targetPrice": 300000, "buyPrice": 320000, "baseScore": 60}`
	w := do(t, router, http.MethodPost, "/deal-gap", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result domain.DealGapResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 42, result.EstimatedScore)
	assert.Equal(t, 80000.0, result.DealGap.Dollars)
	assert.NotEmpty(t, result.Ladder)
}

func TestComparisonHandlers(t *testing.T) {
	router := newTestRouter(t, 100)

	for _, p := range []string{
		`{"property": {"id": "a", "address": "1 Main", "year10TotalWealth": 500000}}`,
		`{"property": {"id": "b", "address": "2 Main", "year10TotalWealth": 600000}}`,
		`{"facts": {"id": "c", "address": "3 Main"}, "ltr": ` + ltrBody + `}`,
	} {
		w := do(t, router, http.MethodPost, "/comparisons/mine", p)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := do(t, router, http.MethodGet, "/comparisons/mine", "")
	require.Equal(t, http.StatusOK, w.Code)
	var set domain.ComparisonSet
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &set))
	assert.Len(t, set.Entries, 3)

	w = do(t, router, http.MethodGet, "/comparisons/mine/rank?by=purchasePrice", "")
	require.Equal(t, http.StatusOK, w.Code)
	var ranking domain.ComparisonRanking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ranking))
	assert.Equal(t, domain.ColumnPurchasePrice, ranking.Metric)
	assert.Len(t, ranking.Ranked, 3)

	w = do(t, router, http.MethodGet, "/comparisons/mine/rank?by=nonsense", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodDelete, "/comparisons/mine/b", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, router, http.MethodDelete, "/comparisons/mine/b", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, router, http.MethodDelete, "/comparisons/mine", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestComparisonHandler_Capacity(t *testing.T) {
	router := newTestRouter(t, 100)

	for i := 0; i < domain.MaxComparisons; i++ {
		w := do(t, router, http.MethodPost, "/comparisons/full", `{"property": {"address": "x"}}`)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := do(t, router, http.MethodPost, "/comparisons/full", `{"property": {"address": "x"}}`)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, domain.ErrCodeCapacity, decodeError(t, w).Code)
}

func TestComparisonHandler_BadBody(t *testing.T) {
	router := newTestRouter(t, 100)

	w := do(t, router, http.MethodPost, "/comparisons/s", `{"facts": {"address": "x"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_RateLimited(t *testing.T) {
	router := newTestRouter(t, 2)

	for i := 0; i < 2; i++ {
		w := do(t, router, http.MethodPost, "/grade", `{"metric": "dscr", "value": 1.3}`)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := do(t, router, http.MethodPost, "/grade", `{"metric": "dscr", "value": 1.3}`)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, ErrCodeRateLimited, decodeError(t, w).Code)

	// Reads are not limited.
	w = do(t, router, http.MethodGet, "/comparisons/any", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_Metrics(t *testing.T) {
	router := newTestRouter(t, 100)
	do(t, router, http.MethodPost, "/worksheet/ltr", ltrBody)

	w := do(t, router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "deal_engine_calculations_total")
}
