package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deal-engine/config"
	"deal-engine/domain"
	httpLayer "deal-engine/http"
	"deal-engine/logger"
	"deal-engine/repository"
	"deal-engine/service"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := logger.NewTestLogger(t)
	engine := service.NewEngine(domain.DefaultAssumptions())

	validator, err := httpLayer.NewValidator()
	require.NoError(t, err)

	limiter := httpLayer.NewRateLimiter(1000, time.Second)
	t.Cleanup(limiter.Stop)

	router := httpLayer.NewRouter(
		httpLayer.NewWorksheetHandler(service.NewWorksheetService(engine, repository.NewMemoryCache(), log), validator, log),
		httpLayer.NewComparisonHandler(service.NewComparisonService(repository.NewComparisonRepositoryMemory(), engine, log), validator, log),
		limiter,
		log,
	)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func watchConfig(endpoint string) *config.Config {
	return &config.Config{Recalc: config.RecalcConfig{Debounce: 20, Endpoint: endpoint}}
}

func TestRunWatch_CollapsesBurstIntoLatestResult(t *testing.T) {
	server := newTestServer(t)

	var in strings.Builder
	for _, rent := range []int{1800, 2000, 2200} {
		fmt.Fprintf(&in, `{"purchasePrice": 300000, "monthlyRent": %d, "interestRate": 0.07, "loanTermYears": 30, "propertyTaxesAnnual": 3600, "insuranceAnnual": 1200}`+"\n", rent)
	}

	var out bytes.Buffer
	err := runWatch(context.Background(), watchConfig(server.URL), domain.StrategyLTR, strings.NewReader(in.String()), &out, logger.NewTestLogger(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)

	var result domain.LTRResult
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &result))
	assert.Equal(t, 26400.0, result.GrossIncomeAnnual)
}

func TestRunWatch_ReportsRemoteErrors(t *testing.T) {
	server := newTestServer(t)

	var out bytes.Buffer
	err := runWatch(context.Background(), watchConfig(server.URL), domain.StrategyFlip,
		strings.NewReader(`{"listPrice": 100000}`+"\n"), &out, logger.NewTestLogger(t))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "error:")
	assert.Contains(t, out.String(), "VALIDATION_ERROR")
}

func TestRunWatch_RejectsBadSetup(t *testing.T) {
	log := logger.NewNoOpLogger()

	err := runWatch(context.Background(), watchConfig("http://localhost:1"), domain.Strategy("condo"), strings.NewReader(""), &bytes.Buffer{}, log)
	assert.Equal(t, domain.ErrCodeValidation, domain.CodeOf(err))

	err = runWatch(context.Background(), watchConfig(""), domain.StrategyLTR, strings.NewReader(""), &bytes.Buffer{}, log)
	assert.ErrorContains(t, err, "recalc.endpoint")
}

