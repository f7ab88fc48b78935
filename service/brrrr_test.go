package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deal-engine/domain"
)

func baseBRRRR() domain.BRRRRInput {
	return domain.BRRRRInput{
		PurchasePrice:       100000,
		ARV:                 160000,
		RehabBudget:         domain.Float(30000),
		ContingencyPct:      domain.Float(0),
		ClosingCostsPct:     domain.Float(0.02),
		RehabMonths:         4,
		HoldingCostsMonthly: 300,
		InitialLoanPct:      0.80,
		InitialInterestRate: 0.10,
		RefinanceLTV:        0.75,
		RefinanceRate:       0.07,
		RefinanceTermYears:  30,
		RefinanceCostsPct:   0.02,
		MonthlyRent:         1500,
		VacancyRate:         0.05,
		OperatingExpenses: domain.OperatingExpenses{
			PropertyTaxesAnnual: 2000,
			InsuranceAnnual:     domain.Float(1000),
		},
	}
}

func TestCalculateBRRRR(t *testing.T) {
	result, err := newTestEngine().CalculateBRRRR(baseBRRRR())
	require.NoError(t, err)

	assert.Equal(t, 104000.0, result.InitialLoan)
	assert.Equal(t, 4666.67, result.HoldingCosts)
	assert.Equal(t, 136666.67, result.TotalProjectCost)
	assert.Equal(t, 32666.67, result.InitialCashInvested)
	assert.Equal(t, 120000.0, result.RefinanceLoan)
	assert.Equal(t, 2400.0, result.RefinanceCosts)
	assert.Equal(t, 13600.0, result.CashOut)
	assert.Equal(t, 19066.67, result.CashLeftInDeal)
	assert.Equal(t, 40000.0, result.EquityAfterRefi)
	assert.InDelta(t, 14.583, result.EquityCapture, 1e-3)
	assert.False(t, result.InfiniteReturn)

	payment, err := LoanPayment(120000, 0.07, 30)
	require.NoError(t, err)
	assert.Equal(t, roundTo2Decimals(payment), result.MonthlyPayment)
	assert.Greater(t, result.CashOnCash, 0.0)
}

func TestCalculateBRRRR_InfiniteReturn(t *testing.T) {
	in := baseBRRRR()
	in.RefinanceLTV = 0.90

	result, err := newTestEngine().CalculateBRRRR(in)
	require.NoError(t, err)

	assert.True(t, result.InfiniteReturn)
	assert.Less(t, result.CashLeftInDeal, 0.0)
	assert.Equal(t, 0.0, result.CashOnCash)
	assert.Equal(t, 0.0, result.TenYearROI)
}

func TestCalculateBRRRR_Validation(t *testing.T) {
	in := baseBRRRR()
	in.RefinanceTermYears = 0
	_, err := newTestEngine().CalculateBRRRR(in)
	assert.Equal(t, domain.ErrCodeValidation, domain.CodeOf(err))
}
