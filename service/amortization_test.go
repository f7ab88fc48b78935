package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deal-engine/domain"
)

func TestLoanPayment(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		years     int
		want      float64
	}{
		{"30 year at 7%", 240000, 0.07, 30, 1596.73},
		{"15 year at 6%", 100000, 0.06, 15, 843.86},
		{"zero rate is straight line", 12000, 0, 1, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoanPayment(tt.principal, tt.rate, tt.years)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.005)
		})
	}
}

func TestLoanPayment_Validation(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		years     int
		field     string
	}{
		{"zero principal", 0, 0.05, 30, "principal"},
		{"negative rate", 100000, -0.01, 30, "annualRate"},
		{"rate above max", 100000, 1.5, 30, "annualRate"},
		{"zero term", 100000, 0.05, 0, "termYears"},
		{"term above max", 100000, 0.05, 51, "termYears"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoanPayment(tt.principal, tt.rate, tt.years)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, domain.ErrCodeValidation, domain.CodeOf(err))
		})
	}
}

func TestAmortizationSchedule_PaysOffPrincipal(t *testing.T) {
	for _, rate := range []float64{0, 0.035, 0.071, 0.12} {
		rows, err := AmortizationSchedule(250000, rate, 30)
		require.NoError(t, err)
		require.Len(t, rows, 30)

		paid := 0.0
		prev := 250000.0
		for i, row := range rows {
			assert.Equal(t, i+1, row.Year)
			assert.LessOrEqual(t, row.RemainingBalance, prev)
			assert.GreaterOrEqual(t, row.RemainingBalance, 0.0)
			prev = row.RemainingBalance
			paid += row.PrincipalPaid
		}
		assert.InDelta(t, 250000, paid, 1e-6, "rate %v", rate)
		assert.Equal(t, 0.0, rows[len(rows)-1].RemainingBalance)
	}
}

func TestCalculateAmortization(t *testing.T) {
	result, err := CalculateAmortization(domain.AmortizationInput{
		Principal:  240000,
		AnnualRate: 0.07,
		TermYears:  30,
	})
	require.NoError(t, err)

	assert.Equal(t, 1596.73, result.MonthlyPayment)
	assert.InDelta(t, result.TotalPayment-240000, result.TotalInterest, 0.011)
	assert.InDelta(t, 1596.73*360-240000, result.TotalInterest, 5)
	assert.Len(t, result.Schedule, 30)
}

func TestRemainingBalance(t *testing.T) {
	assert.Equal(t, 240000.0, RemainingBalance(240000, 0.07, 30, 0))
	assert.Equal(t, 0.0, RemainingBalance(240000, 0.07, 30, 360))
	assert.InDelta(t, 6000, RemainingBalance(12000, 0, 1, 6), 1e-9)

	rows, err := AmortizationSchedule(240000, 0.07, 30)
	require.NoError(t, err)
	assert.InDelta(t, rows[9].RemainingBalance, RemainingBalance(240000, 0.07, 30, 120), 1e-4)
}

func TestDebtService_CashPurchase(t *testing.T) {
	assert.Equal(t, 0.0, DebtService(0, 0.07, 30))
}
