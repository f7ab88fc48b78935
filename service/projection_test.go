package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deal-engine/domain"
)

func TestProject_NoGrowth(t *testing.T) {
	years := Project(domain.ProjectionInput{
		PropertyValue:           200000,
		AnnualGrossIncome:       24000,
		AnnualOperatingExpenses: 8000,
		Years:                   10,
	})
	require.Len(t, years, 10)

	for i, y := range years {
		assert.Equal(t, i+1, y.Year)
		assert.Equal(t, 16000.0, y.CashFlow)
		assert.Equal(t, 200000.0, y.Equity)
	}
	assert.Equal(t, 160000.0, years[9].CumulativeCashFlow)
	assert.Equal(t, 360000.0, years[9].TotalWealth)
}

func TestProject_Growth(t *testing.T) {
	years := Project(domain.ProjectionInput{
		PropertyValue:           100000,
		AnnualGrossIncome:       12000,
		AnnualOperatingExpenses: 4000,
		LoanAmount:              80000,
		InterestRate:            0.06,
		LoanTermYears:           30,
		Growth: domain.GrowthRates{
			AppreciationRate:  0.03,
			RentGrowthRate:    0.02,
			ExpenseGrowthRate: 0.03,
		},
	})
	require.Len(t, years, ProjectionYears)

	assert.Equal(t, 12000.0, years[0].GrossIncome, "first year is not grown")
	assert.Equal(t, 12240.0, years[1].GrossIncome)
	assert.Equal(t, 4120.0, years[1].OperatingExpenses)
	assert.Equal(t, 103000.0, years[0].PropertyValue, "value appreciates through year end")
	assert.Equal(t, roundTo2Decimals(RemainingBalance(80000, 0.06, 30, 12)), years[0].LoanBalance)
	assert.Less(t, years[9].LoanBalance, years[0].LoanBalance)
}

func TestAnnualize(t *testing.T) {
	assert.InDelta(t, 10, annualize(21, 2), 1e-9)
	assert.Equal(t, -100.0, annualize(-150, 10))
	assert.Equal(t, 0.0, annualize(50, 0))
}
