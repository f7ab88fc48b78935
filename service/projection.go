package service

import (
	"math"

	"deal-engine/domain"
)

// Projector produces a year-by-year holding projection. Every holding
// strategy calculator receives the same Projector from its Engine.
type Projector func(domain.ProjectionInput) []domain.ProjectionYear

// Project compounds income, expenses and property value once per year.
// Year 1 uses the starting income and expenses unchanged.
func Project(in domain.ProjectionInput) []domain.ProjectionYear {
	years := in.Years
	if years <= 0 {
		years = ProjectionYears
	}

	annualDebt := DebtService(in.LoanAmount, in.InterestRate, in.LoanTermYears) * 12
	out := make([]domain.ProjectionYear, 0, years)
	cumulative := 0.0

	for y := 1; y <= years; y++ {
		step := float64(y - 1)
		income := in.AnnualGrossIncome * math.Pow(1+in.Growth.RentGrowthRate, step)
		expenses := in.AnnualOperatingExpenses * math.Pow(1+in.Growth.ExpenseGrowthRate, step)
		noi := income - expenses

		debt := 0.0
		if in.LoanAmount > 0 && y <= in.LoanTermYears {
			debt = annualDebt
		}
		cashFlow := noi - debt
		cumulative += cashFlow

		value := in.PropertyValue * math.Pow(1+in.Growth.AppreciationRate, float64(y))
		balance := RemainingBalance(in.LoanAmount, in.InterestRate, in.LoanTermYears, y*12)
		equity := value - balance

		out = append(out, domain.ProjectionYear{
			Year:               y,
			GrossIncome:        roundTo2Decimals(income),
			OperatingExpenses:  roundTo2Decimals(expenses),
			NOI:                roundTo2Decimals(noi),
			DebtService:        roundTo2Decimals(debt),
			CashFlow:           roundTo2Decimals(cashFlow),
			CumulativeCashFlow: roundTo2Decimals(cumulative),
			PropertyValue:      roundTo2Decimals(value),
			LoanBalance:        roundTo2Decimals(balance),
			Equity:             roundTo2Decimals(equity),
			TotalWealth:        roundTo2Decimals(cumulative + equity),
		})
	}

	return out
}

// summarizeReturns derives the horizon snapshot and ROI figures from a
// projection and the cash the investor put in.
func summarizeReturns(projection []domain.ProjectionYear, cashInvested float64) domain.Returns {
	r := domain.Returns{Projection: projection}
	if len(projection) == 0 {
		return r
	}

	last := projection[len(projection)-1]
	r.Year10CashFlow = last.CashFlow
	r.Year10Equity = last.Equity
	r.Year10TotalWealth = last.TotalWealth

	if cashInvested > 0 {
		gain := last.TotalWealth - cashInvested
		r.TenYearROI = gain / cashInvested * 100
		r.AnnualizedROI = annualize(r.TenYearROI, float64(len(projection)))
	}
	return r
}

// annualize converts a total percentage return over the given number of
// years into a compound annual rate.
func annualize(totalPct, years float64) float64 {
	if years <= 0 {
		return 0
	}
	growth := 1 + totalPct/100
	if growth <= 0 {
		return -100
	}
	return (math.Pow(growth, 1/years) - 1) * 100
}
