package service

import (
	"math"

	"deal-engine/domain"
)

// Engine runs the strategy calculators. It holds only immutable
// configuration, so one Engine may be shared across goroutines.
type Engine struct {
	assumptions domain.Assumptions
	project     Projector
}

// NewEngine creates an Engine using the shared Project routine.
func NewEngine(assumptions domain.Assumptions) *Engine {
	return NewEngineWithProjector(assumptions, Project)
}

// NewEngineWithProjector creates an Engine with a custom projection routine.
func NewEngineWithProjector(assumptions domain.Assumptions, project Projector) *Engine {
	if project == nil {
		project = Project
	}
	return &Engine{assumptions: assumptions, project: project}
}

// Assumptions returns the defaults applied to optional inputs.
func (e *Engine) Assumptions() domain.Assumptions {
	return e.assumptions
}

func resolve(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// rentalBasis is what every holding calculator knows once its own
// strategy-specific income and expense model has run.
type rentalBasis struct {
	GrossAnnual       float64
	VacancyLoss       float64
	OperatingExpenses float64
	PropertyValue     float64
	LoanAmount        float64
	InterestRate      float64
	LoanTermYears     int
	CashInvested      float64
}

func rentalMetrics(b rentalBasis) domain.CashFlowMetrics {
	gross := roundTo2Decimals(b.GrossAnnual)
	vacancy := roundTo2Decimals(b.VacancyLoss)
	effective := roundTo2Decimals(gross - vacancy)
	opex := roundTo2Decimals(b.OperatingExpenses)
	noi := roundTo2Decimals(effective - opex)

	payment := roundTo2Decimals(DebtService(b.LoanAmount, b.InterestRate, b.LoanTermYears))
	annualDebt := roundTo2Decimals(payment * 12)
	annualCashFlow := roundTo2Decimals(noi - annualDebt)
	cash := b.CashInvested

	m := domain.CashFlowMetrics{
		GrossIncomeAnnual:       gross,
		VacancyLossAnnual:       vacancy,
		EffectiveIncomeAnnual:   effective,
		OperatingExpensesAnnual: opex,
		NOI:                     noi,
		MonthlyPayment:          payment,
		AnnualDebtService:       annualDebt,
		MonthlyCashFlow:         roundTo2Decimals(annualCashFlow / 12),
		AnnualCashFlow:          annualCashFlow,
		CapRate:                 percentOf(noi, b.PropertyValue),
		ExpenseRatio:            percentOf(opex, effective),
		CashFlowYield:           percentOf(annualCashFlow, effective),
	}
	if cash > 0 {
		m.CashOnCash = annualCashFlow / cash * 100
	}
	if annualDebt > 0 {
		m.DSCR = noi / annualDebt
	}
	if gross > 0 {
		m.BreakevenOccupancy = math.Min((opex+annualDebt)/gross*100, MaxBreakevenOccupancy)
	}
	return m
}

// operatingCosts totals the standard rental expenses against effective income.
func (e *Engine) operatingCosts(oe domain.OperatingExpenses, propertyValue, effectiveIncome float64) float64 {
	insurance := resolve(oe.InsuranceAnnual, propertyValue*e.assumptions.InsurancePct)
	fixed := oe.PropertyTaxesAnnual + insurance + oe.HOAMonthly*12 + oe.UtilitiesMonthly*12
	variable := (oe.MaintenancePct + oe.ManagementPct + oe.CapExPct) * effectiveIncome
	return fixed + variable
}

// ---- validation helpers ----

func requirePositive(field string, v float64) error {
	if math.IsNaN(v) || v <= 0 {
		return domain.NewValidationError(field, "must be greater than 0")
	}
	if v > MaxPropertyPrice {
		return domain.NewValidationError(field, "exceeds the maximum of $%.2f", MaxPropertyPrice)
	}
	return nil
}

func requireNonNegative(field string, v float64) error {
	if math.IsNaN(v) || v < 0 {
		return domain.NewValidationError(field, "must not be negative")
	}
	if v > MaxPropertyPrice {
		return domain.NewValidationError(field, "exceeds the maximum of $%.2f", MaxPropertyPrice)
	}
	return nil
}

func requireFraction(field string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return domain.NewValidationError(field, "must be between 0 and 1")
	}
	return nil
}

func requireOptionalFraction(field string, v *float64) error {
	if v == nil {
		return nil
	}
	return requireFraction(field, *v)
}

func requireOptionalNonNegative(field string, v *float64) error {
	if v == nil {
		return nil
	}
	return requireNonNegative(field, *v)
}

func requireRate(field string, v float64) error {
	if math.IsNaN(v) || v < 0 {
		return domain.NewValidationError(field, "must not be negative")
	}
	if v > MaxInterestRate {
		return domain.NewValidationError(field, "exceeds the maximum of %.2f", MaxInterestRate)
	}
	return nil
}

func requireTerm(field string, years int) error {
	if years < MinTermYears {
		return domain.NewValidationError(field, "must be greater than 0")
	}
	if years > MaxTermYears {
		return domain.NewValidationError(field, "exceeds the maximum of %d years", MaxTermYears)
	}
	return nil
}

func requireGrowth(g domain.GrowthRates) error {
	checks := []struct {
		field string
		v     float64
	}{
		{"appreciationRate", g.AppreciationRate},
		{"rentGrowthRate", g.RentGrowthRate},
		{"expenseGrowthRate", g.ExpenseGrowthRate},
	}
	for _, c := range checks {
		if math.IsNaN(c.v) || c.v <= -1 || c.v > 1 {
			return domain.NewValidationError(c.field, "must be between -1 and 1")
		}
	}
	return nil
}

func validateFinancing(f domain.Financing) error {
	if err := requireOptionalFraction("downPaymentPct", f.DownPaymentPct); err != nil {
		return err
	}
	if err := requireOptionalFraction("closingCostsPct", f.ClosingCostsPct); err != nil {
		return err
	}
	if err := requireRate("interestRate", f.InterestRate); err != nil {
		return err
	}
	return requireTerm("loanTermYears", f.LoanTermYears)
}

func validateOperatingExpenses(oe domain.OperatingExpenses) error {
	if err := requireNonNegative("propertyTaxesAnnual", oe.PropertyTaxesAnnual); err != nil {
		return err
	}
	if err := requireOptionalNonNegative("insuranceAnnual", oe.InsuranceAnnual); err != nil {
		return err
	}
	if err := requireNonNegative("hoaMonthly", oe.HOAMonthly); err != nil {
		return err
	}
	if err := requireNonNegative("utilitiesMonthly", oe.UtilitiesMonthly); err != nil {
		return err
	}
	if err := requireFraction("maintenancePct", oe.MaintenancePct); err != nil {
		return err
	}
	if err := requireFraction("managementPct", oe.ManagementPct); err != nil {
		return err
	}
	return requireFraction("capExPct", oe.CapExPct)
}

func validateVacancy(v float64) error {
	if math.IsNaN(v) || v < 0 || v >= 1 {
		return domain.NewValidationError("vacancyRate", "must be at least 0 and below 1")
	}
	return nil
}
