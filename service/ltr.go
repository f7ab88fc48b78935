package service

import (
	"deal-engine/domain"
)

// CalculateLTR evaluates a buy-and-hold long-term rental.
func (e *Engine) CalculateLTR(in domain.LTRInput) (domain.LTRResult, error) {
	if err := validateLTR(in); err != nil {
		return domain.LTRResult{}, err
	}

	price := in.PurchasePrice
	downPayment := roundTo2Decimals(price * resolve(in.DownPaymentPct, e.assumptions.DownPaymentPct))
	loan := roundTo2Decimals(price - downPayment)
	closing := roundTo2Decimals(price * resolve(in.ClosingCostsPct, e.assumptions.ClosingCostsPct))
	cash := downPayment + closing

	gross := (in.MonthlyRent + in.OtherMonthlyIncome) * 12
	vacancy := gross * in.VacancyRate
	opex := e.operatingCosts(in.OperatingExpenses, price, gross-vacancy)

	metrics := rentalMetrics(rentalBasis{
		GrossAnnual:       gross,
		VacancyLoss:       vacancy,
		OperatingExpenses: opex,
		PropertyValue:     price,
		LoanAmount:        loan,
		InterestRate:      in.InterestRate,
		LoanTermYears:     in.LoanTermYears,
		CashInvested:      cash,
	})

	projection := e.project(domain.ProjectionInput{
		PropertyValue:           price,
		AnnualGrossIncome:       metrics.EffectiveIncomeAnnual,
		AnnualOperatingExpenses: metrics.OperatingExpensesAnnual,
		LoanAmount:              loan,
		InterestRate:            in.InterestRate,
		LoanTermYears:           in.LoanTermYears,
		Growth:                  in.GrowthRates,
		Years:                   ProjectionYears,
	})

	result := domain.LTRResult{
		PurchasePrice:     price,
		DownPayment:       downPayment,
		LoanAmount:        loan,
		ClosingCosts:      closing,
		TotalCashRequired: cash,
		CashFlowMetrics:   metrics,
		GRM:               price / (in.MonthlyRent * 12),
		OnePercentRule:    in.MonthlyRent / price * 100,
		Returns:           summarizeReturns(projection, cash),
	}
	result.Scoring = score(domain.StrategyLTR,
		metricFactor(domain.MetricCashOnCash, metrics.CashOnCash, ltrWeights.CoC).skipWhen(cash <= 0),
		metricFactor(domain.MetricCapRate, metrics.CapRate, ltrWeights.CapRate),
		metricFactor(domain.MetricDSCR, metrics.DSCR, ltrWeights.DSCR).skipWhen(loan <= 0),
		metricFactor(domain.MetricExpenseRatio, metrics.ExpenseRatio, ltrWeights.ExpenseRatio),
	)

	return result, nil
}

func validateLTR(in domain.LTRInput) error {
	if err := requirePositive("purchasePrice", in.PurchasePrice); err != nil {
		return err
	}
	if err := requirePositive("monthlyRent", in.MonthlyRent); err != nil {
		return err
	}
	if err := requireNonNegative("otherMonthlyIncome", in.OtherMonthlyIncome); err != nil {
		return err
	}
	if err := validateVacancy(in.VacancyRate); err != nil {
		return err
	}
	if err := validateFinancing(in.Financing); err != nil {
		return err
	}
	if err := validateOperatingExpenses(in.OperatingExpenses); err != nil {
		return err
	}
	return requireGrowth(in.GrowthRates)
}
