package service

import (
	"deal-engine/domain"
)

// CalculateBRRRR evaluates buy, rehab, rent, refinance, repeat: a short
// interest-only acquisition loan taken out by a long-term refinance on ARV.
func (e *Engine) CalculateBRRRR(in domain.BRRRRInput) (domain.BRRRRResult, error) {
	if err := validateBRRRR(in); err != nil {
		return domain.BRRRRResult{}, err
	}

	price := in.PurchasePrice
	rehab := resolve(in.RehabBudget, in.ARV*e.assumptions.RehabBudgetPct)
	rehabTotal := roundTo2Decimals(rehab * (1 + resolve(in.ContingencyPct, e.assumptions.ContingencyPct)))
	closing := roundTo2Decimals(price * resolve(in.ClosingCostsPct, e.assumptions.ClosingCostsPct))

	initialLoan := roundTo2Decimals((price + rehabTotal) * in.InitialLoanPct)
	months := float64(in.RehabMonths)
	interest := initialLoan * in.InitialInterestRate / 12 * months
	holding := roundTo2Decimals(in.HoldingCostsMonthly*months + interest)

	projectCost := price + rehabTotal + closing + holding
	initialCash := projectCost - initialLoan

	refiLoan := roundTo2Decimals(in.ARV * in.RefinanceLTV)
	refiCosts := roundTo2Decimals(refiLoan * in.RefinanceCostsPct)
	cashOut := refiLoan - refiCosts - initialLoan
	cashLeft := initialCash - cashOut
	infinite := cashLeft <= 0

	gross := in.MonthlyRent * 12
	vacancy := gross * in.VacancyRate
	opex := e.operatingCosts(in.OperatingExpenses, in.ARV, gross-vacancy)

	invested := cashLeft
	if infinite {
		invested = 0
	}
	metrics := rentalMetrics(rentalBasis{
		GrossAnnual:       gross,
		VacancyLoss:       vacancy,
		OperatingExpenses: opex,
		PropertyValue:     in.ARV,
		LoanAmount:        refiLoan,
		InterestRate:      in.RefinanceRate,
		LoanTermYears:     in.RefinanceTermYears,
		CashInvested:      invested,
	})

	projection := e.project(domain.ProjectionInput{
		PropertyValue:           in.ARV,
		AnnualGrossIncome:       metrics.EffectiveIncomeAnnual,
		AnnualOperatingExpenses: metrics.OperatingExpensesAnnual,
		LoanAmount:              refiLoan,
		InterestRate:            in.RefinanceRate,
		LoanTermYears:           in.RefinanceTermYears,
		Growth:                  in.GrowthRates,
		Years:                   ProjectionYears,
	})

	equityCapture := percentOf(in.ARV-projectCost, in.ARV)
	result := domain.BRRRRResult{
		PurchasePrice:       price,
		RehabTotal:          rehabTotal,
		ClosingCosts:        closing,
		HoldingCosts:        holding,
		TotalProjectCost:    roundTo2Decimals(projectCost),
		InitialLoan:         initialLoan,
		InitialCashInvested: roundTo2Decimals(initialCash),
		RefinanceLoan:       refiLoan,
		RefinanceCosts:      refiCosts,
		CashOut:             roundTo2Decimals(cashOut),
		CashLeftInDeal:      roundTo2Decimals(cashLeft),
		EquityAfterRefi:     roundTo2Decimals(in.ARV - refiLoan),
		EquityCapture:       equityCapture,
		InfiniteReturn:      infinite,
		CashFlowMetrics:     metrics,
		Returns:             summarizeReturns(projection, invested),
	}

	cocFactor := metricFactor(domain.MetricCashOnCash, metrics.CashOnCash, brrrrWeights.CoC)
	if infinite {
		// All capital recovered: return is unbounded, but only if the rental
		// actually cash flows.
		cocFactor = flagFactor(metrics.AnnualCashFlow > 0, brrrrWeights.CoC)
	}
	result.Scoring = score(domain.StrategyBRRRR,
		metricFactor(domain.MetricEquityCapture, equityCapture, brrrrWeights.EquityCapture),
		cocFactor,
		metricFactor(domain.MetricDSCR, metrics.DSCR, brrrrWeights.DSCR).skipWhen(refiLoan <= 0),
		metricFactor(domain.MetricCapRate, metrics.CapRate, brrrrWeights.CapRate),
	)

	return result, nil
}

func validateBRRRR(in domain.BRRRRInput) error {
	if err := requirePositive("purchasePrice", in.PurchasePrice); err != nil {
		return err
	}
	if err := requirePositive("arv", in.ARV); err != nil {
		return err
	}
	if err := requireOptionalNonNegative("rehabBudget", in.RehabBudget); err != nil {
		return err
	}
	if err := requireOptionalFraction("contingencyPct", in.ContingencyPct); err != nil {
		return err
	}
	if err := requireOptionalFraction("closingCostsPct", in.ClosingCostsPct); err != nil {
		return err
	}
	if in.RehabMonths < 0 || in.RehabMonths > MaxHoldingMonths {
		return domain.NewValidationError("rehabMonths", "must be between 0 and %d", MaxHoldingMonths)
	}
	if err := requireNonNegative("holdingCostsMonthly", in.HoldingCostsMonthly); err != nil {
		return err
	}
	if err := requireFraction("initialLoanPct", in.InitialLoanPct); err != nil {
		return err
	}
	if err := requireRate("initialInterestRate", in.InitialInterestRate); err != nil {
		return err
	}
	if err := requireFraction("refinanceLtv", in.RefinanceLTV); err != nil {
		return err
	}
	if err := requireRate("refinanceRate", in.RefinanceRate); err != nil {
		return err
	}
	if err := requireTerm("refinanceTermYears", in.RefinanceTermYears); err != nil {
		return err
	}
	if err := requireFraction("refinanceCostsPct", in.RefinanceCostsPct); err != nil {
		return err
	}
	if err := requirePositive("monthlyRent", in.MonthlyRent); err != nil {
		return err
	}
	if err := validateVacancy(in.VacancyRate); err != nil {
		return err
	}
	if err := validateOperatingExpenses(in.OperatingExpenses); err != nil {
		return err
	}
	return requireGrowth(in.GrowthRates)
}
