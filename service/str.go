package service

import (
	"math"

	"deal-engine/domain"
)

const nightsPerYear = 365.0

// CalculateSTR evaluates a furnished short-term (nightly) rental.
func (e *Engine) CalculateSTR(in domain.STRInput) (domain.STRResult, error) {
	if err := validateSTR(in); err != nil {
		return domain.STRResult{}, err
	}

	price := in.PurchasePrice
	downPayment := roundTo2Decimals(price * resolve(in.DownPaymentPct, e.assumptions.DownPaymentPct))
	loan := roundTo2Decimals(price - downPayment)
	closing := roundTo2Decimals(price * resolve(in.ClosingCostsPct, e.assumptions.ClosingCostsPct))
	furnishing := roundTo2Decimals(in.FurnishingBudget)
	cash := downPayment + closing + furnishing

	platformPct := resolve(in.PlatformFeePct, e.assumptions.PlatformFeePct)
	nights := nightsPerYear * in.OccupancyRate
	stays := nights / in.AverageStayNights
	revenuePerNight := in.NightlyRate + in.CleaningFeePerStay/in.AverageStayNights
	revenue := nights * revenuePerNight

	// Per-night variable costs scale with occupancy; everything else is fixed.
	variablePct := platformPct + in.ManagementPct + in.MaintenancePct + in.CapExPct
	costPerNight := variablePct*revenuePerNight + in.CleaningCostPerStay/in.AverageStayNights
	insurance := resolve(in.InsuranceAnnual, price*e.assumptions.InsurancePct)
	fixed := in.PropertyTaxesAnnual + insurance +
		(in.HOAMonthly+in.UtilitiesMonthly+in.SuppliesMonthly)*12
	opex := fixed + costPerNight*nights

	metrics := rentalMetrics(rentalBasis{
		GrossAnnual:       revenue,
		OperatingExpenses: opex,
		PropertyValue:     price,
		LoanAmount:        loan,
		InterestRate:      in.InterestRate,
		LoanTermYears:     in.LoanTermYears,
		CashInvested:      cash,
	})
	metrics.BreakevenOccupancy = strBreakeven(fixed+metrics.AnnualDebtService, revenuePerNight-costPerNight)

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

	result := domain.STRResult{
		PurchasePrice:     price,
		DownPayment:       downPayment,
		LoanAmount:        loan,
		ClosingCosts:      closing,
		FurnishingBudget:  furnishing,
		TotalCashRequired: cash,
		NightsBooked:      nights,
		Stays:             stays,
		RevenuePerNight:   roundTo2Decimals(revenuePerNight),
		CashFlowMetrics:   metrics,
		Returns:           summarizeReturns(projection, cash),
	}
	result.Scoring = score(domain.StrategySTR,
		metricFactor(domain.MetricCashOnCash, metrics.CashOnCash, strWeights.CoC).skipWhen(cash <= 0),
		metricFactor(domain.MetricCapRate, metrics.CapRate, strWeights.CapRate),
		metricFactor(domain.MetricDSCR, metrics.DSCR, strWeights.DSCR).skipWhen(loan <= 0),
		metricFactor(domain.MetricBreakevenOccupancy, metrics.BreakevenOccupancy, strWeights.Breakeven),
	)

	return result, nil
}

// strBreakeven returns the occupancy percentage at which per-night margin
// covers the fixed annual costs.
func strBreakeven(fixedAnnual, marginPerNight float64) float64 {
	if marginPerNight <= 0 {
		return MaxBreakevenOccupancy
	}
	return math.Min(fixedAnnual/(nightsPerYear*marginPerNight)*100, MaxBreakevenOccupancy)
}

func validateSTR(in domain.STRInput) error {
	if err := requirePositive("purchasePrice", in.PurchasePrice); err != nil {
		return err
	}
	if err := requireNonNegative("furnishingBudget", in.FurnishingBudget); err != nil {
		return err
	}
	if err := requirePositive("nightlyRate", in.NightlyRate); err != nil {
		return err
	}
	if err := requireFraction("occupancyRate", in.OccupancyRate); err != nil {
		return err
	}
	if math.IsNaN(in.AverageStayNights) || in.AverageStayNights < 1 {
		return domain.NewValidationError("averageStayNights", "must be at least 1")
	}
	if err := requireNonNegative("cleaningFeePerStay", in.CleaningFeePerStay); err != nil {
		return err
	}
	if err := requireNonNegative("cleaningCostPerStay", in.CleaningCostPerStay); err != nil {
		return err
	}
	if err := requireOptionalFraction("platformFeePct", in.PlatformFeePct); err != nil {
		return err
	}
	if err := requireNonNegative("suppliesMonthly", in.SuppliesMonthly); err != nil {
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
