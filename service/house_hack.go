package service

import (
	"deal-engine/domain"
)

// CalculateHouseHack evaluates an owner-occupied multi-unit purchase: the
// owner lives in OwnerUnits and rents the rest. The embedded cash-flow
// metrics describe the full-rental case after the owner moves out.
func (e *Engine) CalculateHouseHack(in domain.HouseHackInput) (domain.HouseHackResult, error) {
	if err := validateHouseHack(in); err != nil {
		return domain.HouseHackResult{}, err
	}

	price := in.PurchasePrice
	downPct := resolve(in.DownPaymentPct, e.assumptions.DownPaymentPct)
	downPayment := roundTo2Decimals(price * downPct)
	loan := roundTo2Decimals(price - downPayment)
	closing := roundTo2Decimals(price * resolve(in.ClosingCostsPct, e.assumptions.ClosingCostsPct))
	cash := downPayment + closing

	payment := roundTo2Decimals(DebtService(loan, in.InterestRate, in.LoanTermYears))
	insurance := resolve(in.InsuranceAnnual, price*e.assumptions.InsurancePct)
	pmi := roundTo2Decimals(loan * in.PMIRateAnnual / 12)
	piti := roundTo2Decimals(payment + (in.PropertyTaxesAnnual+insurance)/12 + pmi)

	// Living in: only the non-owner units produce rent.
	rentedUnits := float64(in.TotalUnits - in.OwnerUnits)
	rentalGross := rentedUnits * in.RentPerUnit
	rentalEffective := roundTo2Decimals(rentalGross * (1 - in.VacancyRate))
	variablePct := in.MaintenancePct + in.ManagementPct + in.CapExPct
	otherMonthly := in.HOAMonthly + in.UtilitiesMonthly + variablePct*rentalEffective
	netHousing := roundTo2Decimals(piti + otherMonthly - rentalEffective)
	livingInAnnualCashFlow := -netHousing * 12

	// Moved out: every unit rented, PMI still owed.
	fullGross := float64(in.TotalUnits) * in.RentPerUnit * 12
	fullVacancy := fullGross * in.VacancyRate
	fullOpex := e.operatingCosts(in.OperatingExpenses, price, fullGross-fullVacancy) + pmi*12
	metrics := rentalMetrics(rentalBasis{
		GrossAnnual:       fullGross,
		VacancyLoss:       fullVacancy,
		OperatingExpenses: fullOpex,
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

	offset := percentOf(rentalEffective, piti)
	result := domain.HouseHackResult{
		PurchasePrice:         price,
		DownPayment:           downPayment,
		LoanAmount:            loan,
		ClosingCosts:          closing,
		TotalCashRequired:     cash,
		MonthlyPITI:           piti,
		MonthlyPMI:            pmi,
		RentalIncomeMonthly:   rentalEffective,
		NetHousingCostMonthly: netHousing,
		HousingOffset:         offset,
		SavingsVsRenting:      roundTo2Decimals(in.OwnerMarketRent - netHousing),
		LivingInCashOnCash:    percentOf(livingInAnnualCashFlow, cash),
		CashFlowMetrics:       metrics,
		Returns:               summarizeReturns(projection, cash),
	}
	result.Scoring = score(domain.StrategyHouseHack,
		metricFactor(domain.MetricHousingOffset, offset, hackWeights.Offset).skipWhen(piti <= 0),
		metricFactor(domain.MetricCashOnCash, metrics.CashOnCash, hackWeights.CoC).skipWhen(cash <= 0),
		metricFactor(domain.MetricDSCR, metrics.DSCR, hackWeights.DSCR).skipWhen(loan <= 0),
	)

	return result, nil
}

func validateHouseHack(in domain.HouseHackInput) error {
	if err := requirePositive("purchasePrice", in.PurchasePrice); err != nil {
		return err
	}
	if in.TotalUnits < 2 {
		return domain.NewValidationError("totalUnits", "must be at least 2")
	}
	if in.OwnerUnits < 1 || in.OwnerUnits >= in.TotalUnits {
		return domain.NewValidationError("ownerUnits", "must be at least 1 and fewer than totalUnits")
	}
	if err := requirePositive("rentPerUnit", in.RentPerUnit); err != nil {
		return err
	}
	if err := requireNonNegative("ownerMarketRent", in.OwnerMarketRent); err != nil {
		return err
	}
	if err := validateVacancy(in.VacancyRate); err != nil {
		return err
	}
	if err := requireFraction("pmiRateAnnual", in.PMIRateAnnual); err != nil {
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
