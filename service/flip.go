package service

import (
	"math"

	"deal-engine/domain"
)

// MaximumAllowableOffer applies the 70% rule: ARV x 0.70 minus rehab.
func MaximumAllowableOffer(arv, rehabCosts float64) float64 {
	return roundTo2Decimals(arv*MAORulePercent/100 - rehabCosts)
}

// Meets70Rule reports whether purchase plus rehab stays within 70% of ARV,
// which is the same as purchasePrice <= MAO.
func Meets70Rule(purchasePrice, rehabCosts, arv float64) bool {
	return purchasePrice <= MaximumAllowableOffer(arv, rehabCosts)
}

// SuggestedFlipPrice is the opening offer: the discounted MAO, floored at
// half the list price and never above list.
func SuggestedFlipPrice(mao, listPrice, buyDiscountPct float64) float64 {
	price := math.Max(mao*(1-buyDiscountPct), listPrice*MinOfferListPct)
	return roundTo2Decimals(math.Min(price, listPrice))
}

// CalculateFlip evaluates a fix-and-flip financed with an interest-only
// hard-money loan on purchase plus rehab.
func (e *Engine) CalculateFlip(in domain.FlipInput) (domain.FlipResult, error) {
	if err := validateFlip(in); err != nil {
		return domain.FlipResult{}, err
	}

	rehab := roundTo2Decimals(resolve(in.RehabCosts, in.ARV*e.assumptions.RehabBudgetPct))
	mao := MaximumAllowableOffer(in.ARV, rehab)
	suggested := SuggestedFlipPrice(mao, in.ListPrice, resolve(in.BuyDiscountPct, e.assumptions.BuyDiscountPct))
	price := resolve(in.PurchasePrice, suggested)

	rehabTotal := roundTo2Decimals(rehab * (1 + resolve(in.ContingencyPct, e.assumptions.ContingencyPct)))
	closing := roundTo2Decimals(price * resolve(in.ClosingCostsPct, e.assumptions.ClosingCostsPct))

	months := float64(in.HoldingMonths)
	loan := roundTo2Decimals((price + rehabTotal) * in.LoanToCostPct)
	points := roundTo2Decimals(loan * in.LoanPointsPct)
	interest := roundTo2Decimals(loan * in.InterestRate / 12 * months)
	holding := roundTo2Decimals(in.HoldingCostsMonthly*months + interest)

	projectCost := price + rehabTotal + closing + holding + points
	cash := projectCost - loan

	sellingPct := resolve(in.SellingCostsPct, e.assumptions.SellingCostsPct)
	sellingCosts := roundTo2Decimals(in.ARV * sellingPct)
	proceeds := in.ARV - sellingCosts

	// Proceeds repay the loan first; what is left returns the investor's cash.
	netProfit := proceeds - loan - cash
	tax := math.Max(0, netProfit) * in.CapitalGainsRate
	roi := percentOf(netProfit, cash)

	result := domain.FlipResult{
		MaximumAllowableOffer: mao,
		SuggestedPrice:        suggested,
		PurchasePrice:         price,
		RehabCosts:            rehab,
		RehabTotal:            rehabTotal,
		ClosingCosts:          closing,
		LoanAmount:            loan,
		LoanPoints:            points,
		InterestCost:          interest,
		HoldingCosts:          holding,
		TotalProjectCost:      roundTo2Decimals(projectCost),
		TotalCashRequired:     roundTo2Decimals(cash),
		SellingCosts:          sellingCosts,
		SaleProceeds:          roundTo2Decimals(proceeds),
		NetProfit:             roundTo2Decimals(netProfit),
		CapitalGainsTax:       roundTo2Decimals(tax),
		AfterTaxProfit:        roundTo2Decimals(netProfit - tax),
		ROI:                   roi,
		AnnualizedROI:         annualize(roi, months/12),
		ProfitMargin:          percentOf(netProfit, in.ARV),
		BreakevenSalePrice:    roundTo2Decimals(projectCost / (1 - sellingPct)),
		Meets70Rule:           Meets70Rule(price, rehab, in.ARV),
	}
	result.Scoring = score(domain.StrategyFlip,
		metricFactor(domain.MetricROI, roi, flipWeights.ROI),
		metricFactor(domain.MetricProfitMargin, result.ProfitMargin, flipWeights.Margin),
		flagFactor(result.Meets70Rule, flipWeights.Rule),
	)

	return result, nil
}

func validateFlip(in domain.FlipInput) error {
	if err := requirePositive("listPrice", in.ListPrice); err != nil {
		return err
	}
	if in.PurchasePrice != nil {
		if err := requirePositive("purchasePrice", *in.PurchasePrice); err != nil {
			return err
		}
	}
	if err := requirePositive("arv", in.ARV); err != nil {
		return err
	}
	if err := requireOptionalNonNegative("rehabCosts", in.RehabCosts); err != nil {
		return err
	}
	if err := requireOptionalFraction("contingencyPct", in.ContingencyPct); err != nil {
		return err
	}
	if err := requireOptionalFraction("closingCostsPct", in.ClosingCostsPct); err != nil {
		return err
	}
	if in.HoldingMonths < 1 || in.HoldingMonths > MaxHoldingMonths {
		return domain.NewValidationError("holdingMonths", "must be between 1 and %d", MaxHoldingMonths)
	}
	if err := requireNonNegative("holdingCostsMonthly", in.HoldingCostsMonthly); err != nil {
		return err
	}
	if err := requireFraction("loanToCostPct", in.LoanToCostPct); err != nil {
		return err
	}
	if err := requireRate("interestRate", in.InterestRate); err != nil {
		return err
	}
	if err := requireFraction("loanPointsPct", in.LoanPointsPct); err != nil {
		return err
	}
	if in.SellingCostsPct != nil && (*in.SellingCostsPct < 0 || *in.SellingCostsPct >= 1) {
		return domain.NewValidationError("sellingCostsPct", "must be at least 0 and below 1")
	}
	if err := requireFraction("capitalGainsRate", in.CapitalGainsRate); err != nil {
		return err
	}
	return requireOptionalFraction("buyDiscountPct", in.BuyDiscountPct)
}
