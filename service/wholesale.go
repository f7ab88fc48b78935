package service

import (
	"math"

	"deal-engine/domain"
)

// CalculateWholesale evaluates assigning a purchase contract to an end
// buyer. There is no holding period and therefore no projection.
func (e *Engine) CalculateWholesale(in domain.WholesaleInput) (domain.WholesaleResult, error) {
	if err := validateWholesale(in); err != nil {
		return domain.WholesaleResult{}, err
	}

	rehab := roundTo2Decimals(resolve(in.RehabCosts, in.ARV*e.assumptions.RehabBudgetPct))
	buyerPrice := in.ContractPrice + in.AssignmentFee
	buyerMAO := MaximumAllowableOffer(in.ARV, rehab)

	buyerClosing := buyerPrice * resolve(in.ClosingCostsPct, e.assumptions.ClosingCostsPct)
	buyerAllIn := buyerPrice + rehab + buyerClosing + in.BuyerHoldingCosts
	buyerSale := in.ARV * (1 - resolve(in.SellingCostsPct, e.assumptions.SellingCostsPct))
	buyerProfit := buyerSale - buyerAllIn

	// Earnest money is refunded at assignment; marketing is spent.
	cashAtRisk := in.EarnestMoney + in.MarketingCosts
	netProfit := in.AssignmentFee - in.MarketingCosts
	roi := percentOf(netProfit, cashAtRisk)

	result := domain.WholesaleResult{
		ContractPrice:       in.ContractPrice,
		AssignmentFee:       in.AssignmentFee,
		EndBuyerPrice:       roundTo2Decimals(buyerPrice),
		EndBuyerMAO:         buyerMAO,
		RehabCosts:          rehab,
		EndBuyerAllIn:       roundTo2Decimals(buyerAllIn),
		EndBuyerProfit:      roundTo2Decimals(buyerProfit),
		EndBuyerMargin:      percentOf(buyerProfit, in.ARV),
		CashAtRisk:          roundTo2Decimals(cashAtRisk),
		WholesalerNetProfit: roundTo2Decimals(netProfit),
		ROI:                 roi,
		FeeHeadroom:         roundTo2Decimals(math.Max(0, buyerMAO-in.ContractPrice)),
		Viable:              buyerPrice <= buyerMAO && netProfit > 0,
	}
	result.Scoring = score(domain.StrategyWholesale,
		metricFactor(domain.MetricProfitMargin, result.EndBuyerMargin, saleWeights.BuyerMargin),
		metricFactor(domain.MetricROI, roi, saleWeights.ROI).skipWhen(cashAtRisk <= 0),
		flagFactor(result.Viable, saleWeights.Viable),
	)

	return result, nil
}

func validateWholesale(in domain.WholesaleInput) error {
	if err := requirePositive("contractPrice", in.ContractPrice); err != nil {
		return err
	}
	if err := requirePositive("arv", in.ARV); err != nil {
		return err
	}
	if err := requireOptionalNonNegative("rehabCosts", in.RehabCosts); err != nil {
		return err
	}
	if err := requireNonNegative("assignmentFee", in.AssignmentFee); err != nil {
		return err
	}
	if err := requireNonNegative("earnestMoney", in.EarnestMoney); err != nil {
		return err
	}
	if err := requireNonNegative("marketingCosts", in.MarketingCosts); err != nil {
		return err
	}
	if err := requireOptionalFraction("closingCostsPct", in.ClosingCostsPct); err != nil {
		return err
	}
	if err := requireOptionalFraction("sellingCostsPct", in.SellingCostsPct); err != nil {
		return err
	}
	return requireNonNegative("buyerHoldingCosts", in.BuyerHoldingCosts)
}
