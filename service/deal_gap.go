package service

import (
	"math"
	"sort"

	"deal-engine/domain"
)

// EstimateScoreAtPrice estimates the deal score at a hypothetical purchase
// price. baseScore is the score at targetPrice. Buying at or above the
// rent-justified incomeValue is heavily penalised; in between, the score
// falls linearly.
func EstimateScoreAtPrice(buyPrice, targetPrice, incomeValue float64, baseScore int) (int, error) {
	if err := requireNonNegative("buyPrice", buyPrice); err != nil {
		return 0, err
	}
	if err := requirePositive("targetPrice", targetPrice); err != nil {
		return 0, err
	}
	if err := requirePositive("incomeValue", incomeValue); err != nil {
		return 0, err
	}
	if baseScore < 0 || baseScore > 100 {
		return 0, domain.NewValidationError("baseScore", "must be between 0 and 100")
	}
	return estimateScore(buyPrice, targetPrice, incomeValue, float64(baseScore)), nil
}

func estimateScore(buy, target, income, base float64) int {
	switch {
	case buy <= target:
		bonus := math.Round((target - buy) / target * BelowTargetBonusMax)
		return int(math.Min(100, base+bonus))
	case buy >= income:
		return int(math.Max(0, math.Round(base*AboveIncomeScoreRatio)))
	default:
		t := (buy - target) / (income - target)
		return int(math.Round(base * (1 - t*InterpolationPenalty)))
	}
}

// CalculateDealGap returns the dollar and percentage distance from the list
// price down to buyPrice.
func CalculateDealGap(listPrice, buyPrice float64) domain.DealGap {
	dollars := listPrice - buyPrice
	return domain.DealGap{
		Dollars: roundTo2Decimals(dollars),
		Percent: percentOf(dollars, listPrice),
	}
}

// PriceLadder lists the anchors plus steps evenly spaced prices between the
// highest and lowest anchor, highest price first, each with its estimated
// score and deal gap.
func PriceLadder(anchors domain.DealGapAnchors, baseScore, steps int) ([]domain.PriceLadderRung, error) {
	if err := validateAnchors(anchors); err != nil {
		return nil, err
	}
	if baseScore < 0 || baseScore > 100 {
		return nil, domain.NewValidationError("baseScore", "must be between 0 and 100")
	}
	if steps < 0 || steps > MaxLadderSteps {
		return nil, domain.NewValidationError("steps", "must be between 0 and %d", MaxLadderSteps)
	}

	type point struct {
		label string
		price float64
	}
	points := []point{
		{"List Price", anchors.ListPrice},
		{"Income Value", anchors.IncomeValue},
		{"Target Price", anchors.TargetPrice},
	}
	top := math.Max(anchors.ListPrice, math.Max(anchors.IncomeValue, anchors.TargetPrice))
	bottom := math.Min(anchors.ListPrice, math.Min(anchors.IncomeValue, anchors.TargetPrice))
	for i := 1; i <= steps; i++ {
		price := top - (top-bottom)*float64(i)/float64(steps+1)
		points = append(points, point{"Step", roundTo2Decimals(price)})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].price > points[j].price
	})

	rungs := make([]domain.PriceLadderRung, 0, len(points))
	for _, p := range points {
		rungs = append(rungs, domain.PriceLadderRung{
			Label:          p.label,
			Price:          p.price,
			EstimatedScore: estimateScore(p.price, anchors.TargetPrice, anchors.IncomeValue, float64(baseScore)),
			DealGap:        CalculateDealGap(anchors.ListPrice, p.price),
		})
	}
	return rungs, nil
}

// CalculateDealGapLadder answers a full deal gap request.
func CalculateDealGapLadder(in domain.DealGapInput) (domain.DealGapResult, error) {
	if err := validateAnchors(in.DealGapAnchors); err != nil {
		return domain.DealGapResult{}, err
	}
	score, err := EstimateScoreAtPrice(in.BuyPrice, in.TargetPrice, in.IncomeValue, in.BaseScore)
	if err != nil {
		return domain.DealGapResult{}, err
	}
	steps := in.Steps
	if steps == 0 {
		steps = DefaultLadderSteps
	}
	ladder, err := PriceLadder(in.DealGapAnchors, in.BaseScore, steps)
	if err != nil {
		return domain.DealGapResult{}, err
	}
	return domain.DealGapResult{
		BuyPrice:       in.BuyPrice,
		EstimatedScore: score,
		DealGap:        CalculateDealGap(in.ListPrice, in.BuyPrice),
		Ladder:         ladder,
	}, nil
}

func validateAnchors(a domain.DealGapAnchors) error {
	if err := requirePositive("listPrice", a.ListPrice); err != nil {
		return err
	}
	if err := requirePositive("incomeValue", a.IncomeValue); err != nil {
		return err
	}
	return requirePositive("targetPrice", a.TargetPrice)
}

// SolveIncomeValue finds the purchase price at which the rental's monthly
// cash flow is zero, holding every other input fixed.
func (e *Engine) SolveIncomeValue(in domain.LTRInput) (float64, error) {
	return e.solveLTRPrice(in, func(r domain.LTRResult) float64 { return r.MonthlyCashFlow }, 0)
}

// SolveTargetPrice finds the purchase price at which cash-on-cash return
// equals targetCoC (a percentage).
func (e *Engine) SolveTargetPrice(in domain.LTRInput, targetCoC float64) (float64, error) {
	if math.IsNaN(targetCoC) || math.IsInf(targetCoC, 0) {
		return 0, domain.NewValidationError("targetCoC", "must be a finite percentage")
	}
	return e.solveLTRPrice(in, func(r domain.LTRResult) float64 { return r.CashOnCash }, targetCoC)
}

// solveLTRPrice bisects for the highest price whose metric still meets
// target. The metric must fall as price rises. It returns 0 when no positive
// price meets the target.
func (e *Engine) solveLTRPrice(in domain.LTRInput, metric func(domain.LTRResult) float64, target float64) (float64, error) {
	if err := validateLTR(in); err != nil {
		return 0, err
	}

	eval := func(price float64) (float64, error) {
		trial := in
		trial.PurchasePrice = price
		r, err := e.CalculateLTR(trial)
		if err != nil {
			return 0, err
		}
		return metric(r), nil
	}

	lo, hi := 1.0, in.PurchasePrice
	v, err := eval(lo)
	if err != nil {
		return 0, err
	}
	if v < target {
		return 0, nil
	}
	for {
		v, err := eval(hi)
		if err != nil {
			return 0, err
		}
		if v < target {
			break
		}
		if hi >= MaxPropertyPrice {
			return MaxPropertyPrice, nil
		}
		lo = hi
		hi = math.Min(hi*2, MaxPropertyPrice)
	}

	for i := 0; i < SolverIterations && hi-lo > SolverTolerance; i++ {
		mid := (lo + hi) / 2
		v, err := eval(mid)
		if err != nil {
			return 0, err
		}
		if v >= target {
			lo = mid
		} else {
			hi = mid
		}
	}
	return roundTo2Decimals(lo), nil
}
