package service

import (
	"math"

	"deal-engine/domain"
)

// scoreFactor is one weighted input to a deal score. A factor with a Metric
// is graded and normalised against that metric's table; a factor without one
// contributes Points directly (used for pass/fail rules).
type scoreFactor struct {
	Metric domain.Metric
	Value  float64
	Points float64
	Weight float64
	Skip   bool
}

func metricFactor(metric domain.Metric, value, weight float64) scoreFactor {
	return scoreFactor{Metric: metric, Value: value, Weight: weight}
}

func flagFactor(pass bool, weight float64) scoreFactor {
	points := 0.0
	if pass {
		points = 100
	}
	return scoreFactor{Points: points, Weight: weight}
}

// Deal score weights per strategy.
var (
	ltrWeights = struct{ CoC, CapRate, DSCR, ExpenseRatio float64 }{0.35, 0.25, 0.25, 0.15}
	strWeights = struct{ CoC, CapRate, DSCR, Breakeven float64 }{0.35, 0.20, 0.20, 0.25}

	brrrrWeights = struct{ EquityCapture, CoC, DSCR, CapRate float64 }{0.30, 0.30, 0.25, 0.15}
	flipWeights  = struct{ ROI, Margin, Rule float64 }{0.50, 0.30, 0.20}
	hackWeights  = struct{ Offset, CoC, DSCR float64 }{0.50, 0.25, 0.25}
	saleWeights  = struct{ BuyerMargin, ROI, Viable float64 }{0.50, 0.30, 0.20}
)

// score grades every metric factor and folds all factors into a 0..100
// deal score. Skipped factors are left out entirely and the remaining
// weights are rescaled.
func score(strategy domain.Strategy, factors ...scoreFactor) domain.Scoring {
	var (
		weighted, totalWeight float64
		grades                []domain.GradeResult
	)

	for _, f := range factors {
		if f.Skip {
			continue
		}
		points := f.Points
		if f.Metric != "" {
			table, _ := TableFor(f.Metric, strategy)
			th := table.Lookup(f.Value)
			grades = append(grades, domain.GradeResult{
				Metric: f.Metric,
				Value:  f.Value,
				Grade:  th.Grade,
				Label:  th.Label,
				Status: th.Status,
			})
			points = table.Normalize(f.Value)
		}
		weighted += points * f.Weight
		totalWeight += f.Weight
	}

	s := domain.Scoring{Grades: grades}
	if totalWeight > 0 {
		s.DealScore = int(math.Round(clamp(weighted/totalWeight, 0, 100)))
	}
	return s
}

func (f scoreFactor) skipWhen(cond bool) scoreFactor {
	f.Skip = cond
	return f
}
