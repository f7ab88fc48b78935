package service

import (
	"math"

	"deal-engine/domain"
)

// Direction says which way a metric improves.
type Direction int

const (
	HigherIsBetter Direction = iota
	LowerIsBetter
)

// Threshold is one bucket of a grading table. For HigherIsBetter tables a
// value qualifies when value >= Bound; for LowerIsBetter when value <= Bound.
// The last entry of every table is the catch-all and its Bound is ignored.
type Threshold struct {
	Bound  float64
	Grade  domain.Grade
	Label  string
	Status domain.GradeStatus
}

// GradeTable is an ordered threshold list, best bucket first.
type GradeTable struct {
	Direction  Direction
	Thresholds []Threshold
}

func fiveBuckets(dir Direction, a, b, c, d float64) GradeTable {
	return GradeTable{
		Direction: dir,
		Thresholds: []Threshold{
			{Bound: a, Grade: domain.GradeA, Label: "STRONG", Status: domain.StatusExcellent},
			{Bound: b, Grade: domain.GradeB, Label: "GOOD", Status: domain.StatusGood},
			{Bound: c, Grade: domain.GradeC, Label: "MODERATE", Status: domain.StatusFair},
			{Bound: d, Grade: domain.GradeD, Label: "WEAK", Status: domain.StatusPoor},
			{Grade: domain.GradeF, Label: "POOR", Status: domain.StatusBad},
		},
	}
}

var gradeTables = map[domain.Metric]GradeTable{
	domain.MetricCashOnCash:         fiveBuckets(HigherIsBetter, 12, 8, 5, 2),
	domain.MetricCapRate:            fiveBuckets(HigherIsBetter, 10, 8, 6, 4),
	domain.MetricDSCR:               fiveBuckets(HigherIsBetter, 1.5, 1.25, 1.1, 1.0),
	domain.MetricExpenseRatio:       fiveBuckets(LowerIsBetter, 35, 45, 55, 65),
	domain.MetricBreakevenOccupancy: fiveBuckets(LowerIsBetter, 70, 80, 90, 100),
	domain.MetricEquityCapture:      fiveBuckets(HigherIsBetter, 25, 20, 15, 10),
	domain.MetricCashFlowYield:      fiveBuckets(HigherIsBetter, 10, 7, 4, 1),
	domain.MetricROI:                fiveBuckets(HigherIsBetter, 25, 15, 10, 5),
	domain.MetricProfitMargin:       fiveBuckets(HigherIsBetter, 20, 15, 10, 5),
	domain.MetricHousingOffset:      fiveBuckets(HigherIsBetter, 100, 75, 50, 25),
}

// Short-term rentals carry more operating risk, so they need a higher
// cash-on-cash return for the same grade.
var strategyGradeTables = map[domain.Strategy]map[domain.Metric]GradeTable{
	domain.StrategySTR: {
		domain.MetricCashOnCash: fiveBuckets(HigherIsBetter, 15, 10, 7, 3),
	},
}

// TableFor returns the grading table for metric under strategy. An empty
// strategy selects the default tables.
func TableFor(metric domain.Metric, strategy domain.Strategy) (GradeTable, bool) {
	if overrides, ok := strategyGradeTables[strategy]; ok {
		if table, ok := overrides[metric]; ok {
			return table, true
		}
	}
	table, ok := gradeTables[metric]
	return table, ok
}

// Lookup grades value against the table. Every float, NaN included, lands in
// exactly one bucket: NaN fails every comparison and falls through to F.
func (t GradeTable) Lookup(value float64) Threshold {
	last := len(t.Thresholds) - 1
	for _, th := range t.Thresholds[:last] {
		if t.Direction == HigherIsBetter && value >= th.Bound {
			return th
		}
		if t.Direction == LowerIsBetter && value <= th.Bound {
			return th
		}
	}
	return t.Thresholds[last]
}

// Normalize maps value onto 0..100 between the table's weakest passing bound
// (D) and its best bound (A).
func (t GradeTable) Normalize(value float64) float64 {
	best := t.Thresholds[0].Bound
	worst := t.Thresholds[len(t.Thresholds)-2].Bound
	if math.IsNaN(value) {
		return 0
	}
	frac := (value - worst) / (best - worst)
	return clamp(frac, 0, 1) * 100
}

// GradeMetric grades a single metric value for a strategy.
func GradeMetric(metric domain.Metric, strategy domain.Strategy, value float64) (domain.GradeResult, error) {
	table, ok := TableFor(metric, strategy)
	if !ok {
		return domain.GradeResult{}, domain.NewValidationError("metric", "unknown metric %q", metric)
	}
	th := table.Lookup(value)
	return domain.GradeResult{
		Metric: metric,
		Value:  value,
		Grade:  th.Grade,
		Label:  th.Label,
		Status: th.Status,
	}, nil
}

func GradeCashOnCash(coc float64) domain.GradeResult {
	return mustGrade(domain.MetricCashOnCash, "", coc)
}

func GradeCapRate(capRate float64) domain.GradeResult {
	return mustGrade(domain.MetricCapRate, "", capRate)
}

func GradeDSCR(dscr float64) domain.GradeResult {
	return mustGrade(domain.MetricDSCR, "", dscr)
}

func GradeExpenseRatio(ratio float64) domain.GradeResult {
	return mustGrade(domain.MetricExpenseRatio, "", ratio)
}

func GradeBreakevenOccupancy(occupancy float64) domain.GradeResult {
	return mustGrade(domain.MetricBreakevenOccupancy, "", occupancy)
}

func GradeEquityCapture(pct float64) domain.GradeResult {
	return mustGrade(domain.MetricEquityCapture, "", pct)
}

func GradeCashFlowYield(pct float64) domain.GradeResult {
	return mustGrade(domain.MetricCashFlowYield, "", pct)
}

// mustGrade is only called with metrics that have a table.
func mustGrade(metric domain.Metric, strategy domain.Strategy, value float64) domain.GradeResult {
	g, err := GradeMetric(metric, strategy, value)
	if err != nil {
		panic(err)
	}
	return g
}
