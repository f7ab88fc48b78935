package domain

type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Rank orders grades so that a higher number is a better grade.
func (g Grade) Rank() int {
	switch g {
	case GradeA:
		return 4
	case GradeB:
		return 3
	case GradeC:
		return 2
	case GradeD:
		return 1
	}
	return 0
}

type GradeStatus string

const (
	StatusExcellent GradeStatus = "excellent"
	StatusGood      GradeStatus = "good"
	StatusFair      GradeStatus = "fair"
	StatusPoor      GradeStatus = "poor"
	StatusBad       GradeStatus = "bad"
)

// Metric names a gradeable figure.
type Metric string

const (
	MetricCashOnCash         Metric = "cashOnCash"
	MetricCapRate            Metric = "capRate"
	MetricDSCR               Metric = "dscr"
	MetricExpenseRatio       Metric = "expenseRatio"
	MetricBreakevenOccupancy Metric = "breakevenOccupancy"
	MetricEquityCapture      Metric = "equityCapture"
	MetricCashFlowYield      Metric = "cashFlowYield"
	MetricROI                Metric = "roi"
	MetricProfitMargin       Metric = "profitMargin"
	MetricHousingOffset      Metric = "housingOffset"
)

type GradeResult struct {
	Metric Metric      `json:"metric"`
	Value  float64     `json:"value"`
	Grade  Grade       `json:"grade"`
	Label  string      `json:"label"`
	Status GradeStatus `json:"status"`
}

type GradeRequest struct {
	Metric   Metric   `json:"metric"`
	Value    float64  `json:"value"`
	Strategy Strategy `json:"strategy,omitempty"`
}
