package domain

// MaxComparisons is the capacity of a comparison set.
const MaxComparisons = 4

// PropertyComparison is one property in a side-by-side comparison. The
// output fields are computed once, when the entry is created, and are never
// recomputed by the ranker.
type PropertyComparison struct {
	ID                string  `json:"id"`
	Address           string  `json:"address"`
	PropertyType      string  `json:"propertyType"`
	Beds              int     `json:"beds"`
	Baths             float64 `json:"baths"`
	Sqft              int     `json:"sqft"`
	PurchasePrice     float64 `json:"purchasePrice"`
	MonthlyRent       float64 `json:"monthlyRent"`
	MonthlyCashFlow   float64 `json:"monthlyCashFlow"`
	CashOnCash        float64 `json:"cashOnCash"`
	CapRate           float64 `json:"capRate"`
	OnePercentRule    float64 `json:"onePercentRule"`
	DSCR              float64 `json:"dscr"`
	TotalCashRequired float64 `json:"totalCashRequired"`
	Year10CashFlow    float64 `json:"year10CashFlow"`
	Year10Equity      float64 `json:"year10Equity"`
	Year10TotalWealth float64 `json:"year10TotalWealth"`
}

// PropertyFacts are the descriptive fields of a property, supplied by the
// property-data source.
type PropertyFacts struct {
	ID           string  `json:"id,omitempty"`
	Address      string  `json:"address"`
	PropertyType string  `json:"propertyType"`
	Beds         int     `json:"beds"`
	Baths        float64 `json:"baths"`
	Sqft         int     `json:"sqft"`
}

// ComparisonMetric is a sortable / highlightable comparison column.
type ComparisonMetric string

const (
	ColumnPurchasePrice     ComparisonMetric = "purchasePrice"
	ColumnMonthlyRent       ComparisonMetric = "monthlyRent"
	ColumnMonthlyCashFlow   ComparisonMetric = "monthlyCashFlow"
	ColumnCashOnCash        ComparisonMetric = "cashOnCash"
	ColumnCapRate           ComparisonMetric = "capRate"
	ColumnOnePercentRule    ComparisonMetric = "onePercentRule"
	ColumnDSCR              ComparisonMetric = "dscr"
	ColumnTotalCashRequired ComparisonMetric = "totalCashRequired"
	ColumnYear10CashFlow    ComparisonMetric = "year10CashFlow"
	ColumnYear10Equity      ComparisonMetric = "year10Equity"
	ColumnYear10TotalWealth ComparisonMetric = "year10TotalWealth"
)

// ComparisonColumns lists the displayed columns in order.
var ComparisonColumns = []ComparisonMetric{
	ColumnPurchasePrice,
	ColumnMonthlyRent,
	ColumnMonthlyCashFlow,
	ColumnCashOnCash,
	ColumnCapRate,
	ColumnOnePercentRule,
	ColumnDSCR,
	ColumnTotalCashRequired,
	ColumnYear10CashFlow,
	ColumnYear10Equity,
	ColumnYear10TotalWealth,
}

// LowerIsBetter reports whether a smaller value wins the column.
func (m ComparisonMetric) LowerIsBetter() bool {
	return m == ColumnPurchasePrice || m == ColumnTotalCashRequired
}

// Value extracts the column value from a comparison entry.
func (m ComparisonMetric) Value(p PropertyComparison) (float64, bool) {
	switch m {
	case ColumnPurchasePrice:
		return p.PurchasePrice, true
	case ColumnMonthlyRent:
		return p.MonthlyRent, true
	case ColumnMonthlyCashFlow:
		return p.MonthlyCashFlow, true
	case ColumnCashOnCash:
		return p.CashOnCash, true
	case ColumnCapRate:
		return p.CapRate, true
	case ColumnOnePercentRule:
		return p.OnePercentRule, true
	case ColumnDSCR:
		return p.DSCR, true
	case ColumnTotalCashRequired:
		return p.TotalCashRequired, true
	case ColumnYear10CashFlow:
		return p.Year10CashFlow, true
	case ColumnYear10Equity:
		return p.Year10Equity, true
	case ColumnYear10TotalWealth:
		return p.Year10TotalWealth, true
	}
	return 0, false
}

type RankedComparison struct {
	Rank int `json:"rank"`
	PropertyComparison
}

type ComparisonRanking struct {
	Metric     ComparisonMetric              `json:"metric"`
	Ranked     []RankedComparison            `json:"ranked"`
	WinnerID   string                        `json:"winnerId"`
	BestValues map[ComparisonMetric][]string `json:"bestValues"`
}

// ComparisonSet is an ordered, capacity-limited list of comparison entries.
// Entry order is insertion order.
type ComparisonSet struct {
	ID      string               `json:"id"`
	Entries []PropertyComparison `json:"entries"`
}
