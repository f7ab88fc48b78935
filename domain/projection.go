package domain

// GrowthRates drive the shared multi-year projection. Fractions per year.
type GrowthRates struct {
	AppreciationRate  float64 `json:"appreciationRate"`
	RentGrowthRate    float64 `json:"rentGrowthRate"`
	ExpenseGrowthRate float64 `json:"expenseGrowthRate"`
}

type ProjectionInput struct {
	PropertyValue           float64
	AnnualGrossIncome       float64
	AnnualOperatingExpenses float64
	LoanAmount              float64
	InterestRate            float64
	LoanTermYears           int
	Growth                  GrowthRates
	Years                   int
}

type ProjectionYear struct {
	Year               int     `json:"year"`
	GrossIncome        float64 `json:"grossIncome"`
	OperatingExpenses  float64 `json:"operatingExpenses"`
	NOI                float64 `json:"noi"`
	DebtService        float64 `json:"debtService"`
	CashFlow           float64 `json:"cashFlow"`
	CumulativeCashFlow float64 `json:"cumulativeCashFlow"`
	PropertyValue      float64 `json:"propertyValue"`
	LoanBalance        float64 `json:"loanBalance"`
	Equity             float64 `json:"equity"`
	TotalWealth        float64 `json:"totalWealth"`
}

// HorizonSummary is the year-10 snapshot every holding strategy reports.
type HorizonSummary struct {
	Year10CashFlow    float64 `json:"year10CashFlow"`
	Year10Equity      float64 `json:"year10Equity"`
	Year10TotalWealth float64 `json:"year10TotalWealth"`
}
