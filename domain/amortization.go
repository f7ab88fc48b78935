package domain

// AmortizationRow summarises one year of a fixed-rate loan schedule.
type AmortizationRow struct {
	Year             int     `json:"year"`
	PrincipalPaid    float64 `json:"principalPaid"`
	InterestPaid     float64 `json:"interestPaid"`
	RemainingBalance float64 `json:"remainingBalance"`
}

type AmortizationInput struct {
	Principal  float64 `json:"principal"`
	AnnualRate float64 `json:"annualRate"`
	TermYears  int     `json:"termYears"`
}

type AmortizationResult struct {
	MonthlyPayment float64           `json:"monthlyPayment"`
	TotalPayment   float64           `json:"totalPayment"`
	TotalInterest  float64           `json:"totalInterest"`
	Schedule       []AmortizationRow `json:"schedule"`
}
