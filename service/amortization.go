package service

import (
	"math"

	"deal-engine/domain"
)

// LoanPayment returns the fixed monthly payment for an amortizing loan.
// annualRate is a fraction (0.07 = 7%).
func LoanPayment(principal, annualRate float64, termYears int) (float64, error) {
	if err := validateLoan(principal, annualRate, termYears); err != nil {
		return 0, err
	}
	return monthlyPayment(principal, annualRate, termYears), nil
}

func monthlyPayment(principal, annualRate float64, termYears int) float64 {
	n := float64(termYears * 12)
	if annualRate == 0 {
		return principal / n
	}
	r := annualRate / 12
	growth := math.Pow(1+r, n)
	return principal * (r * growth) / (growth - 1)
}

// AmortizationSchedule returns one row per loan year. The final month pays
// off whatever balance remains, so principal paid sums to the original
// principal and the last balance is exactly 0.
func AmortizationSchedule(principal, annualRate float64, termYears int) ([]domain.AmortizationRow, error) {
	if err := validateLoan(principal, annualRate, termYears); err != nil {
		return nil, err
	}

	payment := monthlyPayment(principal, annualRate, termYears)
	r := annualRate / 12
	balance := principal
	rows := make([]domain.AmortizationRow, 0, termYears)

	for year := 1; year <= termYears; year++ {
		row := domain.AmortizationRow{Year: year}
		for month := 1; month <= 12; month++ {
			interest := balance * r
			principalPart := payment - interest
			if year == termYears && month == 12 {
				principalPart = balance
			}
			if principalPart > balance {
				principalPart = balance
			}
			balance -= principalPart
			row.InterestPaid += interest
			row.PrincipalPaid += principalPart
		}
		row.RemainingBalance = math.Max(0, balance)
		rows = append(rows, row)
	}

	return rows, nil
}

// CalculateAmortization bundles the payment, totals and yearly schedule.
func CalculateAmortization(input domain.AmortizationInput) (domain.AmortizationResult, error) {
	schedule, err := AmortizationSchedule(input.Principal, input.AnnualRate, input.TermYears)
	if err != nil {
		return domain.AmortizationResult{}, err
	}

	payment := monthlyPayment(input.Principal, input.AnnualRate, input.TermYears)
	totalInterest := 0.0
	for _, row := range schedule {
		totalInterest += row.InterestPaid
	}

	return domain.AmortizationResult{
		MonthlyPayment: roundTo2Decimals(payment),
		TotalPayment:   roundTo2Decimals(input.Principal + totalInterest),
		TotalInterest:  roundTo2Decimals(totalInterest),
		Schedule:       schedule,
	}, nil
}

// RemainingBalance returns the loan balance after monthsPaid payments.
func RemainingBalance(principal, annualRate float64, termYears, monthsPaid int) float64 {
	if principal <= 0 || termYears <= 0 {
		return 0
	}
	total := termYears * 12
	if monthsPaid >= total {
		return 0
	}
	if monthsPaid <= 0 {
		return principal
	}
	k := float64(monthsPaid)
	if annualRate == 0 {
		return principal * (1 - k/float64(total))
	}
	r := annualRate / 12
	payment := monthlyPayment(principal, annualRate, termYears)
	growth := math.Pow(1+r, k)
	return math.Max(0, principal*growth-payment*(growth-1)/r)
}

// DebtService returns the monthly payment on loan, or 0 for a cash purchase.
func DebtService(loan, annualRate float64, termYears int) float64 {
	if loan <= 0 {
		return 0
	}
	return monthlyPayment(loan, annualRate, termYears)
}

func validateLoan(principal, annualRate float64, termYears int) error {
	if principal <= 0 || math.IsNaN(principal) {
		return domain.NewValidationError("principal", "must be greater than 0")
	}
	if principal > MaxPropertyPrice {
		return domain.NewValidationError("principal", "exceeds the maximum of $%.2f", MaxPropertyPrice)
	}
	if annualRate < 0 || math.IsNaN(annualRate) {
		return domain.NewValidationError("annualRate", "must not be negative")
	}
	if annualRate > MaxInterestRate {
		return domain.NewValidationError("annualRate", "exceeds the maximum of %.2f", MaxInterestRate)
	}
	if termYears < MinTermYears {
		return domain.NewValidationError("termYears", "must be greater than 0")
	}
	if termYears > MaxTermYears {
		return domain.NewValidationError("termYears", "exceeds the maximum of %d years", MaxTermYears)
	}
	return nil
}
