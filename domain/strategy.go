package domain

type Strategy string

const (
	StrategyLTR       Strategy = "ltr"
	StrategySTR       Strategy = "str"
	StrategyBRRRR     Strategy = "brrrr"
	StrategyFlip      Strategy = "flip"
	StrategyHouseHack Strategy = "house-hack"
	StrategyWholesale Strategy = "wholesale"
)

// Strategies lists every supported acquisition strategy in display order.
var Strategies = []Strategy{
	StrategyLTR,
	StrategySTR,
	StrategyBRRRR,
	StrategyFlip,
	StrategyHouseHack,
	StrategyWholesale,
}

// Valid reports whether s is one of the supported strategies.
func (s Strategy) Valid() bool {
	for _, known := range Strategies {
		if s == known {
			return true
		}
	}
	return false
}

// Assumptions are the host application's configured defaults for optional
// worksheet inputs. All rates are fractions (0.01 = 1%).
type Assumptions struct {
	InsurancePct    float64 `json:"insurancePct" mapstructure:"insurance_pct"`
	DownPaymentPct  float64 `json:"downPaymentPct" mapstructure:"down_payment_pct"`
	ClosingCostsPct float64 `json:"closingCostsPct" mapstructure:"closing_costs_pct"`
	SellingCostsPct float64 `json:"sellingCostsPct" mapstructure:"selling_costs_pct"`
	RehabBudgetPct  float64 `json:"rehabBudgetPct" mapstructure:"rehab_budget_pct"`
	ContingencyPct  float64 `json:"contingencyPct" mapstructure:"contingency_pct"`
	BuyDiscountPct  float64 `json:"buyDiscountPct" mapstructure:"buy_discount_pct"`
	PlatformFeePct  float64 `json:"platformFeePct" mapstructure:"platform_fee_pct"`
}

// DefaultAssumptions returns the stock defaults used when no configuration
// overrides them.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		InsurancePct:    0.01,
		DownPaymentPct:  0.20,
		ClosingCostsPct: 0.03,
		SellingCostsPct: 0.06,
		RehabBudgetPct:  0.05,
		ContingencyPct:  0.05,
		BuyDiscountPct:  0.05,
		PlatformFeePct:  0.03,
	}
}

// Float returns a pointer to v, for filling optional input fields.
func Float(v float64) *float64 { return &v }
