package domain

// DealGapAnchors bound the price ladder. They are read-only inputs.
type DealGapAnchors struct {
	ListPrice   float64 `json:"listPrice"`
	IncomeValue float64 `json:"incomeValue"`
	TargetPrice float64 `json:"targetPrice"`
}

type DealGap struct {
	Dollars float64 `json:"dollars"`
	Percent float64 `json:"percent"`
}

type PriceLadderRung struct {
	Label          string  `json:"label"`
	Price          float64 `json:"price"`
	EstimatedScore int     `json:"estimatedScore"`
	DealGap
}

type DealGapInput struct {
	DealGapAnchors
	BuyPrice  float64 `json:"buyPrice"`
	BaseScore int     `json:"baseScore"`
	Steps     int     `json:"steps"`
}

type DealGapResult struct {
	BuyPrice       float64           `json:"buyPrice"`
	EstimatedScore int               `json:"estimatedScore"`
	DealGap        DealGap           `json:"dealGap"`
	Ladder         []PriceLadderRung `json:"ladder"`
}
