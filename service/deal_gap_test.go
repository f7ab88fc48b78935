package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deal-engine/domain"
)

func TestEstimateScoreAtPrice_Segments(t *testing.T) {
	const target, income, base = 250000.0, 300000.0, 70

	tests := []struct {
		name string
		buy  float64
		want int
	}{
		{"at target", target, 70},
		{"well below target earns bonus", 200000, 72},
		{"free property caps the bonus", 0, 80},
		{"halfway to income value", 275000, 49},
		{"at income value", income, 28},
		{"above income value", 400000, 28},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EstimateScoreAtPrice(tt.buy, target, income, base)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEstimateScoreAtPrice_MonotonicAndBounded(t *testing.T) {
	for _, base := range []int{0, 1, 37, 50, 95, 100} {
		prev := 101
		for buy := 0.0; buy <= 600000; buy += 1000 {
			got, err := EstimateScoreAtPrice(buy, 250000, 320000, base)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
			assert.LessOrEqual(t, got, prev, "base %d buy %v", base, buy)
			prev = got
		}
	}
}

func TestEstimateScoreAtPrice_Validation(t *testing.T) {
	_, err := EstimateScoreAtPrice(-1, 250000, 300000, 50)
	assert.Equal(t, domain.ErrCodeValidation, domain.CodeOf(err))

	_, err = EstimateScoreAtPrice(100, 250000, 300000, 101)
	assert.Equal(t, domain.ErrCodeValidation, domain.CodeOf(err))
}

func TestCalculateDealGap(t *testing.T) {
	gap := CalculateDealGap(400000, 340000)
	assert.Equal(t, 60000.0, gap.Dollars)
	assert.InDelta(t, 15, gap.Percent, 1e-9)

	above := CalculateDealGap(400000, 420000)
	assert.Equal(t, -20000.0, above.Dollars)
}

func TestPriceLadder(t *testing.T) {
	anchors := domain.DealGapAnchors{ListPrice: 400000, IncomeValue: 340000, TargetPrice: 300000}

	rungs, err := PriceLadder(anchors, 60, 3)
	require.NoError(t, err)
	require.Len(t, rungs, 6)

	assert.Equal(t, "List Price", rungs[0].Label)
	assert.Equal(t, "Target Price", rungs[len(rungs)-1].Label)
	assert.Equal(t, 0.0, rungs[0].DealGap.Dollars)
	assert.Equal(t, 60, rungs[len(rungs)-1].EstimatedScore)

	for i := 1; i < len(rungs); i++ {
		assert.GreaterOrEqual(t, rungs[i-1].Price, rungs[i].Price)
		assert.LessOrEqual(t, rungs[i-1].EstimatedScore, rungs[i].EstimatedScore)
	}
}

func TestCalculateDealGapLadder_DefaultSteps(t *testing.T) {
	result, err := CalculateDealGapLadder(domain.DealGapInput{
		DealGapAnchors: domain.DealGapAnchors{ListPrice: 400000, IncomeValue: 340000, TargetPrice: 300000},
		BuyPrice:       320000,
		BaseScore:      60,
	})
	require.NoError(t, err)

	assert.Len(t, result.Ladder, 3+DefaultLadderSteps)
	assert.Equal(t, 80000.0, result.DealGap.Dollars)
	assert.Equal(t, 42, result.EstimatedScore)
}

func TestSolveIncomeValue(t *testing.T) {
	engine := newTestEngine()
	in := baseLTRInput()

	price, err := engine.SolveIncomeValue(in)
	require.NoError(t, err)
	require.Greater(t, price, 0.0)

	at := in
	at.PurchasePrice = price
	r, err := engine.CalculateLTR(at)
	require.NoError(t, err)
	assert.InDelta(t, 0, r.MonthlyCashFlow, 1)
	assert.Greater(t, price, in.PurchasePrice, "the rental still cash flows at list")
}

func TestSolveTargetPrice(t *testing.T) {
	engine := newTestEngine()
	in := baseLTRInput()

	price, err := engine.SolveTargetPrice(in, 8)
	require.NoError(t, err)

	at := in
	at.PurchasePrice = price
	r, err := engine.CalculateLTR(at)
	require.NoError(t, err)
	assert.InDelta(t, 8, r.CashOnCash, 0.05)

	income, err := engine.SolveIncomeValue(in)
	require.NoError(t, err)
	assert.Less(t, price, income)
}
