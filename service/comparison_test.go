package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deal-engine/domain"
)

func entry(id string, wealth float64) domain.PropertyComparison {
	return domain.PropertyComparison{ID: id, Year10TotalWealth: wealth}
}

func TestAddComparison_Capacity(t *testing.T) {
	set := domain.ComparisonSet{ID: "s"}
	var err error
	for _, id := range []string{"a", "b", "c", "d"} {
		set, _, err = AddComparison(set, entry(id, 1))
		require.NoError(t, err)
	}

	full, _, err := AddComparison(set, entry("e", 1))
	var capErr *domain.CapacityError
	require.True(t, errors.As(err, &capErr))
	assert.Equal(t, domain.MaxComparisons, capErr.Limit)
	assert.Equal(t, set, full)
	assert.Len(t, full.Entries, 4)
}

func TestAddComparison_AssignsID(t *testing.T) {
	set, stored, err := AddComparison(domain.ComparisonSet{}, domain.PropertyComparison{Address: "12 Elm"})
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, stored.ID, set.Entries[0].ID)
}

func TestAddComparison_DoesNotMutateInput(t *testing.T) {
	original, _, err := AddComparison(domain.ComparisonSet{}, entry("a", 1))
	require.NoError(t, err)

	_, _, err = AddComparison(original, entry("b", 2))
	require.NoError(t, err)
	assert.Len(t, original.Entries, 1)

	_, _, err = AddComparison(original, entry("a", 3))
	assert.Equal(t, domain.ErrCodeValidation, domain.CodeOf(err), "duplicate id")
}

func TestRemoveAndClearComparisons(t *testing.T) {
	set := domain.ComparisonSet{ID: "s", Entries: []domain.PropertyComparison{entry("a", 1), entry("b", 2), entry("c", 3)}}

	next, err := RemoveComparison(set, "b")
	require.NoError(t, err)
	require.Len(t, next.Entries, 2)
	assert.Equal(t, "a", next.Entries[0].ID)
	assert.Equal(t, "c", next.Entries[1].ID)
	assert.Len(t, set.Entries, 3)

	_, err = RemoveComparison(set, "zzz")
	assert.Equal(t, domain.ErrCodeNotFound, domain.CodeOf(err))

	cleared := ClearComparisons(set)
	assert.Equal(t, "s", cleared.ID)
	assert.Empty(t, cleared.Entries)
}

func TestRankComparisons_StableTies(t *testing.T) {
	entries := []domain.PropertyComparison{entry("A", 500000), entry("B", 600000), entry("C", 600000)}

	ranking, err := RankComparisons(entries, domain.ColumnYear10TotalWealth)
	require.NoError(t, err)

	ids := make([]string, 0, len(ranking.Ranked))
	for _, r := range ranking.Ranked {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"B", "C", "A"}, ids)
	assert.Equal(t, "B", ranking.WinnerID)
	assert.Equal(t, 1, ranking.Ranked[0].Rank)
	assert.Equal(t, 3, ranking.Ranked[2].Rank)
	assert.Equal(t, []string{"B", "C"}, ranking.BestValues[domain.ColumnYear10TotalWealth])
	assert.Equal(t, "A", entries[0].ID, "input order untouched")
}

func TestRankComparisons_LowerIsBetter(t *testing.T) {
	entries := []domain.PropertyComparison{
		{ID: "a", PurchasePrice: 300000},
		{ID: "b", PurchasePrice: 250000},
		{ID: "c", PurchasePrice: 410000},
	}

	ranking, err := RankComparisons(entries, domain.ColumnPurchasePrice)
	require.NoError(t, err)
	assert.Equal(t, "b", ranking.WinnerID)
	assert.Equal(t, "c", ranking.Ranked[2].ID)
	assert.Equal(t, []string{"b"}, ranking.BestValues[domain.ColumnPurchasePrice])
}

func TestRankComparisons_Defaults(t *testing.T) {
	ranking, err := RankComparisons(nil, "")
	require.NoError(t, err)
	assert.Equal(t, domain.ColumnYear10TotalWealth, ranking.Metric)
	assert.Empty(t, ranking.WinnerID)

	_, err = RankComparisons(nil, "bogus")
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "by", verr.Field)
}

func TestNewComparisonFromLTR(t *testing.T) {
	in := baseLTRInput()
	result, err := newTestEngine().CalculateLTR(in)
	require.NoError(t, err)

	c := NewComparisonFromLTR(domain.PropertyFacts{ID: "p1", Address: "1 Main", Beds: 3, Baths: 2.5}, in, result)
	assert.Equal(t, "p1", c.ID)
	assert.Equal(t, 2.5, c.Baths)
	assert.Equal(t, 2200.0, c.MonthlyRent)
	assert.Equal(t, result.CashOnCash, c.CashOnCash)
	assert.Equal(t, result.Year10TotalWealth, c.Year10TotalWealth)
}
