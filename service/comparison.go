package service

import (
	"sort"

	"github.com/google/uuid"

	"deal-engine/domain"
)

// AddComparison appends entry to set and returns the new set with the stored
// entry. An empty entry ID is replaced with a fresh UUID. A full set is
// returned unchanged together with a *domain.CapacityError.
func AddComparison(set domain.ComparisonSet, entry domain.PropertyComparison) (domain.ComparisonSet, domain.PropertyComparison, error) {
	if len(set.Entries) >= domain.MaxComparisons {
		return set, domain.PropertyComparison{}, &domain.CapacityError{Limit: domain.MaxComparisons}
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	for _, existing := range set.Entries {
		if existing.ID == entry.ID {
			return set, domain.PropertyComparison{}, domain.NewValidationError("id", "property %q is already in the comparison", entry.ID)
		}
	}

	entries := make([]domain.PropertyComparison, len(set.Entries), len(set.Entries)+1)
	copy(entries, set.Entries)
	set.Entries = append(entries, entry)
	return set, entry, nil
}

// RemoveComparison drops the entry with id, keeping the others in order.
func RemoveComparison(set domain.ComparisonSet, id string) (domain.ComparisonSet, error) {
	entries := make([]domain.PropertyComparison, 0, len(set.Entries))
	found := false
	for _, e := range set.Entries {
		if e.ID == id {
			found = true
			continue
		}
		entries = append(entries, e)
	}
	if !found {
		return set, &domain.NotFoundError{Resource: "property", ID: id}
	}
	set.Entries = entries
	return set, nil
}

// ClearComparisons empties the set, keeping its ID.
func ClearComparisons(set domain.ComparisonSet) domain.ComparisonSet {
	return domain.ComparisonSet{ID: set.ID, Entries: []domain.PropertyComparison{}}
}

// RankComparisons orders entries by metric, best first, using a stable sort
// so ties keep insertion order. An empty metric ranks by 10-year total wealth.
func RankComparisons(entries []domain.PropertyComparison, metric domain.ComparisonMetric) (domain.ComparisonRanking, error) {
	if metric == "" {
		metric = domain.ColumnYear10TotalWealth
	}
	if _, ok := metric.Value(domain.PropertyComparison{}); !ok {
		return domain.ComparisonRanking{}, domain.NewValidationError("by", "unknown comparison metric %q", metric)
	}

	sorted := make([]domain.PropertyComparison, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, _ := metric.Value(sorted[i])
		b, _ := metric.Value(sorted[j])
		if metric.LowerIsBetter() {
			return a < b
		}
		return a > b
	})

	ranking := domain.ComparisonRanking{
		Metric:     metric,
		Ranked:     make([]domain.RankedComparison, 0, len(sorted)),
		BestValues: BestValues(entries),
	}
	for i, e := range sorted {
		ranking.Ranked = append(ranking.Ranked, domain.RankedComparison{Rank: i + 1, PropertyComparison: e})
	}
	if len(sorted) > 0 {
		ranking.WinnerID = sorted[0].ID
	}
	return ranking, nil
}

// BestValues finds, for each displayed column independently, the IDs of the
// entries holding the best value. Ties are all flagged, in insertion order.
func BestValues(entries []domain.PropertyComparison) map[domain.ComparisonMetric][]string {
	best := make(map[domain.ComparisonMetric][]string, len(domain.ComparisonColumns))
	if len(entries) == 0 {
		return best
	}

	for _, col := range domain.ComparisonColumns {
		top, _ := col.Value(entries[0])
		for _, e := range entries[1:] {
			v, _ := col.Value(e)
			if (col.LowerIsBetter() && v < top) || (!col.LowerIsBetter() && v > top) {
				top = v
			}
		}
		for _, e := range entries {
			if v, _ := col.Value(e); v == top {
				best[col] = append(best[col], e.ID)
			}
		}
	}
	return best
}

// NewComparisonFromLTR builds a comparison entry from a live long-term
// rental calculation.
func NewComparisonFromLTR(facts domain.PropertyFacts, in domain.LTRInput, r domain.LTRResult) domain.PropertyComparison {
	return domain.PropertyComparison{
		ID:                facts.ID,
		Address:           facts.Address,
		PropertyType:      facts.PropertyType,
		Beds:              facts.Beds,
		Baths:             facts.Baths,
		Sqft:              facts.Sqft,
		PurchasePrice:     r.PurchasePrice,
		MonthlyRent:       in.MonthlyRent,
		MonthlyCashFlow:   r.MonthlyCashFlow,
		CashOnCash:        r.CashOnCash,
		CapRate:           r.CapRate,
		OnePercentRule:    r.OnePercentRule,
		DSCR:              r.DSCR,
		TotalCashRequired: r.TotalCashRequired,
		Year10CashFlow:    r.Year10CashFlow,
		Year10Equity:      r.Year10Equity,
		Year10TotalWealth: r.Year10TotalWealth,
	}
}
