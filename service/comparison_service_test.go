package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deal-engine/domain"
	"deal-engine/logger"
	"deal-engine/repository"
)

func newComparisonService(t *testing.T) *ComparisonService {
	return NewComparisonService(repository.NewComparisonRepositoryMemory(), newTestEngine(), logger.NewTestLogger(t))
}

func TestComparisonService_Lifecycle(t *testing.T) {
	svc := newComparisonService(t)
	ctx := context.Background()

	a, err := svc.Add(ctx, "mine", entry("", 500000))
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)

	_, err = svc.Add(ctx, "mine", entry("b", 600000))
	require.NoError(t, err)

	ranking, err := svc.Rank(ctx, "mine", "")
	require.NoError(t, err)
	assert.Equal(t, "b", ranking.WinnerID)

	require.NoError(t, svc.Remove(ctx, "mine", "b"))
	set, err := svc.Get(ctx, "mine")
	require.NoError(t, err)
	require.Len(t, set.Entries, 1)
	assert.Equal(t, a.ID, set.Entries[0].ID)

	require.NoError(t, svc.Clear(ctx, "mine"))
	set, err = svc.Get(ctx, "mine")
	require.NoError(t, err)
	assert.Empty(t, set.Entries)
}

func TestComparisonService_CapacityLeavesSetIntact(t *testing.T) {
	svc := newComparisonService(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c", "d"} {
		_, err := svc.Add(ctx, "s", entry(id, 1))
		require.NoError(t, err)
	}
	_, err := svc.Add(ctx, "s", entry("e", 1))
	assert.Equal(t, domain.ErrCodeCapacity, domain.CodeOf(err))

	set, err := svc.Get(ctx, "s")
	require.NoError(t, err)
	assert.Len(t, set.Entries, domain.MaxComparisons)
}

func TestComparisonService_AddFromLTR(t *testing.T) {
	svc := newComparisonService(t)
	ctx := context.Background()

	added, err := svc.AddFromLTR(ctx, "s", domain.PropertyFacts{Address: "9 Oak"}, baseLTRInput())
	require.NoError(t, err)
	assert.Equal(t, "9 Oak", added.Address)
	assert.Greater(t, added.Year10TotalWealth, 0.0)

	bad := baseLTRInput()
	bad.PurchasePrice = 0
	_, err = svc.AddFromLTR(ctx, "s", domain.PropertyFacts{}, bad)
	assert.Equal(t, domain.ErrCodeValidation, domain.CodeOf(err))
}

func TestComparisonService_Errors(t *testing.T) {
	svc := newComparisonService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, " ")
	assert.Equal(t, domain.ErrCodeValidation, domain.CodeOf(err))

	err = svc.Remove(ctx, "s", "ghost")
	assert.Equal(t, domain.ErrCodeNotFound, domain.CodeOf(err))
}
