package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"deal-engine/domain"
)

func TestScore_WeightedMean(t *testing.T) {
	s := score(domain.StrategyLTR,
		metricFactor(domain.MetricCashOnCash, 12, 0.5), // 100 points
		metricFactor(domain.MetricCapRate, 4, 0.5),     // 0 points
	)
	assert.Equal(t, 50, s.DealScore)
	assert.Len(t, s.Grades, 2)
}

func TestScore_SkippedFactorsAreDropped(t *testing.T) {
	s := score(domain.StrategyLTR,
		metricFactor(domain.MetricCashOnCash, 12, 0.35),
		metricFactor(domain.MetricDSCR, 0, 0.25).skipWhen(true),
	)
	assert.Equal(t, 100, s.DealScore)
	assert.Len(t, s.Grades, 1)
}

func TestScore_Flags(t *testing.T) {
	pass := score(domain.StrategyFlip, flagFactor(true, 1))
	fail := score(domain.StrategyFlip, flagFactor(false, 1))
	assert.Equal(t, 100, pass.DealScore)
	assert.Equal(t, 0, fail.DealScore)
	assert.Empty(t, pass.Grades)
}

func TestScore_NoFactors(t *testing.T) {
	assert.Equal(t, 0, score(domain.StrategyLTR).DealScore)
}
