package service

const (
	MaxPropertyPrice = 1_000_000_000.0 // 1 billion
	MaxInterestRate  = 1.0             // 100% annual, as a fraction
	MaxTermYears     = 50
	MinTermYears     = 1
	MaxHoldingMonths = 120

	// 70% rule for purchase + rehab against ARV.
	MAORulePercent = 70.0
	// Floor for the suggested flip offer, as a fraction of list price.
	MinOfferListPct = 0.50

	// Deal gap model.
	BelowTargetBonusMax   = 10.0
	AboveIncomeScoreRatio = 0.4
	InterpolationPenalty  = 0.6

	ProjectionYears = 10

	// Breakeven occupancy is reported up to this percentage.
	MaxBreakevenOccupancy = 150.0

	DefaultLadderSteps = 5
	MaxLadderSteps     = 50

	// Bisection bounds for price solvers.
	SolverIterations = 100
	SolverTolerance  = 0.01 // one cent
)
