package service

import (
	"context"
	"strings"

	"deal-engine/domain"
	"deal-engine/logger"
	"deal-engine/metrics"
	"deal-engine/repository"
)

// ComparisonService manages saved comparison sets on top of a repository.
type ComparisonService struct {
	repo   repository.ComparisonRepository
	engine *Engine
	log    logger.Logger
}

func NewComparisonService(repo repository.ComparisonRepository, engine *Engine, log logger.Logger) *ComparisonService {
	return &ComparisonService{repo: repo, engine: engine, log: log}
}

func (s *ComparisonService) Get(ctx context.Context, setID string) (domain.ComparisonSet, error) {
	if err := validateSetID(setID); err != nil {
		return domain.ComparisonSet{}, err
	}
	set, err := s.repo.Get(ctx, setID)
	s.record("get", err)
	return set, err
}

// Add stores entry in the set. The returned entry carries its final ID.
func (s *ComparisonService) Add(ctx context.Context, setID string, entry domain.PropertyComparison) (domain.PropertyComparison, error) {
	if err := validateSetID(setID); err != nil {
		return domain.PropertyComparison{}, err
	}

	var added domain.PropertyComparison
	_, err := s.repo.Update(ctx, setID, func(set domain.ComparisonSet) (domain.ComparisonSet, error) {
		next, stored, err := AddComparison(set, entry)
		added = stored
		return next, err
	})
	s.record("add", err)
	if err != nil {
		return domain.PropertyComparison{}, err
	}

	s.log.Info("property added to comparison", map[string]interface{}{
		"set_id":      setID,
		"property_id": added.ID,
	})
	return added, nil
}

// AddFromLTR runs a long-term rental worksheet and stores its headline
// metrics as a comparison entry.
func (s *ComparisonService) AddFromLTR(ctx context.Context, setID string, facts domain.PropertyFacts, in domain.LTRInput) (domain.PropertyComparison, error) {
	result, err := s.engine.CalculateLTR(in)
	if err != nil {
		s.record("add", err)
		return domain.PropertyComparison{}, err
	}
	return s.Add(ctx, setID, NewComparisonFromLTR(facts, in, result))
}

func (s *ComparisonService) Remove(ctx context.Context, setID, propertyID string) error {
	if err := validateSetID(setID); err != nil {
		return err
	}
	_, err := s.repo.Update(ctx, setID, func(set domain.ComparisonSet) (domain.ComparisonSet, error) {
		return RemoveComparison(set, propertyID)
	})
	s.record("remove", err)
	return err
}

func (s *ComparisonService) Clear(ctx context.Context, setID string) error {
	if err := validateSetID(setID); err != nil {
		return err
	}
	err := s.repo.Delete(ctx, setID)
	s.record("clear", err)
	return err
}

// Rank loads the set and ranks it by metric.
func (s *ComparisonService) Rank(ctx context.Context, setID string, metric domain.ComparisonMetric) (domain.ComparisonRanking, error) {
	set, err := s.Get(ctx, setID)
	if err != nil {
		return domain.ComparisonRanking{}, err
	}
	ranking, err := RankComparisons(set.Entries, metric)
	s.record("rank", err)
	return ranking, err
}

func (s *ComparisonService) record(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = strings.ToLower(string(domain.CodeOf(err)))
		if domain.CodeOf(err) == domain.ErrCodeInternal {
			s.log.WithError(err).Error("comparison operation failed", map[string]interface{}{
				"operation": operation,
			})
		}
	}
	metrics.ComparisonOperations.WithLabelValues(operation, outcome).Inc()
}

func validateSetID(id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.NewValidationError("setId", "must not be empty")
	}
	return nil
}
