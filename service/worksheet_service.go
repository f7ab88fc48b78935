package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"

	"deal-engine/domain"
	"deal-engine/logger"
	"deal-engine/metrics"
	"deal-engine/repository"
)

// WorksheetService runs strategy calculations through a result cache and
// records metrics for every request.
type WorksheetService struct {
	engine  *Engine
	cache   repository.CacheRepository
	log     logger.Logger
	keySeed string
}

// NewWorksheetService creates a WorksheetService. Cache keys include the
// engine's assumptions so instances configured differently never share
// results.
func NewWorksheetService(engine *Engine, cache repository.CacheRepository, log logger.Logger) *WorksheetService {
	seed, _ := json.Marshal(engine.Assumptions())
	return &WorksheetService{
		engine:  engine,
		cache:   cache,
		log:     log,
		keySeed: fmt.Sprintf("%016x", xxhash.Sum64(seed)),
	}
}

// Engine returns the underlying calculator.
func (s *WorksheetService) Engine() *Engine {
	return s.engine
}

// Calculate decodes payload as the input of strategy and runs it.
func (s *WorksheetService) Calculate(ctx context.Context, strategy domain.Strategy, payload []byte) (any, error) {
	switch strategy {
	case domain.StrategyLTR:
		return decodeAndRun(ctx, payload, s.CalculateLTR)
	case domain.StrategySTR:
		return decodeAndRun(ctx, payload, s.CalculateSTR)
	case domain.StrategyBRRRR:
		return decodeAndRun(ctx, payload, s.CalculateBRRRR)
	case domain.StrategyFlip:
		return decodeAndRun(ctx, payload, s.CalculateFlip)
	case domain.StrategyHouseHack:
		return decodeAndRun(ctx, payload, s.CalculateHouseHack)
	case domain.StrategyWholesale:
		return decodeAndRun(ctx, payload, s.CalculateWholesale)
	default:
		return nil, domain.NewValidationError("strategy", "unknown strategy %q", strategy)
	}
}

func decodeAndRun[I, R any](ctx context.Context, payload []byte, run func(context.Context, I) (R, error)) (any, error) {
	var in I
	if err := json.Unmarshal(payload, &in); err != nil {
		return nil, domain.NewValidationError("body", "malformed input: %v", err)
	}
	return run(ctx, in)
}

func (s *WorksheetService) CalculateLTR(ctx context.Context, in domain.LTRInput) (domain.LTRResult, error) {
	return runCached(ctx, s, domain.StrategyLTR, in, s.engine.CalculateLTR)
}

func (s *WorksheetService) CalculateSTR(ctx context.Context, in domain.STRInput) (domain.STRResult, error) {
	return runCached(ctx, s, domain.StrategySTR, in, s.engine.CalculateSTR)
}

func (s *WorksheetService) CalculateBRRRR(ctx context.Context, in domain.BRRRRInput) (domain.BRRRRResult, error) {
	return runCached(ctx, s, domain.StrategyBRRRR, in, s.engine.CalculateBRRRR)
}

func (s *WorksheetService) CalculateFlip(ctx context.Context, in domain.FlipInput) (domain.FlipResult, error) {
	return runCached(ctx, s, domain.StrategyFlip, in, s.engine.CalculateFlip)
}

func (s *WorksheetService) CalculateHouseHack(ctx context.Context, in domain.HouseHackInput) (domain.HouseHackResult, error) {
	return runCached(ctx, s, domain.StrategyHouseHack, in, s.engine.CalculateHouseHack)
}

func (s *WorksheetService) CalculateWholesale(ctx context.Context, in domain.WholesaleInput) (domain.WholesaleResult, error) {
	return runCached(ctx, s, domain.StrategyWholesale, in, s.engine.CalculateWholesale)
}

func runCached[I, R any](ctx context.Context, s *WorksheetService, strategy domain.Strategy, in I, calc func(I) (R, error)) (R, error) {
	label := string(strategy)
	key, keyErr := s.cacheKey(strategy, in)

	if keyErr == nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			var result R
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				metrics.CacheHits.WithLabelValues(label).Inc()
				s.log.Debug("worksheet served from cache", map[string]interface{}{
					"strategy": label,
					"key":      key,
				})
				return result, nil
			}
		}
	}

	start := time.Now()
	result, err := calc(in)
	metrics.CalculationDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CalculationErrors.WithLabelValues(label, string(domain.CodeOf(err))).Inc()
		s.log.Debug("worksheet rejected", map[string]interface{}{
			"strategy": label,
			"error":    err.Error(),
		})
		return result, err
	}
	metrics.CalculationsTotal.WithLabelValues(label).Inc()

	// Caching is best effort; a failed write never fails the calculation.
	if keyErr == nil {
		if encoded, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(ctx, key, string(encoded)); err != nil {
				s.log.WithError(err).Warn("failed to cache worksheet", map[string]interface{}{
					"strategy": label,
				})
			}
		}
	}
	return result, nil
}

func (s *WorksheetService) cacheKey(strategy domain.Strategy, in any) (string, error) {
	encoded, err := json.Marshal(in)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s:%016x", strategy, s.keySeed, xxhash.Sum64(encoded)), nil
}
