package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"deal-engine/domain"
)

const (
	comparisonKeyPrefix = "deal-engine:comparison:"
	maxUpdateAttempts   = 5
)

// RedisComparisonRepository stores each comparison set as a JSON string.
// Updates use WATCH/MULTI so concurrent writers never lose an entry.
type RedisComparisonRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisComparisonRepository creates the repository. A zero ttl keeps sets
// until they are deleted.
func NewRedisComparisonRepository(client *redis.Client, ttl time.Duration) *RedisComparisonRepository {
	return &RedisComparisonRepository{client: client, ttl: ttl}
}

func (r *RedisComparisonRepository) Get(ctx context.Context, id string) (domain.ComparisonSet, error) {
	return r.read(ctx, r.client, id)
}

func (r *RedisComparisonRepository) Update(ctx context.Context, id string, fn UpdateFunc) (domain.ComparisonSet, error) {
	key := comparisonKeyPrefix + id
	var result domain.ComparisonSet

	txf := func(tx *redis.Tx) error {
		current, err := r.read(ctx, tx, id)
		if err != nil {
			return err
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		next.ID = id

		payload, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("encode comparison set: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, r.ttl)
			return nil
		})
		if err == nil {
			result = next
		}
		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return domain.ComparisonSet{}, err
		}
	}
	return domain.ComparisonSet{}, fmt.Errorf("update comparison set %q: too much contention", id)
}

func (r *RedisComparisonRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, comparisonKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete comparison set %q: %w", id, err)
	}
	return nil
}

func (r *RedisComparisonRepository) read(ctx context.Context, c redis.Cmdable, id string) (domain.ComparisonSet, error) {
	val, err := c.Get(ctx, comparisonKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return domain.ComparisonSet{ID: id, Entries: []domain.PropertyComparison{}}, nil
	}
	if err != nil {
		return domain.ComparisonSet{}, fmt.Errorf("read comparison set %q: %w", id, err)
	}

	var set domain.ComparisonSet
	if err := json.Unmarshal([]byte(val), &set); err != nil {
		return domain.ComparisonSet{}, fmt.Errorf("decode comparison set %q: %w", id, err)
	}
	if set.Entries == nil {
		set.Entries = []domain.PropertyComparison{}
	}
	return set, nil
}
