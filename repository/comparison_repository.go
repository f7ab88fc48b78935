package repository

import (
	"context"

	"deal-engine/domain"
)

// UpdateFunc derives the new state of a comparison set from its current one.
// Returning an error aborts the update and leaves the stored set untouched.
type UpdateFunc func(domain.ComparisonSet) (domain.ComparisonSet, error)

// ComparisonRepository persists comparison sets. A set that was never
// written reads back as an empty set with the requested ID.
type ComparisonRepository interface {
	Get(ctx context.Context, id string) (domain.ComparisonSet, error)
	Update(ctx context.Context, id string, fn UpdateFunc) (domain.ComparisonSet, error)
	Delete(ctx context.Context, id string) error
}
