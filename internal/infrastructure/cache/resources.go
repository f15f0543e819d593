package cache

import (
	"context"

	"go.uber.org/zap"
)

const resourcePrefix = "resources:"

// Resource view keys. Every view is derived from team assignments.
const (
	KeyConflicts   = resourcePrefix + "conflicts"
	KeyAllocation  = resourcePrefix + "allocation"
	KeyUnallocated = resourcePrefix + "unallocated"
)

// InvalidateResources drops every cached resource view.
func (r *Redis) InvalidateResources(ctx context.Context) error {
	return r.DeleteByPattern(ctx, resourcePrefix+"*")
}

// Remember returns the cached value at key, or computes, stores and returns it.
// Cache failures fall through to compute.
func Remember[T any](ctx context.Context, r *Redis, key string, compute func(context.Context) (T, error)) (T, error) {
	var cached T
	if ok, err := r.GetJSON(ctx, key, &cached); err == nil && ok {
		return cached, nil
	}

	v, err := compute(ctx)
	if err != nil {
		return v, err
	}
	if err := r.SetJSON(ctx, key, v, 0); err != nil {
		r.logger.Debug("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return v, nil
}
