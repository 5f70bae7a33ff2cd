package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"
)

var treeBuildGroup singleflight.Group

// cached serves dest from the versioned cache, loading and storing on a
// miss. Only cache transport failures degrade to a direct load; when
// the loader itself failed, retrying it against the same broken store
// would just double the damage, so its error surfaces as-is.
func (h *Handler) cached(ctx context.Context, keyParts []string, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	key, err := h.cache.BuildKey(ctx, keyParts...)
	if err != nil {
		h.logger.Warn("cache key build failed, loading fresh", slog.Any("error", err))
		return loadInto(ctx, dest, loader)
	}
	var loadErr error
	tracked := func(ctx context.Context) (interface{}, error) {
		value, err := loader(ctx)
		loadErr = err
		return value, err
	}
	if err := h.cache.FetchJSON(ctx, key, dest, tracked); err != nil {
		if loadErr != nil {
			return loadErr
		}
		h.logger.Warn("cache fetch failed, loading fresh", slog.String("key", key), slog.Any("error", err))
		return loadInto(ctx, dest, loader)
	}
	return nil
}

// cachedSingleflight collapses concurrent cache misses for one key into
// a single load. The category tree is rebuilt from every category row,
// so a cold cache under fan-out traffic would otherwise hammer the
// store with identical queries.
func (h *Handler) cachedSingleflight(ctx context.Context, keyParts []string, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	return h.cached(ctx, keyParts, dest, func(ctx context.Context) (interface{}, error) {
		resultChan := treeBuildGroup.DoChan(strings.Join(keyParts, ":"), func() (interface{}, error) {
			return loader(context.WithoutCancel(ctx))
		})
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res := <-resultChan:
			return res.Val, res.Err
		}
	})
}

func loadInto(ctx context.Context, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}
