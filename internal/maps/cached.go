// README: Read-through cache in front of the distance provider.
package maps

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"logistica/internal/cache"
	"logistica/internal/operaciones/ruta"
	"logistica/internal/types"
)

// CachedOracle caches distance lookups. Coordinates are stable per route so
// repeated planning over the same pair should not re-bill the provider.
// Cache failures are logged and ignored; the provider answer always wins.
type CachedOracle struct {
	inner ruta.DistanceOracle
	cache cache.Cache
	ttl   time.Duration
	log   *zap.Logger
}

func NewCachedOracle(inner ruta.DistanceOracle, c cache.Cache, ttl time.Duration, log *zap.Logger) *CachedOracle {
	return &CachedOracle{inner: inner, cache: c, ttl: ttl, log: log}
}

func (o *CachedOracle) GetDistance(ctx context.Context, origen, destino types.Coordenada) (types.Distancia, error) {
	key := "dist:" + origen.LatLng() + "|" + destino.LatLng()

	if raw, err := o.cache.Get(ctx, key); err == nil {
		var d types.Distancia
		if err := json.Unmarshal(raw, &d); err == nil {
			return d, nil
		}
		o.log.Warn("corrupt cache entry dropped", zap.String("key", key))
	} else if !errors.Is(err, cache.ErrMiss) {
		o.log.Warn("distance cache read failed", zap.String("key", key), zap.Error(err))
	}

	d, err := o.inner.GetDistance(ctx, origen, destino)
	if err != nil {
		return types.Distancia{}, err
	}

	if raw, err := json.Marshal(d); err == nil {
		if err := o.cache.Set(ctx, key, raw, o.ttl); err != nil {
			o.log.Warn("distance cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return d, nil
}
