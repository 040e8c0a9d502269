package maps

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"logistica/internal/cache"
	"logistica/internal/types"
)

type fakeOracle struct {
	calls int
	dist  types.Distancia
	err   error
}

func (f *fakeOracle) GetDistance(ctx context.Context, origen, destino types.Coordenada) (types.Distancia, error) {
	f.calls++
	if f.err != nil {
		return types.Distancia{}, f.err
	}
	return f.dist, nil
}

func newCacheForTest(t *testing.T) cache.Cache {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return cache.NewRedisCache(client)
}

func TestCachedOracleHitSkipsProvider(t *testing.T) {
	inner := &fakeOracle{dist: types.Distancia{Metros: 710000, Segundos: 30600}}
	oracle := NewCachedOracle(inner, newCacheForTest(t), time.Minute, zap.NewNop())

	origen := types.Coordenada{Latitud: -31.4, Longitud: -64.2}
	destino := types.Coordenada{Latitud: -34.6, Longitud: -58.4}

	d1, err := oracle.GetDistance(context.Background(), origen, destino)
	require.NoError(t, err)
	d2, err := oracle.GetDistance(context.Background(), origen, destino)
	require.NoError(t, err)

	assert.Equal(t, d1, d2)
	assert.Equal(t, 1, inner.calls, "second lookup must come from cache")
	assert.InDelta(t, 710.0, d2.Km(), 0.001)
}

func TestCachedOracleDistinctPairsMissIndependently(t *testing.T) {
	inner := &fakeOracle{dist: types.Distancia{Metros: 1000, Segundos: 60}}
	oracle := NewCachedOracle(inner, newCacheForTest(t), time.Minute, zap.NewNop())

	a := types.Coordenada{Latitud: 1, Longitud: 1}
	b := types.Coordenada{Latitud: 2, Longitud: 2}

	_, err := oracle.GetDistance(context.Background(), a, b)
	require.NoError(t, err)
	_, err = oracle.GetDistance(context.Background(), b, a)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls, "reverse direction is a different key")
}

func TestCachedOracleProviderFailureNotCached(t *testing.T) {
	inner := &fakeOracle{err: errors.New("quota exceeded")}
	oracle := NewCachedOracle(inner, newCacheForTest(t), time.Minute, zap.NewNop())

	origen := types.Coordenada{Latitud: -31.4, Longitud: -64.2}
	destino := types.Coordenada{Latitud: -34.6, Longitud: -58.4}

	_, err := oracle.GetDistance(context.Background(), origen, destino)
	require.Error(t, err)

	inner.err = nil
	inner.dist = types.Distancia{Metros: 500, Segundos: 30}
	d, err := oracle.GetDistance(context.Background(), origen, destino)
	require.NoError(t, err)
	assert.Equal(t, 500, d.Metros)
	assert.Equal(t, 2, inner.calls)
}
