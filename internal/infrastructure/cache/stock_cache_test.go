package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-inventario/internal/application/dto"
	"github.com/jhoicas/taller-inventario/internal/infrastructure/cache"
)

// setupRedis usa TEST_REDIS_ADDR (o localhost:6379); sin servidor el test se salta.
func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	client, err := cache.NewClient(ctx, addr, "", 15)
	if err != nil {
		t.Skipf("redis no disponible: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestStockCache_RoundTripAndInvalidate(t *testing.T) {
	client := setupRedis(t)
	c := cache.New(client, "test:"+t.Name()+":", time.Minute)
	ctx := context.Background()
	require.NoError(t, c.InvalidateStock(ctx))

	_, hit, err := c.GetStock(ctx)
	require.NoError(t, err)
	assert.False(t, hit)

	rows := []dto.StockRowResponse{{ID: 1, Name: "Tablero", Stock: decimal.NewFromInt(7), MinimumStock: decimal.NewFromInt(3)}}
	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	stored, err := c.SetStock(ctx, gen, rows)
	require.NoError(t, err)
	require.True(t, stored)

	got, hit, err := c.GetStock(ctx)
	require.NoError(t, err)
	require.True(t, hit)
	require.Len(t, got, 1)
	assert.True(t, decimal.NewFromInt(7).Equal(got[0].Stock))

	require.NoError(t, c.InvalidateStock(ctx))
	_, hit, err = c.GetStock(ctx)
	require.NoError(t, err)
	assert.False(t, hit)

	stats := c.GetStats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(2), stats.Misses)
	assert.Equal(t, uint64(1), stats.Sets)
}

func TestStockCache_SetStockDescartaGeneracionVencida(t *testing.T) {
	client := setupRedis(t)
	c := cache.New(client, "test:"+t.Name()+":", time.Minute)
	ctx := context.Background()
	t.Cleanup(func() { client.Del(ctx, "test:"+t.Name()+":stock:generacion", "test:"+t.Name()+":stock:listado") })

	before, err := c.Generation(ctx)
	require.NoError(t, err)

	// Un commit invalida entre la lectura de la BD y la escritura en cache.
	require.NoError(t, c.InvalidateStock(ctx))
	after, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, before+1, after)

	old := []dto.StockRowResponse{{ID: 1, Name: "Tablero", Stock: decimal.NewFromInt(10)}}
	stored, err := c.SetStock(ctx, before, old)
	require.NoError(t, err)
	assert.False(t, stored)

	_, hit, err := c.GetStock(ctx)
	require.NoError(t, err)
	assert.False(t, hit, "el listado viejo no debe quedar en cache")
	assert.Equal(t, uint64(1), c.GetStats().Stale)

	fresh := []dto.StockRowResponse{{ID: 1, Name: "Tablero", Stock: decimal.NewFromInt(7)}}
	stored, err = c.SetStock(ctx, after, fresh)
	require.NoError(t, err)
	assert.True(t, stored)
}
