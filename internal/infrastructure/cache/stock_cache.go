// Package cache implementa el cache-aside del listado de stock sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/taller-inventario/internal/application/dto"
	"github.com/jhoicas/taller-inventario/internal/application/usecase"
)

var _ usecase.StockCache = (*StockCache)(nil)

const (
	stockKey      = "stock:listado"
	generationKey = "stock:generacion"
)

// setIfGeneration guarda el listado solo si la generación no avanzó desde que se leyó.
var setIfGeneration = redis.NewScript(`
	local gen_key = KEYS[1]
	local data_key = KEYS[2]
	local expected = ARGV[1]
	local ttl_ms = tonumber(ARGV[3])

	local current = redis.call('GET', gen_key) or '0'
	if current ~= expected then
		return 0
	end
	if ttl_ms > 0 then
		redis.call('SET', data_key, ARGV[2], 'PX', ttl_ms)
	else
		redis.call('SET', data_key, ARGV[2])
	end
	return 1
`)

// Stats contadores del cache.
type Stats struct {
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Sets    uint64 `json:"sets"`
	Deletes uint64 `json:"deletes"`
	Stale   uint64 `json:"stale"`
	Errors  uint64 `json:"errors"`
}

// StockCache guarda el listado completo de stock bajo una sola clave con TTL.
type StockCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	stats  Stats
}

// New crea el cache. prefix separa claves entre entornos ("taller:").
func New(client *redis.Client, prefix string, ttl time.Duration) *StockCache {
	return &StockCache{client: client, prefix: prefix, ttl: ttl}
}

// NewClient abre un cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (c *StockCache) GetStock(ctx context.Context) ([]dto.StockRowResponse, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+stockKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			atomic.AddUint64(&c.stats.Misses, 1)
			return nil, false, nil
		}
		atomic.AddUint64(&c.stats.Errors, 1)
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	var rows []dto.StockRowResponse
	if err := json.Unmarshal(data, &rows); err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return nil, false, fmt.Errorf("cache unmarshal: %w", err)
	}
	atomic.AddUint64(&c.stats.Hits, 1)
	return rows, true, nil
}

// Generation versión actual del listado (0 si nunca se invalidó).
func (c *StockCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, c.prefix+generationKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		atomic.AddUint64(&c.stats.Errors, 1)
		return 0, fmt.Errorf("cache generation: %w", err)
	}
	return gen, nil
}

// SetStock guarda el listado si la generación sigue siendo gen. false = hubo una invalidación en el medio.
func (c *StockCache) SetStock(ctx context.Context, gen int64, rows []dto.StockRowResponse) (bool, error) {
	data, err := json.Marshal(rows)
	if err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return false, fmt.Errorf("cache marshal: %w", err)
	}
	keys := []string{c.prefix + generationKey, c.prefix + stockKey}
	stored, err := setIfGeneration.Run(ctx, c.client, keys, strconv.FormatInt(gen, 10), data, c.ttl.Milliseconds()).Int()
	if err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return false, fmt.Errorf("cache set: %w", err)
	}
	if stored == 0 {
		atomic.AddUint64(&c.stats.Stale, 1)
		return false, nil
	}
	atomic.AddUint64(&c.stats.Sets, 1)
	return true, nil
}

// InvalidateStock avanza la generación y borra el listado en una transacción MULTI.
func (c *StockCache) InvalidateStock(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.prefix+generationKey)
		pipe.Del(ctx, c.prefix+stockKey)
		return nil
	})
	if err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return fmt.Errorf("cache delete: %w", err)
	}
	atomic.AddUint64(&c.stats.Deletes, 1)
	return nil
}

// GetStats copia de los contadores.
func (c *StockCache) GetStats() Stats {
	return Stats{
		Hits:    atomic.LoadUint64(&c.stats.Hits),
		Misses:  atomic.LoadUint64(&c.stats.Misses),
		Sets:    atomic.LoadUint64(&c.stats.Sets),
		Deletes: atomic.LoadUint64(&c.stats.Deletes),
		Stale:   atomic.LoadUint64(&c.stats.Stale),
		Errors:  atomic.LoadUint64(&c.stats.Errors),
	}
}

// Ping verifica la conexión con Redis.
func (c *StockCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close cierra el cliente.
func (c *StockCache) Close() error {
	return c.client.Close()
}
