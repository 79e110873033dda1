// Package cache provides a Redis-backed cache for solved equations.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/example/solve-square/domain/equation"
)

// Cache stores solutions in Redis, keyed by the coefficients and the
// tolerance they were solved under.
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration

	hits   atomic.Uint64
	misses atomic.Uint64
	stores atomic.Uint64
	errors atomic.Uint64
}

// Stats is a point-in-time copy of the cache counters.
type Stats struct {
	Hits    uint64  `json:"hits"`
	Misses  uint64  `json:"misses"`
	Stores  uint64  `json:"stores"`
	Errors  uint64  `json:"errors"`
	HitRate float64 `json:"hit_rate"`
}

// Config holds cache configuration.
type Config struct {
	RedisAddr string
	Prefix    string
	TTL       time.Duration
}

// entry is the stored value. It repeats the equation so a read can check it
// got the answer to the question it asked.
type entry struct {
	Equation  equation.Equation `json:"equation"`
	Tolerance float64           `json:"tolerance"`
	Solution  equation.Solution `json:"solution"`
}

// New creates a cache over an existing Redis client.
func New(client *redis.Client, prefix string, ttl time.Duration) *Cache {
	return &Cache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Key identifies eq solved under tolerance. Floats are written in their
// shortest exact form so distinct coefficients never share a key.
func Key(eq equation.Equation, tolerance float64) string {
	parts := []string{
		formatFloat(tolerance),
		formatFloat(eq.A),
		formatFloat(eq.B),
		formatFloat(eq.C),
	}
	return "eq:" + strings.Join(parts, ":")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// GetSolution looks up eq. It reports false on a miss.
func (c *Cache) GetSolution(ctx context.Context, eq equation.Equation, tolerance float64) (equation.Solution, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+Key(eq, tolerance)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.misses.Add(1)
			return equation.Solution{}, false, nil
		}
		c.errors.Add(1)
		return equation.Solution{}, false, fmt.Errorf("cache get error: %w", err)
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		c.errors.Add(1)
		return equation.Solution{}, false, fmt.Errorf("cache decode error: %w", err)
	}
	if e.Equation != eq || e.Tolerance != tolerance {
		c.misses.Add(1)
		return equation.Solution{}, false, nil
	}

	c.hits.Add(1)
	return e.Solution, true, nil
}

// SetSolution stores the solution of eq with the configured TTL.
func (c *Cache) SetSolution(ctx context.Context, eq equation.Equation, tolerance float64, sol equation.Solution) error {
	data, err := json.Marshal(entry{Equation: eq, Tolerance: tolerance, Solution: sol})
	if err != nil {
		c.errors.Add(1)
		return fmt.Errorf("cache encode error: %w", err)
	}

	if err := c.client.Set(ctx, c.prefix+Key(eq, tolerance), data, c.ttl).Err(); err != nil {
		c.errors.Add(1)
		return fmt.Errorf("cache set error: %w", err)
	}

	c.stores.Add(1)
	return nil
}

// Stats returns the current counters.
func (c *Cache) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}

	return Stats{
		Hits:    hits,
		Misses:  misses,
		Stores:  c.stores.Load(),
		Errors:  c.errors.Load(),
		HitRate: hitRate,
	}
}

// Ping checks the Redis connection.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}
