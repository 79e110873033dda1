package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/redis/go-redis/v9"
)

// PluginModule exposes the Redis cache as a mono plugin. Plugins start
// before regular modules and stop after them.
type PluginModule struct {
	container types.ServiceContainer
	cache     *Cache
	cfg       Config
}

// Compile-time interface checks.
var (
	_ mono.PluginModule          = (*PluginModule)(nil)
	_ mono.HealthCheckableModule = (*PluginModule)(nil)
)

// NewPluginModule creates a cache plugin for the given configuration.
func NewPluginModule(cfg Config) *PluginModule {
	return &PluginModule{cfg: cfg}
}

// Name returns the module name.
func (m *PluginModule) Name() string {
	return "cache"
}

// Start connects to Redis.
func (m *PluginModule) Start(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:         m.cfg.RedisAddr,
		PoolSize:     50,
		MinIdleConns: 5,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	m.cache = New(client, m.cfg.Prefix, m.cfg.TTL)
	log.Printf("[cache] Connected to Redis at %s (prefix: %s, TTL: %s)", m.cfg.RedisAddr, m.cfg.Prefix, m.cfg.TTL)
	return nil
}

// Stop closes the Redis connection.
func (m *PluginModule) Stop(_ context.Context) error {
	if m.cache != nil {
		if err := m.cache.Close(); err != nil {
			return fmt.Errorf("failed to close Redis connection: %w", err)
		}
	}
	log.Println("[cache] Plugin stopped")
	return nil
}

// SetContainer sets the service container for this plugin.
func (m *PluginModule) SetContainer(container types.ServiceContainer) {
	m.container = container
}

// Container returns the service container for this plugin.
func (m *PluginModule) Container() types.ServiceContainer {
	return m.container
}

// Port returns the cache for consumer modules. It is nil until Start succeeds.
func (m *PluginModule) Port() *Cache {
	return m.cache
}

// Health pings Redis and reports the cache statistics.
func (m *PluginModule) Health(ctx context.Context) mono.HealthStatus {
	if m.cache == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "cache not initialized",
		}
	}

	if err := m.cache.Ping(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("redis ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"redis_addr": m.cfg.RedisAddr,
			"prefix":     m.cfg.Prefix,
			"ttl":        m.cfg.TTL.String(),
			"stats":      m.cache.Stats(),
		},
	}
}
