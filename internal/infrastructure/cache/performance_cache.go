package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vitalsalud/ventas-crm-api/internal/application/dto"
	"github.com/vitalsalud/ventas-crm-api/internal/application/usecase"
	"github.com/vitalsalud/ventas-crm-api/pkg/config"
)

const defaultPerformanceTTL = time.Minute

var _ usecase.PerformanceCache = (*redisPerformanceCache)(nil)
var _ usecase.PerformanceCache = (*noopPerformanceCache)(nil)

type redisPerformanceCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopPerformanceCache struct{}

// NewPerformanceCache construye el cache de reportes de performance sobre
// Redis. Con cache deshabilitado devuelve un no-op; los reportes con TTL
// corto toleran quedarse sin cache, no sin datos.
func NewPerformanceCache(cfg config.CacheConfig) (usecase.PerformanceCache, error) {
	if !cfg.Enabled {
		return &noopPerformanceCache{}, nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultPerformanceTTL
	}
	return &redisPerformanceCache{client: client, ttl: ttl}, nil
}

// NewNoopPerformanceCache devuelve un cache que nunca acierta.
func NewNoopPerformanceCache() usecase.PerformanceCache {
	return &noopPerformanceCache{}
}

func (c *redisPerformanceCache) GetPerformance(ctx context.Context, key string) (*dto.PerformanceDTO, bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var report dto.PerformanceDTO
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, fmt.Errorf("decode performance cache: %w", err)
	}
	return &report, true, nil
}

func (c *redisPerformanceCache) SetPerformance(ctx context.Context, key string, report *dto.PerformanceDTO) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode performance cache: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *noopPerformanceCache) GetPerformance(context.Context, string) (*dto.PerformanceDTO, bool, error) {
	return nil, false, nil
}

func (c *noopPerformanceCache) SetPerformance(context.Context, string, *dto.PerformanceDTO) error {
	return nil
}

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host := cfg.RedisHost
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.RedisPort
	if port == "" {
		port = "6379"
	}
	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}
