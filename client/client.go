package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrNoAddr indicates the config has no server address
	ErrNoAddr = errors.New("redis address is required")
	// ErrNilClient indicates a nil client was passed in
	ErrNilClient = errors.New("redis client is nil")
)

// healthTimeout bounds a single health check
const healthTimeout = 2 * time.Second

// NewClient builds a Redis client from cfg and verifies it with a PING
func NewClient(cfg Config) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, ErrNoAddr
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		MaxRetries:   cfg.MaxRetries,
		Dialer:       cfg.Dialer,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return rdb, nil
}

// HealthStatus represents the health status of a Redis connection
type HealthStatus struct {
	Healthy   bool
	Latency   time.Duration
	Error     error
	Timestamp time.Time
}

// CheckHealth pings the server and reports latency and errors
func CheckHealth(ctx context.Context, rdb *redis.Client) HealthStatus {
	status := HealthStatus{
		Timestamp: time.Now(),
	}

	if rdb == nil {
		status.Error = ErrNilClient
		return status
	}

	healthCtx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	start := time.Now()
	err := rdb.Ping(healthCtx).Err()
	status.Latency = time.Since(start)
	status.Error = err
	status.Healthy = err == nil

	return status
}
