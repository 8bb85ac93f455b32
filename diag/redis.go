package diag

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/soulteary/mutex-kit/client"
	"github.com/soulteary/mutex-kit/utils"
)

// ErrNilClient indicates the sink has no Redis client
var ErrNilClient = errors.New("redis client is nil")

// RedisSink appends JSON-encoded records to a Redis list
// If Redis is unavailable or a push fails, the record goes to the fallback
// sink instead so it is never silently lost.
//
// Report pushes synchronously on the caller's goroutine: a slow or
// unreachable server delays the failing mutex call by up to Timeout plus the
// client's retries before the fallback runs
type RedisSink struct {
	client   *redis.Client
	cfg      RedisSinkConfig
	key      string
	fallback Sink
}

// NewRedisSink creates a Redis-backed sink that falls back to Standard()
func NewRedisSink(rdb *redis.Client, cfg RedisSinkConfig) *RedisSink {
	return NewRedisSinkWithFallback(rdb, cfg, Standard())
}

// NewRedisSinkFromConfig connects with ccfg and creates a Redis-backed sink
// that falls back to Standard(). The connection is verified before returning
func NewRedisSinkFromConfig(ccfg client.Config, cfg RedisSinkConfig) (*RedisSink, error) {
	rdb, err := client.NewClient(ccfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect diagnostic sink: %w", err)
	}
	return NewRedisSink(rdb, cfg), nil
}

// NewRedisSinkWithFallback creates a Redis-backed sink with a custom fallback
// A nil fallback discards records that could not be pushed
func NewRedisSinkWithFallback(rdb *redis.Client, cfg RedisSinkConfig, fallback Sink) *RedisSink {
	if fallback == nil {
		fallback = Nop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultPushTimeout
	}
	return &RedisSink{
		client:   rdb,
		cfg:      cfg,
		key:      utils.BuildKey(cfg.KeyPrefix, cfg.Key),
		fallback: fallback,
	}
}

// Key returns the full list key records are pushed to
func (s *RedisSink) Key() string {
	return s.key
}

// Report implements Sink.
func (s *RedisSink) Report(r Record) {
	if err := s.Push(context.Background(), r); err != nil {
		s.fallback.Report(r)
	}
}

// Push appends one record to the list and trims it to MaxLen
func (s *RedisSink) Push(ctx context.Context, r Record) error {
	if s.client == nil {
		return ErrNilClient
	}

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	ctx, cancel := utils.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	if err := s.client.RPush(ctx, s.key, data).Err(); err != nil {
		return fmt.Errorf("failed to push record: %w", err)
	}

	if s.cfg.MaxLen > 0 {
		if err := s.client.LTrim(ctx, s.key, -s.cfg.MaxLen, -1).Err(); err != nil {
			return fmt.Errorf("failed to trim records: %w", err)
		}
	}

	return nil
}

// Records returns every stored record, oldest first
func (s *RedisSink) Records(ctx context.Context) ([]Record, error) {
	if s.client == nil {
		return nil, ErrNilClient
	}

	ctx, cancel := utils.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	raw, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}

	records := make([]Record, 0, len(raw))
	for _, item := range raw {
		var r Record
		if err := json.Unmarshal([]byte(item), &r); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record: %w", err)
		}
		records = append(records, r)
	}
	return records, nil
}

// Close closes the underlying Redis client
func (s *RedisSink) Close() error {
	if s.client == nil {
		return ErrNilClient
	}
	return s.client.Close()
}

// Health reports the state of the underlying Redis connection
func (s *RedisSink) Health(ctx context.Context) client.HealthStatus {
	return client.CheckHealth(ctx, s.client)
}
