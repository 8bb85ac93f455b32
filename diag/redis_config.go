package diag

import (
	"time"
)

const (
	// DefaultKeyPrefix is the default prefix for diagnostic list keys
	DefaultKeyPrefix = "mutex-kit:"

	// DefaultKey is the default list name under the prefix
	DefaultKey = "diagnostics"

	// DefaultMaxLen is the default number of records kept in the list
	DefaultMaxLen = 1000

	// DefaultPushTimeout is the default timeout for a single push (200 milliseconds).
	// Reports are pushed on the failing caller's goroutine, keep it short
	DefaultPushTimeout = 200 * time.Millisecond
)

// RedisSinkConfig represents Redis diagnostic sink configuration
type RedisSinkConfig struct {
	// KeyPrefix is prepended to Key (default: "mutex-kit:")
	KeyPrefix string

	// Key is the list that receives records (default: "diagnostics")
	Key string

	// MaxLen caps the list length, oldest records are dropped first.
	// Zero or negative keeps everything (default: 1000)
	MaxLen int64

	// Timeout bounds each push (default: 200ms)
	Timeout time.Duration
}

// DefaultRedisSinkConfig returns a RedisSinkConfig with default values
func DefaultRedisSinkConfig() RedisSinkConfig {
	return RedisSinkConfig{
		KeyPrefix: DefaultKeyPrefix,
		Key:       DefaultKey,
		MaxLen:    DefaultMaxLen,
		Timeout:   DefaultPushTimeout,
	}
}

// WithKeyPrefix sets the key prefix
func (c RedisSinkConfig) WithKeyPrefix(prefix string) RedisSinkConfig {
	c.KeyPrefix = prefix
	return c
}

// WithKey sets the list name
func (c RedisSinkConfig) WithKey(key string) RedisSinkConfig {
	c.Key = key
	return c
}

// WithMaxLen sets the list length cap
func (c RedisSinkConfig) WithMaxLen(maxLen int64) RedisSinkConfig {
	c.MaxLen = maxLen
	return c
}

// WithTimeout sets the push timeout
func (c RedisSinkConfig) WithTimeout(timeout time.Duration) RedisSinkConfig {
	c.Timeout = timeout
	return c
}
