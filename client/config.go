package client

import (
	"context"
	"net"
	"time"
)

// Config describes the Redis connection used to ship diagnostics
type Config struct {
	// Addr is the Redis server address (e.g., "localhost:6379")
	Addr string

	// Password is the Redis password (empty if no password)
	Password string

	// DB is the Redis database number (default: 0)
	DB int

	// PoolSize is the maximum number of socket connections (default: 4).
	// Diagnostics are low volume so the pool stays small
	PoolSize int

	// DialTimeout is the timeout for establishing connections (default: 2s)
	DialTimeout time.Duration

	// ReadTimeout and WriteTimeout bound socket I/O (default: 1s each)
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MaxRetries is the maximum number of retries for failed commands (default: 1)
	MaxRetries int

	// Dialer overrides how connections are made, mainly for tests
	Dialer func(ctx context.Context, network, addr string) (net.Conn, error)
}

// DefaultConfig returns a Config with default values
func DefaultConfig() Config {
	return Config{
		Addr:         "localhost:6379",
		PoolSize:     4,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		MaxRetries:   1,
	}
}

// WithAddr sets the Redis server address
func (c Config) WithAddr(addr string) Config {
	c.Addr = addr
	return c
}

// WithPassword sets the Redis password
func (c Config) WithPassword(password string) Config {
	c.Password = password
	return c
}

// WithDB sets the Redis database number
func (c Config) WithDB(db int) Config {
	c.DB = db
	return c
}

// WithPoolSize sets the connection pool size
func (c Config) WithPoolSize(size int) Config {
	c.PoolSize = size
	return c
}

// WithDialTimeout sets the dial timeout
func (c Config) WithDialTimeout(timeout time.Duration) Config {
	c.DialTimeout = timeout
	return c
}

// WithIOTimeout sets both the read and write timeouts
func (c Config) WithIOTimeout(timeout time.Duration) Config {
	c.ReadTimeout = timeout
	c.WriteTimeout = timeout
	return c
}

// WithMaxRetries sets the maximum number of retries
func (c Config) WithMaxRetries(retries int) Config {
	c.MaxRetries = retries
	return c
}

// WithDialer sets a custom dialer
func (c Config) WithDialer(dialer func(ctx context.Context, network, addr string) (net.Conn, error)) Config {
	c.Dialer = dialer
	return c
}
