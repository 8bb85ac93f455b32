package utils

import (
	"context"
	"time"
)

// WithTimeout derives a context bounded by timeout.
// A nil parent is treated as context.Background(); a non-positive timeout
// only adds cancellation
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
