package runtime

import (
	"context"
	"math/rand/v2"
	"time"
)

const (
	DefaultRetryMinDelay  = 5 * time.Second
	DefaultRetryMaxDelay  = 20 * time.Second
	DefaultHealthInterval = 30 * time.Second
)

type Backoff interface {
	Next() time.Duration
}

// JitterBackoff draws a uniform delay in [Min, Max].
type JitterBackoff struct {
	Min time.Duration
	Max time.Duration
}

func (b JitterBackoff) Next() time.Duration {
	if b.Max <= b.Min {
		return b.Min
	}
	return b.Min + rand.N(b.Max-b.Min+1)
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
