package alert

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces out record inspection to imitate a live feed.
type Pacer interface {
	Wait(ctx context.Context) error
}

type noDelay struct{}

func (noDelay) Wait(ctx context.Context) error {
	return ctx.Err()
}

// NoDelay returns a Pacer that never waits.
func NoDelay() Pacer {
	return noDelay{}
}

// Every returns a Pacer that lets one record through per interval.
// A non-positive interval disables pacing.
func Every(interval time.Duration) Pacer {
	if interval <= 0 {
		return NoDelay()
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}
