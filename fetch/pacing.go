package fetch

import (
	"context"
	"time"
)

// DelayPolicy decides how long to wait before fetching the channel at
// position i of a batch. i starts at 1; nothing waits before the first one.
type DelayPolicy interface {
	Delay(i int) time.Duration
}

type ConstantDelay time.Duration

func (d ConstantDelay) Delay(_ int) time.Duration {
	return time.Duration(d)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
