package story

import (
	"context"
	"time"
)

// Builtin serves the mocked stories after an optional simulated latency.
type Builtin struct {
	Delay time.Duration
}

func (*Builtin) Name() string {
	return "builtin"
}

func (b *Builtin) Fetch(ctx context.Context) ([]Item, error) {
	if b.Delay > 0 {
		timer := time.NewTimer(b.Delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return Mocked(), nil
}
