package anim

import (
	"context"
	"time"
)

type timerPauser struct{}

// Avoid time.After(), a cancelled pause must release its timer.
func (timerPauser) Pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}
	return nil
}

var TimerPauser Pauser = timerPauser{}
