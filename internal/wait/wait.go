// Package wait polls target resolution against a deadline to implement
// "wait until present".
package wait

import (
	"context"
	"time"

	"github.com/steipete/peekaboo-go/internal/model"
)

// DefaultInterval is the resolution polling interval.
const DefaultInterval = 100 * time.Millisecond

// TargetResolver resolves a target to an element and point. Satisfied by
// *resolve.Resolver and by the engine's UI-thread-marshaled wrapper.
type TargetResolver interface {
	Resolve(target model.Target, sessionID string) (*model.DetectedElement, model.Point, error)
}

// Waiter wraps a Resolver with a poll-until-deadline loop.
type Waiter struct {
	Resolver TargetResolver
	Interval time.Duration
	now      func() time.Time
}

// New creates a Waiter with the default interval.
func New(resolver TargetResolver) *Waiter {
	return &Waiter{
		Resolver: resolver,
		Interval: DefaultInterval,
		now:      time.Now,
	}
}

// WaitFor polls the resolver until the target resolves or the timeout
// elapses. Coordinate targets resolve immediately without polling, and
// elements found through the session cache are trusted without a fresh
// liveness check. Exhaustion returns Found=false, never an error, so
// callers branch on the result, not on error shape. The context cancels
// the loop between polls; individual resolution calls are short and
// atomic and are not interrupted mid-flight.
func (w *Waiter) WaitFor(ctx context.Context, target model.Target, timeout time.Duration, sessionID string) (model.WaitResult, error) {
	start := w.now()

	if target.Kind == model.TargetCoordinates {
		return model.WaitResult{Found: true, Point: target.Point, Elapsed: w.now().Sub(start)}, nil
	}

	deadline := start.Add(timeout)
	for {
		el, point, err := w.Resolver.Resolve(target, sessionID)
		if err == nil {
			return model.WaitResult{Found: true, Element: el, Point: point, Elapsed: w.now().Sub(start)}, nil
		}

		// Re-check the deadline every iteration; this is the only
		// cancellation point besides the caller's context.
		if !w.now().Before(deadline) {
			return model.WaitResult{Found: false, Elapsed: w.now().Sub(start)}, nil
		}

		select {
		case <-ctx.Done():
			return model.WaitResult{Found: false, Elapsed: w.now().Sub(start)}, ctx.Err()
		case <-time.After(w.interval()):
		}
	}
}

func (w *Waiter) interval() time.Duration {
	if w.Interval > 0 {
		return w.Interval
	}
	return DefaultInterval
}
