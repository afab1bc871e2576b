package translate

import "context"

// Meter is the metering element decorator. When the wrapped handler
// fails it increments one counter, named by the configured
// CounterNameFunc from the stage name, then re-raises the identical
// error. Successful results pass through untouched, so the Meter never
// changes the propagation outcome by itself: wrap it in an Isolator to
// count-and-drop, or use it without one to count-and-abort.
type Meter[R any] struct {
	next    ElementHandler[R]
	counter Counter
	name    CounterNameFunc
}

// NewMeter wraps next with failure metering. A nil name falls back to
// PrefixedCounterName(DefaultCounterPrefix).
func NewMeter[R any](next ElementHandler[R], counter Counter, name CounterNameFunc) *Meter[R] {
	if name == nil {
		name = PrefixedCounterName(DefaultCounterPrefix)
	}
	return &Meter[R]{next: next, counter: counter, name: name}
}

// TranslateElement delegates to the wrapped handler, counting failures
// before propagating them.
func (m *Meter[R]) TranslateElement(ctx context.Context, stage Stage[R], elem R) ([]R, error) {
	out, err := m.next.TranslateElement(ctx, stage, elem)
	if err != nil {
		m.counter.IncrementCounter(m.name(stage.Name))
		return nil, err
	}
	return out, nil
}

var _ ElementHandler[any] = (*Meter[any])(nil)
