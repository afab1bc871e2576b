package translate

import "context"

// StageFunc translates one element into zero or more output elements.
// Returning an empty (or nil) slice filters the element out; returning
// more than one element expands it. The ctx is the caller's per-batch
// context, passed through unchanged.
type StageFunc[R any] func(ctx context.Context, elem R) ([]R, error)

// Stage is a named translation step. The name identifies the stage in
// errors, logs and metric keys; keeping names unique is the caller's
// responsibility.
type Stage[R any] struct {
	Name string
	Fn   StageFunc[R]
}

// BatchHandler handles one whole TranslateBatch call.
type BatchHandler[R any] interface {
	// TranslateBatch runs the batch through the pipeline.
	// A nil elems slice is treated as an empty batch.
	TranslateBatch(ctx context.Context, elems []R) ([]R, error)
}

// BatchHandlerFunc adapts a function to a BatchHandler.
type BatchHandlerFunc[R any] func(ctx context.Context, elems []R) ([]R, error)

// TranslateBatch calls f.
func (f BatchHandlerFunc[R]) TranslateBatch(ctx context.Context, elems []R) ([]R, error) {
	return f(ctx, elems)
}

// StageHandler handles one stage across an entire batch.
type StageHandler[R any] interface {
	// ApplyStage applies stage to every element of elems in order and
	// returns the concatenated outputs.
	ApplyStage(ctx context.Context, stage Stage[R], elems []R) ([]R, error)
}

// StageHandlerFunc adapts a function to a StageHandler.
type StageHandlerFunc[R any] func(ctx context.Context, stage Stage[R], elems []R) ([]R, error)

// ApplyStage calls f.
func (f StageHandlerFunc[R]) ApplyStage(ctx context.Context, stage Stage[R], elems []R) ([]R, error) {
	return f(ctx, stage, elems)
}

// ElementHandler handles one stage function invocation on one element.
type ElementHandler[R any] interface {
	// TranslateElement runs stage.Fn on elem and returns its outputs.
	TranslateElement(ctx context.Context, stage Stage[R], elem R) ([]R, error)
}

// ElementHandlerFunc adapts a function to an ElementHandler.
type ElementHandlerFunc[R any] func(ctx context.Context, stage Stage[R], elem R) ([]R, error)

// TranslateElement calls f.
func (f ElementHandlerFunc[R]) TranslateElement(ctx context.Context, stage Stage[R], elem R) ([]R, error) {
	return f(ctx, stage, elem)
}

// Counter is the metrics collaborator consumed by the Meter decorator.
// Implementations shared across goroutines must be safe for concurrent
// increments.
type Counter interface {
	IncrementCounter(name string)
}

// CounterNameFunc derives a counter name from a stage name.
type CounterNameFunc func(stage string) string

// DefaultCounterPrefix is the prefix used when no CounterNameFunc is
// configured.
const DefaultCounterPrefix = "translate"

// PrefixedCounterName returns the default counter naming scheme,
// "<prefix>.<stage>.error".
func PrefixedCounterName(prefix string) CounterNameFunc {
	return func(stage string) string {
		return prefix + "." + stage + ".error"
	}
}
