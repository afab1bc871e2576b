package translate

import (
	"context"
	"log/slog"
)

// Translator is the configured pipeline entry point. Build one with
// New, then call TranslateBatch as often as needed; a Translator is
// immutable after construction and safe for concurrent use.
type Translator[R any] struct {
	handler BatchHandler[R]
}

// Option configures a Translator during construction.
type Option[R any] func(*options[R])

type options[R any] struct {
	isolation     bool
	counter       Counter
	counterName   CounterNameFunc
	logger        *slog.Logger
	element       ElementHandler[R]
	stage         StageHandler[R]
	batchWrappers []func(BatchHandler[R]) BatchHandler[R]
}

// WithoutIsolation removes the Isolator from the default element
// chain: any element failure then aborts the whole TranslateBatch call.
func WithoutIsolation[R any]() Option[R] {
	return func(o *options[R]) { o.isolation = false }
}

// WithMetering inserts a Meter into the default element chain. With
// isolation active (the default) failures are counted and then
// dropped; combined with WithoutIsolation they are counted and then
// abort the call.
func WithMetering[R any](counter Counter) Option[R] {
	return func(o *options[R]) { o.counter = counter }
}

// WithCounterName overrides the counter naming scheme used by
// WithMetering.
func WithCounterName[R any](name CounterNameFunc) Option[R] {
	return func(o *options[R]) { o.counterName = name }
}

// WithLogger sets the logger used by the default Isolator to report
// dropped elements at debug level.
func WithLogger[R any](logger *slog.Logger) Option[R] {
	return func(o *options[R]) { o.logger = logger }
}

// WithElementHandler replaces the entire default element chain.
// Isolation and metering options are ignored when this is set; compose
// NewIsolator and NewMeter by hand instead.
func WithElementHandler[R any](h ElementHandler[R]) Option[R] {
	return func(o *options[R]) { o.element = h }
}

// WithStageHandler replaces the default Applier.
func WithStageHandler[R any](h StageHandler[R]) Option[R] {
	return func(o *options[R]) { o.stage = h }
}

// WithBatchWrapper wraps the batch handler, e.g. for tracing or
// whole-batch metrics. Wrappers are applied in the order given, so the
// last wrapper is outermost.
func WithBatchWrapper[R any](wrap func(BatchHandler[R]) BatchHandler[R]) Option[R] {
	return func(o *options[R]) { o.batchWrappers = append(o.batchWrappers, wrap) }
}

// New builds a Translator over an ordered stage sequence. The default
// configuration is best-effort: element failures are isolated and
// dropped. Stage registration order is execution order.
func New[R any](stages []Stage[R], opts ...Option[R]) *Translator[R] {
	o := options[R]{isolation: true}
	for _, opt := range opts {
		opt(&o)
	}

	element := o.element
	if element == nil {
		var chain ElementHandler[R] = FuncExecutor[R]{}
		if o.counter != nil {
			chain = NewMeter(chain, o.counter, o.counterName)
		}
		if o.isolation {
			chain = NewIsolator(chain, o.logger)
		}
		element = chain
	}

	stage := o.stage
	if stage == nil {
		stage = NewApplier(element)
	}

	var batch BatchHandler[R] = NewExecutor(stages, stage)
	for _, wrap := range o.batchWrappers {
		batch = wrap(batch)
	}

	return &Translator[R]{handler: batch}
}

// TranslateBatch runs one batch through the pipeline. A nil elems
// slice is an empty batch; ctx is threaded unchanged into every stage
// and element call (nil is normalized to context.Background).
func (t *Translator[R]) TranslateBatch(ctx context.Context, elems []R) ([]R, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return t.handler.TranslateBatch(ctx, elems)
}

var _ BatchHandler[any] = (*Translator[any])(nil)
