// Package translate provides the staged batch translation engine.
//
// A Translator applies an ordered sequence of named stages to a batch
// of elements. Each stage maps one element to zero or more output
// elements, so a stage may filter, transform one-to-one, or expand
// one-to-many. The output batch of one stage is the input batch of the
// next.
//
// # Architecture
//
// Execution is layered, and each layer is an interface with exactly one
// default implementation:
//
//   - BatchHandler: one TranslateBatch call (default: Executor)
//   - StageHandler: one stage across a whole batch (default: Applier)
//   - ElementHandler: one stage function on one element (default: FuncExecutor)
//
// Decorators wrap a handler of the same level, taking the wrapped
// handler at construction. The default chain built by New is
//
//	Executor → Applier → Isolator(Meter(FuncExecutor))
//
// with the Meter omitted unless a Counter is configured. The Isolator
// gives best-effort semantics: an element whose stage function fails is
// dropped and the rest of the batch continues. The Meter counts the
// failure before the Isolator swallows it. Remove the Isolator with
// WithoutIsolation to make any element failure abort the whole call.
//
// # Concurrency
//
// One TranslateBatch call is synchronous and processes elements
// strictly in order. A configured Translator is immutable and safe for
// concurrent use; any Counter shared across goroutines must tolerate
// concurrent IncrementCounter calls.
package translate
