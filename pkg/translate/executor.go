package translate

import (
	"context"
	"errors"
	"fmt"
)

// Executor runs the registered stages in order, feeding each stage's
// output batch to the next stage. It is the default BatchHandler.
type Executor[R any] struct {
	stages []Stage[R]
	stage  StageHandler[R]
}

// NewExecutor creates an executor over an ordered stage sequence,
// delegating each stage application to stage.
func NewExecutor[R any](stages []Stage[R], stage StageHandler[R]) *Executor[R] {
	return &Executor[R]{stages: stages, stage: stage}
}

// TranslateBatch runs elems through every stage in registration order.
// A nil elems slice is treated as an empty batch. If a stage fails, the
// call aborts with a StageError naming that stage and no partial batch
// is returned.
func (e *Executor[R]) TranslateBatch(ctx context.Context, elems []R) ([]R, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	current := elems
	for _, st := range e.stages {
		out, err := e.stage.ApplyStage(ctx, st, current)
		if err != nil {
			return nil, &StageError{Stage: st.Name, Err: err}
		}
		current = out
	}

	return current, nil
}

// StageError is returned when a stage aborts a TranslateBatch call.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("translate stage %s: %s", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// FailedStage returns the name of the stage that aborted the call, if
// err originated from one.
func FailedStage(err error) (string, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}

// Ensure Executor implements the interface.
var _ BatchHandler[any] = (*Executor[any])(nil)
