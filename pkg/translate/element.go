package translate

import "context"

// FuncExecutor is the base ElementHandler: it invokes the stage
// function directly and reports its result, with no error recovery.
// Decorators wrap it to add isolation or metering.
type FuncExecutor[R any] struct{}

// TranslateElement invokes stage.Fn on elem. A nil result slice with a
// nil error means the element was filtered out.
func (FuncExecutor[R]) TranslateElement(ctx context.Context, stage Stage[R], elem R) ([]R, error) {
	out, err := stage.Fn(ctx, elem)
	if err != nil {
		return nil, err
	}
	return out, nil
}

var _ ElementHandler[any] = FuncExecutor[any]{}
