package translate

import "context"

// Applier applies a single stage across a batch, delegating each
// element to the element handler chain. It is the default StageHandler.
type Applier[R any] struct {
	element ElementHandler[R]
}

// NewApplier creates an applier delegating to element.
func NewApplier[R any](element ElementHandler[R]) *Applier[R] {
	return &Applier[R]{element: element}
}

// ApplyStage translates every element of elems in order and
// concatenates the per-element outputs. An element producing an empty
// sequence contributes nothing; one producing several contributes all
// of them in produced order. The input slice is never mutated.
func (a *Applier[R]) ApplyStage(ctx context.Context, stage Stage[R], elems []R) ([]R, error) {
	var out []R
	for _, elem := range elems {
		produced, err := a.element.TranslateElement(ctx, stage, elem)
		if err != nil {
			return nil, err
		}
		out = append(out, produced...)
	}
	return out, nil
}

var _ StageHandler[any] = (*Applier[any])(nil)
