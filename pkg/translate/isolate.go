package translate

import (
	"context"
	"log/slog"
)

// Isolator is the best-effort element decorator. When the wrapped
// handler fails, the error is swallowed and the element contributes an
// empty sequence, so one bad element cannot abort the batch. Callers
// see no error signal; compose a Meter (or supply a logger) for
// visibility.
type Isolator[R any] struct {
	next   ElementHandler[R]
	logger *slog.Logger
}

// NewIsolator wraps next with error isolation. logger may be nil, in
// which case dropped elements are not logged.
func NewIsolator[R any](next ElementHandler[R], logger *slog.Logger) *Isolator[R] {
	return &Isolator[R]{next: next, logger: logger}
}

// TranslateElement delegates to the wrapped handler, converting any
// failure into an empty result.
func (i *Isolator[R]) TranslateElement(ctx context.Context, stage Stage[R], elem R) ([]R, error) {
	out, err := i.next.TranslateElement(ctx, stage, elem)
	if err != nil {
		if i.logger != nil {
			i.logger.Debug("element dropped",
				slog.String("stage", stage.Name),
				slog.String("error", err.Error()),
			)
		}
		return nil, nil
	}
	return out, nil
}

var _ ElementHandler[any] = (*Isolator[any])(nil)
