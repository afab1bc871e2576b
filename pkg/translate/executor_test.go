package translate

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

// recordingStageHandler is a test helper that records stage
// applications and delegates to a configured function.
type recordingStageHandler struct {
	applied []string
	inputs  [][]int
	fn      func(stage Stage[int], elems []int) ([]int, error)
}

func (h *recordingStageHandler) ApplyStage(_ context.Context, stage Stage[int], elems []int) ([]int, error) {
	h.applied = append(h.applied, stage.Name)
	h.inputs = append(h.inputs, elems)
	if h.fn != nil {
		return h.fn(stage, elems)
	}
	return elems, nil
}

func TestExecutor_OrderedExecution(t *testing.T) {
	handler := &recordingStageHandler{}
	e := NewExecutor([]Stage[int]{
		{Name: "first"},
		{Name: "second"},
		{Name: "third"},
	}, handler)

	if _, err := e.TranslateBatch(context.Background(), []int{1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"first", "second", "third"}; !reflect.DeepEqual(handler.applied, want) {
		t.Errorf("unexpected order: %v", handler.applied)
	}
}

func TestExecutor_OutputFeedsNextStage(t *testing.T) {
	handler := &recordingStageHandler{
		fn: func(stage Stage[int], elems []int) ([]int, error) {
			out := make([]int, len(elems))
			for i, e := range elems {
				out[i] = e * 10
			}
			return out, nil
		},
	}
	e := NewExecutor([]Stage[int]{{Name: "a"}, {Name: "b"}}, handler)

	got, err := e.TranslateBatch(context.Background(), []int{1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []int{100, 200}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if want := []int{10, 20}; !reflect.DeepEqual(handler.inputs[1], want) {
		t.Errorf("second stage input = %v, want %v", handler.inputs[1], want)
	}
}

func TestExecutor_NoStages(t *testing.T) {
	e := NewExecutor(nil, &recordingStageHandler{})
	in := []int{1, 2, 3}

	got, err := e.TranslateBatch(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Errorf("expected input passthrough, got %v", got)
	}
}

func TestExecutor_StageErrorAborts(t *testing.T) {
	boom := errors.New("boom")
	handler := &recordingStageHandler{
		fn: func(stage Stage[int], elems []int) ([]int, error) {
			if stage.Name == "second" {
				return nil, boom
			}
			return elems, nil
		},
	}
	e := NewExecutor([]Stage[int]{
		{Name: "first"},
		{Name: "second"},
		{Name: "third"},
	}, handler)

	got, err := e.TranslateBatch(context.Background(), []int{1})
	if err == nil {
		t.Fatal("expected error")
	}
	if got != nil {
		t.Errorf("expected no partial batch, got %v", got)
	}

	var se *StageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StageError, got %T", err)
	}
	if se.Stage != "second" {
		t.Errorf("expected stage 'second', got %q", se.Stage)
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped cause, got %v", err)
	}
	// The third stage must never run.
	if want := []string{"first", "second"}; !reflect.DeepEqual(handler.applied, want) {
		t.Errorf("unexpected stage applications: %v", handler.applied)
	}
}

func TestFailedStage_NonStageError(t *testing.T) {
	if stage, ok := FailedStage(errors.New("plain")); ok {
		t.Errorf("expected no stage for plain error, got %q", stage)
	}
}
