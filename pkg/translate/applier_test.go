package translate

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestApplier_FlattensInOrder(t *testing.T) {
	a := NewApplier[int](FuncExecutor[int]{})
	stage := Stage[int]{Name: "fanout", Fn: func(_ context.Context, e int) ([]int, error) {
		return []int{e, e * 10}, nil
	}}

	got, err := a.ApplyStage(context.Background(), stage, []int{1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []int{1, 10, 2, 20}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestApplier_EmptyResultContributesNothing(t *testing.T) {
	a := NewApplier[int](FuncExecutor[int]{})
	stage := Stage[int]{Name: "odd", Fn: func(_ context.Context, e int) ([]int, error) {
		if e%2 == 0 {
			return nil, nil
		}
		return []int{e}, nil
	}}

	got, err := a.ApplyStage(context.Background(), stage, []int{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []int{1, 3, 5}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestApplier_ErrorStopsBatch(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	a := NewApplier[int](FuncExecutor[int]{})
	stage := Stage[int]{Name: "fragile", Fn: func(_ context.Context, e int) ([]int, error) {
		calls++
		if e == 2 {
			return nil, boom
		}
		return []int{e}, nil
	}}

	got, err := a.ApplyStage(context.Background(), stage, []int{1, 2, 3})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if got != nil {
		t.Errorf("expected nil output on error, got %v", got)
	}
	// Element 3 is never reached.
	if calls != 2 {
		t.Errorf("expected 2 element calls, got %d", calls)
	}
}
