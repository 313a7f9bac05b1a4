package ufunc_test

import (
	"testing"

	"github.com/rjkoch/diffpy.srfit/array"
	"github.com/rjkoch/diffpy.srfit/engine/cpu"
	"github.com/rjkoch/diffpy.srfit/ufunc"
)

// TestEngineInterface verifies that cpu.Engine implements ufunc.Engine.
func TestEngineInterface(_ *testing.T) {
	var _ ufunc.Engine = (*cpu.Engine)(nil)
}

// TestPublicAPIRoundTrip exercises the whole public surface: builtin
// lookup, bind, call, array access and release.
func TestPublicAPIRoundTrip(t *testing.T) {
	op := ufunc.NewOperator(cpu.New())
	defer op.Close()

	fn, err := ufunc.Builtin("multiply")
	if err != nil {
		t.Fatalf("Builtin failed: %v", err)
	}
	if err := op.Bind(fn, "*"); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}

	a := array.FromFloat64([]float64{1, 2, 3})
	defer a.Release()

	res, err := op.Call(a, 3.0)
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}

	raw, ok := res.(*array.Raw)
	if !ok {
		t.Fatalf("result type = %T, want *array.Raw", res)
	}
	defer raw.Release()

	want := []float64{3, 6, 9}
	got := raw.AsFloat64()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("result[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

// TestCustomFunction verifies user-defined functions work through the
// public constructors.
func TestCustomFunction(t *testing.T) {
	fn, err := ufunc.NewFunction("square", 1, 1, func(in, out []float64) {
		out[0] = in[0] * in[0]
	})
	if err != nil {
		t.Fatalf("NewFunction failed: %v", err)
	}

	op := ufunc.NewOperator(cpu.New())
	defer op.Close()
	if err := op.Bind(fn, ""); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}

	res, err := op.Call(4.0)
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if res != 16.0 {
		t.Errorf("Call(4) = %v, want 16", res)
	}
}
