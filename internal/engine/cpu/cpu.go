// Package cpu implements the reference compute engine: pure Go elementwise
// execution of registered kernels over dense arrays.
package cpu

import (
	"fmt"

	"github.com/rjkoch/diffpy.srfit/internal/array"
	"github.com/rjkoch/diffpy.srfit/internal/ufunc"
)

// Verify that Engine implements ufunc.Engine.
var _ ufunc.Engine = (*Engine)(nil)

// Engine executes elementwise kernels on the CPU.
//
// Shape rule: all non-0-d inputs must share one shape; 0-d inputs are read
// as constants. There is no general broadcasting. Outputs are float64
// unless written into a supplied destination; a destination of matching
// shape but foreign dtype is served through a writeback temporary.
type Engine struct{}

// New creates a new CPU engine.
func New() *Engine {
	return &Engine{}
}

// Name returns the engine name.
func (e *Engine) Name() string {
	return "cpu"
}

// Evaluate runs fn's kernel over the coerced arguments. See ufunc.Engine
// for the buffer ownership contract.
func (e *Engine) Evaluate(fn *ufunc.Function, args []*array.Raw, kwargs map[string]any) ([]*array.Raw, error) {
	if len(args) < fn.NIn || len(args) > fn.NIn+fn.NOut {
		return nil, fmt.Errorf("%q takes %d to %d arguments, got %d",
			fn.Name, fn.NIn, fn.NIn+fn.NOut, len(args))
	}
	inputs := args[:fn.NIn]
	for i, in := range inputs {
		if in == nil {
			return nil, fmt.Errorf("%q: input %d is nil", fn.Name, i)
		}
	}

	shape, err := commonShape(fn.Name, inputs)
	if err != nil {
		return nil, err
	}

	outs, err := e.outputBuffers(fn, args, shape)
	if err != nil {
		return nil, err
	}

	n := shape.NumElements()
	in := make([]float64, fn.NIn)
	out := make([]float64, fn.NOut)
	for idx := 0; idx < n; idx++ {
		for i, src := range inputs {
			if src.Shape().IsScalarShape() {
				in[i] = src.ValueAt(0)
			} else {
				in[i] = src.ValueAt(idx)
			}
		}
		fn.Kernel(in, out)
		for i, dst := range outs {
			dst.AsFloat64()[idx] = out[i]
		}
	}

	// Inputs are returned alongside outputs for symmetric cleanup.
	result := make([]*array.Raw, 0, fn.NIn+fn.NOut)
	for _, src := range inputs {
		result = append(result, src.AddRef())
	}
	return append(result, outs...), nil
}

// commonShape enforces the engine's shape rule over the inputs.
func commonShape(name string, inputs []*array.Raw) (array.Shape, error) {
	shape := array.Shape{}
	for _, in := range inputs {
		if in.Shape().IsScalarShape() {
			continue
		}
		if shape.IsScalarShape() {
			shape = in.Shape()
		} else if !shape.Equal(in.Shape()) {
			return nil, fmt.Errorf("%q: mismatched input shapes %v and %v",
				name, shape, in.Shape())
		}
	}
	return shape, nil
}

// outputBuffers allocates or adopts one float64 buffer per output slot.
// Each returned buffer carries one reference. On error, buffers acquired
// so far are released.
func (e *Engine) outputBuffers(fn *ufunc.Function, args []*array.Raw, shape array.Shape) ([]*array.Raw, error) {
	outs := make([]*array.Raw, 0, fn.NOut)
	fail := func(err error) ([]*array.Raw, error) {
		for _, o := range outs {
			o.Release()
		}
		return nil, err
	}

	for i := 0; i < fn.NOut; i++ {
		var dst *array.Raw
		if j := fn.NIn + i; j < len(args) {
			dst = args[j]
		}
		switch {
		case dst == nil:
			buf, err := array.NewRaw(shape, array.Float64)
			if err != nil {
				return fail(err)
			}
			outs = append(outs, buf)
		case !dst.Shape().Equal(shape):
			return fail(fmt.Errorf("%q: output %d has shape %v, want %v",
				fn.Name, i, dst.Shape(), shape))
		case dst.DType() == array.Float64:
			outs = append(outs, dst.AddRef())
		default:
			// Foreign dtype: compute into a temporary, copy back on resolve.
			buf, err := array.NewWriteback(shape, dst)
			if err != nil {
				return fail(err)
			}
			outs = append(outs, buf)
		}
	}
	return outs, nil
}
