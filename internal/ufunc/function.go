package ufunc

import "fmt"

// Kernel computes one element of an elementwise function: in holds the
// input values for the element, out receives the output values. Slices are
// sized NIn and NOut by the engine and reused across elements.
type Kernel func(in []float64, out []float64)

// Function describes a registered elementwise function: its name, fixed
// input and output arities, and the per-element kernel engines execute.
type Function struct {
	Name   string
	NIn    int
	NOut   int
	Kernel Kernel
}

// NewFunction validates the metadata and returns a Function.
func NewFunction(name string, nin, nout int, kernel Kernel) (*Function, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidFunction)
	}
	if nin < 1 || nout < 1 {
		return nil, fmt.Errorf("%w: arity %d-in/%d-out", ErrInvalidFunction, nin, nout)
	}
	if kernel == nil {
		return nil, fmt.Errorf("%w: nil kernel", ErrInvalidFunction)
	}
	return &Function{Name: name, NIn: nin, NOut: nout, Kernel: kernel}, nil
}
