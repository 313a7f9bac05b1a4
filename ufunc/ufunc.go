// Package ufunc provides the public API for operator invocation and result
// wrapping over elementwise numeric functions.
//
// An Operator is bound once to a Function and dispatches calls to an
// Engine. Per output slot the call decides what concrete type the result
// is returned as: plain arrays and scalars come back as such, while array
// subtypes carrying the OutputWrapper capability reconstruct themselves
// from the raw computed buffer, the contributor with the highest priority
// winning when several inputs could wrap.
//
// Example:
//
//	op := ufunc.NewOperator(cpu.New())
//	fn, _ := ufunc.Builtin("multiply")
//	if err := op.Bind(fn, "*"); err != nil {
//		log.Fatal(err)
//	}
//	defer op.Close()
//
//	res, err := op.Call(array.FromFloat64([]float64{1, 2, 3}), 2.0)
package ufunc

import (
	"github.com/rjkoch/diffpy.srfit/internal/ufunc"
)

// Operator is a named, arity-tagged handle over one elementwise function.
type Operator = ufunc.Operator

// Function describes a registered elementwise function.
type Function = ufunc.Function

// Kernel computes one element of an elementwise function.
type Kernel = ufunc.Kernel

// Engine executes the numeric kernel of an elementwise function.
type Engine = ufunc.Engine

// WrapContext describes the invocation that produced a raw output.
type WrapContext = ufunc.WrapContext

// OutputWrapper is the optional reconstruction capability of array
// subtypes.
type OutputWrapper = ufunc.OutputWrapper

// Prioritized is the optional priority capability of array subtypes.
type Prioritized = ufunc.Prioritized

// WrapError reports a reconstruction-method failure for one output slot.
type WrapError = ufunc.WrapError

// DefaultPriority is the priority assumed for a contributing operand that
// does not implement Prioritized.
const DefaultPriority = ufunc.DefaultPriority

// Errors returned by operator binding, calls and wrapping.
var (
	ErrInvalidFunction    = ufunc.ErrInvalidFunction
	ErrAlreadyBound       = ufunc.ErrAlreadyBound
	ErrNotBound           = ufunc.ErrNotBound
	ErrArgCount           = ufunc.ErrArgCount
	ErrEvaluate           = ufunc.ErrEvaluate
	ErrDeferWrap          = ufunc.ErrDeferWrap
	ErrUnsupportedContext = ufunc.ErrUnsupportedContext
)

// NewOperator creates an unbound operator that will evaluate on e.
func NewOperator(e Engine) *Operator {
	return ufunc.NewOperator(e)
}

// NewFunction validates the metadata and returns a Function.
func NewFunction(name string, nin, nout int, kernel Kernel) (*Function, error) {
	return ufunc.NewFunction(name, nin, nout, kernel)
}

// Builtin returns the registered elementwise function with the given name.
func Builtin(name string) (*Function, error) {
	return ufunc.Builtin(name)
}

// BuiltinNames returns the names of all registered builtins, sorted.
func BuiltinNames() []string {
	return ufunc.BuiltinNames()
}
