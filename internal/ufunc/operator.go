package ufunc

import (
	"fmt"

	"github.com/rjkoch/diffpy.srfit/internal/array"
)

// Operator is a named, arity-tagged handle over one registered elementwise
// function. It is constructed empty, bound exactly once to a Function, and
// dispatches calls to an Engine, wrapping each raw output into the result
// type the call's operands ask for.
//
// Example:
//
//	op := ufunc.NewOperator(cpu.New())
//	fn, _ := ufunc.Builtin("multiply")
//	op.Bind(fn, "*")
//	defer op.Close()
//	res, err := op.Call(a, b)
type Operator struct {
	name   string
	symbol string
	nin    int
	nout   int
	fn     *Function
	engine Engine
}

// NewOperator creates an unbound operator that will evaluate on e.
func NewOperator(e Engine) *Operator {
	return &Operator{engine: e}
}

// Bind adopts fn as the operator's function, deriving name and arities
// from it. symbol defaults to the function's name when empty. Binding an
// already-bound operator fails with ErrAlreadyBound; the handle is owned
// exclusively until Close.
func (op *Operator) Bind(fn *Function, symbol string) error {
	if op.fn != nil {
		return fmt.Errorf("%w: %q", ErrAlreadyBound, op.name)
	}
	if fn == nil || fn.Name == "" || fn.NIn < 1 || fn.NOut < 1 || fn.Kernel == nil {
		return ErrInvalidFunction
	}
	op.fn = fn
	op.name = fn.Name
	op.symbol = symbol
	if symbol == "" {
		op.symbol = fn.Name
	}
	op.nin = fn.NIn
	op.nout = fn.NOut
	return nil
}

// Close releases the operator's function handle. Idempotent; safe on a
// never-bound operator.
func (op *Operator) Close() {
	op.fn = nil
}

// Name returns the bound function's name, or "" when unbound.
func (op *Operator) Name() string { return op.name }

// Symbol returns the display symbol.
func (op *Operator) Symbol() string { return op.symbol }

// NIn returns the input arity.
func (op *Operator) NIn() int { return op.nin }

// NOut returns the output arity.
func (op *Operator) NOut() int { return op.nout }

// Call evaluates the bound function on args and wraps each output.
//
// args holds the NIn input operands, optionally followed by up to NOut
// output destinations (nil meaning "no destination supplied"). Operands
// may be plain *array.Raw arrays, Go scalars, or subtypes carrying the
// DataProvider / OutputWrapper / Prioritized capabilities.
//
// Returns the single wrapped output when NOut == 1, otherwise a []any of
// NOut wrapped outputs in slot order. On any failure the call is atomic:
// every buffer the engine produced is released before the error returns.
func (op *Operator) Call(args ...any) (any, error) {
	if op.fn == nil {
		return nil, ErrNotBound
	}
	if len(args) < op.nin || len(args) > op.nin+op.nout {
		return nil, fmt.Errorf("%w: %q takes %d to %d, got %d",
			ErrArgCount, op.name, op.nin, op.nin+op.nout, len(args))
	}

	// Wrap strategies depend only on the arguments, never on output
	// values; resolve them before the engine runs.
	plans := resolveWraps(op.nin, op.nout, args)

	raws := make([]*array.Raw, len(args))
	for i, a := range args {
		if i >= op.nin && a == nil {
			continue // missing destination stays nil for the engine
		}
		r, err := array.From(a)
		if err != nil {
			releaseAll(raws[:i])
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		raws[i] = r
	}

	outs, err := op.engine.Evaluate(op.fn, raws, nil)
	releaseAll(raws)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrEvaluate, op.name, err)
	}

	// Inputs come back only for symmetric cleanup.
	for i := 0; i < op.nin; i++ {
		outs[i].Release()
	}

	results := make([]any, op.nout)
	for i := 0; i < op.nout; i++ {
		raw := outs[op.nin+i]
		if raw.PendingWriteback() {
			raw = raw.ResolveWriteback()
		}
		res, err := plans[i].apply(op, args, i, raw)
		if err != nil {
			raw.Release()
			// References already transferred into earlier slots must go
			// too; wrapper-produced results own their buffers themselves.
			for _, prev := range results[:i] {
				if r, ok := prev.(*array.Raw); ok {
					r.Release()
				}
			}
			releaseAll(outs[op.nin+i+1:])
			return nil, err
		}
		results[i] = res
	}

	if op.nout == 1 {
		return results[0], nil
	}
	return results, nil
}

func releaseAll(raws []*array.Raw) {
	for _, r := range raws {
		if r != nil {
			r.Release()
		}
	}
}
