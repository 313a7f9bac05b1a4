package ufunc

import (
	"errors"

	"github.com/rjkoch/diffpy.srfit/internal/array"
)

// DefaultPriority is the priority assumed for a contributing operand that
// does not implement Prioritized.
const DefaultPriority = 1.0

// WrapContext describes the invocation that produced a raw output. It is
// passed to OutputWrapper implementations so a subtype can reconstruct
// itself from the full call, and is nil when the wrapper has declared it
// does not accept context.
type WrapContext struct {
	Operator *Operator // the operator being called
	Args     []any     // the call's original arguments
	Index    int       // output slot being wrapped
}

// OutputWrapper is an optional capability of operands: a subtype that
// knows how to convert a raw computed buffer back into its own type.
//
// WrapOutput may return ErrDeferWrap to fall back to the default return
// rule, or ErrUnsupportedContext to be retried once with a nil context.
// The raw buffer is borrowed; the resolver keeps ownership.
type OutputWrapper interface {
	WrapOutput(raw *array.Raw, ctx *WrapContext) (any, error)
}

// Prioritized is an optional capability of operands contributing an
// OutputWrapper: when several inputs contribute, the strictly highest
// priority wins and ties keep the first-seen wrapper.
type Prioritized interface {
	ArrayPriority() float64
}

type wrapMode int

const (
	wrapDefault     wrapMode = iota // engine's standard return (0-d demotes to scalar)
	wrapPassthrough                 // raw buffer unchanged
	wrapCall                        // invoke a subtype's OutputWrapper
)

// wrapPlan is the per-output-slot strategy, resolved once per call.
type wrapPlan struct {
	mode    wrapMode
	wrapper OutputWrapper
}

// priorityOf returns the operand's priority, or DefaultPriority when the
// capability is absent.
func priorityOf(v any) float64 {
	if p, ok := v.(Prioritized); ok {
		return p.ArrayPriority()
	}
	return DefaultPriority
}

// resolveWraps decides the wrap strategy for every output slot of a call,
// before any output exists.
//
// Candidate selection over inputs: exact *array.Raw and bare scalars never
// contribute; among operands exposing an OutputWrapper, the one with the
// strictly highest priority wins, ties keeping the lowest input index. The
// candidate applies to every slot unless a supplied destination overrides
// it: an exact *array.Raw destination forces passthrough, a destination
// with its own OutputWrapper replaces the candidate for that slot only.
func resolveWraps(nin, nout int, args []any) []wrapPlan {
	var (
		candidate   OutputWrapper
		maxPriority float64
	)
	for i := 0; i < nin; i++ {
		a := args[i]
		if _, ok := a.(*array.Raw); ok {
			continue
		}
		if array.IsScalar(a) {
			continue
		}
		w, ok := a.(OutputWrapper)
		if !ok {
			continue // absent capability contributes nothing
		}
		p := priorityOf(a)
		if candidate == nil || p > maxPriority {
			candidate = w
			maxPriority = p
		}
	}

	fallback := wrapPlan{mode: wrapDefault}
	if candidate != nil {
		fallback = wrapPlan{mode: wrapCall, wrapper: candidate}
	}

	plans := make([]wrapPlan, nout)
	for i := range plans {
		plans[i] = fallback
		j := nin + i
		if j >= len(args) || args[j] == nil {
			continue // no destination supplied
		}
		if _, ok := args[j].(*array.Raw); ok {
			plans[i] = wrapPlan{mode: wrapPassthrough}
		} else if w, ok := args[j].(OutputWrapper); ok {
			plans[i] = wrapPlan{mode: wrapCall, wrapper: w}
		}
		// destination without a wrap capability keeps the candidate
	}
	return plans
}

// defaultReturn applies the engine's standard demotion rule: a 0-d result
// becomes its scalar value, everything else stays a plain array. Consumes
// the buffer reference.
func defaultReturn(raw *array.Raw) any {
	if raw.Shape().IsScalarShape() {
		v := raw.Item()
		raw.Release()
		return v
	}
	return raw
}

// apply converts one raw output buffer into the externally visible result.
// On success the buffer reference is consumed (transferred or released);
// on error it is left for the caller to release.
func (p wrapPlan) apply(op *Operator, args []any, index int, raw *array.Raw) (any, error) {
	switch p.mode {
	case wrapPassthrough:
		return raw, nil
	case wrapCall:
		res, err := p.wrapper.WrapOutput(raw, &WrapContext{Operator: op, Args: args, Index: index})
		if errors.Is(err, ErrUnsupportedContext) {
			res, err = p.wrapper.WrapOutput(raw, nil)
		}
		if errors.Is(err, ErrDeferWrap) {
			return defaultReturn(raw), nil
		}
		if err != nil {
			return nil, &WrapError{Index: index, Err: err}
		}
		raw.Release()
		return res, nil
	default:
		return defaultReturn(raw), nil
	}
}
