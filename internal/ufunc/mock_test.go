package ufunc_test

import (
	"github.com/rjkoch/diffpy.srfit/internal/array"
	"github.com/rjkoch/diffpy.srfit/internal/engine/cpu"
	"github.com/rjkoch/diffpy.srfit/internal/ufunc"
)

// recordingEngine wraps the CPU engine and keeps every buffer it hands
// out, so tests can check reference counts after success and failure
// paths. A non-nil fail short-circuits Evaluate.
type recordingEngine struct {
	inner    *cpu.Engine
	fail     error
	calls    int
	returned []*array.Raw
}

func newRecordingEngine() *recordingEngine {
	return &recordingEngine{inner: cpu.New()}
}

func (e *recordingEngine) Evaluate(fn *ufunc.Function, args []*array.Raw, kwargs map[string]any) ([]*array.Raw, error) {
	e.calls++
	if e.fail != nil {
		return nil, e.fail
	}
	outs, err := e.inner.Evaluate(fn, args, kwargs)
	if err != nil {
		return nil, err
	}
	e.returned = append(e.returned, outs...)
	return outs, nil
}

// wrapped is what subtype test operands produce from a raw output.
type wrapped struct {
	by   string
	data *array.Raw
	ctx  *ufunc.WrapContext
}

// subtype is an instrumented array subtype: it provides data to the
// engine and reconstructs outputs, with knobs for every wrap behavior the
// resolver must handle. It deliberately has no priority capability.
type subtype struct {
	name      string
	data      *array.Raw
	deferWrap bool  // report "no opinion"
	rejectCtx bool  // demand the nil-context form
	wrapErr   error // fail reconstruction outright
	ctxSeen   []*ufunc.WrapContext
}

func (s *subtype) ArrayData() *array.Raw {
	return s.data
}

func (s *subtype) WrapOutput(raw *array.Raw, ctx *ufunc.WrapContext) (any, error) {
	if s.rejectCtx && ctx != nil {
		return nil, ufunc.ErrUnsupportedContext
	}
	s.ctxSeen = append(s.ctxSeen, ctx)
	if s.wrapErr != nil {
		return nil, s.wrapErr
	}
	if s.deferWrap {
		return nil, ufunc.ErrDeferWrap
	}
	return &wrapped{by: s.name, data: raw.Clone(), ctx: ctx}, nil
}

// prioritySubtype adds the priority capability.
type prioritySubtype struct {
	subtype
	priority float64
}

func (s *prioritySubtype) ArrayPriority() float64 {
	return s.priority
}

// bareSubtype provides data but has no reconstruction method.
type bareSubtype struct {
	data *array.Raw
}

func (s *bareSubtype) ArrayData() *array.Raw {
	return s.data
}

func newSubtype(name string, data []float64) *subtype {
	return &subtype{name: name, data: array.FromFloat64(data)}
}

func newPrioritySubtype(name string, data []float64, priority float64) *prioritySubtype {
	return &prioritySubtype{
		subtype:  subtype{name: name, data: array.FromFloat64(data)},
		priority: priority,
	}
}

func releaseWrapped(res any) {
	switch v := res.(type) {
	case *wrapped:
		v.data.Release()
	case *array.Raw:
		v.Release()
	case []any:
		for _, item := range v {
			releaseWrapped(item)
		}
	}
}
