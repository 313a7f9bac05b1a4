package ufunc

import "github.com/rjkoch/diffpy.srfit/internal/array"

// Engine executes the numeric kernel of an elementwise function. It is the
// external collaborator of the operator core: broadcasting rules, buffer
// allocation and destination handling live behind this interface.
//
// Evaluate receives the call's coerced arguments: the first fn.NIn entries
// are inputs, any following entries are supplied output destinations (nil
// meaning "allocate"). On success it returns fn.NIn+fn.NOut buffers in
// argument order, inputs first, each carrying one reference the caller must
// release or transfer. An output slot backed by a destination of foreign
// layout may come back as a writeback temporary (see array.NewWriteback).
//
// Implementations:
//   - engine/cpu: reference elementwise execution in pure Go
type Engine interface {
	Evaluate(fn *Function, args []*array.Raw, kwargs map[string]any) ([]*array.Raw, error)
}
