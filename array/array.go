// Package array provides the public API for the dense array data model:
// reference-counted raw buffers, shapes, data types and operand coercion.
//
// Most users interact with arrays through ufunc.Operator calls; this
// package is the currency those calls trade in.
package array

import (
	"github.com/rjkoch/diffpy.srfit/internal/array"
)

// Shape represents the dimensions of an array.
// An empty Shape is a 0-d (scalar) array holding one element.
type Shape = array.Shape

// DataType represents the underlying data type of an array.
type DataType = array.DataType

// Data type constants.
const (
	Float64 DataType = array.Float64
	Float32 DataType = array.Float32
	Int64   DataType = array.Int64
	Int32   DataType = array.Int32
	Bool    DataType = array.Bool
)

// Raw is the low-level dense array representation.
//
// Raw provides:
//   - Shape and type information via Shape(), DType()
//   - Typed data access via AsFloat64() and friends
//   - Reference counting via AddRef(), Release(), Refs()
//
// Every Raw an Operator call returns carries one reference owned by the
// caller.
type Raw = array.Raw

// DataProvider is the optional capability of array subtypes exposing their
// underlying raw array to the compute engine.
type DataProvider = array.DataProvider

// NewRaw creates a zero-filled array with the given shape and type.
func NewRaw(shape Shape, dtype DataType) (*Raw, error) {
	return array.NewRaw(shape, dtype)
}

// FromFloat64 creates a 1-d float64 array holding a copy of data.
func FromFloat64(data []float64) *Raw {
	return array.FromFloat64(data)
}

// Scalar creates a 0-d float64 array holding v.
func Scalar(v float64) *Raw {
	return array.Scalar(v)
}

// From coerces an operand into a raw array, acquiring one reference the
// caller must release.
func From(v any) (*Raw, error) {
	return array.From(v)
}

// IsScalar reports whether v is a bare Go scalar.
func IsScalar(v any) bool {
	return array.IsScalar(v)
}
