// Package array provides the dense array data model for the srfit equation
// core: shapes, data types, reference-counted raw buffers and operand
// coercion.
package array

// DataType represents runtime type information for raw arrays.
type DataType int

// Supported data types.
const (
	Float64 DataType = iota
	Float32
	Int64
	Int32
	Bool
)

// Size returns the byte size of one element of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float64, Int64:
		return 8
	case Float32, Int32:
		return 4
	case Bool:
		return 1
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float64:
		return "float64"
	case Float32:
		return "float32"
	case Int64:
		return "int64"
	case Int32:
		return "int32"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}
