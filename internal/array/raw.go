package array

import (
	"fmt"
	"sync/atomic"
	"unsafe"
)

// rawBuffer is a reference-counted allocation shared by Raw views.
// Engines hand out references to the same destination buffer, so the
// count must be balanced on every exit path of a call.
type rawBuffer struct {
	data []byte
	refs atomic.Int32
}

// newRawBuffer creates a buffer with a reference count of 1.
func newRawBuffer(size int) *rawBuffer {
	buf := &rawBuffer{data: make([]byte, size)}
	buf.refs.Store(1)
	return buf
}

func (rb *rawBuffer) addRef() {
	rb.refs.Add(1)
}

// release decrements the count and reports whether it reached zero.
func (rb *rawBuffer) release() bool {
	n := rb.refs.Add(-1)
	if n < 0 {
		panic("array: buffer released more times than acquired")
	}
	if n == 0 {
		rb.data = nil
		return true
	}
	return false
}

// Raw is the low-level dense array representation: a reference-counted
// buffer plus shape, stride and type metadata.
//
// A Raw produced as a writeback temporary additionally carries the
// destination it must be copied back into; see NewWriteback.
type Raw struct {
	buf    *rawBuffer
	shape  Shape
	stride []int
	dtype  DataType
	base   *Raw // writeback destination, nil for ordinary arrays
}

// NewRaw creates a zero-filled array with the given shape and type.
func NewRaw(shape Shape, dtype DataType) (*Raw, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	byteSize := shape.NumElements() * dtype.Size()
	return &Raw{
		buf:    newRawBuffer(byteSize),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
	}, nil
}

// FromFloat64 creates a 1-d float64 array holding a copy of data.
// Panics if data is empty (zero-sized dimensions are not representable).
func FromFloat64(data []float64) *Raw {
	r, err := NewRaw(Shape{len(data)}, Float64)
	if err != nil {
		panic(err)
	}
	copy(r.AsFloat64(), data)
	return r
}

// Scalar creates a 0-d float64 array holding v.
func Scalar(v float64) *Raw {
	r, err := NewRaw(Shape{}, Float64)
	if err != nil {
		panic(err)
	}
	r.AsFloat64()[0] = v
	return r
}

// Shape returns the array's shape.
func (r *Raw) Shape() Shape {
	return r.shape
}

// Strides returns the array's memory strides.
func (r *Raw) Strides() []int {
	return r.stride
}

// DType returns the array's data type.
func (r *Raw) DType() DataType {
	return r.dtype
}

// NumElements returns the total number of elements.
func (r *Raw) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (r *Raw) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// AsFloat64 interprets the data as []float64.
// Panics if the array's dtype is not Float64.
func (r *Raw) AsFloat64() []float64 {
	if r.dtype != Float64 {
		panic(fmt.Sprintf("array dtype is %s, not float64", r.dtype))
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(&r.buf.data[0])), r.NumElements())
}

// AsFloat32 interprets the data as []float32.
// Panics if the array's dtype is not Float32.
func (r *Raw) AsFloat32() []float32 {
	if r.dtype != Float32 {
		panic(fmt.Sprintf("array dtype is %s, not float32", r.dtype))
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&r.buf.data[0])), r.NumElements())
}

// AsInt64 interprets the data as []int64.
// Panics if the array's dtype is not Int64.
func (r *Raw) AsInt64() []int64 {
	if r.dtype != Int64 {
		panic(fmt.Sprintf("array dtype is %s, not int64", r.dtype))
	}
	return unsafe.Slice((*int64)(unsafe.Pointer(&r.buf.data[0])), r.NumElements())
}

// AsInt32 interprets the data as []int32.
// Panics if the array's dtype is not Int32.
func (r *Raw) AsInt32() []int32 {
	if r.dtype != Int32 {
		panic(fmt.Sprintf("array dtype is %s, not int32", r.dtype))
	}
	return unsafe.Slice((*int32)(unsafe.Pointer(&r.buf.data[0])), r.NumElements())
}

// AsBool interprets the data as []bool.
// Panics if the array's dtype is not Bool.
func (r *Raw) AsBool() []bool {
	if r.dtype != Bool {
		panic(fmt.Sprintf("array dtype is %s, not bool", r.dtype))
	}
	return unsafe.Slice((*bool)(unsafe.Pointer(&r.buf.data[0])), r.NumElements())
}

// ValueAt returns the element at flat index i converted to float64.
func (r *Raw) ValueAt(i int) float64 {
	switch r.dtype {
	case Float64:
		return r.AsFloat64()[i]
	case Float32:
		return float64(r.AsFloat32()[i])
	case Int64:
		return float64(r.AsInt64()[i])
	case Int32:
		return float64(r.AsInt32()[i])
	case Bool:
		if r.AsBool()[i] {
			return 1
		}
		return 0
	default:
		panic("unknown data type")
	}
}

// SetValueAt stores v at flat index i, converting to the array's dtype.
func (r *Raw) SetValueAt(i int, v float64) {
	switch r.dtype {
	case Float64:
		r.AsFloat64()[i] = v
	case Float32:
		r.AsFloat32()[i] = float32(v)
	case Int64:
		r.AsInt64()[i] = int64(v)
	case Int32:
		r.AsInt32()[i] = int32(v)
	case Bool:
		r.AsBool()[i] = v != 0
	default:
		panic("unknown data type")
	}
}

// Item returns the value of a 0-d array as a Go scalar.
// Panics if the array is not 0-d.
func (r *Raw) Item() any {
	if !r.shape.IsScalarShape() {
		panic(fmt.Sprintf("Item() only works for 0-d arrays, got shape %v", r.shape))
	}
	switch r.dtype {
	case Float64:
		return r.AsFloat64()[0]
	case Float32:
		return r.AsFloat32()[0]
	case Int64:
		return r.AsInt64()[0]
	case Int32:
		return r.AsInt32()[0]
	case Bool:
		return r.AsBool()[0]
	default:
		panic("unknown data type")
	}
}

// AddRef acquires an additional reference to the underlying buffer.
func (r *Raw) AddRef() *Raw {
	r.buf.addRef()
	return r
}

// Release drops one reference to the underlying buffer and deallocates
// when the count reaches zero. An unresolved writeback temporary also
// drops the reference it holds on its destination.
func (r *Raw) Release() {
	if r.buf.release() {
		if r.base != nil {
			r.base.Release()
			r.base = nil
		}
	}
}

// Refs returns the current reference count. Intended for accounting in
// tests and leak checks, not for synchronization decisions.
func (r *Raw) Refs() int32 {
	return r.buf.refs.Load()
}

// Clone creates a new view sharing the same buffer (reference counted).
func (r *Raw) Clone() *Raw {
	r.buf.addRef()
	return &Raw{
		buf:    r.buf,
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		dtype:  r.dtype,
	}
}

// String returns a human-readable representation of the array.
func (r *Raw) String() string {
	return fmt.Sprintf("Raw[%s]%v", r.dtype, r.shape)
}

// NewWriteback creates a float64 temporary whose contents will be copied
// back into base when resolved. The temporary holds a reference to base
// for its lifetime; ResolveWriteback transfers that reference to the
// caller, an unresolved Release drops it.
func NewWriteback(shape Shape, base *Raw) (*Raw, error) {
	r, err := NewRaw(shape, Float64)
	if err != nil {
		return nil, err
	}
	base.AddRef()
	r.base = base
	return r, nil
}

// PendingWriteback reports whether the array is an unresolved writeback
// temporary.
func (r *Raw) PendingWriteback() bool {
	return r.base != nil
}

// ResolveWriteback copies the temporary's contents into its destination,
// releases the temporary and returns the destination. The returned
// reference is the one the temporary held; the caller owns it.
func (r *Raw) ResolveWriteback() *Raw {
	base := r.base
	if base == nil {
		return r
	}
	for i := 0; i < r.NumElements(); i++ {
		base.SetValueAt(i, r.ValueAt(i))
	}
	r.base = nil
	r.Release()
	return base
}
