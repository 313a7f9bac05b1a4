package array

import "fmt"

// DataProvider is an optional capability of array subtypes: an operand
// exposing its underlying raw array can participate in evaluation without
// being a plain *Raw. The returned array is borrowed, not transferred.
type DataProvider interface {
	ArrayData() *Raw
}

// From coerces an operand into a raw array, acquiring one reference the
// caller must release.
//
// Accepted operands:
//   - *Raw: used directly
//   - DataProvider subtypes: their underlying raw array
//   - Go numeric scalars and bool: a 0-d array
//   - []float64: a 1-d array (copied)
func From(v any) (*Raw, error) {
	switch x := v.(type) {
	case *Raw:
		return x.AddRef(), nil
	case DataProvider:
		data := x.ArrayData()
		if data == nil {
			return nil, fmt.Errorf("operand %T provided no array data", v)
		}
		return data.AddRef(), nil
	case float64:
		return Scalar(x), nil
	case float32:
		return Scalar(float64(x)), nil
	case int:
		return Scalar(float64(x)), nil
	case int32:
		return Scalar(float64(x)), nil
	case int64:
		return Scalar(float64(x)), nil
	case bool:
		r, err := NewRaw(Shape{}, Bool)
		if err != nil {
			return nil, err
		}
		r.AsBool()[0] = x
		return r, nil
	case []float64:
		if len(x) == 0 {
			return nil, fmt.Errorf("cannot convert empty slice to array")
		}
		return FromFloat64(x), nil
	default:
		return nil, fmt.Errorf("cannot convert %T to array", v)
	}
}

// IsScalar reports whether v is a bare Go scalar (numeric or bool), as
// opposed to an array or array subtype.
func IsScalar(v any) bool {
	switch v.(type) {
	case float64, float32, int, int32, int64, bool:
		return true
	default:
		return false
	}
}
