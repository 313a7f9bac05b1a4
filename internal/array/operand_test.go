package array

import (
	"testing"
)

type provider struct {
	data *Raw
}

func (p *provider) ArrayData() *Raw { return p.data }

type emptyProvider struct{}

func (emptyProvider) ArrayData() *Raw { return nil }

func TestFromRaw(t *testing.T) {
	r := FromFloat64([]float64{1, 2})
	got, err := From(r)
	if err != nil {
		t.Fatalf("From failed: %v", err)
	}
	if got != r {
		t.Error("From(*Raw) should return the same array")
	}
	if r.Refs() != 2 {
		t.Errorf("Refs() = %d, want 2 (From acquires a reference)", r.Refs())
	}
	got.Release()
	r.Release()
}

func TestFromScalars(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{2.5, 2.5},
		{float32(1.5), 1.5},
		{int(3), 3},
		{int32(4), 4},
		{int64(5), 5},
	}

	for _, tc := range cases {
		r, err := From(tc.in)
		if err != nil {
			t.Fatalf("From(%T) failed: %v", tc.in, err)
		}
		if !r.Shape().IsScalarShape() {
			t.Errorf("From(%T) shape = %v, want 0-d", tc.in, r.Shape())
		}
		if got := r.ValueAt(0); got != tc.want {
			t.Errorf("From(%T) value = %v, want %v", tc.in, got, tc.want)
		}
		r.Release()
	}
}

func TestFromBool(t *testing.T) {
	r, err := From(true)
	if err != nil {
		t.Fatalf("From(bool) failed: %v", err)
	}
	if r.DType() != Bool {
		t.Errorf("DType() = %v, want bool", r.DType())
	}
	if !r.AsBool()[0] {
		t.Error("value = false, want true")
	}
	r.Release()
}

func TestFromSlice(t *testing.T) {
	r, err := From([]float64{1, 2, 3})
	if err != nil {
		t.Fatalf("From failed: %v", err)
	}
	if !r.Shape().Equal(Shape{3}) {
		t.Errorf("shape = %v, want [3]", r.Shape())
	}
	r.Release()

	if _, err := From([]float64{}); err == nil {
		t.Error("expected error for empty slice")
	}
}

func TestFromDataProvider(t *testing.T) {
	data := FromFloat64([]float64{1, 2})
	p := &provider{data: data}

	r, err := From(p)
	if err != nil {
		t.Fatalf("From failed: %v", err)
	}
	if r != data {
		t.Error("From should return the provider's underlying array")
	}
	if data.Refs() != 2 {
		t.Errorf("Refs() = %d, want 2", data.Refs())
	}
	r.Release()
	data.Release()

	if _, err := From(emptyProvider{}); err == nil {
		t.Error("expected error for provider returning nil")
	}
}

func TestFromRejectsUnknownTypes(t *testing.T) {
	if _, err := From(struct{}{}); err == nil {
		t.Error("expected error for plain struct")
	}
	if _, err := From("3.14"); err == nil {
		t.Error("expected error for string")
	}
	if _, err := From(nil); err == nil {
		t.Error("expected error for nil")
	}
}

func TestIsScalar(t *testing.T) {
	for _, v := range []any{1.0, float32(1), 1, int32(1), int64(1), true} {
		if !IsScalar(v) {
			t.Errorf("IsScalar(%T) = false, want true", v)
		}
	}

	r := FromFloat64([]float64{1})
	defer r.Release()
	for _, v := range []any{r, []float64{1}, "x", nil, &provider{}} {
		if IsScalar(v) {
			t.Errorf("IsScalar(%T) = true, want false", v)
		}
	}
}
