package array

import "testing"

func TestShapeNumElements(t *testing.T) {
	cases := []struct {
		shape Shape
		want  int
	}{
		{Shape{}, 1},
		{Shape{4}, 4},
		{Shape{2, 3}, 6},
		{Shape{2, 3, 4}, 24},
	}
	for _, tc := range cases {
		if got := tc.shape.NumElements(); got != tc.want {
			t.Errorf("%v.NumElements() = %d, want %d", tc.shape, got, tc.want)
		}
	}
}

func TestShapeValidate(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("valid shape rejected: %v", err)
	}
	if err := (Shape{}).Validate(); err != nil {
		t.Errorf("0-d shape rejected: %v", err)
	}
	if err := (Shape{2, 0}).Validate(); err == nil {
		t.Error("zero dimension accepted")
	}
	if err := (Shape{-1}).Validate(); err == nil {
		t.Error("negative dimension accepted")
	}
}

func TestShapeEqual(t *testing.T) {
	if !(Shape{2, 3}).Equal(Shape{2, 3}) {
		t.Error("equal shapes reported unequal")
	}
	if (Shape{2, 3}).Equal(Shape{3, 2}) {
		t.Error("different shapes reported equal")
	}
	if (Shape{2}).Equal(Shape{2, 1}) {
		t.Error("different ranks reported equal")
	}
	if !(Shape{}).Equal(Shape{}) {
		t.Error("0-d shapes reported unequal")
	}
}

func TestShapeClone(t *testing.T) {
	s := Shape{2, 3}
	c := s.Clone()
	c[0] = 9
	if s[0] != 2 {
		t.Error("Clone should not share backing storage")
	}
}

func TestComputeStrides(t *testing.T) {
	cases := []struct {
		shape Shape
		want  []int
	}{
		{Shape{}, []int{}},
		{Shape{4}, []int{1}},
		{Shape{2, 3}, []int{3, 1}},
		{Shape{2, 3, 4}, []int{12, 4, 1}},
	}
	for _, tc := range cases {
		got := tc.shape.ComputeStrides()
		if len(got) != len(tc.want) {
			t.Errorf("%v.ComputeStrides() = %v, want %v", tc.shape, got, tc.want)
			continue
		}
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Errorf("%v.ComputeStrides() = %v, want %v", tc.shape, got, tc.want)
				break
			}
		}
	}
}
