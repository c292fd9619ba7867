package geometry

import (
	"math"
	"testing"
)

// floatEquals is a helper for testing scalar float values with epsilon.
func floatEquals(a, b float32) bool {
	return math.Abs(float64(a-b)) <= Epsilon
}

// vecEquals compares both components with floatEquals.
func vecEquals(a, b Vector2D) bool {
	return floatEquals(a.X, b.X) && floatEquals(a.Y, b.Y)
}

func TestVector_String(t *testing.T) {
	v := Vector2D{1.234, 5.678}
	want := "(1.23, 5.68)"
	if got := v.String(); got != want {
		t.Errorf("Vector2D.String() = %q; want %q", got, want)
	}
}

func TestVector_Arithmetic(t *testing.T) {
	v1 := Vector2D{1, 2}
	v2 := Vector2D{3, 4}

	t.Run("Add", func(t *testing.T) {
		want := Vector2D{4, 6}
		if got := v1.Add(v2); !vecEquals(got, want) {
			t.Errorf("%v.Add(%v) = %v; want %v", v1, v2, got, want)
		}
	})

	t.Run("Sub", func(t *testing.T) {
		want := Vector2D{-2, -2}
		if got := v1.Sub(v2); !vecEquals(got, want) {
			t.Errorf("%v.Sub(%v) = %v; want %v", v1, v2, got, want)
		}
	})

	t.Run("Mul", func(t *testing.T) {
		want := Vector2D{2, 4}
		if got := v1.Mul(2); !vecEquals(got, want) {
			t.Errorf("%v.Mul(2) = %v; want %v", v1, got, want)
		}
	})
}

func TestVector_Magnitude(t *testing.T) {
	v := Vector2D{3, 4}

	t.Run("Len", func(t *testing.T) {
		if got := v.Len(); got != 5 {
			t.Errorf("Len = %v; want 5", got)
		}
	})

	t.Run("LenSqr", func(t *testing.T) {
		if got := v.LenSqr(); got != 25 {
			t.Errorf("LenSqr = %v; want 25", got)
		}
	})

	t.Run("Normalize", func(t *testing.T) {
		got := v.Normalize()
		if !vecEquals(got, Vector2D{0.6, 0.8}) {
			t.Errorf("Normalize = %v; want (0.6, 0.8)", got)
		}
		if !floatEquals(got.Len(), 1.0) {
			t.Errorf("Normalize length = %v; want 1", got.Len())
		}
	})

	t.Run("NormalizeZero", func(t *testing.T) {
		if got := (Vector2D{}).Normalize(); got != (Vector2D{}) {
			t.Errorf("Normalize(0,0) = %v; want (0,0)", got)
		}
	})

	t.Run("SetLen", func(t *testing.T) {
		got := v.SetLen(10)
		if !vecEquals(got, Vector2D{6, 8}) {
			t.Errorf("SetLen(10) = %v; want (6, 8)", got)
		}
		if zero := (Vector2D{}).SetLen(10); zero != (Vector2D{}) {
			t.Errorf("SetLen on zero vector = %v; want (0,0)", zero)
		}
	})

	t.Run("Limit", func(t *testing.T) {
		tests := []struct {
			name string
			in   Vector2D
			max  float32
			want Vector2D
		}{
			{"above", Vector2D{3, 4}, 1, Vector2D{0.6, 0.8}},
			{"below", Vector2D{0.3, 0.4}, 1, Vector2D{0.3, 0.4}},
			{"zero", Vector2D{}, 1, Vector2D{}},
		}
		for _, tt := range tests {
			if got := tt.in.Limit(tt.max); !vecEquals(got, tt.want) {
				t.Errorf("%s: %v.Limit(%v) = %v; want %v", tt.name, tt.in, tt.max, got, tt.want)
			}
		}
	})
}

func TestVector_Distance(t *testing.T) {
	v1 := Vector2D{1, 1}
	v2 := Vector2D{4, 5}

	if got := v1.DistanceTo(v2); got != 5 {
		t.Errorf("DistanceTo = %v; want 5", got)
	}
	if got := v1.DistanceSquaredTo(v2); got != 25 {
		t.Errorf("DistanceSquaredTo = %v; want 25", got)
	}
	if got := v1.DistanceTo(v1); got != 0 {
		t.Errorf("DistanceTo self = %v; want 0", got)
	}
}

func TestVector_IsZero(t *testing.T) {
	if !(Vector2D{}).IsZero() {
		t.Error("zero vector not reported as zero")
	}
	if !(Vector2D{Epsilon / 2, 0}).IsZero() {
		t.Error("vector shorter than Epsilon not reported as zero")
	}
	if (Vector2D{1, 2}).IsZero() {
		t.Error("(1, 2) reported as zero")
	}
}
