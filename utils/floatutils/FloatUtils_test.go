package floatutils

import "testing"

func TestClip(t *testing.T) {
	tests := []struct {
		value, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0.07, -0.07, 0.07, 0.07},
	}

	for _, test := range tests {
		if got := Clip(test.value, test.min, test.max); got != test.want {
			t.Errorf("Clip(%v, %v, %v) = %v, want %v", test.value, test.min,
				test.max, got, test.want)
		}
	}
}

func TestConversions(t *testing.T) {
	in := []float64{0, 1.5, -2.25}
	out := Float64(Float32(in))

	for i := range in {
		if in[i] != out[i] {
			t.Errorf("index %v: want %v, got %v", i, in[i], out[i])
		}
	}
}
