package gen

import "testing"

func TestNoise2DDeterministic(t *testing.T) {
	a := NewNoise(12345)
	b := NewNoise(12345)

	for i := range 100 {
		x := float64(i) * 0.1
		y := float64(i) * 0.2
		if a.Noise2D(x, y) != b.Noise2D(x, y) {
			t.Fatalf("Noise2D not deterministic at (%f, %f)", x, y)
		}
	}
}

func TestNoise2DRange(t *testing.T) {
	n := NewNoise(42)

	for i := range 10000 {
		x := float64(i)*0.37 - 500
		y := float64(i)*0.53 - 500
		if v := n.Noise2D(x, y); v < -1 || v > 1 {
			t.Fatalf("Noise2D(%f, %f) = %f, out of [-1,1]", x, y, v)
		}
	}
}

func TestNoise3DRange(t *testing.T) {
	n := NewNoise(42)

	for i := range 10000 {
		x := float64(i)*0.37 - 500
		y := float64(i)*0.53 - 500
		z := float64(i)*0.71 - 500
		if v := n.Noise3D(x, y, z); v < -1 || v > 1 {
			t.Fatalf("Noise3D(%f, %f, %f) = %f, out of [-1,1]", x, y, z, v)
		}
	}
}

func TestNoiseSeedsDiffer(t *testing.T) {
	a := NewNoise(1)
	b := NewNoise(2)

	same := 0
	for i := range 100 {
		x := float64(i)*0.31 + 0.5
		if a.Noise2D(x, x*0.7) == b.Noise2D(x, x*0.7) {
			same++
		}
	}
	if same > 10 {
		t.Errorf("seeds 1 and 2 agree on %d of 100 samples", same)
	}
}

func TestNoiseAtLatticeOrigin(t *testing.T) {
	n := NewNoise(7)
	if got := n.Noise2D(0, 0); got != 0 {
		t.Errorf("Noise2D(0, 0) = %f, want 0", got)
	}
	if got := n.Noise3D(0, 0, 0); got != 0 {
		t.Errorf("Noise3D(0, 0, 0) = %f, want 0", got)
	}
}

func TestFloor(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0}, {0.5, 0}, {-0.5, -1}, {-1, -1}, {2.9999, 2},
	}
	for _, tt := range tests {
		if got := floor(tt.in); got != tt.want {
			t.Errorf("floor(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
