package random

import "testing"

func TestSeededSourceIsReproducible(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)

	for i := 0; i < 1000; i++ {
		if got, want := a.RandInt(1, 1000), b.RandInt(1, 1000); got != want {
			t.Fatalf("draw %d diverged: %d vs %d", i, got, want)
		}
	}
}

func TestRandIntBounds(t *testing.T) {
	src := NewSeeded(7)
	for i := 0; i < 10000; i++ {
		v := src.RandInt(8, 33)
		if v < 8 || v > 33 {
			t.Fatalf("RandInt out of range: %d", v)
		}
	}
}

func TestRandIntInclusiveEnds(t *testing.T) {
	src := NewSeeded(3)
	seen := make(map[int]bool)
	for i := 0; i < 10000; i++ {
		seen[src.RandInt(0, 4)] = true
	}
	for v := 0; v <= 4; v++ {
		if !seen[v] {
			t.Fatalf("value %d never drawn", v)
		}
	}
}

func TestTruncGaussClamps(t *testing.T) {
	src := NewSeeded(11)
	for i := 0; i < 10000; i++ {
		v := TruncGauss(src, 50, 20, 30, 90)
		if v < 30 || v > 90 {
			t.Fatalf("TruncGauss out of range: %f", v)
		}
	}
}

func TestShufflePreservesElements(t *testing.T) {
	src := NewSeeded(5)
	vals := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	src.Shuffle(len(vals), func(i, j int) { vals[i], vals[j] = vals[j], vals[i] })

	seen := make(map[int]bool, len(vals))
	for _, v := range vals {
		seen[v] = true
	}
	if len(seen) != 10 {
		t.Fatalf("shuffle lost elements: %v", vals)
	}
}
