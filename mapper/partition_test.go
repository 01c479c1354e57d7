package mapper

import (
	"math/rand"
	"testing"
)

func TestPartitionBijection(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 10; trial++ {
		n := 1 + rng.Intn(200)
		fixed := make([]bool, n)
		for i := range fixed {
			fixed[i] = rng.Float64() < 0.3
		}
		p := NewPartition(fixed)

		if p.NumPoints() != n {
			t.Fatalf("partition holds %d points, want %d", p.NumPoints(), n)
		}
		if p.NumFree()+p.NumFixed() != n {
			t.Fatalf("free %d + fixed %d != %d points", p.NumFree(), p.NumFixed(), n)
		}

		// Every point is in exactly one class and round-trips through its
		// compact index.
		for ptID := 0; ptID < n; ptID++ {
			r, k := p.FreeIndex(ptID), p.FixedIndex(ptID)
			if (r >= 0) == (k >= 0) {
				t.Fatalf("point %d: free index %d and fixed index %d", ptID, r, k)
			}
			if r >= 0 && p.FreePointID(r) != ptID {
				t.Fatalf("free point %d does not round-trip through index %d", ptID, r)
			}
			if k >= 0 && p.FixedPointID(k) != ptID {
				t.Fatalf("fixed point %d does not round-trip through index %d", ptID, k)
			}
		}

		// Compact indices enumerate each class without gaps.
		for r := 0; r < p.NumFree(); r++ {
			ptID := p.FreePointID(r)
			if !p.IsFree(ptID) || p.FreeIndex(ptID) != r {
				t.Fatalf("free ordinal %d is not a bijection", r)
			}
		}
		for k := 0; k < p.NumFixed(); k++ {
			ptID := p.FixedPointID(k)
			if p.IsFree(ptID) || p.FixedIndex(ptID) != k {
				t.Fatalf("fixed ordinal %d is not a bijection", k)
			}
		}
	}
}

func TestPartitionSignedIndex(t *testing.T) {
	fixed := []bool{true, false, false, true, false}
	p := NewPartition(fixed)

	for ptID := range fixed {
		s := p.SignedIndex(ptID)
		if fixed[ptID] {
			if s >= 0 {
				t.Errorf("fixed point %d has non-negative signed index %d", ptID, s)
			}
			// Decode -(k+1) back to the fixed ordinal.
			if k := -s - 1; p.FixedPointID(k) != ptID {
				t.Errorf("signed index %d of point %d does not decode", s, ptID)
			}
		} else {
			if s < 0 {
				t.Errorf("free point %d has negative signed index %d", ptID, s)
			}
			if p.FreePointID(s) != ptID {
				t.Errorf("signed index %d of point %d does not decode", s, ptID)
			}
		}
	}
}

func TestPartitionAllFreeAllFixed(t *testing.T) {
	p := NewPartition(make([]bool, 4))
	if p.NumFree() != 4 || p.NumFixed() != 0 {
		t.Errorf("all-free partition reports %d free, %d fixed", p.NumFree(), p.NumFixed())
	}

	fixed := []bool{true, true, true}
	p = NewPartition(fixed)
	if p.NumFree() != 0 || p.NumFixed() != 3 {
		t.Errorf("all-fixed partition reports %d free, %d fixed", p.NumFree(), p.NumFixed())
	}
}
