package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestNewSystemValidation(t *testing.T) {
	if _, err := NewSystem(0, 1); err == nil {
		t.Error("expected error for zero unknowns")
	}
	if _, err := NewSystem(3, 0); err == nil {
		t.Error("expected error for zero right-hand-side columns")
	}
	if _, err := NewSystem(3, 2); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestTripletAccumulation(t *testing.T) {
	sys, err := NewSystem(2, 1)
	if err != nil {
		t.Fatal(err)
	}
	sys.Add(0, 0, 1.5)
	sys.Add(0, 0, 0.5)
	sys.AddSym(0, 1, -1)
	sys.Add(1, 1, 2)

	a := sys.Matrix()
	assert.InDelta(t, 2.0, a.At(0, 0), 1e-14)
	assert.InDelta(t, -1.0, a.At(0, 1), 1e-14)
	assert.InDelta(t, -1.0, a.At(1, 0), 1e-14)
	assert.InDelta(t, 2.0, a.At(1, 1), 1e-14)
}

func TestSolveSPD(t *testing.T) {
	// A = [2 -1; -1 2], two right-hand-side columns solved in one call.
	sys, err := NewSystem(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	sys.Add(0, 0, 2)
	sys.Add(1, 1, 2)
	sys.AddSym(0, 1, -1)
	sys.AddRHS(0, 0, 1)
	sys.AddRHS(1, 1, 3)

	res, err := sys.Solve(nil, Options{})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	// A^-1 = 1/3 [2 1; 1 2]
	assert.InDelta(t, 2.0/3.0, res.X.At(0, 0), 1e-8)
	assert.InDelta(t, 1.0/3.0, res.X.At(1, 0), 1e-8)
	assert.InDelta(t, 1.0, res.X.At(0, 1), 1e-8)
	assert.InDelta(t, 2.0, res.X.At(1, 1), 1e-8)

	if res.NonZeros != 4 {
		t.Errorf("reported %d non-zeros, want 4", res.NonZeros)
	}
	if res.Iterations <= 0 {
		t.Errorf("reported %d iterations, want > 0", res.Iterations)
	}
}

func TestSolveWarmStart(t *testing.T) {
	sys, err := NewSystem(2, 1)
	if err != nil {
		t.Fatal(err)
	}
	sys.Add(0, 0, 2)
	sys.Add(1, 1, 2)
	sys.AddSym(0, 1, -1)
	sys.AddRHS(0, 0, 1)

	// Start from the exact solution; the result must reproduce it.
	x0 := mat.NewDense(2, 1, []float64{2.0 / 3.0, 1.0 / 3.0})
	res, err := sys.Solve(x0, Options{Tolerance: 1e-10})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	assert.InDelta(t, 2.0/3.0, res.X.At(0, 0), 1e-8)
	assert.InDelta(t, 1.0/3.0, res.X.At(1, 0), 1e-8)
}

func TestSolveIterationCapNotFatal(t *testing.T) {
	// Starve the solver of iterations; it must return whatever it reached
	// together with the residual, not an error.
	n := 20
	sys, err := NewSystem(n, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < n; i++ {
		sys.Add(i, i, 2)
		if i+1 < n {
			sys.AddSym(i, i+1, -1)
		}
	}
	sys.AddRHS(0, 0, 1)
	sys.AddRHS(n-1, 0, 1)

	res, err := sys.Solve(nil, Options{MaxIterations: 1})
	if err != nil {
		t.Fatalf("iteration cap must not be fatal: %v", err)
	}
	if res.Iterations != 1 {
		t.Errorf("performed %d iterations, want 1", res.Iterations)
	}
	if res.Residual <= 0 {
		t.Errorf("expected a non-zero residual, got %g", res.Residual)
	}
}
