package mapper

import (
	"errors"
	"fmt"
	"io"

	"github.com/meshworks/surfmap/solver"
	"gonum.org/v1/gonum/mat"
)

// SymmetricLinearSolver computes the free-point values by assembling the
// symmetric weighted-Laplacian system over the free points and solving it
// iteratively for all codomain components at once. The current values at
// the free points serve as the warm-start initial guess, so repeated solves
// with slowly changing boundary conditions converge quickly.
//
// MaxIterations and Tolerance values <= 0 select the solver library
// defaults. When Report is non-nil a human-readable summary of the solve is
// written to it. Iterations and Residual hold the outcome of the last
// solve; a large residual signals poor numerical quality but is never
// treated as an error.
type SymmetricLinearSolver struct {
	Weights       WeightPolicy
	MaxIterations int
	Tolerance     float64
	Report        io.Writer

	Iterations int
	Residual   float64
}

// Solve assembles and solves the reduced Dirichlet system, then scatters
// the solution back to the free points of the state.
func (sl *SymmetricLinearSolver) Solve(st *State) error {
	if sl.Weights == nil {
		return errors.New("symmetric linear solver: missing weight policy")
	}
	if b, ok := sl.Weights.(SurfaceWeightPolicy); ok {
		b.Bind(st.Surface(), st.Edges())
	}

	part := st.Partition()
	n := part.NumFree()
	m := st.NumComponents()
	if n == 0 {
		// Every point is fixed, the input values already are the map.
		sl.Iterations = 0
		sl.Residual = 0
		return nil
	}

	sys, err := sl.assemble(st)
	if err != nil {
		return err
	}

	// Warm start from the current values at the free points.
	x0 := mat.NewDense(n, m, nil)
	for r := 0; r < n; r++ {
		i := part.FreePointID(r)
		for l := 0; l < m; l++ {
			x0.Set(r, l, st.Value(i, l))
		}
	}

	res, err := sys.Solve(x0, solver.Options{
		MaxIterations: sl.MaxIterations,
		Tolerance:     sl.Tolerance,
	})
	if err != nil {
		return fmt.Errorf("symmetric linear solver: %w", err)
	}

	for r := 0; r < n; r++ {
		i := part.FreePointID(r)
		for l := 0; l < m; l++ {
			st.SetValue(i, l, res.X.At(r, l))
		}
	}
	sl.Iterations = res.Iterations
	sl.Residual = res.Residual

	if sl.Report != nil {
		fmt.Fprintf(sl.Report, "\n")
		fmt.Fprintf(sl.Report, "  No. of surface points             = %d\n", st.Surface().NumPoints())
		fmt.Fprintf(sl.Report, "  No. of free points                = %d\n", n)
		fmt.Fprintf(sl.Report, "  No. of non-zero stiffness values  = %d\n", res.NonZeros)
		fmt.Fprintf(sl.Report, "  Dimension of surface map codomain = %d\n", m)
		fmt.Fprintf(sl.Report, "  No. of iterations                 = %d\n", res.Iterations)
		fmt.Fprintf(sl.Report, "  Estimated error                   = %g\n", res.Residual)
	}
	return nil
}

// assemble builds the reduced system in a single traversal of all mesh
// edges. Edges with both endpoints fixed contribute nothing; edges with one
// fixed endpoint fold the known boundary value into the right-hand side;
// edges between free points become symmetric off-diagonal entries. Each
// free diagonal entry equals the sum of its incident edge weights, making
// the matrix symmetric positive definite for a connected surface with at
// least one fixed point.
func (sl *SymmetricLinearSolver) assemble(st *State) (*solver.System, error) {
	part := st.Partition()
	n := part.NumFree()
	m := st.NumComponents()

	sys, err := solver.NewSystem(n, m)
	if err != nil {
		return nil, fmt.Errorf("symmetric linear solver: %w", err)
	}

	wii := make([]float64, n)
	for _, e := range st.Edges().Edges() {
		i, j := e.A, e.B
		r := part.FreeIndex(i)
		c := part.FreeIndex(j)
		if r < 0 && c < 0 {
			continue
		}
		w := sl.Weights.Weight(i, j)
		switch {
		case r >= 0 && c >= 0:
			sys.AddSym(r, c, -w)
		case r >= 0:
			for l := 0; l < m; l++ {
				sys.AddRHS(r, l, w*st.Value(j, l))
			}
		default:
			for l := 0; l < m; l++ {
				sys.AddRHS(c, l, w*st.Value(i, l))
			}
		}
		if r >= 0 {
			wii[r] += w
		}
		if c >= 0 {
			wii[c] += w
		}
	}
	for r := 0; r < n; r++ {
		sys.Add(r, r, wii[r])
	}
	return sys, nil
}
