package mapper

import (
	"errors"
	"fmt"

	"github.com/meshworks/surfmap/mesh"
	"gonum.org/v1/gonum/mat"
)

// SolveStrategy computes the map values at all free points of a prepared
// run state. A strategy may install its own output mapping on the state;
// otherwise the driver builds the default piecewise-linear map after the
// solve.
type SolveStrategy interface {
	Solve(st *State) error
}

// Remesher adapts the working surface before the solve, e.g. to establish
// topological prerequisites such as manifoldness. It receives the working
// surface, value array and fixed mask (mask may be nil) and returns the
// possibly replaced versions of all three.
type Remesher interface {
	Remesh(s *mesh.Surface, values *mat.Dense, mask []float64) (*mesh.Surface, *mat.Dense, []float64, error)
}

// Mapper computes a continuous map of a surface mesh onto a target codomain
// by solving a boundary-value problem over the mesh graph. Input supplies
// the map value at every point, one column per codomain component; values
// at fixed points act as Dirichlet boundary conditions while values at free
// points serve as the initial guess. Mask marks fixed points (nonzero
// entries); when nil, all mesh boundary points are fixed.
//
// Run executes the fixed three-phase sequence initialize, Strategy.Solve,
// finalize. The caller's mesh and arrays are never modified; all work
// happens on an internal working copy.
type Mapper struct {
	Mesh     *mesh.Surface
	Input    *mat.Dense
	Mask     []float64
	Remesher Remesher
	Strategy SolveStrategy

	output *PiecewiseLinearMap
}

// State is the working state of a single run, handed to the solve strategy.
type State struct {
	surface *mesh.Surface
	edges   *mesh.EdgeTable
	values  *mat.Dense
	part    *Partition
	output  *PiecewiseLinearMap
}

// Surface returns the working surface copy.
func (st *State) Surface() *mesh.Surface {
	return st.surface
}

// Edges returns the edge table of the working surface.
func (st *State) Edges() *mesh.EdgeTable {
	return st.edges
}

// Partition returns the fixed/free point partition.
func (st *State) Partition() *Partition {
	return st.part
}

// NumComponents returns the codomain dimension of the map.
func (st *State) NumComponents() int {
	_, m := st.values.Dims()
	return m
}

// Value returns component l of the current map value at a point.
func (st *State) Value(ptID, l int) float64 {
	return st.values.At(ptID, l)
}

// SetValue sets component l of the map value at a point.
func (st *State) SetValue(ptID, l int, v float64) {
	st.values.Set(ptID, l, v)
}

// SetOutput installs a strategy-specific output mapping, bypassing the
// default piecewise-linear map construction.
func (st *State) SetOutput(out *PiecewiseLinearMap) {
	st.output = out
}

// Run computes the surface map. It returns an error only for fatal
// configuration problems detected before the solve; numerical quality of
// the solve is reported through the strategy, never as an error.
func (mp *Mapper) Run() error {
	st, err := mp.initialize()
	if err != nil {
		return err
	}
	if err := mp.Strategy.Solve(st); err != nil {
		return err
	}
	mp.finalize(st)
	return nil
}

// Output returns the mapping computed by the last successful Run.
func (mp *Mapper) Output() *PiecewiseLinearMap {
	return mp.output
}

// initialize validates the configuration, prepares the working surface and
// value array, and builds the fixed/free point partition.
func (mp *Mapper) initialize() (*State, error) {
	// Discard any previous output so a re-run recomputes from scratch.
	mp.output = nil

	if mp.Mesh == nil {
		return nil, errors.New("mapper: missing input surface mesh")
	}
	if mp.Mesh.NumPolys() == 0 {
		return nil, errors.New("mapper: input point set must be a surface mesh")
	}
	if mp.Strategy == nil {
		return nil, errors.New("mapper: missing solve strategy")
	}
	if mp.Input == nil {
		return nil, errors.New("mapper: missing boundary conditions")
	}
	numPts := mp.Mesh.NumPoints()
	if rows, _ := mp.Input.Dims(); rows != numPts {
		return nil, fmt.Errorf("mapper: input map values have %d rows, mesh has %d points", rows, numPts)
	}
	if mp.Mask != nil && len(mp.Mask) != numPts {
		return nil, fmt.Errorf("mapper: input mask has %d entries, mesh has %d points", len(mp.Mask), numPts)
	}

	// Working copies: surface topology only, values deep-copied so the
	// caller's arrays stay untouched.
	surface := mp.Mesh.PolygonalCopy()
	values := mat.DenseCopyOf(mp.Input)
	mask := mp.Mask

	if mp.Remesher != nil {
		var err error
		surface, values, mask, err = mp.Remesher.Remesh(surface, values, mask)
		if err != nil {
			return nil, fmt.Errorf("mapper: remeshing: %w", err)
		}
		if rows, _ := values.Dims(); rows != surface.NumPoints() {
			return nil, fmt.Errorf("mapper: remeshed values have %d rows, surface has %d points", rows, surface.NumPoints())
		}
		if mask != nil && len(mask) != surface.NumPoints() {
			return nil, fmt.Errorf("mapper: remeshed mask has %d entries, surface has %d points", len(mask), surface.NumPoints())
		}
	}

	surface.BuildLinks()
	edges := mesh.NewEdgeTable(surface)

	if mask == nil {
		mask = boundaryMask(edges, surface.NumPoints())
	}
	fixed := make([]bool, surface.NumPoints())
	for ptID, v := range mask {
		fixed[ptID] = v != 0
	}

	return &State{
		surface: surface,
		edges:   edges,
		values:  values,
		part:    NewPartition(fixed),
	}, nil
}

// finalize packages the solved values into the output mapping unless the
// strategy already installed one.
func (mp *Mapper) finalize(st *State) {
	if st.output == nil {
		st.output = NewPiecewiseLinearMap(st.surface, st.values)
	}
	mp.output = st.output
}

// BoundaryMask returns a per-point mask with value 1 exactly at the points
// incident to a mesh boundary edge, an edge used by exactly one polygon.
// The result depends only on the surface topology.
func BoundaryMask(s *mesh.Surface) []float64 {
	return boundaryMask(mesh.NewEdgeTable(s), s.NumPoints())
}

func boundaryMask(edges *mesh.EdgeTable, numPts int) []float64 {
	mask := make([]float64, numPts)
	for _, ptID := range edges.BoundaryPoints() {
		mask[ptID] = 1.0
	}
	return mask
}
