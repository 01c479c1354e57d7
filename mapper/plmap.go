package mapper

import (
	"github.com/meshworks/surfmap/mesh"
	"gonum.org/v1/gonum/mat"
)

// PiecewiseLinearMap is a continuous map defined by values at the points of
// a surface mesh and linear interpolation within its cells. It is the final
// artifact of a mapper run: immutable once constructed and independent of
// the transient state of the mapper that produced it.
type PiecewiseLinearMap struct {
	domain *mesh.Surface
	values *mat.Dense
}

// NewPiecewiseLinearMap pairs a domain surface with per-point map values.
// The values are copied; rows index mesh points and columns index codomain
// components.
func NewPiecewiseLinearMap(domain *mesh.Surface, values *mat.Dense) *PiecewiseLinearMap {
	return &PiecewiseLinearMap{
		domain: domain,
		values: mat.DenseCopyOf(values),
	}
}

// Domain returns the surface mesh the map is defined on.
func (m *PiecewiseLinearMap) Domain() *mesh.Surface {
	return m.domain
}

// NumComponents returns the codomain dimension.
func (m *PiecewiseLinearMap) NumComponents() int {
	_, c := m.values.Dims()
	return c
}

// Value returns component l of the map value at a mesh point.
func (m *PiecewiseLinearMap) Value(ptID, l int) float64 {
	return m.values.At(ptID, l)
}

// ValuesCopy returns a copy of the full value table.
func (m *PiecewiseLinearMap) ValuesCopy() *mat.Dense {
	return mat.DenseCopyOf(m.values)
}
