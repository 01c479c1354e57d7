package mapper

import (
	"github.com/meshworks/surfmap/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// WeightPolicy supplies the pairwise edge weight w_ij of the discrete
// energy. Weight must be symmetric in its two point-id arguments.
type WeightPolicy interface {
	Weight(i, j int) float64
}

// SurfaceWeightPolicy is a weight policy that needs the geometry or
// topology of the working surface. The solve strategy calls Bind with the
// prepared working surface and its edge table before assembly.
type SurfaceWeightPolicy interface {
	WeightPolicy
	Bind(s *mesh.Surface, edges *mesh.EdgeTable)
}

// UniformWeights assigns every edge the weight 1, yielding the
// combinatorial graph Laplacian.
type UniformWeights struct{}

// Weight returns 1 for every edge.
func (UniformWeights) Weight(i, j int) float64 {
	return 1.0
}

// Coincident points would otherwise produce an infinite weight.
const minEdgeLength = 1e-12

// InverseDistanceWeights assigns each edge the reciprocal of its length.
type InverseDistanceWeights struct {
	surface *mesh.Surface
}

// Bind attaches the working surface whose point positions define the edge
// lengths.
func (w *InverseDistanceWeights) Bind(s *mesh.Surface, edges *mesh.EdgeTable) {
	w.surface = s
}

// Weight returns 1 / |p_i - p_j|.
func (w *InverseDistanceWeights) Weight(i, j int) float64 {
	d := r3.Norm(r3.Sub(w.surface.Points[i], w.surface.Points[j]))
	if d < minEdgeLength {
		d = minEdgeLength
	}
	return 1.0 / d
}

// CotangentWeights assigns each edge half the sum of the cotangents of the
// angles opposite to it, the discrete harmonic weights. The surface must be
// triangulated; non-triangle polygons contribute nothing to the weight.
type CotangentWeights struct {
	surface *mesh.Surface
	edges   *mesh.EdgeTable
}

// Bind attaches the working surface and its edge table.
func (w *CotangentWeights) Bind(s *mesh.Surface, edges *mesh.EdgeTable) {
	w.surface = s
	w.edges = edges
}

// Weight returns sum(cot(angle opposite edge ij)) / 2 over the triangles
// adjacent to edge ij.
func (w *CotangentWeights) Weight(i, j int) float64 {
	e, ok := w.edges.Lookup(i, j)
	if !ok {
		return 0
	}
	var sum float64
	for _, c := range e.Polys {
		poly := w.surface.Polys[c]
		if len(poly) != 3 {
			continue
		}
		k := -1
		for _, ptID := range poly {
			if ptID != i && ptID != j {
				k = ptID
				break
			}
		}
		if k < 0 {
			continue
		}
		u := r3.Sub(w.surface.Points[i], w.surface.Points[k])
		v := r3.Sub(w.surface.Points[j], w.surface.Points[k])
		area := r3.Norm(r3.Cross(u, v))
		if area < minEdgeLength {
			continue
		}
		sum += r3.Dot(u, v) / area
	}
	return sum / 2.0
}
