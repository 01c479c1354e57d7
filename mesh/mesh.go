package mesh

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Surface is a polygonal surface mesh: a set of 3D points together with the
// polygonal cells connecting them. Lines, Verts and PointData carry the
// non-surface cells and named per-point attributes a dataset may include;
// topology operations only ever look at Polys.
type Surface struct {
	Points []r3.Vec
	Polys  [][]int // polygonal cells, each a ring of point ids
	Lines  [][]int // polyline cells, ignored by surface topology
	Verts  []int   // vertex cells, ignored by surface topology

	// Named per-point scalar attributes
	PointData map[string][]float64

	// Point to incident-polygon links, built on demand
	links [][]int
}

// NewSurface creates a surface from points and polygonal cells and validates
// that every cell references valid point ids.
func NewSurface(points []r3.Vec, polys [][]int) (*Surface, error) {
	n := len(points)
	for c, poly := range polys {
		if len(poly) < 3 {
			return nil, fmt.Errorf("polygon %d has %d points, need at least 3", c, len(poly))
		}
		for _, ptID := range poly {
			if ptID < 0 || ptID >= n {
				return nil, fmt.Errorf("polygon %d references point %d, mesh has %d points", c, ptID, n)
			}
		}
	}
	return &Surface{Points: points, Polys: polys}, nil
}

// NumPoints returns the number of mesh points.
func (s *Surface) NumPoints() int {
	return len(s.Points)
}

// NumPolys returns the number of polygonal cells.
func (s *Surface) NumPolys() int {
	return len(s.Polys)
}

// ShallowCopy returns a new Surface sharing this surface's point, cell and
// attribute storage.
func (s *Surface) ShallowCopy() *Surface {
	return &Surface{
		Points:    s.Points,
		Polys:     s.Polys,
		Lines:     s.Lines,
		Verts:     s.Verts,
		PointData: s.PointData,
	}
}

// PolygonalCopy returns a working copy containing only the polygonal cells.
// Lines, vertex cells and point attributes are dropped so downstream topology
// operations see pure surface topology. Point and polygon storage is shared
// with the receiver; the caller's Surface is never modified.
func (s *Surface) PolygonalCopy() *Surface {
	return &Surface{
		Points: s.Points,
		Polys:  s.Polys,
	}
}

// BuildLinks builds the point to incident-polygon links used by PointPolys.
// Calling it again rebuilds the links from the current cells.
func (s *Surface) BuildLinks() {
	links := make([][]int, len(s.Points))
	for c, poly := range s.Polys {
		for _, ptID := range poly {
			links[ptID] = append(links[ptID], c)
		}
	}
	s.links = links
}

// PointPolys returns the ids of the polygons incident to the given point.
// BuildLinks must have been called first.
func (s *Surface) PointPolys(ptID int) []int {
	if s.links == nil {
		return nil
	}
	return s.links[ptID]
}
