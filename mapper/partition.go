package mapper

// Partition classifies every mesh point as fixed or free and maps between
// global point ids and compact per-class ordinals. Fixed points carry the
// boundary conditions of the map; free points are the unknowns of the solve.
// The classification is immutable once built.
type Partition struct {
	free []bool
	ord  []int // ordinal of each point within its class

	freeIds  []int // free ordinal to point id
	fixedIds []int // fixed ordinal to point id
}

// NewPartition builds the partition from a per-point fixed flag in a single
// pass over all points.
func NewPartition(fixed []bool) *Partition {
	p := &Partition{
		free: make([]bool, len(fixed)),
		ord:  make([]int, len(fixed)),
	}
	for ptID, isFixed := range fixed {
		if isFixed {
			p.ord[ptID] = len(p.fixedIds)
			p.fixedIds = append(p.fixedIds, ptID)
		} else {
			p.free[ptID] = true
			p.ord[ptID] = len(p.freeIds)
			p.freeIds = append(p.freeIds, ptID)
		}
	}
	return p
}

// NumPoints returns the total number of partitioned points.
func (p *Partition) NumPoints() int {
	return len(p.free)
}

// NumFree returns the number of free points.
func (p *Partition) NumFree() int {
	return len(p.freeIds)
}

// NumFixed returns the number of fixed points.
func (p *Partition) NumFixed() int {
	return len(p.fixedIds)
}

// IsFree reports whether the point is free.
func (p *Partition) IsFree(ptID int) bool {
	return p.free[ptID]
}

// FreeIndex returns the compact index of a free point, or -1 for a fixed
// point.
func (p *Partition) FreeIndex(ptID int) int {
	if !p.free[ptID] {
		return -1
	}
	return p.ord[ptID]
}

// FixedIndex returns the compact index of a fixed point, or -1 for a free
// point.
func (p *Partition) FixedIndex(ptID int) int {
	if p.free[ptID] {
		return -1
	}
	return p.ord[ptID]
}

// FreePointID returns the point id of the r-th free point.
func (p *Partition) FreePointID(r int) int {
	return p.freeIds[r]
}

// FixedPointID returns the point id of the k-th fixed point.
func (p *Partition) FixedPointID(k int) int {
	return p.fixedIds[k]
}

// SignedIndex returns the compact index in its single-table encoding: the
// free ordinal r >= 0 for free points and -(k+1) for the k-th fixed point.
func (p *Partition) SignedIndex(ptID int) int {
	if p.free[ptID] {
		return p.ord[ptID]
	}
	return -(p.ord[ptID] + 1)
}
