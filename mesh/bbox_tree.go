package mesh

import (
	"math"
	"sort"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
	"github.com/notargets/gompc/geometry"
)

// BoxPadding is the relative growth applied to every cell box so that points
// on a cell boundary are never lost to round-off in the broad phase
const BoxPadding = 1.e-8

// cellBox is the R-tree entry for one cell. The tree indexes (x,y); the z
// extent is filtered explicitly.
type cellBox struct {
	geom.Polygon
	cell       int
	bounds     *geom.Bounds
	zMin, zMax float64
}

func (c *cellBox) Bounds() *geom.Bounds { return c.bounds }

// BoundingBoxTree is the broad phase for point location: it returns the cells
// whose padded axis aligned box contains a point
type BoundingBoxTree struct {
	rtree    *rtree.Rtree
	numCells int
}

// NewBoundingBoxTree indexes every cell of m. Cells with malformed vertex
// lists are left out of the index.
func NewBoundingBoxTree(m *Mesh) (bbt *BoundingBoxTree) {
	bbt = &BoundingBoxTree{
		rtree:    rtree.NewTree(25, 50),
		numCells: m.NumCells(),
	}
	for cell := 0; cell < m.NumCells(); cell++ {
		verts, err := m.CellVertices(cell)
		if err != nil {
			continue
		}
		bbt.rtree.Insert(newCellBox(cell, verts))
	}
	return
}

func newCellBox(cell int, verts []geometry.Point) (cb *cellBox) {
	var (
		lo = geometry.Point{math.Inf(1), math.Inf(1), math.Inf(1)}
		hi = geometry.Point{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	)
	for _, v := range verts {
		for d := 0; d < 3; d++ {
			lo[d] = math.Min(lo[d], v[d])
			hi[d] = math.Max(hi[d], v[d])
		}
	}
	pad := BoxPadding * (1 + hi.Sub(lo).Norm())
	for d := 0; d < 3; d++ {
		lo[d] -= pad
		hi[d] += pad
	}
	cb = &cellBox{
		cell: cell,
		bounds: &geom.Bounds{
			Min: geom.Point{X: lo[0], Y: lo[1]},
			Max: geom.Point{X: hi[0], Y: hi[1]},
		},
		zMin: lo[2],
		zMax: hi[2],
		Polygon: geom.Polygon([]geom.Path{{
			{X: lo[0], Y: lo[1]}, {X: hi[0], Y: lo[1]},
			{X: hi[0], Y: hi[1]}, {X: lo[0], Y: hi[1]}, {X: lo[0], Y: lo[1]}}}),
	}
	return
}

// CandidateCells returns the ascending ids of cells whose box holds p
func (bbt *BoundingBoxTree) CandidateCells(p geometry.Point) (cells []int) {
	query := &geom.Bounds{
		Min: geom.Point{X: p[0], Y: p[1]},
		Max: geom.Point{X: p[0], Y: p[1]},
	}
	for _, gI := range bbt.rtree.SearchIntersect(query) {
		cb := gI.(*cellBox)
		if p[2] < cb.zMin || p[2] > cb.zMax {
			continue
		}
		b := cb.bounds
		if p[0] < b.Min.X || p[0] > b.Max.X || p[1] < b.Min.Y || p[1] > b.Max.Y {
			continue
		}
		cells = append(cells, cb.cell)
	}
	sort.Ints(cells)
	return
}

func (bbt *BoundingBoxTree) NumCells() int { return bbt.numCells }
