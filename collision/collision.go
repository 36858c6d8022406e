package collision

import (
	"errors"
	"fmt"
	"math"

	"github.com/notargets/gompc/geometry"
	"github.com/notargets/gompc/utils"
	"go.uber.org/multierr"
)

// VertexSource supplies the cell geometry collision tests run against
type VertexSource interface {
	CellType(cell int) utils.ElementType
	CellVertices(cell int) ([]geometry.Point, error)
}

// CandidateFinder is the broad phase: a superset of the cells holding a point
type CandidateFinder interface {
	CandidateCells(p geometry.Point) []int
}

// CollisionCellPoint reports whether point lies in the cell given by its
// vertices, boundary inclusive within geometry.DefaultTolerance.
//
// Vertices must follow the canonical local ordering of the shape; any other
// ordering gives meaningless results. A cell whose map cannot be inverted
// does not hold the point. Only a malformed cell returns an error.
func CollisionCellPoint(vertices []geometry.Point, shape utils.ElementType, point geometry.Point) (inside bool, err error) {
	var (
		X   geometry.Point
		res float64
	)
	if X, err = geometry.PhysicalToReference(shape, vertices, point); err != nil {
		if errors.Is(err, geometry.ErrGeometryDegenerate) {
			err = nil
		}
		return
	}
	if !geometry.InsideReferenceCell(shape, X, geometry.DefaultTolerance) {
		return
	}
	// Cells of lower dimension than space also need the point on the manifold
	if res, err = geometry.Residual(shape, vertices, X, point); err != nil {
		return
	}
	// the point's own coordinates carry round-off of their magnitude
	inside = res <= math.Max(geometry.DefaultTolerance*geometry.Diameter(vertices),
		16*geometry.Roundoff*point.Norm())
	return
}

// CheckCellPointCollision tests every candidate cell against the point and
// returns one flag per candidate, in order. Malformed cells read false and
// are reported together in the error; the flags are valid either way.
func CheckCellPointCollision(cells []int, point geometry.Point, src VertexSource) (inside []bool, err error) {
	inside = make([]bool, len(cells))
	for i, cell := range cells {
		verts, cerr := src.CellVertices(cell)
		if cerr == nil {
			inside[i], cerr = CollisionCellPoint(verts, src.CellType(cell), point)
		}
		if cerr != nil {
			err = multierr.Append(err, fmt.Errorf("cell %d: %w", cell, cerr))
		}
	}
	return
}

// ComputeCollisions runs the broad phase then the narrow phase and returns
// the ascending cells holding the point
func ComputeCollisions(finder CandidateFinder, point geometry.Point, src VertexSource) (cells []int, err error) {
	var (
		candidates = finder.CandidateCells(point)
		inside     []bool
	)
	inside, err = CheckCellPointCollision(candidates, point, src)
	for i, ok := range inside {
		if ok {
			cells = append(cells, candidates[i])
		}
	}
	return
}
