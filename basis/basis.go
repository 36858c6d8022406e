package basis

import (
	"fmt"

	"github.com/notargets/gompc/geometry"
	"github.com/notargets/gompc/utils"
	"gonum.org/v1/gonum/mat"
)

// FunctionSpace is what basis evaluation needs from a function space
type FunctionSpace interface {
	CellType(cell int) utils.ElementType
	// CellVertices returns the mesh geometry of the cell
	CellVertices(cell int) ([]geometry.Point, error)
	NumLocalDofs(cell int) int
	ValueSize() int
	// TabulateReference returns reference values, one row per local dof
	TabulateReference(cell int, X geometry.Point) (*mat.Dense, error)
	PushForward(ref *mat.Dense, J *mat.Dense) (*mat.Dense, error)
}

// GetBasisFunctions evaluates every basis function of cell at a physical point.
// The result has one row per local dof and one column per value component.
//
// The point is expected to lie in the cell. That is not checked; outside the
// cell the values are the extrapolation of the reference map.
func GetBasisFunctions(V FunctionSpace, point geometry.Point, cell int) (values *mat.Dense, err error) {
	var (
		shape = V.CellType(cell)
		verts []geometry.Point
		X     geometry.Point
		J     *mat.Dense
		ref   *mat.Dense
	)
	if verts, err = V.CellVertices(cell); err != nil {
		return
	}
	if X, err = geometry.PhysicalToReference(shape, verts, point); err != nil {
		err = fmt.Errorf("cell %d: %w", cell, err)
		return
	}
	if J, err = geometry.Jacobian(shape, verts, X); err != nil {
		return
	}
	if ref, err = V.TabulateReference(cell, X); err != nil {
		return
	}
	if values, err = V.PushForward(ref, J); err != nil {
		return
	}
	if r, c := values.Dims(); r != V.NumLocalDofs(cell) || c != V.ValueSize() {
		err = fmt.Errorf("cell %d: basis table is %dx%d, expected %dx%d",
			cell, r, c, V.NumLocalDofs(cell), V.ValueSize())
		values = nil
	}
	return
}
