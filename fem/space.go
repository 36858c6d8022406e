package fem

import (
	"fmt"

	"github.com/notargets/gompc/geometry"
	"github.com/notargets/gompc/mesh"
	"github.com/notargets/gompc/utils"
	"gonum.org/v1/gonum/mat"
)

// FunctionSpace is a continuous Lagrange space of one degree over a possibly
// mixed mesh. BlockSize > 1 makes a vector space whose components share nodes.
// All queries are read-only and safe for concurrent use.
type FunctionSpace struct {
	Mesh      *mesh.Mesh
	Degree    int
	BlockSize int
	DofMap    *DofMap
	elements  map[utils.ElementType]*LagrangeElement
	nodeX     []geometry.Point
}

func NewFunctionSpace(m *mesh.Mesh, degree, bs int) (V *FunctionSpace, err error) {
	V = &FunctionSpace{
		Mesh:      m,
		Degree:    degree,
		BlockSize: bs,
		elements:  make(map[utils.ElementType]*LagrangeElement),
	}
	for _, shape := range m.ElementTypes {
		if _, ok := V.elements[shape]; ok {
			continue
		}
		var el *LagrangeElement
		if el, err = NewLagrangeElement(shape, degree); err != nil {
			return nil, err
		}
		V.elements[shape] = el
	}
	if V.DofMap, err = NewDofMap(m, V.elements, bs); err != nil {
		return nil, err
	}
	if err = V.tabulateNodes(); err != nil {
		return nil, err
	}
	return
}

// tabulateNodes maps every element node to physical space through the cell
// geometry, so shared nodes get the same coordinate from any cell up to
// round-off
func (V *FunctionSpace) tabulateNodes() (err error) {
	V.nodeX = make([]geometry.Point, V.DofMap.NumNodes)
	copy(V.nodeX, V.Mesh.Vertices)
	for cell := 0; cell < V.Mesh.NumCells(); cell++ {
		var (
			shape    = V.CellType(cell)
			el       = V.elements[shape]
			nodes    = V.DofMap.CellNodes(cell)
			refNodes = el.ReferenceNodes()
			verts    []geometry.Point
		)
		if verts, err = V.Mesh.CellVertices(cell); err != nil {
			return
		}
		for l := shape.GetNumVertices(); l < len(nodes); l++ {
			if V.nodeX[nodes[l]], err = geometry.ReferenceToPhysical(shape, verts, refNodes[l]); err != nil {
				return
			}
		}
	}
	return
}

func (V *FunctionSpace) Element(shape utils.ElementType) *LagrangeElement {
	return V.elements[shape]
}

func (V *FunctionSpace) CellType(cell int) utils.ElementType { return V.Mesh.CellType(cell) }

// CellVertices returns the mesh geometry of a cell
func (V *FunctionSpace) CellVertices(cell int) ([]geometry.Point, error) {
	return V.Mesh.CellVertices(cell)
}

func (V *FunctionSpace) NumCells() int { return V.Mesh.NumCells() }

func (V *FunctionSpace) NumDofs() int { return V.DofMap.NumDofs() }

func (V *FunctionSpace) CellDofs(cell int) []int { return V.DofMap.CellDofs(cell) }

func (V *FunctionSpace) CellsOfDof(dof int) []int { return V.DofMap.CellsOfDof(dof) }

func (V *FunctionSpace) NumLocalDofs(cell int) int {
	return len(V.DofMap.CellNodes(cell)) * V.BlockSize
}

// ValueSize is the number of value components of a basis function
func (V *FunctionSpace) ValueSize() int { return V.BlockSize }

// TabulateDofCoordinates returns the physical coordinate of every node; dof d
// sits at node d/BlockSize
func (V *FunctionSpace) TabulateDofCoordinates() []geometry.Point {
	out := make([]geometry.Point, len(V.nodeX))
	copy(out, V.nodeX)
	return out
}

func (V *FunctionSpace) DofCoordinate(dof int) geometry.Point {
	return V.nodeX[dof/V.BlockSize]
}

// DofComponent is the value component carried by a dof
func (V *FunctionSpace) DofComponent(dof int) int { return dof % V.BlockSize }

// CellDofCoordinates returns the node coordinates of a cell in local node order
func (V *FunctionSpace) CellDofCoordinates(cell int) (X []geometry.Point, err error) {
	if cell < 0 || cell >= V.Mesh.NumCells() {
		err = fmt.Errorf("%w: cell %d out of range [0,%d)",
			geometry.ErrMalformedCell, cell, V.Mesh.NumCells())
		return
	}
	nodes := V.DofMap.CellNodes(cell)
	X = make([]geometry.Point, len(nodes))
	for l, n := range nodes {
		X[l] = V.nodeX[n]
	}
	return
}

// TabulateReference evaluates the blocked reference basis at X. Row l*bs+c
// holds local node l's scalar basis in column c.
func (V *FunctionSpace) TabulateReference(cell int, X geometry.Point) (ref *mat.Dense, err error) {
	var (
		el  = V.elements[V.CellType(cell)]
		bs  = V.BlockSize
		phi []float64
	)
	if el == nil {
		err = fmt.Errorf("%w: no element for cell %d", geometry.ErrMalformedCell, cell)
		return
	}
	if phi, _, err = el.Tabulate(X); err != nil {
		return
	}
	ref = mat.NewDense(len(phi)*bs, bs, nil)
	for l, val := range phi {
		for c := 0; c < bs; c++ {
			ref.Set(l*bs+c, c, val)
		}
	}
	return
}

// PushForward maps reference values to the physical cell, the identity for
// Lagrange elements
func (V *FunctionSpace) PushForward(ref *mat.Dense, J *mat.Dense) (*mat.Dense, error) {
	return ref, nil
}
