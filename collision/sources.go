package collision

import (
	"fmt"

	"github.com/notargets/gompc/geometry"
	"github.com/notargets/gompc/utils"
)

// MeshGeometry is the part of a mesh that carries true cell geometry
type MeshGeometry interface {
	CellType(cell int) utils.ElementType
	CellVertices(cell int) ([]geometry.Point, error)
}

// MeshVertices tests collisions against the mesh geometry
type MeshVertices struct {
	Mesh MeshGeometry
}

func (mv MeshVertices) CellType(cell int) utils.ElementType { return mv.Mesh.CellType(cell) }

func (mv MeshVertices) CellVertices(cell int) ([]geometry.Point, error) {
	return mv.Mesh.CellVertices(cell)
}

// DofLayout is the part of a function space that places dofs in space
type DofLayout interface {
	CellType(cell int) utils.ElementType
	// CellDofCoordinates returns node coordinates in local node order
	CellDofCoordinates(cell int) ([]geometry.Point, error)
}

// DofVertices tests collisions against the cell as seen through its dof
// layout: the vertex count of the shape is taken from the leading local
// nodes, which sit at the element vertices
type DofVertices struct {
	Space DofLayout
}

func (dv DofVertices) CellType(cell int) utils.ElementType { return dv.Space.CellType(cell) }

func (dv DofVertices) CellVertices(cell int) (verts []geometry.Point, err error) {
	var (
		shape = dv.Space.CellType(cell)
		nv    = shape.GetNumVertices()
		nodes []geometry.Point
	)
	if nodes, err = dv.Space.CellDofCoordinates(cell); err != nil {
		return
	}
	if nv == 0 || len(nodes) < nv {
		err = fmt.Errorf("%w: %s cell %d has %d dof nodes",
			geometry.ErrMalformedCell, shape, cell, len(nodes))
		return
	}
	verts = nodes[:nv]
	return
}
