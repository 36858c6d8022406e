package fem

import (
	"fmt"

	"github.com/notargets/gompc/mesh"
	"github.com/notargets/gompc/types"
	"github.com/notargets/gompc/utils"
)

// DofMap lays out global dofs over the mesh. Vertex nodes share the mesh
// vertex numbering, edge nodes follow. A blocked dof is node*BlockSize+comp.
type DofMap struct {
	BlockSize int
	NumNodes  int
	cellNodes *utils.AdjacencyList
	nodeCells *utils.AdjacencyList
}

func NewDofMap(m *mesh.Mesh, elements map[utils.ElementType]*LagrangeElement, bs int) (dm *DofMap, err error) {
	if bs < 1 {
		err = fmt.Errorf("block size must be positive, have %d", bs)
		return
	}
	var (
		nv    = m.NumVertices()
		edges = types.NewEdgeNumbering()
		links = make([][]int, m.NumCells())
	)
	for cell := 0; cell < m.NumCells(); cell++ {
		var (
			ev = m.EtoV[cell]
			el = elements[m.CellType(cell)]
		)
		if el == nil || len(ev) != m.CellType(cell).GetNumVertices() {
			err = fmt.Errorf("cell %d: no element for %s with %d vertices",
				cell, m.CellType(cell), len(ev))
			return
		}
		nodes := make([]int, 0, el.NumNodes())
		nodes = append(nodes, ev...)
		for _, e := range el.Edges() {
			nodes = append(nodes, nv+edges.Index([2]int{ev[e[0]], ev[e[1]]}))
		}
		links[cell] = nodes
	}
	dm = &DofMap{
		BlockSize: bs,
		NumNodes:  nv + edges.Len(),
		cellNodes: utils.NewAdjacencyList(links),
	}
	dm.nodeCells = dm.cellNodes.Invert(dm.NumNodes)
	return
}

func (dm *DofMap) NumDofs() int { return dm.NumNodes * dm.BlockSize }

// CellNodes returns the global nodes of a cell in local order
func (dm *DofMap) CellNodes(cell int) []int { return dm.cellNodes.Links(cell) }

// CellDofs returns the global dofs of a cell; local dof l is node l/bs,
// component l%bs
func (dm *DofMap) CellDofs(cell int) (dofs []int) {
	var (
		bs    = dm.BlockSize
		nodes = dm.cellNodes.Links(cell)
	)
	dofs = make([]int, len(nodes)*bs)
	for l, n := range nodes {
		for c := 0; c < bs; c++ {
			dofs[l*bs+c] = n*bs + c
		}
	}
	return
}

// CellsOfDof returns the ascending cells sharing a dof, empty when the dof is
// out of range or its node touches no cell
func (dm *DofMap) CellsOfDof(dof int) []int {
	if dof < 0 || dof >= dm.NumDofs() {
		return nil
	}
	return dm.nodeCells.Links(dof / dm.BlockSize)
}

func (dm *DofMap) NumCells() int { return dm.cellNodes.NumNodes() }
