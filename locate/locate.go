package locate

import (
	"errors"
	"fmt"

	"github.com/notargets/gompc/utils"
)

// ErrUnknownDof reports a dof that no cell of the dof map owns
var ErrUnknownDof = errors.New("unknown dof")

// DofMapper is the dof map view of a function space
type DofMapper interface {
	NumDofs() int
	// CellsOfDof returns the cells sharing a dof
	CellsOfDof(dof int) []int
	// CellDofs returns the global dofs of a cell in local order
	CellDofs(cell int) []int
}

// LocateCellsWithDofs finds the cells owning any of dofs. Cells are listed
// once, in the order first reached while scanning dofs. Links(i) of the
// adjacency holds the ascending local positions of the queried dofs within
// cells[i]. Any unknown dof fails the whole call.
func LocateCellsWithDofs(V DofMapper, dofs []int) (cells []int, local *utils.AdjacencyList, err error) {
	var (
		numDofs = V.NumDofs()
		query   = make(map[int]bool, len(dofs))
		seen    = make(map[int]bool)
	)
	for _, dof := range dofs {
		var owners []int
		if dof >= 0 && dof < numDofs {
			owners = V.CellsOfDof(dof)
		}
		if len(owners) == 0 {
			return nil, nil, fmt.Errorf("%w: %d is not owned by any cell (function space has %d dofs)",
				ErrUnknownDof, dof, numDofs)
		}
		query[dof] = true
		for _, cell := range owners {
			if !seen[cell] {
				seen[cell] = true
				cells = append(cells, cell)
			}
		}
	}
	links := make([][]int, len(cells))
	for i, cell := range cells {
		for l, dof := range V.CellDofs(cell) {
			if query[dof] {
				links[i] = append(links[i], l)
			}
		}
	}
	local = utils.NewAdjacencyList(links)
	return
}
