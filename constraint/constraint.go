package constraint

import (
	"fmt"
	"strings"

	"github.com/notargets/gompc/locate"
	"github.com/notargets/gompc/utils"
)

// Constraint is a set of multi point constraints
//
//	u[Slaves[i]] = sum_k Coefficients[k] u[Masters.Array[k]],  k in Masters.Links(i)
//
// Masters are never slaves themselves.
type Constraint struct {
	Slaves       []int
	Masters      *utils.AdjacencyList
	Coefficients []float64
	slaveIndex   map[int]int
}

// NewConstraint builds a constraint from flat arrays, where the masters and
// coefficients of slaves[i] are at [offsets[i], offsets[i+1])
func NewConstraint(slaves, masters []int, coeffs []float64, offsets []int) (c *Constraint, err error) {
	var (
		adj *utils.AdjacencyList
	)
	if len(offsets) != len(slaves)+1 {
		err = fmt.Errorf("need %d offsets for %d slaves, have %d",
			len(slaves)+1, len(slaves), len(offsets))
		return
	}
	if len(coeffs) != len(masters) {
		err = fmt.Errorf("have %d coefficients for %d masters", len(coeffs), len(masters))
		return
	}
	if adj, err = utils.NewAdjacencyListFromOffsets(masters, offsets); err != nil {
		return
	}
	c = &Constraint{
		Slaves:       slaves,
		Masters:      adj,
		Coefficients: coeffs,
		slaveIndex:   make(map[int]int, len(slaves)),
	}
	for i, s := range slaves {
		if _, dup := c.slaveIndex[s]; dup {
			return nil, fmt.Errorf("dof %d is constrained twice", s)
		}
		c.slaveIndex[s] = i
	}
	for _, m := range masters {
		if _, ok := c.slaveIndex[m]; ok {
			return nil, fmt.Errorf("dof %d is both a slave and a master", m)
		}
	}
	return
}

func (c *Constraint) NumSlaves() int { return len(c.Slaves) }

func (c *Constraint) IsSlave(dof int) bool {
	_, ok := c.slaveIndex[dof]
	return ok
}

// SlaveMasters returns the masters and coefficients of the i-th slave
func (c *Constraint) SlaveMasters(i int) (masters []int, coeffs []float64) {
	masters = c.Masters.Links(i)
	coeffs = c.Coefficients[c.Masters.Offsets[i]:c.Masters.Offsets[i+1]]
	return
}

// CellToSlaves returns the cells holding slave dofs and, per cell, the local
// positions of those slaves
func (c *Constraint) CellToSlaves(V locate.DofMapper) (cells []int, local *utils.AdjacencyList, err error) {
	return locate.LocateCellsWithDofs(V, c.Slaves)
}

func (c *Constraint) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Constraint{slaves: %d, masters: %d}\n", c.NumSlaves(), len(c.Masters.Array))
	for i, s := range c.Slaves {
		masters, coeffs := c.SlaveMasters(i)
		fmt.Fprintf(&b, "  u[%d] =", s)
		for k, m := range masters {
			if k > 0 {
				b.WriteString(" +")
			}
			fmt.Fprintf(&b, " %.6g*u[%d]", coeffs[k], m)
		}
		b.WriteString("\n")
	}
	return b.String()
}
