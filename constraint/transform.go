package constraint

import (
	"fmt"
	"sort"

	"github.com/notargets/gompc/locate"
	"github.com/notargets/gompc/sparsity"
	"gonum.org/v1/gonum/mat"
)

// TransformationMatrix returns K (dim x dim-#slaves) with u = K u_reduced.
// Unconstrained dofs map to themselves, renumbered past the slaves.
func TransformationMatrix(dim int, c *Constraint) (K *mat.Dense, err error) {
	var (
		sorted = append([]int(nil), c.Slaves...)
		nred   = dim - c.NumSlaves()
	)
	for _, s := range sorted {
		if s < 0 || s >= dim {
			return nil, fmt.Errorf("slave %d out of range [0,%d)", s, dim)
		}
	}
	if nred < 1 {
		return nil, fmt.Errorf("%d slaves leave no free dofs of %d", c.NumSlaves(), dim)
	}
	sort.Ints(sorted)
	// reduced column of a free dof: the dof less the slaves below it
	column := func(dof int) int { return dof - sort.SearchInts(sorted, dof) }
	K = mat.NewDense(dim, nred, nil)
	for i := 0; i < dim; i++ {
		if !c.IsSlave(i) {
			K.Set(i, column(i), 1)
		}
	}
	for i, s := range c.Slaves {
		masters, coeffs := c.SlaveMasters(i)
		for k, m := range masters {
			if m < 0 || m >= dim {
				return nil, fmt.Errorf("master %d out of range [0,%d)", m, dim)
			}
			K.Set(s, column(m), K.At(s, column(m))+coeffs[k])
		}
	}
	return
}

// BackSubstitution sets every slave value from its masters, in place
func BackSubstitution(c *Constraint, u []float64) {
	for i, s := range c.Slaves {
		masters, coeffs := c.SlaveMasters(i)
		var sum float64
		for k, m := range masters {
			sum += coeffs[k] * u[m]
		}
		u[s] = sum
	}
}

// AugmentPattern adds the couplings constrained assembly needs on top of the
// standard pattern: for every cell holding slaves, the masters of those
// slaves couple to the cell dofs and to each other
func AugmentPattern(p *sparsity.Pattern, form sparsity.Form, V locate.DofMapper, c *Constraint) (err error) {
	cells, local, err := c.CellToSlaves(V)
	if err != nil {
		return
	}
	for i, cell := range cells {
		var (
			cellDofs = V.CellDofs(cell)
			seen     = make(map[int]bool)
			mlist    []int
		)
		for _, l := range local.Links(i) {
			masters, _ := c.SlaveMasters(c.slaveIndex[cellDofs[l]])
			for _, m := range masters {
				if !seen[m] {
					seen[m] = true
					mlist = append(mlist, m)
				}
			}
		}
		if err = p.Insert(mlist, form.TrialDofs(cell)); err != nil {
			return
		}
		if err = p.Insert(form.TestDofs(cell), mlist); err != nil {
			return
		}
		if err = p.Insert(mlist, mlist); err != nil {
			return
		}
	}
	return
}
