package sparsity

import (
	"fmt"
	"sort"

	"github.com/james-bowman/sparse"
)

// Pattern is the set of (row, col) pairs a matrix may hold nonzeros in.
// Entries accumulate in dictionary of keys form until Finalize compresses
// them to CSR; after that the pattern is read only.
type Pattern struct {
	M         *sparse.DOK
	csr       *sparse.CSR
	finalized bool
}

func NewPattern(nr, nc int) *Pattern {
	return &Pattern{M: sparse.NewDOK(nr, nc)}
}

func (p *Pattern) Dims() (r, c int) { return p.M.Dims() }

// Insert adds every pair of rows x cols
func (p *Pattern) Insert(rows, cols []int) (err error) {
	if p.finalized {
		panic("attempt to insert into a finalized sparsity pattern")
	}
	nr, nc := p.Dims()
	for _, i := range rows {
		if i < 0 || i >= nr {
			return fmt.Errorf("row %d out of range [0,%d)", i, nr)
		}
	}
	for _, j := range cols {
		if j < 0 || j >= nc {
			return fmt.Errorf("column %d out of range [0,%d)", j, nc)
		}
	}
	for _, i := range rows {
		for _, j := range cols {
			p.M.Set(i, j, 1)
		}
	}
	return
}

func (p *Pattern) NNZ() int { return p.M.NNZ() }

func (p *Pattern) Has(i, j int) bool { return p.M.At(i, j) != 0 }

// RowColumns returns the ascending columns present in row i
func (p *Pattern) RowColumns(i int) (cols []int) {
	p.M.DoNonZero(func(r, c int, v float64) {
		if r == i {
			cols = append(cols, c)
		}
	})
	sort.Ints(cols)
	return
}

// Finalize compresses the pattern; later calls return the same matrix
func (p *Pattern) Finalize() *sparse.CSR {
	if !p.finalized {
		p.csr = p.M.ToCSR()
		p.finalized = true
	}
	return p.csr
}

// Form is the dof coupling of a bilinear form, cell by cell
type Form interface {
	Dims() (rows, cols int)
	IntegralCells() []int
	TestDofs(cell int) []int
	TrialDofs(cell int) []int
}

// BuildStandardPattern couples every test dof of a cell with every trial dof
// of the same cell
func BuildStandardPattern(form Form) (p *Pattern, err error) {
	p = NewPattern(form.Dims())
	for _, cell := range form.IntegralCells() {
		if err = p.Insert(form.TestDofs(cell), form.TrialDofs(cell)); err != nil {
			err = fmt.Errorf("cell %d: %w", cell, err)
			return nil, err
		}
	}
	return
}
