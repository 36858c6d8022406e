package fem

// BilinearForm couples a test space with a trial space over a set of cells.
// It only carries the dof layout needed to size a sparsity pattern.
type BilinearForm struct {
	Test, Trial *FunctionSpace
	cells       []int
}

// NewBilinearForm integrates over every cell when cells is empty
func NewBilinearForm(test, trial *FunctionSpace, cells ...int) *BilinearForm {
	if len(cells) == 0 {
		cells = make([]int, test.NumCells())
		for i := range cells {
			cells[i] = i
		}
	}
	return &BilinearForm{Test: test, Trial: trial, cells: cells}
}

func (bf *BilinearForm) Dims() (rows, cols int) {
	return bf.Test.NumDofs(), bf.Trial.NumDofs()
}

func (bf *BilinearForm) IntegralCells() []int { return bf.cells }

func (bf *BilinearForm) TestDofs(cell int) []int { return bf.Test.CellDofs(cell) }

func (bf *BilinearForm) TrialDofs(cell int) []int { return bf.Trial.CellDofs(cell) }
