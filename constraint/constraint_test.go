package constraint

import (
	"testing"

	"github.com/notargets/gompc/fem"
	"github.com/notargets/gompc/geometry"
	"github.com/notargets/gompc/mesh"
	"github.com/notargets/gompc/sparsity"
	"github.com/notargets/gompc/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func intervalSpace(t *testing.T, n, bs int) (*fem.FunctionSpace, *mesh.BoundingBoxTree) {
	m := mesh.NewIntervalMesh(n, 0, 1)
	V, err := fem.NewFunctionSpace(m, 1, bs)
	require.NoError(t, err)
	return V, mesh.NewBoundingBoxTree(m)
}

func TestNewConstraint(t *testing.T) {
	{
		c, err := NewConstraint([]int{1, 4}, []int{0, 2, 3}, []float64{0.5, 0.5, 1}, []int{0, 2, 3})
		require.NoError(t, err)
		assert.Equal(t, 2, c.NumSlaves())
		assert.True(t, c.IsSlave(4))
		assert.False(t, c.IsSlave(0))
		m, cf := c.SlaveMasters(0)
		assert.Equal(t, []int{0, 2}, m)
		assert.Equal(t, []float64{0.5, 0.5}, cf)
		assert.Contains(t, c.String(), "u[1] = 0.5*u[0] + 0.5*u[2]")
	}
	{
		_, err := NewConstraint([]int{1}, []int{0}, []float64{1}, []int{0})
		assert.Error(t, err)
		_, err = NewConstraint([]int{1}, []int{0, 2}, []float64{1}, []int{0, 2})
		assert.Error(t, err)
		_, err = NewConstraint([]int{1, 2}, []int{0, 3}, []float64{1, 1}, []int{0, 2, 1})
		assert.Error(t, err)
		_, err = NewConstraint([]int{1, 1}, []int{0, 3}, []float64{1, 1}, []int{0, 1, 2})
		assert.Error(t, err)
		_, err = NewConstraint([]int{1, 2}, []int{2, 0}, []float64{1, 1}, []int{0, 1, 2})
		assert.Error(t, err)
		c, err := NewConstraint(nil, nil, nil, []int{0})
		require.NoError(t, err)
		assert.Equal(t, 0, c.NumSlaves())
	}
}

func TestTransformationMatrix(t *testing.T) {
	{ // u_1 = a u_0 + b u_2 in three dofs
		c, err := NewConstraint([]int{1}, []int{0, 2}, []float64{0.3, 0.7}, []int{0, 2})
		require.NoError(t, err)
		K, err := TransformationMatrix(3, c)
		require.NoError(t, err)
		assert.True(t, mat.Equal(mat.NewDense(3, 2, []float64{1, 0, 0.3, 0.7, 0, 1}), K))
	}
	{ // K u_r satisfies the constraint, so back substitution leaves it unchanged
		c, err := NewConstraint([]int{4, 1}, []int{0, 2, 3}, []float64{2, 0.5, 0.5}, []int{0, 1, 3})
		require.NoError(t, err)
		K, err := TransformationMatrix(5, c)
		require.NoError(t, err)
		r, cols := K.Dims()
		assert.Equal(t, 5, r)
		assert.Equal(t, 3, cols)
		var u mat.VecDense
		u.MulVec(K, mat.NewVecDense(3, []float64{1, 2, 3}))
		assert.Equal(t, []float64{1, 2.5, 2, 3, 2}, u.RawVector().Data)
		w := []float64{1, -9, 2, 3, -9}
		BackSubstitution(c, w)
		assert.Equal(t, u.RawVector().Data, w)
	}
	{
		c, _ := NewConstraint([]int{1}, []int{0}, []float64{1}, []int{0, 1})
		_, err := TransformationMatrix(1, c)
		assert.Error(t, err)
		_, err = TransformationMatrix(2, &Constraint{Slaves: []int{1}, Masters: utils.NewAdjacencyList([][]int{{5}}),
			Coefficients: []float64{1}, slaveIndex: map[int]int{1: 0}})
		assert.Error(t, err)
	}
}

func TestCreatePointConstraint(t *testing.T) {
	shift := func(x geometry.Point) geometry.Point { return x.Sub(geometry.Point{1}) }
	{ // Periodic interval: u(1) = u(0)
		V, bbt := intervalSpace(t, 4, 1)
		c, err := CreatePointConstraint(V, bbt, []int{4}, shift)
		require.NoError(t, err)
		assert.Equal(t, []int{4}, c.Slaves)
		m, cf := c.SlaveMasters(0)
		assert.Equal(t, []int{0}, m)
		assert.InDeltaSlice(t, []float64{1}, cf, 1.e-12)
		cells, local, err := c.CellToSlaves(V)
		require.NoError(t, err)
		assert.Equal(t, []int{3}, cells)
		assert.Equal(t, []int{1}, local.Links(0))
	}
	{ // Mapped point inside a cell spreads over its dofs
		V, bbt := intervalSpace(t, 4, 1)
		c, err := CreatePointConstraint(V, bbt, []int{4}, func(geometry.Point) geometry.Point {
			return geometry.Point{0.3}
		})
		require.NoError(t, err)
		m, cf := c.SlaveMasters(0)
		assert.Equal(t, []int{1, 2}, m)
		assert.InDeltaSlice(t, []float64{0.8, 0.2}, cf, 1.e-12)
	}
	{ // Vector space couples like components only
		V, bbt := intervalSpace(t, 4, 2)
		c, err := CreatePointConstraint(V, bbt, []int{9, 8}, shift)
		require.NoError(t, err)
		assert.Equal(t, []int{8, 9}, c.Slaves)
		m, _ := c.SlaveMasters(0)
		assert.Equal(t, []int{0}, m)
		m, _ = c.SlaveMasters(1)
		assert.Equal(t, []int{1}, m)
	}
	{ // Periodic square from the right boundary onto the left
		msh, _ := mesh.NewRectangleMesh(2, 2, 0, 0, 1, 1, utils.Quad)
		V, err := fem.NewFunctionSpace(msh, 1, 1)
		require.NoError(t, err)
		right, _ := msh.BoundaryVertices("right")
		c, err := CreatePointConstraint(V, mesh.NewBoundingBoxTree(msh), right, shift)
		require.NoError(t, err)
		assert.Equal(t, right, c.Slaves)
		for i, s := range c.Slaves {
			m, cf := c.SlaveMasters(i)
			require.Len(t, m, 1)
			assert.InDelta(t, 1., cf[0], 1.e-10)
			assert.Equal(t, V.DofCoordinate(s).Sub(geometry.Point{1}), V.DofCoordinate(m[0]))
		}
	}
	{ // Skipped slaves: outside the mesh, and chains of slaves
		V, bbt := intervalSpace(t, 4, 1)
		c, err := CreatePointConstraint(V, bbt, []int{2}, func(geometry.Point) geometry.Point {
			return geometry.Point{5}
		})
		require.NoError(t, err)
		assert.Equal(t, 0, c.NumSlaves())
		c, err = CreatePointConstraint(V, bbt, []int{0, 4}, func(x geometry.Point) geometry.Point {
			return geometry.Point{1 - x[0]}
		})
		require.NoError(t, err)
		assert.Equal(t, 0, c.NumSlaves())
		_, err = CreatePointConstraint(V, bbt, []int{7}, shift)
		assert.Error(t, err)
		_, err = CreatePointConstraint(V, bbt, []int{4, 0, 4}, shift)
		assert.ErrorContains(t, err, "slave dof 4 listed twice")
	}
}

func TestCreateDictionaryConstraint(t *testing.T) {
	msh, _ := mesh.NewRectangleMesh(1, 1, 0, 0, 1, 1, utils.Triangle)
	V, err := fem.NewFunctionSpace(msh, 1, 2)
	require.NoError(t, err)
	{
		assert.Equal(t, []int{2, 3}, DofCloseTo(V, geometry.Point{1, 0}, 1.e-10))
		assert.Empty(t, DofCloseTo(V, geometry.Point{0.5, 0}, 1.e-10))
	}
	{ // u_y(1,0) = 0.9 u_y(1,1)
		c, err := CreateDictionaryConstraint(V, []Coupling{{
			Slave:   geometry.Point{1, 0},
			Masters: []MasterPoint{{Point: geometry.Point{1, 1}, Coeff: 0.9}},
		}}, 1, 1.e-10)
		require.NoError(t, err)
		assert.Equal(t, []int{3}, c.Slaves)
		m, cf := c.SlaveMasters(0)
		assert.Equal(t, []int{7}, m)
		assert.Equal(t, []float64{0.9}, cf)
	}
	{
		_, err := CreateDictionaryConstraint(V, []Coupling{{Slave: geometry.Point{0.5, 0}}}, 0, 1.e-10)
		assert.Error(t, err)
		_, err = CreateDictionaryConstraint(V, []Coupling{{
			Slave:   geometry.Point{1, 0},
			Masters: []MasterPoint{{Point: geometry.Point{2, 2}, Coeff: 1}},
		}}, 0, 1.e-10)
		assert.Error(t, err)
		_, err = CreateDictionaryConstraint(V, nil, 2, 1.e-10)
		assert.Error(t, err)
	}
}

func TestAugmentPattern(t *testing.T) {
	V, bbt := intervalSpace(t, 4, 1)
	form := fem.NewBilinearForm(V, V)
	p, err := sparsity.BuildStandardPattern(form)
	require.NoError(t, err)
	assert.Equal(t, 13, p.NNZ())
	c, err := CreatePointConstraint(V, bbt, []int{4}, func(x geometry.Point) geometry.Point {
		return x.Sub(geometry.Point{1})
	})
	require.NoError(t, err)
	require.NoError(t, AugmentPattern(p, form, V, c))
	assert.Equal(t, 17, p.NNZ())
	assert.True(t, p.Has(0, 4))
	assert.True(t, p.Has(3, 0))
	assert.Equal(t, []int{0, 1, 3, 4}, p.RowColumns(0))
	{ // Unknown slave dofs surface from the locator
		bad, _ := NewConstraint([]int{11}, []int{0}, []float64{1}, []int{0, 1})
		assert.Error(t, AugmentPattern(p, form, V, bad))
	}
}
