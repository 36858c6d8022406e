package basis

import (
	"errors"
	"testing"

	"github.com/notargets/gompc/fem"
	"github.com/notargets/gompc/geometry"
	"github.com/notargets/gompc/mesh"
	"github.com/notargets/gompc/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// fakeSpace is a single cell scalar space with a programmable table
type fakeSpace struct {
	shape utils.ElementType
	verts []geometry.Point
	rows  int
}

func (fs *fakeSpace) CellType(int) utils.ElementType               { return fs.shape }
func (fs *fakeSpace) CellVertices(int) ([]geometry.Point, error)   { return fs.verts, nil }
func (fs *fakeSpace) NumLocalDofs(int) int                         { return len(fs.verts) }
func (fs *fakeSpace) ValueSize() int                               { return 1 }
func (fs *fakeSpace) PushForward(r, _ *mat.Dense) (*mat.Dense, error) { return r, nil }
func (fs *fakeSpace) TabulateReference(_ int, X geometry.Point) (*mat.Dense, error) {
	phi, _, err := geometry.ShapeFunctions(fs.shape, X)
	if err != nil {
		return nil, err
	}
	return mat.NewDense(fs.rows, 1, phi[:fs.rows]), nil
}

func TestGetBasisFunctions(t *testing.T) {
	{ // Two intervals [0,1] and [1,2], P1, point 0.5 in cell 0
		V, err := fem.NewFunctionSpace(mesh.NewIntervalMesh(2, 0, 2), 1, 1)
		require.NoError(t, err)
		values, err := GetBasisFunctions(V, geometry.Point{0.5}, 0)
		require.NoError(t, err)
		r, c := values.Dims()
		assert.Equal(t, 2, r)
		assert.Equal(t, 1, c)
		assert.InDeltaSlice(t, []float64{0.5, 0.5}, mat.Col(nil, 0, values), 1.e-15)
	}
	{ // Row count follows local dofs for a blocked P2 space
		m, _ := mesh.NewRectangleMesh(2, 2, 0, 0, 1, 1, utils.Triangle)
		V, err := fem.NewFunctionSpace(m, 2, 2)
		require.NoError(t, err)
		values, err := GetBasisFunctions(V, geometry.Point{0.3, 0.1}, 0)
		require.NoError(t, err)
		r, c := values.Dims()
		assert.Equal(t, V.NumLocalDofs(0), r)
		assert.Equal(t, V.ValueSize(), c)
		// Each component column is a partition of unity
		for comp := 0; comp < c; comp++ {
			assert.InDelta(t, 1., mat.Sum(values.ColView(comp)), 1.e-12)
		}
	}
	{ // Quadrilateral basis interpolates x exactly
		m, _ := mesh.NewRectangleMesh(1, 1, 0, 0, 2, 1, utils.Quad)
		V, _ := fem.NewFunctionSpace(m, 1, 1)
		values, err := GetBasisFunctions(V, geometry.Point{0.5, 0.25}, 0)
		require.NoError(t, err)
		var x float64
		for l, dof := range V.CellDofs(0) {
			x += values.At(l, 0) * V.DofCoordinate(dof)[0]
		}
		assert.InDelta(t, 0.5, x, 1.e-12)
	}
	{ // Outside the cell the reference map extrapolates
		V, _ := fem.NewFunctionSpace(mesh.NewIntervalMesh(2, 0, 2), 1, 1)
		values, err := GetBasisFunctions(V, geometry.Point{1.5}, 0)
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{-0.5, 1.5}, mat.Col(nil, 0, values), 1.e-15)
	}
	{ // Pull-back failures reach the caller
		fs := &fakeSpace{shape: utils.Triangle, verts: []geometry.Point{{0, 0}, {1, 1}, {2, 2}}, rows: 3}
		_, err := GetBasisFunctions(fs, geometry.Point{0.5, 0.5}, 0)
		assert.True(t, errors.Is(err, geometry.ErrGeometryDegenerate))
		fs = &fakeSpace{shape: utils.Quad, verts: []geometry.Point{{0, 0}, {1, 0}, {0, 1}}, rows: 3}
		_, err = GetBasisFunctions(fs, geometry.Point{0.5, 0.5}, 0)
		assert.True(t, errors.Is(err, geometry.ErrMalformedCell))
	}
	{ // A table that disagrees with the dof count is rejected
		fs := &fakeSpace{shape: utils.Triangle, verts: []geometry.Point{{0, 0}, {1, 0}, {0, 1}}, rows: 2}
		values, err := GetBasisFunctions(fs, geometry.Point{0.25, 0.25}, 0)
		assert.Error(t, err)
		assert.Nil(t, values)
	}
}
