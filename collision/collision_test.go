package collision

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/notargets/gompc/fem"
	"github.com/notargets/gompc/geometry"
	"github.com/notargets/gompc/mesh"
	"github.com/notargets/gompc/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestCollisionCellPoint(t *testing.T) {
	tri := []geometry.Point{{0, 0}, {1, 0}, {0, 1}}
	{ // Unit triangle, boundary inclusive
		for _, tc := range []struct {
			p      geometry.Point
			inside bool
		}{
			{geometry.Point{0.25, 0.25}, true},
			{geometry.Point{0.9, 0.9}, false},
			{geometry.Point{0.5, 0.5}, true},
			{geometry.Point{0, 0}, true},
			{geometry.Point{-0.01, 0.5}, false},
		} {
			inside, err := CollisionCellPoint(tri, utils.Triangle, tc.p)
			require.NoError(t, err)
			assert.Equal(t, tc.inside, inside, "%v", tc.p)
		}
	}
	{ // Triangle embedded in 3D: points off the plane are outside
		verts := []geometry.Point{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
		inside, err := CollisionCellPoint(verts, utils.Triangle, geometry.Point{0.2, 0.2, 0})
		require.NoError(t, err)
		assert.True(t, inside)
		inside, err = CollisionCellPoint(verts, utils.Triangle, geometry.Point{0.2, 0.2, 0.1})
		require.NoError(t, err)
		assert.False(t, inside)
	}
	{ // Degenerate cells hold nothing and raise nothing
		inside, err := CollisionCellPoint([]geometry.Point{{0, 0}, {1, 1}, {2, 2}}, utils.Triangle,
			geometry.Point{0.5, 0.5})
		assert.NoError(t, err)
		assert.False(t, inside)
	}
	{ // Malformed cells are errors
		_, err := CollisionCellPoint(tri, utils.Quad, geometry.Point{0.1, 0.1})
		assert.True(t, errors.Is(err, geometry.ErrMalformedCell))
	}
	{ // Non-affine hexahedron
		m, _ := mesh.NewBoxMesh(1, 1, 1, geometry.Point{}, geometry.Point{1, 2, 3}, utils.Hex)
		verts, _ := m.CellVertices(0)
		verts[7] = geometry.Point{1.2, 2.3, 3.1}
		inside, err := CollisionCellPoint(verts, utils.Hex, geometry.Point{0.5, 1, 1.5})
		require.NoError(t, err)
		assert.True(t, inside)
		inside, err = CollisionCellPoint(verts, utils.Hex, geometry.Point{0.5, 1, 3.5})
		require.NoError(t, err)
		assert.False(t, inside)
	}
}

func TestCheckCellPointCollision(t *testing.T) {
	{ // Two intervals [0,1] and [1,2] seen through P1 dof coordinates
		V, err := fem.NewFunctionSpace(mesh.NewIntervalMesh(2, 0, 2), 1, 1)
		require.NoError(t, err)
		inside, err := CheckCellPointCollision([]int{0, 1}, geometry.Point{0.5}, DofVertices{V})
		require.NoError(t, err)
		assert.Equal(t, []bool{true, false}, inside)
		// The shared vertex belongs to both
		inside, err = CheckCellPointCollision([]int{0, 1}, geometry.Point{1}, DofVertices{V})
		require.NoError(t, err)
		assert.Equal(t, []bool{true, true}, inside)
	}
	{ // Malformed cells read false without stopping the batch
		m := mesh.NewIntervalMesh(2, 0, 2)
		m.AddCell(utils.Triangle, 0, 1)
		m.AddCell(utils.Quad, 0, 1, 2)
		inside, err := CheckCellPointCollision([]int{2, 0, 3, 1}, geometry.Point{0.5}, MeshVertices{m})
		assert.Equal(t, []bool{false, true, false, false}, inside)
		require.Error(t, err)
		assert.True(t, errors.Is(err, geometry.ErrMalformedCell))
		assert.Len(t, multierr.Errors(err), 2)
	}
	{ // Empty candidate list
		inside, err := CheckCellPointCollision(nil, geometry.Point{}, MeshVertices{mesh.NewIntervalMesh(1, 0, 1)})
		assert.NoError(t, err)
		assert.Empty(t, inside)
	}
}

func TestComputeCollisions(t *testing.T) {
	{ // Centroids hit only their own cell; shared edges hit at least one
		m, _ := mesh.NewRectangleMesh(2, 2, 0, 0, 1, 1, utils.Triangle)
		bbt := mesh.NewBoundingBoxTree(m)
		src := MeshVertices{m}
		for cell := 0; cell < m.NumCells(); cell++ {
			verts, _ := m.CellVertices(cell)
			c := verts[0].Add(verts[1]).Add(verts[2]).Scale(1. / 3.)
			cells, err := ComputeCollisions(bbt, c, src)
			require.NoError(t, err)
			assert.Equal(t, []int{cell}, cells)
		}
		cells, err := ComputeCollisions(bbt, geometry.Point{0.25, 0.25}, src)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1}, cells)
		cells, err = ComputeCollisions(bbt, geometry.Point{1.5, 0.5}, src)
		require.NoError(t, err)
		assert.Empty(t, cells)
	}
	{ // No point inside the box falls between tetrahedra
		m, _ := mesh.NewBoxMesh(2, 2, 2, geometry.Point{}, geometry.Point{1, 1, 1}, utils.Tet)
		bbt := mesh.NewBoundingBoxTree(m)
		rng := rand.New(rand.NewSource(3))
		for n := 0; n < 200; n++ {
			p := geometry.Point{rng.Float64(), rng.Float64(), rng.Float64()}
			if n%4 == 0 { // snap onto grid planes
				p[n%3] = 0.5
			}
			cells, err := ComputeCollisions(bbt, p, MeshVertices{m})
			require.NoError(t, err)
			assert.NotEmpty(t, cells, "%v", p)
		}
	}
	{ // Dof geometry agrees with mesh geometry for affine P2 cells
		m, _ := mesh.NewRectangleMesh(3, 2, 0, 0, 3, 2, utils.Triangle)
		V, _ := fem.NewFunctionSpace(m, 2, 3)
		bbt := mesh.NewBoundingBoxTree(m)
		p := geometry.Point{1.3, 0.6}
		c1, err := ComputeCollisions(bbt, p, MeshVertices{m})
		require.NoError(t, err)
		c2, err := ComputeCollisions(bbt, p, DofVertices{V})
		require.NoError(t, err)
		assert.Equal(t, c1, c2)
		assert.Len(t, c1, 1)
	}
}

func TestCheckPointsParallel(t *testing.T) {
	m, _ := mesh.NewBoxMesh(3, 2, 2, geometry.Point{}, geometry.Point{3, 2, 2}, utils.Prism)
	var (
		bbt    = mesh.NewBoundingBoxTree(m)
		src    = MeshVertices{m}
		rng    = rand.New(rand.NewSource(11))
		points = make([]geometry.Point, 57)
	)
	for i := range points {
		points[i] = geometry.Point{4 * rng.Float64(), 2 * rng.Float64(), 2 * rng.Float64()}
	}
	cells, err := CheckPointsParallel(points, bbt, src, 4)
	require.NoError(t, err)
	require.Len(t, cells, len(points))
	for i, p := range points {
		serial, err := ComputeCollisions(bbt, p, src)
		require.NoError(t, err)
		assert.Equal(t, serial, cells[i])
		if p[0] > 3 {
			assert.Empty(t, cells[i])
		} else {
			assert.NotEmpty(t, cells[i])
		}
	}
	empty, err := CheckPointsParallel(nil, bbt, src, 4)
	assert.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCollisionScaleAndOffset(t *testing.T) {
	interior := map[utils.ElementType]geometry.Point{
		utils.Triangle: {0.3, 0.2},
		utils.Quad:     {0.3, 0.2},
		utils.Tet:      {0.3, 0.2, 0.1},
		utils.Hex:      {0.3, 0.2, 0.4},
	}
	for shape, Xr := range interior {
		tdim := shape.GetDimension()
		for _, h := range []float64{1.e-3, 1.e-4, 1.e-5} {
			for _, o := range []float64{0, 1.e3, 1.e4, 1.e6} {
				place := func(X geometry.Point) (x geometry.Point) {
					x = geometry.Point{h * (X[0] + 0.1*X[1]), h * X[1], h * X[2]}
					for d := 0; d < tdim; d++ {
						x[d] += o
					}
					return
				}
				var verts []geometry.Point
				for _, X := range geometry.ReferenceVertices(shape) {
					verts = append(verts, place(X))
				}
				inside, err := CollisionCellPoint(verts, shape, place(Xr))
				require.NoError(t, err)
				assert.True(t, inside, "%s h=%g origin=%g", shape, h, o)
				outside := Xr
				outside[0] = 1.3
				inside, err = CollisionCellPoint(verts, shape, place(outside))
				require.NoError(t, err)
				assert.False(t, inside, "%s h=%g origin=%g", shape, h, o)
			}
		}
	}
	{ // Triangle in 3D far from the origin: on the plane inside, lifted off it outside
		var (
			h, o  = 1.e-3, 1.e4
			verts = []geometry.Point{{o, o, o}, {o + h, o, o}, {o, o + h, o + h}}
		)
		for i := 1; i < 18; i++ {
			for j := 1; i+j < 18; j++ {
				a, b := float64(i)/18, float64(j)/18
				p := geometry.Point{o + a*h, o + b*h, o + b*h}
				inside, err := CollisionCellPoint(verts, utils.Triangle, p)
				require.NoError(t, err)
				assert.True(t, inside, "a=%g b=%g", a, b)
			}
		}
		inside, err := CollisionCellPoint(verts, utils.Triangle, geometry.Point{o + 0.2*h, o + 0.2*h, o + 0.3*h})
		require.NoError(t, err)
		assert.False(t, inside)
	}
}
