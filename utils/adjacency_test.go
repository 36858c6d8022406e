package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjacencyList(t *testing.T) {
	{ // Build from nested links
		al := NewAdjacencyList([][]int{{0, 1}, {}, {1, 2, 3}})
		assert.Equal(t, 3, al.NumNodes())
		assert.Equal(t, []int{0, 2, 2, 5}, al.Offsets)
		assert.Equal(t, []int{0, 1, 1, 2, 3}, al.Array)
		assert.Equal(t, []int{1, 2, 3}, al.Links(2))
		assert.Equal(t, 0, al.NumLinks(1))
		assert.Empty(t, al.Links(1))
	}
	{ // Wrap flat storage
		al, err := NewAdjacencyListFromOffsets([]int{4, 5, 6}, []int{0, 1, 3})
		require.NoError(t, err)
		assert.Equal(t, []int{5, 6}, al.Links(1))

		_, err = NewAdjacencyListFromOffsets([]int{4, 5, 6}, []int{0, 1})
		assert.Error(t, err)
		_, err = NewAdjacencyListFromOffsets([]int{4, 5, 6}, []int{0, 2, 1, 3})
		assert.Error(t, err)
		_, err = NewAdjacencyListFromOffsets(nil, nil)
		assert.Error(t, err)
	}
	{ // Invert cell->vertex into vertex->cell
		cells := NewAdjacencyList([][]int{{0, 1}, {1, 2}, {2, 0}})
		inv := cells.Invert(4)
		assert.Equal(t, 4, inv.NumNodes())
		assert.Equal(t, []int{0, 2}, inv.Links(0))
		assert.Equal(t, []int{0, 1}, inv.Links(1))
		assert.Equal(t, []int{1, 2}, inv.Links(2))
		assert.Empty(t, inv.Links(3))
	}
}

func TestElementType(t *testing.T) {
	{
		shapes := []ElementType{Line, Triangle, Quad, Tet, Hex, Prism, Pyramid}
		nverts := []int{2, 3, 4, 4, 8, 6, 5}
		dims := []int{1, 2, 2, 3, 3, 3, 3}
		nedges := []int{1, 3, 4, 6, 12, 9, 8}
		for i, e := range shapes {
			assert.Equal(t, nverts[i], e.GetNumVertices(), e.String())
			assert.Equal(t, dims[i], e.GetDimension(), e.String())
			assert.Equal(t, nedges[i], len(e.GetEdges()), e.String())
			parsed, err := NewElementType(e.String())
			require.NoError(t, err)
			assert.Equal(t, e, parsed)
		}
		assert.Equal(t, 0, Unknown.GetNumVertices())
		assert.Equal(t, "Invalid", ElementType(99).String())
	}
	{
		e, err := NewElementType("Tetrahedron")
		require.NoError(t, err)
		assert.Equal(t, Tet, e)
		e, err = NewElementType(" interval ")
		require.NoError(t, err)
		assert.Equal(t, Line, e)
		_, err = NewElementType("polygon")
		assert.Error(t, err)
		assert.True(t, Triangle.IsSimplex())
		assert.False(t, Quad.IsSimplex())
	}
}
