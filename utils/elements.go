package utils

import (
	"fmt"
	"strings"
)

// ElementType is the cell shape tag. Exactly one tag applies to each mesh cell
// and it fixes the reference cell, the vertex count and the reference map.
type ElementType int

const (
	Unknown ElementType = iota
	// 1D elements
	Line
	// 2D elements
	Triangle
	Quad
	// 3D elements
	Tet
	Hex
	Prism
	Pyramid
)

var elementNames = []string{
	"Unknown", "Line", "Triangle", "Quad", "Tet", "Hex", "Prism", "Pyramid",
}

// String representation of element types
func (e ElementType) String() string {
	if e >= 0 && int(e) < len(elementNames) {
		return elementNames[e]
	}
	return "Invalid"
}

// NewElementType parses a shape name, accepting the common aliases used in
// mesh files and input decks ("interval", "tetrahedron", "wedge", ...)
func NewElementType(label string) (e ElementType, err error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "line", "interval", "segment":
		e = Line
	case "triangle", "tri":
		e = Triangle
	case "quad", "quadrilateral":
		e = Quad
	case "tet", "tetrahedron":
		e = Tet
	case "hex", "hexahedron":
		e = Hex
	case "prism", "wedge":
		e = Prism
	case "pyramid":
		e = Pyramid
	default:
		err = fmt.Errorf("unknown element type: %q", label)
	}
	return
}

// GetDimension returns the topological dimension of the element
func (e ElementType) GetDimension() int {
	switch e {
	case Line:
		return 1
	case Triangle, Quad:
		return 2
	case Tet, Hex, Prism, Pyramid:
		return 3
	default:
		return -1
	}
}

// GetNumVertices returns the number of corner vertices for each element type
func (e ElementType) GetNumVertices() int {
	switch e {
	case Line:
		return 2
	case Triangle:
		return 3
	case Quad:
		return 4
	case Tet:
		return 4
	case Hex:
		return 8
	case Prism:
		return 6
	case Pyramid:
		return 5
	default:
		return 0
	}
}

// IsSimplex is true for shapes whose reference map is affine
func (e ElementType) IsSimplex() bool {
	return e == Line || e == Triangle || e == Tet
}

// GetEdges returns the local vertex pairs of each edge, in reference edge order.
// Simplex edges are numbered opposite-vertex first, so edge i of a triangle does
// not touch vertex i.
func (e ElementType) GetEdges() [][2]int {
	switch e {
	case Line:
		return [][2]int{{0, 1}}
	case Triangle:
		return [][2]int{{1, 2}, {0, 2}, {0, 1}}
	case Quad:
		return [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}}
	case Tet:
		return [][2]int{{2, 3}, {1, 3}, {1, 2}, {0, 3}, {0, 2}, {0, 1}}
	case Hex:
		return [][2]int{{0, 1}, {0, 2}, {0, 4}, {1, 3}, {1, 5}, {2, 3},
			{2, 6}, {3, 7}, {4, 5}, {4, 6}, {5, 7}, {6, 7}}
	case Prism:
		return [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 4}, {2, 5},
			{3, 4}, {3, 5}, {4, 5}}
	case Pyramid:
		return [][2]int{{0, 1}, {0, 2}, {0, 4}, {1, 3}, {1, 4}, {2, 3},
			{2, 4}, {3, 4}}
	default:
		return nil
	}
}
