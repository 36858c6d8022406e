package mesh

import (
	"fmt"
	"sort"

	"github.com/notargets/gompc/geometry"
	"github.com/notargets/gompc/utils"
)

// BoundaryElement is a marked facet read from a mesh file
type BoundaryElement struct {
	ElementType utils.ElementType
	Nodes       []int
}

// Mesh is an unstructured mesh of possibly mixed cell shapes. Cell vertex
// lists follow the canonical local ordering of the geometry package.
type Mesh struct {
	GDim         int
	Vertices     []geometry.Point
	EtoV         [][]int
	ElementTypes []utils.ElementType
	// Boundaries maps marker names to facets
	Boundaries map[string][]BoundaryElement
}

func NewMesh(gdim int) *Mesh {
	return &Mesh{
		GDim:       gdim,
		Boundaries: make(map[string][]BoundaryElement),
	}
}

// AddCell appends a cell and returns its index
func (m *Mesh) AddCell(shape utils.ElementType, verts ...int) (cell int) {
	cell = len(m.EtoV)
	m.EtoV = append(m.EtoV, verts)
	m.ElementTypes = append(m.ElementTypes, shape)
	return
}

func (m *Mesh) NumCells() int { return len(m.EtoV) }

func (m *Mesh) NumVertices() int { return len(m.Vertices) }

// CellType is Unknown for a cell outside the mesh
func (m *Mesh) CellType(cell int) utils.ElementType {
	if cell < 0 || cell >= len(m.ElementTypes) {
		return utils.Unknown
	}
	return m.ElementTypes[cell]
}

// CellVertices returns the coordinates of a cell's vertices in local order
func (m *Mesh) CellVertices(cell int) (verts []geometry.Point, err error) {
	if cell < 0 || cell >= len(m.EtoV) {
		err = fmt.Errorf("%w: cell %d out of range [0,%d)",
			geometry.ErrMalformedCell, cell, len(m.EtoV))
		return
	}
	var (
		shape = m.ElementTypes[cell]
		ev    = m.EtoV[cell]
	)
	if len(ev) != shape.GetNumVertices() {
		err = fmt.Errorf("%w: cell %d is a %s with %d vertices",
			geometry.ErrMalformedCell, cell, shape, len(ev))
		return
	}
	verts = make([]geometry.Point, len(ev))
	for i, v := range ev {
		verts[i] = m.Vertices[v]
	}
	return
}

// Topology returns the cell to vertex adjacency
func (m *Mesh) Topology() *utils.AdjacencyList {
	return utils.NewAdjacencyList(m.EtoV)
}

// BoundaryVertices returns the sorted unique vertices of a marker
func (m *Mesh) BoundaryVertices(marker string) (verts []int, err error) {
	elems, ok := m.Boundaries[marker]
	if !ok {
		err = fmt.Errorf("unknown boundary marker %q", marker)
		return
	}
	seen := make(map[int]bool)
	for _, be := range elems {
		for _, n := range be.Nodes {
			if !seen[n] {
				seen[n] = true
				verts = append(verts, n)
			}
		}
	}
	sort.Ints(verts)
	return
}

// PrintStatistics prints mesh statistics
func (m *Mesh) PrintStatistics() {
	fmt.Printf("Mesh Statistics:\n")
	fmt.Printf("  Geometric dimension: %d\n", m.GDim)
	fmt.Printf("  Vertices: %d\n", m.NumVertices())
	fmt.Printf("  Elements: %d\n", m.NumCells())

	typeCounts := make(map[utils.ElementType]int)
	for _, t := range m.ElementTypes {
		typeCounts[t]++
	}
	fmt.Printf("  Element types:\n")
	for t := utils.Line; t <= utils.Pyramid; t++ {
		if count := typeCounts[t]; count > 0 {
			fmt.Printf("    %s: %d\n", t, count)
		}
	}
	markers := make([]string, 0, len(m.Boundaries))
	for name := range m.Boundaries {
		markers = append(markers, name)
	}
	sort.Strings(markers)
	for _, name := range markers {
		fmt.Printf("  Marker %s: %d facets\n", name, len(m.Boundaries[name]))
	}
}
