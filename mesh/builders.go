package mesh

import (
	"fmt"

	"github.com/notargets/gompc/geometry"
	"github.com/notargets/gompc/utils"
)

// NewIntervalMesh divides [x0,x1] into n equal cells
func NewIntervalMesh(n int, x0, x1 float64) (m *Mesh) {
	if n < 1 {
		panic("interval mesh needs at least one cell")
	}
	m = NewMesh(1)
	h := (x1 - x0) / float64(n)
	for i := 0; i <= n; i++ {
		m.Vertices = append(m.Vertices, geometry.NewPoint(x0+float64(i)*h))
	}
	for i := 0; i < n; i++ {
		m.AddCell(utils.Line, i, i+1)
	}
	m.Boundaries["left"] = []BoundaryElement{{ElementType: utils.Unknown, Nodes: []int{0}}}
	m.Boundaries["right"] = []BoundaryElement{{ElementType: utils.Unknown, Nodes: []int{n}}}
	return
}

// NewRectangleMesh builds an nx by ny structured mesh of quadrilaterals, or
// of triangles with two per rectangle split along the rising diagonal
func NewRectangleMesh(nx, ny int, x0, y0, x1, y1 float64, shape utils.ElementType) (m *Mesh, err error) {
	if nx < 1 || ny < 1 {
		err = fmt.Errorf("rectangle mesh needs at least one cell per direction, have %dx%d", nx, ny)
		return
	}
	if shape != utils.Triangle && shape != utils.Quad {
		err = fmt.Errorf("rectangle mesh supports Triangle and Quad, not %s", shape)
		return
	}
	m = NewMesh(2)
	var (
		dx, dy = (x1 - x0) / float64(nx), (y1 - y0) / float64(ny)
		vid    = func(i, j int) int { return j*(nx+1) + i }
	)
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			m.Vertices = append(m.Vertices,
				geometry.NewPoint(x0+float64(i)*dx, y0+float64(j)*dy))
		}
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			v0, v1, v2, v3 := vid(i, j), vid(i+1, j), vid(i, j+1), vid(i+1, j+1)
			switch shape {
			case utils.Quad:
				m.AddCell(utils.Quad, v0, v1, v2, v3)
			case utils.Triangle:
				m.AddCell(utils.Triangle, v0, v1, v3)
				m.AddCell(utils.Triangle, v0, v2, v3)
			}
		}
	}
	for i := 0; i < nx; i++ {
		m.Boundaries["bottom"] = append(m.Boundaries["bottom"],
			BoundaryElement{ElementType: utils.Line, Nodes: []int{vid(i, 0), vid(i+1, 0)}})
		m.Boundaries["top"] = append(m.Boundaries["top"],
			BoundaryElement{ElementType: utils.Line, Nodes: []int{vid(i, ny), vid(i+1, ny)}})
	}
	for j := 0; j < ny; j++ {
		m.Boundaries["left"] = append(m.Boundaries["left"],
			BoundaryElement{ElementType: utils.Line, Nodes: []int{vid(0, j), vid(0, j+1)}})
		m.Boundaries["right"] = append(m.Boundaries["right"],
			BoundaryElement{ElementType: utils.Line, Nodes: []int{vid(nx, j), vid(nx, j+1)}})
	}
	return
}

// NewBoxMesh builds an nx by ny by nz structured mesh of the box [p0,p1].
// Each sub-cube holds one hexahedron, two prisms or six tetrahedra; the
// splits share diagonals across neighbours so the mesh is conforming.
func NewBoxMesh(nx, ny, nz int, p0, p1 geometry.Point, shape utils.ElementType) (m *Mesh, err error) {
	if nx < 1 || ny < 1 || nz < 1 {
		err = fmt.Errorf("box mesh needs at least one cell per direction, have %dx%dx%d", nx, ny, nz)
		return
	}
	if shape != utils.Tet && shape != utils.Hex && shape != utils.Prism {
		err = fmt.Errorf("box mesh supports Tet, Hex and Prism, not %s", shape)
		return
	}
	m = NewMesh(3)
	var (
		n   = [3]int{nx, ny, nz}
		h   geometry.Point
		vid = func(i, j, k int) int { return (k*(ny+1)+j)*(nx+1) + i }
	)
	for d := 0; d < 3; d++ {
		h[d] = (p1[d] - p0[d]) / float64(n[d])
	}
	for k := 0; k <= nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i <= nx; i++ {
				m.Vertices = append(m.Vertices, geometry.Point{
					p0[0] + float64(i)*h[0],
					p0[1] + float64(j)*h[1],
					p0[2] + float64(k)*h[2],
				})
			}
		}
	}
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				var v [8]int
				for c := 0; c < 8; c++ {
					v[c] = vid(i+c&1, j+(c>>1)&1, k+(c>>2)&1)
				}
				switch shape {
				case utils.Hex:
					m.AddCell(utils.Hex, v[:]...)
				case utils.Prism:
					m.AddCell(utils.Prism, v[0], v[1], v[2], v[4], v[5], v[6])
					m.AddCell(utils.Prism, v[1], v[3], v[2], v[5], v[7], v[6])
				case utils.Tet:
					m.AddCell(utils.Tet, v[0], v[1], v[3], v[7])
					m.AddCell(utils.Tet, v[0], v[1], v[5], v[7])
					m.AddCell(utils.Tet, v[0], v[4], v[5], v[7])
					m.AddCell(utils.Tet, v[0], v[2], v[3], v[7])
					m.AddCell(utils.Tet, v[0], v[4], v[6], v[7])
					m.AddCell(utils.Tet, v[0], v[2], v[6], v[7])
				}
			}
		}
	}
	return
}
