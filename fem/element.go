package fem

import (
	"fmt"

	"github.com/notargets/gompc/geometry"
	"github.com/notargets/gompc/utils"
)

// LagrangeElement is a continuous scalar Lagrange element. Vertex nodes come
// first in local order, followed by one node per edge in the reference edge
// order of the shape (degree 2 only).
type LagrangeElement struct {
	Shape  utils.ElementType
	Degree int
	edges  [][2]int
}

func NewLagrangeElement(shape utils.ElementType, degree int) (le *LagrangeElement, err error) {
	if shape.GetNumVertices() == 0 {
		err = fmt.Errorf("%w: no Lagrange element on shape %s", geometry.ErrMalformedCell, shape)
		return
	}
	switch degree {
	case 1:
	case 2:
		if !shape.IsSimplex() {
			err = fmt.Errorf("degree 2 Lagrange is available on simplices only, not %s", shape)
			return
		}
	default:
		err = fmt.Errorf("unsupported Lagrange degree %d", degree)
		return
	}
	le = &LagrangeElement{Shape: shape, Degree: degree}
	if degree == 2 {
		le.edges = shape.GetEdges()
	}
	return
}

func (le *LagrangeElement) NumNodes() int {
	return le.Shape.GetNumVertices() + len(le.edges)
}

// Edges returns the local vertex pairs carrying edge nodes
func (le *LagrangeElement) Edges() [][2]int { return le.edges }

// ReferenceNodes returns the reference coordinates of the element nodes
func (le *LagrangeElement) ReferenceNodes() (X []geometry.Point) {
	X = geometry.ReferenceVertices(le.Shape)
	for _, e := range le.edges {
		X = append(X, X[e[0]].Add(X[e[1]]).Scale(0.5))
	}
	return
}

// Tabulate evaluates the nodal basis and its reference gradient at X
func (le *LagrangeElement) Tabulate(X geometry.Point) (phi []float64, dphi [][3]float64, err error) {
	var (
		lam  []float64
		dlam [][3]float64
	)
	if lam, dlam, err = geometry.ShapeFunctions(le.Shape, X); err != nil {
		return
	}
	if le.Degree == 1 {
		return lam, dlam, nil
	}
	// Degree 2 from barycentric coordinates
	nv := len(lam)
	phi = make([]float64, le.NumNodes())
	dphi = make([][3]float64, le.NumNodes())
	for i := 0; i < nv; i++ {
		phi[i] = lam[i] * (2*lam[i] - 1)
		for d := 0; d < 3; d++ {
			dphi[i][d] = (4*lam[i] - 1) * dlam[i][d]
		}
	}
	for k, e := range le.edges {
		a, b := e[0], e[1]
		phi[nv+k] = 4 * lam[a] * lam[b]
		for d := 0; d < 3; d++ {
			dphi[nv+k][d] = 4 * (lam[a]*dlam[b][d] + lam[b]*dlam[a][d])
		}
	}
	return
}
