package geometry

import (
	"errors"
	"math"
)

var (
	// ErrGeometryDegenerate reports that a physical point could not be pulled
	// back to the reference cell (singular Jacobian or Newton divergence).
	// Collision checks treat it as non-containment.
	ErrGeometryDegenerate = errors.New("degenerate cell geometry")
	// ErrMalformedCell reports a cell whose vertex count disagrees with its shape tag
	ErrMalformedCell = errors.New("malformed cell")
)

// Point is a physical or reference coordinate. Lower dimensional data is
// padded with zeros.
type Point [3]float64

// NewPoint pads up to three coordinates into a Point
func NewPoint(coords ...float64) (p Point) {
	if len(coords) > 3 {
		panic("a point has at most three coordinates")
	}
	copy(p[:], coords)
	return
}

func (p Point) Sub(q Point) Point { return Point{p[0] - q[0], p[1] - q[1], p[2] - q[2]} }

func (p Point) Add(q Point) Point { return Point{p[0] + q[0], p[1] + q[1], p[2] + q[2]} }

func (p Point) Scale(a float64) Point { return Point{a * p[0], a * p[1], a * p[2]} }

func (p Point) Norm() float64 {
	return math.Sqrt(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])
}

func (p Point) Distance(q Point) float64 { return p.Sub(q).Norm() }

// Diameter is the largest vertex to vertex distance of a cell
func Diameter(vertices []Point) (h float64) {
	for i := range vertices {
		for j := i + 1; j < len(vertices); j++ {
			if d := vertices[i].Distance(vertices[j]); d > h {
				h = d
			}
		}
	}
	return
}
