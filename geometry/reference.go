package geometry

import (
	"fmt"
	"math"

	"github.com/notargets/gompc/utils"
)

// DefaultTolerance absorbs round-off on reference coordinates. Reference cells
// have unit size, so it acts relative to the physical cell scale.
const DefaultTolerance = 1.e-10

// shapeFunctions evaluates the vertex (geometry) basis and its reference
// gradient at X. Only the first tdim gradient components are meaningful.
type shapeFunctions func(X Point) (phi []float64, dphi [][3]float64)

type insideTest func(X Point, tol float64) bool

// cellDef holds everything shape specific; cellTable is indexed by the tag
type cellDef struct {
	tdim      int
	vertices  []Point
	affine    bool
	inside    insideTest
	shapeFunc shapeFunctions
}

var cellTable = [...]cellDef{
	utils.Line: {
		tdim:      1,
		vertices:  []Point{{0, 0, 0}, {1, 0, 0}},
		affine:    true,
		inside:    insideInterval,
		shapeFunc: intervalShape,
	},
	utils.Triangle: {
		tdim:      2,
		vertices:  []Point{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		affine:    true,
		inside:    insideTriangle,
		shapeFunc: triangleShape,
	},
	utils.Quad: {
		tdim:      2,
		vertices:  []Point{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}},
		inside:    insideQuad,
		shapeFunc: quadShape,
	},
	utils.Tet: {
		tdim:      3,
		vertices:  []Point{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		affine:    true,
		inside:    insideTet,
		shapeFunc: tetShape,
	},
	utils.Hex: {
		tdim: 3,
		vertices: []Point{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
			{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1}},
		inside:    insideHex,
		shapeFunc: hexShape,
	},
	utils.Prism: {
		tdim: 3,
		vertices: []Point{{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
			{0, 0, 1}, {1, 0, 1}, {0, 1, 1}},
		inside:    insidePrism,
		shapeFunc: prismShape,
	},
	utils.Pyramid: {
		tdim:      3,
		vertices:  []Point{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}, {0, 0, 1}},
		inside:    insidePyramid,
		shapeFunc: pyramidShape,
	},
}

func lookup(shape utils.ElementType) (cd *cellDef, err error) {
	if shape <= utils.Unknown || int(shape) >= len(cellTable) {
		err = fmt.Errorf("%w: unsupported shape %s", ErrMalformedCell, shape)
		return
	}
	cd = &cellTable[shape]
	return
}

// ReferenceVertices returns the reference cell vertices in canonical local order
func ReferenceVertices(shape utils.ElementType) []Point {
	cd, err := lookup(shape)
	if err != nil {
		panic(err)
	}
	out := make([]Point, len(cd.vertices))
	copy(out, cd.vertices)
	return out
}

// ReferenceMidpoint is the vertex average of the reference cell
func ReferenceMidpoint(shape utils.ElementType) (X Point) {
	verts := ReferenceVertices(shape)
	for _, v := range verts {
		X = X.Add(v)
	}
	return X.Scale(1. / float64(len(verts)))
}

// InsideReferenceCell tests reference coordinates against the reference cell
// of the shape, boundary inclusive within tol
func InsideReferenceCell(shape utils.ElementType, X Point, tol float64) bool {
	cd, err := lookup(shape)
	if err != nil {
		return false
	}
	return cd.inside(X, tol)
}

// ShapeFunctions evaluates the vertex basis of the shape at reference point X
func ShapeFunctions(shape utils.ElementType, X Point) (phi []float64, dphi [][3]float64, err error) {
	var cd *cellDef
	if cd, err = lookup(shape); err != nil {
		return
	}
	phi, dphi = cd.shapeFunc(X)
	return
}

func insideInterval(X Point, tol float64) bool {
	return X[0] >= -tol && X[0] <= 1+tol
}

func insideTriangle(X Point, tol float64) bool {
	return X[0] >= -tol && X[1] >= -tol && X[0]+X[1] <= 1+tol
}

func insideQuad(X Point, tol float64) bool {
	return insideInterval(X, tol) && X[1] >= -tol && X[1] <= 1+tol
}

func insideTet(X Point, tol float64) bool {
	return X[0] >= -tol && X[1] >= -tol && X[2] >= -tol && X[0]+X[1]+X[2] <= 1+tol
}

func insideHex(X Point, tol float64) bool {
	return insideQuad(X, tol) && X[2] >= -tol && X[2] <= 1+tol
}

func insidePrism(X Point, tol float64) bool {
	return insideTriangle(X, tol) && X[2] >= -tol && X[2] <= 1+tol
}

func insidePyramid(X Point, tol float64) bool {
	return X[2] >= -tol && X[2] <= 1+tol &&
		X[0] >= -tol && X[1] >= -tol &&
		X[0]+X[2] <= 1+tol && X[1]+X[2] <= 1+tol
}

func intervalShape(X Point) (phi []float64, dphi [][3]float64) {
	phi = []float64{1 - X[0], X[0]}
	dphi = [][3]float64{{-1}, {1}}
	return
}

func triangleShape(X Point) (phi []float64, dphi [][3]float64) {
	phi = []float64{1 - X[0] - X[1], X[0], X[1]}
	dphi = [][3]float64{{-1, -1}, {1, 0}, {0, 1}}
	return
}

func tetShape(X Point) (phi []float64, dphi [][3]float64) {
	phi = []float64{1 - X[0] - X[1] - X[2], X[0], X[1], X[2]}
	dphi = [][3]float64{{-1, -1, -1}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	return
}

// Tensor product shapes number vertex i+2j+4k at (i,j,k)
func quadShape(X Point) (phi []float64, dphi [][3]float64) {
	var (
		x, y = X[0], X[1]
	)
	phi = []float64{(1 - x) * (1 - y), x * (1 - y), (1 - x) * y, x * y}
	dphi = [][3]float64{
		{-(1 - y), -(1 - x)},
		{1 - y, -x},
		{-y, 1 - x},
		{y, x},
	}
	return
}

func hexShape(X Point) (phi []float64, dphi [][3]float64) {
	phi = make([]float64, 8)
	dphi = make([][3]float64, 8)
	for k := 0; k < 2; k++ {
		for j := 0; j < 2; j++ {
			for i := 0; i < 2; i++ {
				var (
					v          = i + 2*j + 4*k
					f, df      [3]float64
					idx        = [3]int{i, j, k}
					prod, grad float64
				)
				for d := 0; d < 3; d++ {
					if idx[d] == 0 {
						f[d], df[d] = 1-X[d], -1
					} else {
						f[d], df[d] = X[d], 1
					}
				}
				prod = f[0] * f[1] * f[2]
				phi[v] = prod
				for d := 0; d < 3; d++ {
					grad = df[d]
					for e := 0; e < 3; e++ {
						if e != d {
							grad *= f[e]
						}
					}
					dphi[v][d] = grad
				}
			}
		}
	}
	return
}

func prismShape(X Point) (phi []float64, dphi [][3]float64) {
	var (
		x, y, z = X[0], X[1], X[2]
		tri     = []float64{1 - x - y, x, y}
		dtri    = [][2]float64{{-1, -1}, {1, 0}, {0, 1}}
	)
	phi = make([]float64, 6)
	dphi = make([][3]float64, 6)
	for i := 0; i < 3; i++ {
		phi[i] = tri[i] * (1 - z)
		phi[i+3] = tri[i] * z
		dphi[i] = [3]float64{dtri[i][0] * (1 - z), dtri[i][1] * (1 - z), -tri[i]}
		dphi[i+3] = [3]float64{dtri[i][0] * z, dtri[i][1] * z, tri[i]}
	}
	return
}

// pyramidShape is the rational vertex basis; the apex is regularized so the
// map stays finite at z == 1
func pyramidShape(X Point) (phi []float64, dphi [][3]float64) {
	var (
		x, y, z = X[0], X[1], X[2]
		w       = 1 - z
	)
	if math.Abs(w) < 1.e-14 {
		w = math.Copysign(1.e-14, w)
	}
	var (
		xy  = x * y
		xyw = xy / (w * w)
	)
	phi = []float64{
		(w - x) * (w - y) / w,
		x - xy/w,
		y - xy/w,
		xy / w,
		z,
	}
	dphi = [][3]float64{
		{-(w - y) / w, -(w - x) / w, -1 + xyw},
		{1 - y/w, -x / w, -xyw},
		{-y / w, 1 - x/w, -xyw},
		{y / w, x / w, xyw},
		{0, 0, 1},
	}
	return
}
