package geometry

import (
	"fmt"

	"github.com/notargets/gompc/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	// MaxNewtonIterations caps the pull-back for non-affine shapes
	MaxNewtonIterations = 25
	// NewtonTolerance is the reference space step size taken as converged
	NewtonTolerance = 1.e-12
	// Roundoff is the float64 unit round-off
	Roundoff = 0x1p-53
)

func checkVertices(shape utils.ElementType, vertices []Point) (cd *cellDef, err error) {
	if cd, err = lookup(shape); err != nil {
		return
	}
	if len(vertices) != len(cd.vertices) {
		err = fmt.Errorf("%w: %s expects %d vertices, have %d",
			ErrMalformedCell, shape, len(cd.vertices), len(vertices))
	}
	return
}

func forward(cd *cellDef, vertices []Point, X Point) (x Point, J *mat.Dense) {
	phi, dphi := cd.shapeFunc(X)
	J = mat.NewDense(3, cd.tdim, nil)
	for i, v := range vertices {
		x = x.Add(v.Scale(phi[i]))
		for d := 0; d < 3; d++ {
			for k := 0; k < cd.tdim; k++ {
				J.Set(d, k, J.At(d, k)+v[d]*dphi[i][k])
			}
		}
	}
	return
}

// ReferenceToPhysical is the forward map x = sum_i phi_i(X) v_i of a cell
func ReferenceToPhysical(shape utils.ElementType, vertices []Point, X Point) (x Point, err error) {
	var cd *cellDef
	if cd, err = checkVertices(shape, vertices); err != nil {
		return
	}
	x, _ = forward(cd, vertices, X)
	return
}

// Jacobian returns the 3 x tdim derivative of the forward map at X
func Jacobian(shape utils.ElementType, vertices []Point, X Point) (J *mat.Dense, err error) {
	var cd *cellDef
	if cd, err = checkVertices(shape, vertices); err != nil {
		return
	}
	_, J = forward(cd, vertices, X)
	return
}

// pseudoInverseStep solves the normal equations (J^T J) dX = J^T r, which is
// the exact inverse for square J and the least squares step for manifolds
func pseudoInverseStep(J *mat.Dense, r Point) (dX Point, err error) {
	var (
		_, tdim = J.Dims()
		JtJ     = mat.NewDense(tdim, tdim, nil)
		rhs     = mat.NewVecDense(tdim, nil)
		sol     = mat.NewVecDense(tdim, nil)
	)
	JtJ.Mul(J.T(), J)
	rhs.MulVec(J.T(), mat.NewVecDense(3, r[:]))
	if err = sol.SolveVec(JtJ, rhs); err != nil {
		err = fmt.Errorf("%w: %v", ErrGeometryDegenerate, err)
		return
	}
	for k := 0; k < tdim; k++ {
		dX[k] = sol.AtVec(k)
	}
	return
}

// localFrame translates the cell and x so vertex 0 sits at the origin.
// Coordinates close to each other subtract exactly, so afterwards round-off
// scales with the cell size rather than with the distance from the origin.
func localFrame(vertices []Point, x Point) (local []Point, xl Point) {
	local = make([]Point, len(vertices))
	for i, v := range vertices {
		local[i] = v.Sub(vertices[0])
	}
	xl = x.Sub(vertices[0])
	return
}

// PhysicalToReference pulls a physical point back to reference coordinates.
// Simplices are inverted exactly; other shapes use a capped Gauss-Newton
// iteration and return ErrGeometryDegenerate when it does not converge.
// Newton stops on a small reference step or once the physical residual is
// at the round-off level of the cell.
// Vertices must follow the canonical local ordering of the shape.
func PhysicalToReference(shape utils.ElementType, vertices []Point, x Point) (X Point, err error) {
	var (
		cd *cellDef
		dX Point
	)
	if cd, err = checkVertices(shape, vertices); err != nil {
		return
	}
	local, xl := localFrame(vertices, x)
	if cd.affine {
		x0, J := forward(cd, local, Point{})
		X, err = pseudoInverseStep(J, xl.Sub(x0))
		return
	}
	floor := 16 * Roundoff * (Diameter(local) + xl.Norm())
	X = ReferenceMidpoint(shape)
	for iter := 0; iter < MaxNewtonIterations; iter++ {
		xk, J := forward(cd, local, X)
		r := xl.Sub(xk)
		if r.Norm() <= floor {
			return
		}
		if dX, err = pseudoInverseStep(J, r); err != nil {
			return
		}
		X = X.Add(dX)
		if dX.Norm() < NewtonTolerance {
			return
		}
	}
	err = fmt.Errorf("%w: Newton iteration did not converge in %d steps for %s",
		ErrGeometryDegenerate, MaxNewtonIterations, shape)
	return
}

// Residual is the physical distance |F(X) - x|, measured in the frame of
// vertex 0. It is non-zero past round-off only for points off the plane or
// line of a cell embedded in higher dimension.
func Residual(shape utils.ElementType, vertices []Point, X, x Point) (res float64, err error) {
	var cd *cellDef
	if cd, err = checkVertices(shape, vertices); err != nil {
		return
	}
	local, xl := localFrame(vertices, x)
	xk, _ := forward(cd, local, X)
	res = floats.Distance(xk[:], xl[:], 2)
	return
}
