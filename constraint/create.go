package constraint

import (
	"fmt"
	"math"
	"sort"

	"github.com/notargets/gompc/basis"
	"github.com/notargets/gompc/collision"
	"github.com/notargets/gompc/fem"
	"github.com/notargets/gompc/geometry"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// CoefficientTolerance drops basis values too small to couple a master
const CoefficientTolerance = 1.e-10

// DofCloseTo returns the ascending dofs whose node lies within tol of point
func DofCloseTo(V *fem.FunctionSpace, point geometry.Point, tol float64) (dofs []int) {
	for node, x := range V.TabulateDofCoordinates() {
		if floats.Distance(x[:], point[:], 2) <= tol {
			for comp := 0; comp < V.BlockSize; comp++ {
				dofs = append(dofs, node*V.BlockSize+comp)
			}
		}
	}
	return
}

// CreatePointConstraint ties every slave dof to the dofs of the cell holding
// its mapped location, weighted by the basis there: u[s] = sum_m phi_m(F(x_s)) u[m].
// This is the periodic and contact constraint form. The master cell is the
// first cell holding F(x_s) that does not hold the slave. Slaves with no
// master cell, or whose masters would include a slave, are logged and skipped.
func CreatePointConstraint(V *fem.FunctionSpace, finder collision.CandidateFinder, slaves []int,
	mapping func(geometry.Point) geometry.Point) (c *Constraint, err error) {
	var (
		sorted  = append([]int(nil), slaves...)
		isSlave = make(map[int]bool, len(slaves))
		src     = collision.DofVertices{Space: V}
		kept    []int
		masters []int
		coeffs  []float64
		offsets = []int{0}
		bs      = V.BlockSize
	)
	sort.Ints(sorted)
	for _, s := range sorted {
		if s < 0 || s >= V.NumDofs() {
			return nil, fmt.Errorf("slave dof %d out of range [0,%d)", s, V.NumDofs())
		}
		if isSlave[s] {
			return nil, fmt.Errorf("slave dof %d listed twice", s)
		}
		isSlave[s] = true
	}
	for _, s := range sorted {
		var (
			x          = V.DofCoordinate(s)
			y          = mapping(x)
			comp       = V.DofComponent(s)
			own        = make(map[int]bool)
			masterCell = -1
			cells      []int
			cerr       error
		)
		for _, cell := range V.CellsOfDof(s) {
			own[cell] = true
		}
		if cells, cerr = collision.ComputeCollisions(finder, y, src); cerr != nil {
			logrus.WithError(cerr).WithField("slave", s).Warn("malformed candidate cells")
		}
		for _, cell := range cells {
			if !own[cell] {
				masterCell = cell
				break
			}
		}
		log := logrus.WithFields(logrus.Fields{"slave": s, "x": x, "F(x)": y})
		if masterCell < 0 {
			log.Warn("no master cell found, slave skipped")
			continue
		}
		values, berr := basis.GetBasisFunctions(V, y, masterCell)
		if berr != nil {
			log.WithError(berr).Warn("basis evaluation failed, slave skipped")
			continue
		}
		var (
			sm    []int
			sc    []float64
			chain bool
		)
		for l, dof := range V.CellDofs(masterCell) {
			if l%bs != comp {
				continue
			}
			if v := values.At(l, comp); math.Abs(v) > CoefficientTolerance {
				if isSlave[dof] {
					chain = true
					break
				}
				sm = append(sm, dof)
				sc = append(sc, v)
			}
		}
		if chain {
			log.WithField("cell", masterCell).Warn("masters include a slave, slave skipped")
			continue
		}
		log.WithFields(logrus.Fields{"cell": masterCell, "masters": sm}).Debug("slave constrained")
		kept = append(kept, s)
		masters = append(masters, sm...)
		coeffs = append(coeffs, sc...)
		offsets = append(offsets, len(masters))
	}
	return NewConstraint(kept, masters, coeffs, offsets)
}

// MasterPoint is a master location and its weight
type MasterPoint struct {
	Point geometry.Point
	Coeff float64
}

// Coupling constrains the dof at Slave to a combination of dofs at Masters
type Coupling struct {
	Slave   geometry.Point
	Masters []MasterPoint
}

func dofAt(V *fem.FunctionSpace, p geometry.Point, comp int, tol float64) (dof int, err error) {
	var found []int
	for _, d := range DofCloseTo(V, p, tol) {
		if V.DofComponent(d) == comp {
			found = append(found, d)
		}
	}
	if len(found) != 1 {
		err = fmt.Errorf("expected one dof of component %d at %v, found %d", comp, p, len(found))
		return
	}
	dof = found[0]
	return
}

// CreateDictionaryConstraint resolves point couplings to the dofs of value
// component comp located within tol of each point
func CreateDictionaryConstraint(V *fem.FunctionSpace, couplings []Coupling, comp int, tol float64) (c *Constraint, err error) {
	if comp < 0 || comp >= V.BlockSize {
		return nil, fmt.Errorf("component %d out of range [0,%d)", comp, V.BlockSize)
	}
	var (
		slaves, masters []int
		coeffs          []float64
		offsets         = []int{0}
	)
	for _, cp := range couplings {
		var s, m int
		if s, err = dofAt(V, cp.Slave, comp, tol); err != nil {
			return nil, fmt.Errorf("slave: %w", err)
		}
		for _, mp := range cp.Masters {
			if m, err = dofAt(V, mp.Point, comp, tol); err != nil {
				return nil, fmt.Errorf("master of slave %d: %w", s, err)
			}
			masters = append(masters, m)
			coeffs = append(coeffs, mp.Coeff)
		}
		slaves = append(slaves, s)
		offsets = append(offsets, len(masters))
	}
	return NewConstraint(slaves, masters, coeffs, offsets)
}
