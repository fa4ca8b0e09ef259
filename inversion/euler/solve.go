package euler

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// unknowns is the number of fitted parameters: x0, y0, z0 and b.
const unknowns = 4

var columnNames = [unknowns]string{"dx", "dy", "dz", "SI"}

// Solution is the estimate attributed to one window's center cell.
//
// Sigma is the sample standard deviation (n-1) of dz inside the window.
// An unsolved window has Solved == false and NaN position and base level;
// its Sigma is still reported.
type Solution struct {
	X      float64
	Y      float64
	Z      float64
	Base   float64
	Sigma  float64
	Solved bool
}

func unsolvedSolution(sigma float64) Solution {
	nan := math.NaN()
	return Solution{X: nan, Y: nan, Z: nan, Base: nan, Sigma: sigma}
}

// Solver fits Euler's equation to single windows. It keeps its matrices
// between calls and is not safe for concurrent use.
type Solver struct {
	maxCond float64

	a      *mat.Dense
	y      *mat.VecDense
	ata    mat.SymDense
	atb    mat.VecDense
	scaled *mat.SymDense
	rhs    *mat.VecDense
	p      mat.VecDense
	chol   mat.Cholesky
	scale  [unknowns]float64
}

// NewSolver returns a Solver that rejects normal matrices whose
// column-equilibrated condition number exceeds maxCond.
func NewSolver(maxCond float64) *Solver {
	if !(maxCond > 1) {
		maxCond = DefaultOptions().MaxCondition
	}

	return &Solver{
		maxCond: maxCond,
		scaled:  mat.NewSymDense(unknowns, nil),
		rhs:     mat.NewVecDense(unknowns, nil),
	}
}

// Solve fits (x0, y0, z0, b) to the samples of one window by ordinary least
// squares on the normal equations AᵗA p = Aᵗy, where A has the columns
// (dx, dy, dz, SI) and y = dx·x + dy·y + dz·z + SI·f.
//
// The normal matrix is scaled to unit diagonal before its Cholesky
// factorisation. A zero column, a failed factorisation or a condition
// number above the solver limit returns ErrSingularSystem together with an
// unsolved Solution.
func (s *Solver) Solve(smp *Samples, si float64) (Solution, error) {
	n := smp.Len()
	sigma := stat.StdDev(smp.DZ, nil)

	s.assemble(smp, si)

	s.ata.SymOuterK(1, s.a.T())
	s.atb.MulVec(s.a.T(), s.y)

	for i := range unknowns {
		d := s.ata.At(i, i)
		if !(d > 0) || math.IsInf(d, 0) {
			return unsolvedSolution(sigma), fmt.Errorf("%w: %s column is zero over %d samples",
				ErrSingularSystem, columnNames[i], n)
		}

		s.scale[i] = 1 / math.Sqrt(d)
	}

	for i := range unknowns {
		for j := i; j < unknowns; j++ {
			s.scaled.SetSym(i, j, s.ata.At(i, j)*s.scale[i]*s.scale[j])
		}

		s.rhs.SetVec(i, s.atb.AtVec(i)*s.scale[i])
	}

	if ok := s.chol.Factorize(s.scaled); !ok {
		return unsolvedSolution(sigma), fmt.Errorf("%w: normal matrix is not positive definite", ErrSingularSystem)
	}

	if c := s.chol.Cond(); math.IsNaN(c) || c > s.maxCond {
		return unsolvedSolution(sigma), fmt.Errorf("%w: condition number %.3g exceeds %.3g",
			ErrSingularSystem, c, s.maxCond)
	}

	if err := s.chol.SolveVecTo(&s.p, s.rhs); err != nil {
		return unsolvedSolution(sigma), fmt.Errorf("%w: %v", ErrSingularSystem, err)
	}

	sol := Solution{
		X:      s.p.AtVec(0) * s.scale[0],
		Y:      s.p.AtVec(1) * s.scale[1],
		Z:      s.p.AtVec(2) * s.scale[2],
		Base:   s.p.AtVec(3) * s.scale[3],
		Sigma:  sigma,
		Solved: true,
	}

	for _, v := range []float64{sol.X, sol.Y, sol.Z, sol.Base} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return unsolvedSolution(sigma), fmt.Errorf("%w: non-finite solution", ErrSingularSystem)
		}
	}

	return sol, nil
}

// assemble fills the design matrix and the target vector.
func (s *Solver) assemble(smp *Samples, si float64) {
	n := smp.Len()
	if s.a == nil || s.y.Len() != n {
		s.a = mat.NewDense(n, unknowns, nil)
		s.y = mat.NewVecDense(n, nil)
	}

	for i := range n {
		dx, dy, dz := smp.DX[i], smp.DY[i], smp.DZ[i]

		s.a.Set(i, 0, dx)
		s.a.Set(i, 1, dy)
		s.a.Set(i, 2, dz)
		s.a.Set(i, 3, si)

		s.y.SetVec(i, dx*smp.X[i]+dy*smp.Y[i]+dz*smp.Z[i]+si*smp.Data[i])
	}
}
