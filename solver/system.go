package solver

import (
	"errors"
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/exp/linsolve"
	"gonum.org/v1/gonum/mat"
)

// System is a symmetric sparse linear system A x = b over n unknowns with m
// right-hand-side columns, one per value component. Entries are collected as
// (row, col, value) triplets; duplicate coordinates accumulate by summation
// when the matrix is compiled for the solve.
type System struct {
	n, m int
	coo  *sparse.COO
	b    *mat.Dense
}

// NewSystem creates an empty n x n system with an n x m right-hand side.
func NewSystem(n, m int) (*System, error) {
	if n <= 0 || m <= 0 {
		return nil, fmt.Errorf("invalid system dimensions: n=%d, m=%d", n, m)
	}
	return &System{
		n:   n,
		m:   m,
		coo: sparse.NewCOO(n, n, nil, nil, nil),
		b:   mat.NewDense(n, m, nil),
	}, nil
}

// Dims returns the number of unknowns and right-hand-side columns.
func (s *System) Dims() (n, m int) {
	return s.n, s.m
}

// Add records the triplet (r, c, v). Triplets with equal coordinates sum.
func (s *System) Add(r, c int, v float64) {
	s.coo.Set(r, c, v)
}

// AddSym records v at both (r, c) and (c, r), keeping the matrix symmetric
// by construction.
func (s *System) AddSym(r, c int, v float64) {
	s.coo.Set(r, c, v)
	s.coo.Set(c, r, v)
}

// AddRHS accumulates v onto right-hand-side entry (r, l).
func (s *System) AddRHS(r, l int, v float64) {
	s.b.Set(r, l, s.b.At(r, l)+v)
}

// RHS returns the right-hand-side matrix owned by the system.
func (s *System) RHS() *mat.Dense {
	return s.b
}

// Matrix compiles the collected triplets, summing duplicates, and returns
// the system matrix.
func (s *System) Matrix() mat.Matrix {
	return s.coo.ToCSR()
}

// Options configures the iterative solve. Values <= 0 select the solver
// library defaults.
type Options struct {
	MaxIterations int
	Tolerance     float64
}

// Result reports the outcome of a solve. Iterations and Residual are the
// maxima across right-hand-side columns; non-convergence within the
// iteration budget is not an error and is left to the caller to judge from
// Residual.
type Result struct {
	X          *mat.Dense
	Iterations int
	Residual   float64
	NonZeros   int
}

// laplacianOp adapts a compiled sparse matrix to the linsolve matrix-vector
// contract. The assembled matrix is symmetric, so the transpose flag is
// irrelevant.
type laplacianOp struct {
	a *sparse.CSR
}

func (op laplacianOp) MulVecTo(dst *mat.VecDense, _ bool, x mat.Vector) {
	dst.Zero()
	op.a.DoNonZero(func(i, j int, v float64) {
		dst.SetVec(i, dst.AtVec(i)+v*x.AtVec(j))
	})
}

// Solve compiles the triplets to compressed sparse row form and solves
// A x = b by conjugate gradients, one right-hand-side column at a time.
// x0, if non-nil, supplies the initial guess for each column, enabling warm
// restarts across repeated solves.
func (s *System) Solve(x0 *mat.Dense, opts Options) (*Result, error) {
	csr := s.coo.ToCSR()
	res := &Result{
		X:        mat.NewDense(s.n, s.m, nil),
		NonZeros: csr.NNZ(),
	}

	op := laplacianOp{a: csr}
	for l := 0; l < s.m; l++ {
		rhs := mat.NewVecDense(s.n, nil)
		rhs.CopyVec(s.b.ColView(l))

		settings := &linsolve.Settings{}
		if opts.MaxIterations > 0 {
			settings.MaxIterations = opts.MaxIterations
		}
		if opts.Tolerance > 0 {
			settings.Tolerance = opts.Tolerance
		}
		if x0 != nil {
			guess := mat.NewVecDense(s.n, nil)
			guess.CopyVec(x0.ColView(l))
			settings.InitX = guess
		}

		r, err := linsolve.Iterative(op, rhs, &linsolve.CG{}, settings)
		if err != nil && !errors.Is(err, linsolve.ErrIterationLimit) {
			return nil, fmt.Errorf("solving component %d: %w", l, err)
		}
		if r == nil {
			return nil, fmt.Errorf("solving component %d: no solution returned", l)
		}
		for i := 0; i < s.n; i++ {
			res.X.Set(i, l, r.X.AtVec(i))
		}
		if r.Stats.Iterations > res.Iterations {
			res.Iterations = r.Stats.Iterations
		}
		if r.ResidualNorm > res.Residual {
			res.Residual = r.ResidualNorm
		}
	}
	return res, nil
}
