// Package eigs implements a preconditioned nonlinear conjugate-gradient
// block eigensolver: given a Hermitian linear operator A acting on vectors
// of dimension n, it computes the p smallest eigenpairs (p much less than
// n) by minimizing the trace of the Rayleigh quotient tr((Y'Y)^-1 Y'AY)
// over a non-orthonormal block Y of p trial vectors.
//
// The driver (Solve) sequences four collaborators: the trace functional and
// its derivatives (trace.go), the adaptive line minimizer (linmin.go), the
// conjugate-gradient direction update (direction.go), and the strategy
// controller that switches between exact and approximate line minimization
// (strategy.go). The block-vector and small-matrix primitives it operates
// on, and the operator/preconditioner/constraint it calls, are treated as
// external collaborators behind small interfaces; package block, package
// sqmat and package operator provide reference implementations.
package eigs

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/eigensolve/block"
	"github.com/cpmech/eigensolve/sqmat"
)

// Flags is a bit set selecting driver behavior.
type Flags uint

const (
	// Verbose prints progress at every iteration.
	Verbose Flags = 1 << iota
	// ProjectPreconditioning applies X <- (I - Y U Y') X after X = K(G).
	ProjectPreconditioning
	// ResetCG resets the CG direction to steepest descent every 70 iterations.
	ResetCG
	// ForceExactLinmin disables the switch to approximate line minimization.
	ForceExactLinmin
	// ForceApproxLinmin forces a single Newton-step line minimization.
	ForceApproxLinmin
)

func (f Flags) has(bit Flags) bool { return f&bit != 0 }

// cgResetIters is the number of iterations after which ResetCG forgets the
// accumulated CG search direction, matching the original solver's choice
// ("picked after some experimentation").
const cgResetIters = 70

// maxIterations is the hard iteration cap; exhausting it is a fatal
// non-convergence error.
const maxIterations = 10000

// convergenceEpsilon is the small additive term in the relative trace
// convergence test, guarding against both E and E_prev being exactly zero.
const convergenceEpsilon = 1e-7

// Operator applies the Hermitian linear map A to yIn, writing the result
// into yOut. isCurrent tells the operator whether yIn is the solver's
// current iterate Y (so a caching operator may reuse work from the last
// call) or a scratch direction such as D. scratch is a same-shaped block
// the operator may use as working storage; it must not be assumed zeroed.
type Operator interface {
	Apply(yOut, yIn *block.Block, isCurrent bool, scratch *block.Block)
}

// Preconditioner approximates the action of A^-1 (or any other symmetric
// positive-definite metric) on the gradient gIn, writing the result into
// xOut. y and yty are the solver's current iterate and its Gram matrix;
// eigvals is nil during iteration (the block is not yet diagonalized, so
// there is nothing to pass).
type Preconditioner interface {
	Precondition(xOut, gIn *block.Block, y *block.Block, eigvals []float64, yty *sqmat.Matrix)
}

// Constraint projects y onto the admissible manifold in place. It must be
// idempotent: calling Apply twice in a row must equal calling it once.
type Constraint interface {
	Apply(y *block.Block)
}

// Config holds the caller-selected knobs for Solve.
type Config struct {
	// Tolerance is the fractional convergence tolerance on the trace, and
	// is also used as the fractional tolerance passed to the line-search
	// root finder.
	Tolerance float64
	Flags     Flags
}

// NewConfig validates tolerance before it ever reaches Solve, returning a
// plain error rather than panicking: unlike the fatal, run-time conditions
// in §7, a bad construction-time argument is the caller's to fix and retry,
// not a solver-internal failure.
func NewConfig(tolerance float64, flags Flags) (Config, error) {
	if tolerance <= 0 {
		return Config{}, chk.Err("eigs: tolerance must be positive, got %v", tolerance)
	}
	if flags.has(ForceExactLinmin) && flags.has(ForceApproxLinmin) {
		return Config{}, chk.Err("eigs: ForceExactLinmin and ForceApproxLinmin are mutually exclusive")
	}
	return Config{Tolerance: tolerance, Flags: flags}, nil
}
