package operator

import (
	"github.com/cpmech/eigensolve/block"
	"github.com/cpmech/eigensolve/sqmat"
)

// Identity is the preconditioner K = I, used directly by spec scenarios
// 1 and 2 (K=identity).
type Identity struct{}

// Precondition implements Preconditioner.
func (Identity) Precondition(xOut, gIn *block.Block, y *block.Block, eigvals []float64, yty *sqmat.Matrix) {
	_, _, _ = y, eigvals, yty
	xOut.CopyFrom(gIn)
}

// Jacobi is the diagonal preconditioner K(G) = D^-1 G, where D is the
// diagonal of the operator A — the textbook cheap preconditioner for this
// class of solver, and the natural generalization of the K=identity
// scenarios once A's diagonal is available.
type Jacobi struct {
	A *Dense
}

// Precondition implements Preconditioner.
func (j Jacobi) Precondition(xOut, gIn *block.Block, y *block.Block, eigvals []float64, yty *sqmat.Matrix) {
	_, _, _ = y, eigvals, yty
	n, p := gIn.Rows(), gIn.Cols()
	for i := 0; i < n; i++ {
		d := j.A.DiagEntry(i)
		if d == 0 {
			d = 1
		}
		for c := 0; c < p; c++ {
			xOut.Set(i, c, gIn.At(i, c)/d)
		}
	}
}
