package operator

import "github.com/cpmech/eigensolve/block"

// Dense wraps a caller-supplied dense Hermitian (n,n) matrix (row-major,
// complex128) and implements Operator as a direct matrix-block product:
// Y_out = A * Y_in. There is nothing to amortize for a dense multiply, so
// isCurrent is accepted (to satisfy the interface, and so that a smarter
// operator built the same way — sparse, matrix-free — can make use of it)
// but otherwise ignored.
type Dense struct {
	N int
	A []complex128 // row-major (N,N)
}

// NewDenseDiagonal builds a Dense operator for a real diagonal matrix with
// the given diagonal entries; this is the operator used by spec scenarios
// 1, 2, 3 and 5.
func NewDenseDiagonal(diag []float64) *Dense {
	n := len(diag)
	a := make([]complex128, n*n)
	for i, d := range diag {
		a[i*n+i] = complex(d, 0)
	}
	return &Dense{N: n, A: a}
}

// Apply implements Operator.
func (o *Dense) Apply(yOut, yIn *block.Block, isCurrent bool, scratch *block.Block) {
	_ = isCurrent
	_ = scratch
	n, p := yIn.Rows(), yIn.Cols()
	if yOut.Rows() != n || yOut.Cols() != p || o.N != n {
		panic("operator.Dense: shape mismatch")
	}
	for i := 0; i < n; i++ {
		for c := 0; c < p; c++ {
			var sum complex128
			for k := 0; k < n; k++ {
				sum += o.A[i*n+k] * yIn.At(k, c)
			}
			yOut.Set(i, c, sum)
		}
	}
}

// DiagEntry returns the (i,i) diagonal entry, used by the Jacobi preconditioner
// to build an approximate inverse without requiring the operator to expose
// its full matrix.
func (o *Dense) DiagEntry(i int) complex128 { return o.A[i*o.N+i] }
