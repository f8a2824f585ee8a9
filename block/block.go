// Package block implements the (n,p) block-vector primitives consumed by
// package eigs: the dense, tall block of p simultaneous trial vectors, and
// the handful of BLAS-like products the driver needs (Y'Y, Y'W, Y=W*S,
// Y+=a*W*S, aX+bY, tr(X'Y)).
//
// A Block may be row-distributed across a process group along its n
// dimension; every primitive that produces a (p,p) result or a scalar
// reduces its local partial sum across the group with gosl/mpi so that the
// result is identical (replicated) on every rank, matching the concurrency
// model in the solver's design.
package block

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/mpi"

	"github.com/cpmech/eigensolve/sqmat"
)

// Block holds a dense (n,p) matrix of complex128 in row-major order: element
// (i,j) lives at Data[i*p+j]. n is the (possibly process-local) number of
// rows; p is the block width and is never distributed.
type Block struct {
	n, p int
	Data []complex128
}

// New allocates a zeroed (n,p) block.
func New(n, p int) *Block {
	if n < 0 || p < 0 {
		chk.Panic("block: invalid shape (%d,%d)", n, p)
	}
	return &Block{n: n, p: p, Data: make([]complex128, n*p)}
}

// NewLike allocates a new block with the same shape as b.
func NewLike(b *Block) *Block {
	return New(b.n, b.p)
}

// Rows returns the local row count n.
func (b *Block) Rows() int { return b.n }

// Cols returns the block width p.
func (b *Block) Cols() int { return b.p }

// At returns element (i,j).
func (b *Block) At(i, j int) complex128 { return b.Data[i*b.p+j] }

// Set assigns element (i,j).
func (b *Block) Set(i, j int, v complex128) { b.Data[i*b.p+j] = v }

// CopyFrom copies w's data into b. Shapes must match.
func (b *Block) CopyFrom(w *Block) {
	b.checkSameShape(w)
	copy(b.Data, w.Data)
}

// Scale multiplies every element of b by the real scalar a in place.
func (b *Block) Scale(a float64) {
	for i := range b.Data {
		b.Data[i] *= complex(a, 0)
	}
}

func (b *Block) checkSameShape(w *Block) {
	if b.n != w.n || b.p != w.p {
		chk.Panic("block: shape mismatch (%d,%d) vs (%d,%d)", b.n, b.p, w.n, w.p)
	}
}

// ReduceScalar sums a single locally-computed scalar (e.g. a partial trace
// accumulated outside this package, such as the fused Polak-Ribiere
// gradient update in package eigs) across the process group, returning an
// identical, fully-reduced value on every rank. It is a no-op under a
// single process.
func ReduceScalar(v complex128) complex128 {
	acc := []complex128{v}
	reduceComplex(acc)
	return acc[0]
}

// reduceComplex sums partial[0:len] across the process group in place,
// leaving an identical, fully-reduced value on every rank. It is a no-op
// under a single process.
func reduceComplex(partial []complex128) {
	if !mpi.IsOn() {
		return
	}
	re := make([]float64, len(partial))
	im := make([]float64, len(partial))
	for i, v := range partial {
		re[i] = real(v)
		im[i] = imag(v)
	}
	wre := make([]float64, len(partial))
	wim := make([]float64, len(partial))
	mpi.AllReduceSum(re, wre)
	mpi.AllReduceSum(im, wim)
	for i := range partial {
		partial[i] = complex(re[i], im[i])
	}
}

// XtX computes R = Z'Z (R is order p, Hermitian up to round-off).
func XtX(r *sqmat.Matrix, z *Block) {
	p := z.p
	if r.Order() != p {
		chk.Panic("block.XtX: matrix order %d does not match block width %d", r.Order(), p)
	}
	acc := make([]complex128, p*p)
	for i := 0; i < z.n; i++ {
		for a := 0; a < p; a++ {
			za := cmplxConj(z.Data[i*p+a])
			for c := 0; c < p; c++ {
				acc[a*p+c] += za * z.Data[i*p+c]
			}
		}
	}
	reduceComplex(acc)
	r.SetData(acc)
}

// XtY computes R = Z'W (R is order p; Z and W must share shape).
func XtY(r *sqmat.Matrix, z, w *Block) {
	z.checkSameShape(w)
	p := z.p
	if r.Order() != p {
		chk.Panic("block.XtY: matrix order %d does not match block width %d", r.Order(), p)
	}
	acc := make([]complex128, p*p)
	for i := 0; i < z.n; i++ {
		for a := 0; a < p; a++ {
			za := cmplxConj(z.Data[i*p+a])
			for c := 0; c < p; c++ {
				acc[a*p+c] += za * w.Data[i*p+c]
			}
		}
	}
	reduceComplex(acc)
	r.SetData(acc)
}

// XeYS computes Z = W*S, an (n,p) times (p,p) product. If hermitianS is
// true, S is treated as Hermitian (only used by callers as a documentation
// hint; the product itself is computed the same way either way since S is
// always square here).
func XeYS(z, w *Block, s *sqmat.Matrix, hermitianS bool) {
	_ = hermitianS
	w.checkShapeAgainst(s)
	if z.n != w.n || z.p != w.p {
		chk.Panic("block.XeYS: output shape (%d,%d) does not match input shape (%d,%d)", z.n, z.p, w.n, w.p)
	}
	p := w.p
	sd := s.Data()
	out := make([]complex128, len(z.Data))
	for i := 0; i < w.n; i++ {
		for c := 0; c < p; c++ {
			var sum complex128
			for a := 0; a < p; a++ {
				sum += w.Data[i*p+a] * sd[a*p+c]
			}
			out[i*p+c] = sum
		}
	}
	copy(z.Data, out)
}

// XpaYS computes Z += a*W*S.
func XpaYS(z *Block, a complex128, w *Block, s *sqmat.Matrix) {
	w.checkShapeAgainst(s)
	z.checkSameShape(w)
	p := w.p
	sd := s.Data()
	for i := 0; i < w.n; i++ {
		for c := 0; c < p; c++ {
			var sum complex128
			for k := 0; k < p; k++ {
				sum += w.Data[i*p+k] * sd[k*p+c]
			}
			z.Data[i*p+c] += a * sum
		}
	}
}

// AXpbY computes Z = a*Z + b*W in place.
func AXpbY(a complex128, z *Block, b complex128, w *Block) {
	z.checkSameShape(w)
	for i := range z.Data {
		z.Data[i] = a*z.Data[i] + b*w.Data[i]
	}
}

// TraceXtY computes tr(Z'W) = sum_j (Z'W)_jj without forming the (p,p)
// product explicitly.
func TraceXtY(z, w *Block) complex128 {
	z.checkSameShape(w)
	p := z.p
	var sum complex128
	for i := 0; i < z.n; i++ {
		for j := 0; j < p; j++ {
			sum += cmplxConj(z.Data[i*p+j]) * w.Data[i*p+j]
		}
	}
	acc := []complex128{sum}
	reduceComplex(acc)
	return acc[0]
}

func (w *Block) checkShapeAgainst(s *sqmat.Matrix) {
	if w.p != s.Order() {
		chk.Panic("block: width %d does not match square-matrix order %d", w.p, s.Order())
	}
}

func cmplxConj(v complex128) complex128 {
	return complex(real(v), -imag(v))
}
