package sqmat

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_invert01(tst *testing.T) {

	chk.PrintTitle("invert01: Hermitian positive-definite inverse via Cholesky")

	// a simple real, diagonally dominant Hermitian matrix
	a := New(3)
	a.Set(0, 0, 4)
	a.Set(1, 1, 9)
	a.Set(2, 2, 16)
	a.Set(0, 1, 1)
	a.Set(1, 0, 1)
	a.Set(1, 2, 2)
	a.Set(2, 1, 2)
	a.Set(0, 2, 0.5)
	a.Set(2, 0, 0.5)

	u := New(3)
	u.Invert(a)

	// a * u should be the identity
	prod := New(3)
	prod.AeBC(a, false, u)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			got := real(prod.At(i, j))
			if math.Abs(got-want) > 1e-9 {
				tst.Fatalf("a*inv(a) not identity at (%d,%d): got %g want %g", i, j, got, want)
			}
		}
	}
}

func Test_symmetrize01(tst *testing.T) {

	chk.PrintTitle("symmetrize01: (X+X')/2")

	a := New(2)
	a.Set(0, 0, complex(1, 0))
	a.Set(0, 1, complex(2, 3))
	a.Set(1, 0, complex(4, -1))
	a.Set(1, 1, complex(5, 0))

	s := New(2)
	s.Symmetrize(a)

	// s must equal its own conjugate transpose
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if s.At(i, j) != cmplxConj(s.At(j, i)) {
				tst.Fatalf("symmetrized matrix not Hermitian at (%d,%d)", i, j)
			}
		}
	}
}

func Test_trace01(tst *testing.T) {

	chk.PrintTitle("trace01: Trace and TraceAtB")

	a := New(2)
	a.Set(0, 0, 2)
	a.Set(1, 1, 3)
	if real(a.Trace()) != 5 {
		tst.Fatalf("trace: got %v want 5", a.Trace())
	}

	b := New(2)
	b.Identity()
	tr := TraceAtB(a, b)
	if math.Abs(real(tr)-5) > 1e-12 {
		tst.Fatalf("TraceAtB(a,I): got %v want 5", tr)
	}
}

func Test_diagonalize01(tst *testing.T) {

	chk.PrintTitle("diagonalize01: diagonal matrix eigenvalues ascending")

	a := New(3)
	a.Set(0, 0, 3)
	a.Set(1, 1, 1)
	a.Set(2, 2, 2)

	vals, _ := Diagonalize(a)
	want := []float64{1, 2, 3}
	for i, w := range want {
		if math.Abs(vals[i]-w) > 1e-8 {
			tst.Fatalf("eigenvalue %d: got %g want %g", i, vals[i], w)
		}
	}
}

func Test_diagonalize02(tst *testing.T) {

	chk.PrintTitle("diagonalize02: eigenvectors recover Ax = lambda x")

	a := New(2)
	a.Set(0, 0, 2)
	a.Set(1, 1, 2)
	a.Set(0, 1, complex(0, 1))
	a.Set(1, 0, complex(0, -1))

	vals, vecs := Diagonalize(a)
	for k := 0; k < 2; k++ {
		var x0, x1 complex128 = vecs.At(0, k), vecs.At(1, k)
		ax0 := a.At(0, 0)*x0 + a.At(0, 1)*x1
		ax1 := a.At(1, 0)*x0 + a.At(1, 1)*x1
		lx0 := complex(vals[k], 0) * x0
		lx1 := complex(vals[k], 0) * x1
		if cmplx.Abs(ax0-lx0) > 1e-7 || cmplx.Abs(ax1-lx1) > 1e-7 {
			tst.Fatalf("eigenvector %d does not satisfy Ax=lambda x", k)
		}
	}
}
