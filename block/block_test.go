package block

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/eigensolve/sqmat"
)

func Test_xtx01(tst *testing.T) {

	chk.PrintTitle("xtx01: Y'Y of an orthonormal block is the identity")

	y := New(4, 2)
	y.Set(0, 0, 1)
	y.Set(1, 1, 1)

	r := sqmat.New(2)
	XtX(r, y)
	if real(r.At(0, 0)) != 1 || real(r.At(1, 1)) != 1 || real(r.At(0, 1)) != 0 {
		tst.Fatalf("XtX did not produce identity: %v", r.Data())
	}
}

func Test_traceXtY01(tst *testing.T) {

	chk.PrintTitle("traceXtY01: tr(Z'W) matches elementwise sum")

	z := New(3, 1)
	w := New(3, 1)
	for i := 0; i < 3; i++ {
		z.Set(i, 0, complex(float64(i+1), 0))
		w.Set(i, 0, complex(float64(2*(i+1)), 0))
	}
	got := TraceXtY(z, w)
	want := 1.0*2 + 2.0*4 + 3.0*6
	if math.Abs(real(got)-want) > 1e-12 {
		tst.Fatalf("TraceXtY: got %v want %v", got, want)
	}
}

func Test_axpby01(tst *testing.T) {

	chk.PrintTitle("axpby01: aX+bY in place")

	z := New(2, 1)
	w := New(2, 1)
	z.Set(0, 0, 1)
	z.Set(1, 0, 2)
	w.Set(0, 0, 10)
	w.Set(1, 0, 20)

	AXpbY(complex(2, 0), z, complex(0.5, 0), w)
	if real(z.At(0, 0)) != 7 || real(z.At(1, 0)) != 14 {
		tst.Fatalf("AXpbY: got (%v,%v) want (7,14)", z.At(0, 0), z.At(1, 0))
	}
}

func Test_xeys01(tst *testing.T) {

	chk.PrintTitle("xeys01: Z = W*S with S=2I doubles W")

	w := New(2, 2)
	w.Set(0, 0, 1)
	w.Set(0, 1, 2)
	w.Set(1, 0, 3)
	w.Set(1, 1, 4)

	s := sqmat.New(2)
	s.Set(0, 0, 2)
	s.Set(1, 1, 2)

	z := New(2, 2)
	XeYS(z, w, s, true)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if z.At(i, j) != 2*w.At(i, j) {
				tst.Fatalf("XeYS mismatch at (%d,%d): got %v want %v", i, j, z.At(i, j), 2*w.At(i, j))
			}
		}
	}
}
