package eigs

import (
	"math"
	"sort"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/eigensolve/block"
	"github.com/cpmech/eigensolve/operator"
)

func randomBlock(n, p int, seed int) *block.Block {
	b := block.New(n, p)
	x := seed + 1
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			x = (1103515245*x + 12345) & 0x7fffffff
			b.Set(i, j, complex(float64(x%1000)/1000.0-0.5, 0))
		}
	}
	return b
}

func newWork(n, p, nWork int) []*block.Block {
	w := make([]*block.Block, nWork)
	for i := range w {
		w[i] = block.New(n, p)
	}
	return w
}

// Test_diagonal01 reproduces spec scenario 1: diagonal A, p=1, n=8. The
// solver must recover the smallest diagonal entry.
func Test_diagonal01(tst *testing.T) {

	chk.PrintTitle("diagonal01: p=1, n=8 diagonal operator")

	diag := []float64{5, 1, 4, 9, 2, 6, 8, 3}
	op := operator.NewDenseDiagonal(diag)
	y := randomBlock(8, 1, 1)
	eigvals := make([]float64, 1)
	work := newWork(8, 1, 3)

	cfg := Config{Tolerance: 1e-10}
	Solve(op, operator.Identity{}, nil, y, eigvals, work, cfg)

	if math.Abs(eigvals[0]-1) > 1e-6 {
		tst.Fatalf("diagonal01: got eigenvalue %v, want 1", eigvals[0])
	}
}

// Test_diagonal02 reproduces spec scenario 2: diagonal A, p=3, n=16. The
// solver must recover the three smallest diagonal entries in ascending
// order.
func Test_diagonal02(tst *testing.T) {

	chk.PrintTitle("diagonal02: p=3, n=16 diagonal operator")

	diag := make([]float64, 16)
	for i := range diag {
		diag[i] = float64(16 - i)
	}
	op := operator.NewDenseDiagonal(diag)
	y := randomBlock(16, 3, 2)
	eigvals := make([]float64, 3)
	work := newWork(16, 3, 3)

	cfg := Config{Tolerance: 1e-9}
	Solve(op, operator.Identity{}, nil, y, eigvals, work, cfg)

	want := []float64{1, 2, 3}
	for i, w := range want {
		if math.Abs(eigvals[i]-w) > 1e-5 {
			tst.Fatalf("diagonal02: eigvals=%v, want %v", eigvals, want)
		}
	}
}

// Test_constrained01 reproduces spec scenario 3: a constraint zeroing the
// first component of Y forces the solver to skip the smallest diagonal
// entry whenever it is tied to that component.
func Test_constrained01(tst *testing.T) {

	chk.PrintTitle("constrained01: ZeroFirstComponent excludes the first row")

	diag := []float64{1, 2, 3, 4, 5}
	op := operator.NewDenseDiagonal(diag)
	y := randomBlock(5, 1, 3)
	eigvals := make([]float64, 1)
	work := newWork(5, 1, 3)

	cfg := Config{Tolerance: 1e-9}
	Solve(op, operator.Identity{}, operator.ZeroFirstComponent(), y, eigvals, work, cfg)

	if math.Abs(eigvals[0]-2) > 1e-5 {
		tst.Fatalf("constrained01: got %v, want 2 (smallest eigenvalue not tied to row 0)", eigvals[0])
	}
	if y.At(0, 0) != 0 {
		tst.Fatalf("constrained01: constraint not applied, y[0,0]=%v", y.At(0, 0))
	}
}

// Test_polakRibiere01 reproduces spec scenario 4: Polak-Ribiere (nWork=4)
// and Fletcher-Reeves (nWork=3) must agree on a diagonal operator.
func Test_polakRibiere01(tst *testing.T) {

	chk.PrintTitle("polakRibiere01: PR and FR agree on a diagonal operator")

	n, p := 24, 4
	diag := make([]float64, n)
	for i := range diag {
		diag[i] = float64(i + 1)
	}
	op := operator.NewDenseDiagonal(diag)

	yFR := randomBlock(n, p, 7)
	eigFR := make([]float64, p)
	Solve(op, operator.Identity{}, nil, yFR, eigFR, newWork(n, p, 3), Config{Tolerance: 1e-9})

	yPR := randomBlock(n, p, 7)
	eigPR := make([]float64, p)
	Solve(op, operator.Identity{}, nil, yPR, eigPR, newWork(n, p, 4), Config{Tolerance: 1e-9})

	sort.Float64s(eigFR)
	sort.Float64s(eigPR)
	for i := range eigFR {
		if math.Abs(eigFR[i]-eigPR[i]) > 1e-4 {
			tst.Fatalf("polakRibiere01: FR=%v PR=%v disagree", eigFR, eigPR)
		}
		if math.Abs(eigFR[i]-float64(i+1)) > 1e-4 {
			tst.Fatalf("polakRibiere01: eigenvalue %d = %v, want %v", i, eigFR[i], i+1)
		}
	}
}

// Test_forceApproxLinmin01 reproduces spec scenario 5: forcing the
// approximate (single Newton-step) line minimization must still converge.
func Test_forceApproxLinmin01(tst *testing.T) {

	chk.PrintTitle("forceApproxLinmin01: ForceApproxLinmin still converges")

	diag := []float64{3, 1, 2, 7, 4}
	op := operator.NewDenseDiagonal(diag)
	y := randomBlock(5, 1, 9)
	eigvals := make([]float64, 1)
	work := newWork(5, 1, 4)

	cfg := Config{Tolerance: 1e-8, Flags: ForceApproxLinmin}
	Solve(op, operator.Identity{}, nil, y, eigvals, work, cfg)

	if math.Abs(eigvals[0]-1) > 1e-4 {
		tst.Fatalf("forceApproxLinmin01: got %v, want 1", eigvals[0])
	}
}

// Test_resetCG01 reproduces spec scenario 6: a 256-dimensional problem with
// RESET_CG must still converge within the iteration cap.
func Test_resetCG01(tst *testing.T) {

	chk.PrintTitle("resetCG01: RESET_CG on a 256-dim problem")

	n, p := 256, 2
	diag := make([]float64, n)
	for i := range diag {
		diag[i] = float64(i + 1)
	}
	op := operator.NewDenseDiagonal(diag)
	y := randomBlock(n, p, 42)
	eigvals := make([]float64, p)
	work := newWork(n, p, 4)

	cfg := Config{Tolerance: 1e-7, Flags: ResetCG}
	Solve(op, operator.Identity{}, nil, y, eigvals, work, cfg)

	want := []float64{1, 2}
	for i := range want {
		if math.Abs(eigvals[i]-want[i]) > 1e-3 {
			tst.Fatalf("resetCG01: eigvals=%v, want %v", eigvals, want)
		}
	}
}
