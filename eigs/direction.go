package eigs

import (
	"github.com/cpmech/eigensolve/block"
)

// updateDirection builds the next CG search direction D <- gamma*D + X.
//
// With Polak-Ribiere (ws.usingPR) the fused pass walks every scalar of the
// (n,p) gradient block exactly once, replacing G by G-prev_G and writing
// the incoming G into prev_G in the same loop, so that no temporary (n,p)
// block is ever allocated for it. Fletcher-Reeves (usingCG but not usingPR)
// ignores prev_G entirely and uses tgx (= tr(G'X) before any Polak-Ribiere
// adjustment) as the gamma numerator.
//
// iteration is the zero-based index of the current iteration (so that the
// periodic reset test "(iteration+1) mod 70 == 0" matches the source).
func updateDirection(ws *workspace, x *block.Block, tgx, prevTgx float64, iteration int, flags Flags) {
	if !ws.usingCG {
		return
	}

	gammaNumerator := tgx
	if ws.usingPR {
		gammaNumerator = fusePolakRibiere(ws.g, ws.prevG, x)
	}

	gamma := 0.0
	if prevTgx != 0.0 {
		gamma = gammaNumerator / prevTgx
	}

	if flags.has(ResetCG) && (iteration+1)%cgResetIters == 0 {
		gamma = 0.0
	}

	block.AXpbY(complex(gamma, 0), ws.d, 1.0, x)
}

// fusePolakRibiere replaces g by g-prevG and simultaneously copies the old
// g into prevG, returning Re(tr((g-prevG)'x)) computed from the new g.
func fusePolakRibiere(g, prevG, x *block.Block) float64 {
	var sum complex128
	p := g.Cols()
	for i := 0; i < g.Rows(); i++ {
		for j := 0; j < p; j++ {
			old := g.At(i, j)
			diff := old - prevG.At(i, j)
			g.Set(i, j, diff)
			prevG.Set(i, j, old)
			sum += cmplxConj(diff) * x.At(i, j)
		}
	}
	return real(block.ReduceScalar(sum))
}

func cmplxConj(v complex128) complex128 {
	return complex(real(v), -imag(v))
}
