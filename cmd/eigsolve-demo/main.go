package main

import (
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"

	"github.com/cpmech/eigensolve/block"
	"github.com/cpmech/eigensolve/eigs"
	"github.com/cpmech/eigensolve/operator"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				chk.Verbose = true
				for i := 8; i > 3; i-- {
					chk.CallerInfo(i)
				}
				io.PfRed("ERROR: %v\n", err)
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	// message
	if mpi.Rank() == 0 {
		io.PfWhite("\nEigensolve -- block trace-minimization eigensolver\n\n")
	}

	// command-line knobs
	n := flag.Int("n", 16, "problem size (diagonal operator, scenario 2)")
	p := flag.Int("p", 3, "number of eigenpairs to compute")
	tol := flag.Float64("tol", 1e-9, "fractional convergence tolerance")
	verbose := flag.Bool("verbose", true, "print progress every iteration")
	resetCG := flag.Bool("resetcg", false, "reset CG direction every 70 iterations")
	flag.Parse()

	if *p < 1 || *p > *n {
		chk.Panic("p must satisfy 1 <= p <= n (got p=%d, n=%d)", *p, *n)
	}

	// diagonal operator with entries n, n-1, ..., 1: the p smallest
	// eigenvalues are 1, 2, ..., p
	diag := make([]float64, *n)
	for i := range diag {
		diag[i] = float64(*n - i)
	}
	op := operator.NewDenseDiagonal(diag)

	// starting guess: a deterministic, non-orthonormal block
	y := block.New(*n, *p)
	for i := 0; i < *n; i++ {
		for j := 0; j < *p; j++ {
			y.Set(i, j, complex(float64((i+1)*(j+1)%7)/7.0+0.1, 0))
		}
	}

	flags := eigs.Flags(0)
	if *verbose {
		flags |= eigs.Verbose
	}
	if *resetCG {
		flags |= eigs.ResetCG
	}

	work := []*block.Block{block.New(*n, *p), block.New(*n, *p), block.New(*n, *p), block.New(*n, *p)}
	eigvals := make([]float64, *p)

	cfg, err := eigs.NewConfig(*tol, flags)
	if err != nil {
		chk.Panic("%v", err)
	}
	numIter := eigs.Solve(op, operator.Identity{}, nil, y, eigvals, work, cfg)

	if mpi.Rank() == 0 {
		io.Pf("\nconverged in %d iterations\n", numIter)
		io.Pfgreen("eigenvalues: %v\n", eigvals)
	}
}
