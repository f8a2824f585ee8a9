package eigs

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// lineFunc evaluates a scalar function of theta and, when deriv is true,
// also its derivative; when deriv is false the second return value is
// unused by the caller and may be left zero.
type lineFunc func(theta float64, deriv bool) (f, df float64)

// linmin finds the root of a line function's derivative by bracketing
// followed by Ridder's method, mirroring the original eigensolver.c
// linmin() exactly (including its bracketing strategy, which the source
// itself calls "not very smart").
//
// Preconditions: dfXmin*(x0-xmin) < 0 (x0 lies downhill of xmin), and x0
// lies strictly between xmin and xmax. Violating either is a fatal error,
// as is a bracketing phase that collapses without finding a sign change.
//
// Returns the theta that (approximately) zeroes the derivative, and the
// fractional improvement in f achieved relative to f at the initial guess.
func linmin(xmin, fXmin, dfXmin, xmax, x0, tol float64, f lineFunc) (xFinal, improvement float64) {
	if dfXmin*(x0-xmin) >= 0.0 {
		chk.Panic("eigs: linmin: bad initial guess (dfXmin*(x0-xmin) must be < 0)")
	}
	s := 1.0
	if xmax < xmin {
		s = -1.0
	}
	if !(x0*s < xmax*s && x0*s > xmin*s) {
		chk.Panic("eigs: linmin: initial guess out of range")
	}

	// Phase 1: bracket the minimum of f by walking geometrically from
	// xmin until the derivative changes sign, doubling the step each time;
	// if the whole sweep fails to bracket, halve the distance from x0 to
	// xmin and retry. Repeated failure to bracket at all is fatal.
	var fXmax, dfXmax float64
	bracketed := false
	for {
		xmin2, fXmin2, dfXmin2 := xmin, fXmin, dfXmin
		dx := (x0 - xmin) * 2.0
		var x, fx, dfx float64
		for x = xmin + dx; x*s <= xmax*s; x += dx {
			fx, dfx = f(x, true)
			if dfx*(x-xmin) > 0.0 {
				break
			}
			xmin2, fXmin2, dfXmin2 = x, fx, dfx
			dx *= 2.0
		}
		if x*s <= xmax*s {
			xmin, fXmin, dfXmin = xmin2, fXmin2, dfXmin2
			xmax, fXmax, dfXmax = x, fx, dfx
			bracketed = true
			break
		}
		x0 = 0.5 * (x0 + xmin)
		if math.Abs(x0-xmin) <= tol*(math.Abs(x0)+tol) {
			break
		}
	}
	if !bracketed {
		chk.Panic("eigs: linmin: failed to bracket minimum")
	}

	if x0*s <= xmin*s || x0*s >= xmax*s {
		x0 = 0.5 * (xmin + xmax)
	}

	// Phase 2: Ridder's method on the derivative.
	if xmin > xmax {
		xmin, xmax = xmax, xmin
		fXmin, fXmax = fXmax, fXmin
		dfXmin, dfXmax = dfXmax, dfXmin
	}

	xPrev := x0
	isStart := true
	var fStart float64
	for {
		fX0, dfX0 := f(x0, true)
		if isStart {
			fStart = fX0
			isStart = false
		}

		if dfX0 == 0 {
			break
		}
		if dfXmin == 0 {
			x0 = xmin
			break
		}
		if dfXmax == 0 {
			x0 = xmax
			break
		}

		sign := 1.0
		if dfXmin <= dfXmax {
			sign = -1.0
		}
		x := x0 + (x0-xmin)*sign*dfX0/math.Sqrt(dfX0*dfX0-dfXmin*dfXmax)

		if math.Max(math.Abs(x-xPrev), math.Min(math.Abs(x-xmin), math.Abs(x-xmax))) <
			tol*(math.Abs(x)+tol) {
			x0 = x
			break
		}

		fx, dfx := f(x, true)

		if dfx*dfX0 > 0 || (dfx-dfX0)*(x-x0) < 0 {
			if x < x0 {
				if dfXmin*dfx > 0 || (dfXmin-dfx)*(xmin-x) < 0 {
					xmin, fXmin, dfXmin = x0, fX0, dfX0
				} else {
					xmax, fXmax, dfXmax = x, fx, dfx
				}
			} else if dfXmin*dfX0 > 0 || (dfXmin-dfX0)*(xmin-x0) < 0 {
				xmin, fXmin, dfXmin = x, fx, dfx
			} else {
				xmax, fXmax, dfXmax = x0, fX0, dfX0
			}
		} else {
			if x < x0 {
				xmin, fXmin, dfXmin = x, fx, dfx
				xmax, fXmax, dfXmax = x0, fX0, dfX0
			} else {
				xmin, fXmin, dfXmin = x0, fX0, dfX0
				xmax, fXmax, dfXmax = x, fx, dfx
			}
		}

		x0 = 0.5 * (xmin + xmax)
		xPrev = x
	}

	fFinal, _ := f(x0, false)
	improvement = (fStart - fFinal) * 2.0 / (math.Abs(fStart) + math.Abs(fFinal) + tol)
	return x0, improvement
}
