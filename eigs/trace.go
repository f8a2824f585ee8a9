package eigs

import (
	"math"

	"github.com/cpmech/eigensolve/sqmat"
)

// traceFuncData holds the small matrices the trace functional and its
// derivatives are evaluated from along the one-parameter family
// Y(theta) = cos(theta)*Y + (sin(theta)/dNorm)*D. ytY, dtD and symYtD (and
// their A-weighted counterparts) are fixed for the duration of one line
// minimization; s1, s2, s3 are scratch reused on every call to eval.
type traceFuncData struct {
	dNorm                                float64
	ytAY, dtAD, symYtAD, ytY, dtD, symYtD *sqmat.Matrix
	s1, s2, s3                            *sqmat.Matrix
}

// eval returns the trace E(theta) and, if wantDeriv, its derivative dE/dtheta.
func (d *traceFuncData) eval(theta float64, wantDeriv bool) (trace, deriv float64) {
	c := math.Cos(theta)
	s := math.Sin(theta) / d.dNorm

	d.s1.Copy(d.ytY)
	d.s1.AaXpbY(c*c, d.s1, s*s, d.dtD)
	d.s1.ApaB(2*s*c, d.symYtD)
	d.s1.Invert(d.s1) // s1 now holds U(theta) = (Y(theta)'Y(theta))^-1

	d.s2.Copy(d.ytAY)
	d.s2.AaXpbY(c*c, d.s2, s*s, d.dtAD)
	d.s2.ApaB(2*s*c, d.symYtAD)

	trace = real(sqmat.TraceAtB(d.s2, d.s1))

	if wantDeriv {
		c2 := math.Cos(2 * theta)
		s2dbl := math.Sin(2 * theta)

		d.s3.Copy(d.ytAY)
		d.s3.ApaB(-1.0/(d.dNorm*d.dNorm), d.dtAD)
		d.s3.AaXpbY(-0.5*s2dbl, d.s3, c2/d.dNorm, d.symYtAD)

		deriv = real(sqmat.TraceAtB(d.s1, d.s3))

		d.s3.AeBC(d.s1, false, d.s2)
		d.s2.AeBC(d.s3, false, d.s1)

		d.s3.Copy(d.ytY)
		d.s3.ApaB(-1.0/(d.dNorm*d.dNorm), d.dtD)
		d.s3.AaXpbY(-0.5*s2dbl, d.s3, c2/d.dNorm, d.symYtD)

		deriv -= real(sqmat.TraceAtB(d.s2, d.s3))
		deriv *= 2
	}
	return
}

// newtonStep computes the closed-form first and second derivative of the
// trace functional at theta=0, from which the initial Newton estimate
// theta0 = -dE/d2E is formed (§4.3). u is (Y'Y)^-1, ytAYU is (Y'AY)*U.
func newtonStep(u, ytAYU, dtD, dtAD, symYtD, symYtAD *sqmat.Matrix, dNorm float64) (dE, d2E float64) {
	p := u.Order()
	uSymAD := sqmat.New(p)
	uSymAD.AeBC(u, false, symYtAD)

	uSymD := sqmat.New(p)
	uSymD.AeBC(u, false, symYtD)

	ytAYUuSymD := sqmat.New(p)
	ytAYUuSymD.AeBC(ytAYU, false, uSymD)

	dE = 2 * (real(uSymAD.Trace()) - real(ytAYUuSymD.Trace())) / dNorm

	symDuSymD := sqmat.New(p)
	symDuSymD.AeBC(symYtD, false, uSymD)
	m := sqmat.New(p)
	m.AaXpbY(1, dtD, -4, symDuSymD)

	uDtAD := sqmat.New(p)
	uDtAD.AeBC(u, false, dtAD)

	uM := sqmat.New(p)
	uM.AeBC(u, false, m)
	ytAYUuM := sqmat.New(p)
	ytAYUuM.AeBC(ytAYU, false, uM)

	symADuSymD := sqmat.New(p)
	symADuSymD.AeBC(symYtAD, false, uSymD)
	uSymADuSymD := sqmat.New(p)
	uSymADuSymD.AeBC(u, false, symADuSymD)

	d2E = 2 * (real(uDtAD.Trace()) - real(ytAYUuM.Trace()) - 4*real(uSymADuSymD.Trace())) / (dNorm * dNorm)
	return
}
