package eigs

// opTimes holds the measured wall-clock time of each per-iteration
// operation, used by chooseNextStrategy to estimate the cost of the exact
// vs. approximate line-minimization schemes for the next iteration.
type opTimes struct {
	AY, KG, ZtW, ZS, ZtZ, linmin float64
}

// approxLinminImprovementThreshold is the maximum improvement the exact
// line minimization is allowed to have made (over one Newton step) while
// still letting the controller fall back to the approximate strategy. It
// is deliberately conservative: the exact line minimization is the more
// reliable of the two, so it is only abandoned when it buys little and
// costs a lot.
const approxLinminImprovementThreshold = 0.05

// approxLinminSlowdownGuess is how much slower the exact strategy must be,
// relative to the approximate one, before the controller will switch.
const approxLinminSlowdownGuess = 2.0

// chooseNextStrategy estimates the time the exact and approximate line
// minimizations would take on the next iteration from times measured this
// iteration, and decides which one to use next.
//
// linminImprovement is the fractional improvement reported by the exact
// linmin this iteration; it is ignored (and exact is always chosen) when
// the approximate strategy ran instead.
func chooseNextStrategy(t opTimes, linminImprovement float64, usedExact bool, flags Flags) bool {
	if flags.has(ForceApproxLinmin) {
		return false
	}
	if flags.has(ForceExactLinmin) {
		return true
	}

	tExact := 2*t.AY + t.KG + 4*t.ZtW + 2*t.ZS + 2*t.ZtZ + t.linmin
	tApprox := 2*t.AY + t.KG + 2*t.ZtW + 2*t.ZS + 2*t.ZtZ
	if flags.has(ProjectPreconditioning) {
		tExact += t.ZtW + t.ZS
		tApprox += t.ZtW + t.ZS
	}

	if usedExact &&
		linminImprovement > 0 && linminImprovement <= approxLinminImprovementThreshold &&
		tExact > approxLinminSlowdownGuess*tApprox {
		return false // approximate
	}
	return true // exact
}
