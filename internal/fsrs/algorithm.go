package fsrs

import "math"

// algo holds precomputed constants derived from the 21 FSRS weights.
type algo struct {
	w      [21]float64
	decay  float64 // -w[20]
	factor float64 // 0.9^(1/decay) - 1
}

func newAlgo(w [21]float64) algo {
	decay := -w[20]
	return algo{w: w, decay: decay, factor: math.Pow(0.9, 1.0/decay) - 1.0}
}

// retrievability computes R(t, S) = (1 + factor * t / S) ^ decay.
func (a *algo) retrievability(elapsedDays, stability float64) float64 {
	return math.Pow(1+a.factor*elapsedDays/stability, a.decay)
}

// initStability returns the initial stability S0(G).
func (a *algo) initStability(r Rating) float64 {
	return clampStability(a.w[r-1])
}

// initDifficulty returns the initial difficulty D0(G), clamped to [1, 10]
// when clamp is true.
func (a *algo) initDifficulty(r Rating, clamp bool) float64 {
	d := a.w[4] - math.Exp(a.w[5]*float64(r-1)) + 1
	if clamp {
		return clampDifficulty(d)
	}
	return d
}

// nextInterval computes the next review interval in days, clamped to
// [1, maxInterval].
func (a *algo) nextInterval(stability, desiredRetention float64, maxInterval int) int {
	ivl := stability / a.factor * (math.Pow(desiredRetention, 1.0/a.decay) - 1)
	days := int(math.Round(ivl))
	if days < 1 {
		days = 1
	}
	if days > maxInterval {
		days = maxInterval
	}
	return days
}

// shortTermStability computes the stability after a same-day review.
func (a *algo) shortTermStability(stability float64, r Rating) float64 {
	inc := math.Exp(a.w[17]*(float64(r)-3+a.w[18])) * math.Pow(stability, -a.w[19])
	if r == Good || r == Easy {
		inc = math.Max(inc, 1.0)
	}
	return clampStability(stability * inc)
}

// nextDifficulty applies linear damping and mean reversion toward D0(Easy).
func (a *algo) nextDifficulty(difficulty float64, r Rating) float64 {
	deltaD := -a.w[6] * (float64(r) - 3)
	damped := difficulty + (10-difficulty)*deltaD/9
	reverted := a.w[7]*a.initDifficulty(Easy, false) + (1-a.w[7])*damped
	return clampDifficulty(reverted)
}

// nextStability dispatches on whether the review was a recall or a lapse.
func (a *algo) nextStability(d, s, r float64, rating Rating) float64 {
	if rating == Again {
		return clampStability(a.forgetStability(d, s, r))
	}
	return clampStability(a.recallStability(d, s, r, rating))
}

// recallStability computes stability after a successful recall.
func (a *algo) recallStability(d, s, r float64, rating Rating) float64 {
	hardPenalty := 1.0
	if rating == Hard {
		hardPenalty = a.w[15]
	}
	easyBonus := 1.0
	if rating == Easy {
		easyBonus = a.w[16]
	}
	return s * (1 + math.Exp(a.w[8])*
		(11-d)*
		math.Pow(s, -a.w[9])*
		(math.Exp((1-r)*a.w[10])-1)*
		hardPenalty*easyBonus)
}

// forgetStability computes stability after a lapse.
func (a *algo) forgetStability(d, s, r float64) float64 {
	long := a.w[11] *
		math.Pow(d, -a.w[12]) *
		(math.Pow(s+1, a.w[13]) - 1) *
		math.Exp((1-r)*a.w[14])
	short := s / math.Exp(a.w[17]*a.w[18])
	return math.Min(long, short)
}

func clampStability(s float64) float64 {
	return math.Max(s, 0.001)
}

func clampDifficulty(d float64) float64 {
	return math.Min(math.Max(d, 1), 10)
}
