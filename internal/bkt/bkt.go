// Package bkt implements the Bayesian Knowledge Tracing update used during
// the Learning phase, before a skill transitions to FSRS-driven retention.
package bkt

import "github.com/example/tutorbot/pkg/models"

// Params are the per-skill BKT probabilities.
type Params struct {
	// PTransit is the probability of learning the skill on one practice.
	PTransit float64
	// PSlip is the probability of answering incorrectly despite knowing.
	PSlip float64
	// PGuess is the probability of answering correctly without knowing.
	PGuess float64
}

// DefaultParams returns the standard parameters for a fresh skill.
func DefaultParams() Params {
	return Params{
		PTransit: models.DefaultPTransit,
		PSlip:    models.DefaultPSlip,
		PGuess:   models.DefaultPGuess,
	}
}

// ParamsFor reads the BKT parameters stored on a mastery record.
func ParamsFor(m *models.MasteryRecord) Params {
	return Params{PTransit: m.PTransit, PSlip: m.PSlip, PGuess: m.PGuess}
}

// Update applies one observation to the prior p(known) and returns the
// posterior. Correct observations condition on the evidence and then apply
// the learning transition, so the estimate never decreases. Incorrect
// observations only condition, so the estimate never increases.
func Update(pKnown float64, correct bool, p Params) float64 {
	pL := clamp01(pKnown)

	if correct {
		conditioned := pL
		pCorrect := pL*(1-p.PSlip) + (1-pL)*p.PGuess
		if pCorrect > 0 {
			conditioned = pL * (1 - p.PSlip) / pCorrect
		}
		// Learning transition: the student may have acquired the skill
		// on this practice.
		return clamp01(conditioned + (1-conditioned)*p.PTransit)
	}

	conditioned := pL
	pIncorrect := pL*p.PSlip + (1-pL)*(1-p.PGuess)
	if pIncorrect > 0 {
		conditioned = pL * p.PSlip / pIncorrect
	}
	return clamp01(conditioned)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
