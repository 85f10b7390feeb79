// Package fsrs implements a compact FSRS v6 scheduler for the long-term
// retention phase. It operates directly on the models.FSRSState stored on a
// mastery record. Intervals are not fuzzed, so scheduling is deterministic.
package fsrs

import (
	"fmt"
	"time"

	"github.com/example/tutorbot/pkg/models"
)

// Config configures a Scheduler. Zero values produce sensible defaults.
type Config struct {
	Parameters       [21]float64     // zero -> DefaultParameters
	DesiredRetention float64         // zero -> 0.9
	MaximumInterval  int             // zero -> 36500
	LearningSteps    []time.Duration // nil -> [1m, 10m]
	RelearningSteps  []time.Duration // nil -> [10m]
}

// Scheduler computes review intervals and retrievability using FSRS v6.
type Scheduler struct {
	algo             algo
	desiredRetention float64
	maximumInterval  int
	learningSteps    []time.Duration
	relearningSteps  []time.Duration
}

// NewScheduler creates a Scheduler from the given config, filling zero-value
// fields with defaults and rejecting invalid values.
func NewScheduler(cfg Config) (*Scheduler, error) {
	params := cfg.Parameters
	if params == [21]float64{} {
		params = DefaultParameters
	}
	if err := validateParameters(params); err != nil {
		return nil, err
	}

	dr := cfg.DesiredRetention
	if dr == 0 {
		dr = 0.9
	}
	if dr < 0 || dr > 1 {
		return nil, fmt.Errorf("fsrs: desired retention %f out of range (0, 1]", dr)
	}

	maxIvl := cfg.MaximumInterval
	if maxIvl == 0 {
		maxIvl = 36500
	}
	if maxIvl < 0 {
		return nil, fmt.Errorf("fsrs: maximum interval %d must be positive", maxIvl)
	}

	ls := cfg.LearningSteps
	if ls == nil {
		ls = []time.Duration{time.Minute, 10 * time.Minute}
	}
	rs := cfg.RelearningSteps
	if rs == nil {
		rs = []time.Duration{10 * time.Minute}
	}

	return &Scheduler{
		algo:             newAlgo(params),
		desiredRetention: dr,
		maximumInterval:  maxIvl,
		learningSteps:    ls,
		relearningSteps:  rs,
	}, nil
}

// InitialState returns the FSRS state for a skill that just crossed the
// mastery threshold. The card is created fresh and given one Good review to
// establish a baseline stability and difficulty.
func (s *Scheduler) InitialState(now time.Time) models.FSRSState {
	step := 0
	fresh := models.FSRSState{
		State: models.FSRSLearning,
		Step:  &step,
		Due:   now,
	}
	return s.Review(fresh, Good, now)
}

// Review processes one review at the given time and returns the updated
// state. The input state is not mutated.
func (s *Scheduler) Review(state models.FSRSState, rating Rating, now time.Time) models.FSRSState {
	c := state.Clone()

	var elapsedDays float64
	if c.LastReview != nil {
		elapsedDays = now.Sub(*c.LastReview).Hours() / 24.0
	}

	s.updateMemory(&c, rating, elapsedDays)

	var interval time.Duration
	switch c.State {
	case models.FSRSLearning:
		interval = s.stepTransition(&c, rating, s.learningSteps)
	case models.FSRSRelearning:
		interval = s.stepTransition(&c, rating, s.relearningSteps)
	default:
		interval = s.reviewTransition(&c, rating)
	}

	c.Due = now.Add(interval)
	c.LastReview = &now
	return c
}

// Retrievability returns the probability of recall at the given time.
// Returns 0 for a state that has never been reviewed.
func (s *Scheduler) Retrievability(state models.FSRSState, now time.Time) float64 {
	if state.LastReview == nil || state.Stability <= 0 {
		return 0
	}
	elapsed := now.Sub(*state.LastReview).Hours() / 24.0
	if elapsed < 0 {
		elapsed = 0
	}
	return s.algo.retrievability(elapsed, state.Stability)
}

// IsDue reports whether the state's next review has come due.
func (s *Scheduler) IsDue(state models.FSRSState, now time.Time) bool {
	return !state.Due.After(now)
}

// updateMemory updates stability and difficulty for the review.
func (s *Scheduler) updateMemory(c *models.FSRSState, rating Rating, elapsedDays float64) {
	if c.LastReview == nil || c.Stability <= 0 {
		// First review: initialize S and D.
		c.Stability = s.algo.initStability(rating)
		c.Difficulty = s.algo.initDifficulty(rating, true)
		return
	}

	if elapsedDays < 1 {
		c.Stability = s.algo.shortTermStability(c.Stability, rating)
	} else {
		r := s.algo.retrievability(elapsedDays, c.Stability)
		c.Stability = s.algo.nextStability(c.Difficulty, c.Stability, r, rating)
	}
	c.Difficulty = s.algo.nextDifficulty(c.Difficulty, rating)
}

// stepTransition handles Learning and Relearning states and returns the
// scheduling interval.
func (s *Scheduler) stepTransition(c *models.FSRSState, rating Rating, steps []time.Duration) time.Duration {
	step := 0
	if c.Step != nil {
		step = *c.Step
	}

	if len(steps) == 0 || (step >= len(steps) && rating != Again) {
		return s.graduate(c)
	}

	switch rating {
	case Again:
		zero := 0
		c.Step = &zero
		return steps[0]

	case Hard:
		if step == 0 && len(steps) == 1 {
			return time.Duration(float64(steps[0]) * 1.5)
		}
		if step == 0 && len(steps) >= 2 {
			return (steps[0] + steps[1]) / 2
		}
		return steps[step]

	case Good:
		next := step + 1
		if next >= len(steps) {
			return s.graduate(c)
		}
		c.Step = &next
		return steps[next]

	default: // Easy skips remaining steps.
		return s.graduate(c)
	}
}

// reviewTransition handles the Review state: a lapse drops the card into
// Relearning, anything else schedules the next long-term interval.
func (s *Scheduler) reviewTransition(c *models.FSRSState, rating Rating) time.Duration {
	if rating == Again && len(s.relearningSteps) > 0 {
		zero := 0
		c.State = models.FSRSRelearning
		c.Step = &zero
		return s.relearningSteps[0]
	}

	c.Step = nil
	days := s.algo.nextInterval(c.Stability, s.desiredRetention, s.maximumInterval)
	return time.Duration(days) * 24 * time.Hour
}

// graduate moves the card into the long-term Review state.
func (s *Scheduler) graduate(c *models.FSRSState) time.Duration {
	c.State = models.FSRSReview
	c.Step = nil
	days := s.algo.nextInterval(c.Stability, s.desiredRetention, s.maximumInterval)
	return time.Duration(days) * 24 * time.Hour
}
