package scheduler

import "github.com/example/tutorbot/pkg/models"

// CheckTransition applies the one-way Learning->Retention handoff for one
// knowledge point. If the record's p(known) has reached the mastery
// threshold and the mode is not already Retention, a fresh FSRS state is
// initialized, the mode flips and the transition time is stamped.
//
// The call is idempotent: an already-transitioned record, a record below
// the threshold, or a missing record all return false without change.
// It must run after every update that can move p(known), including each
// leg of a multi-skill update.
func (s *Scheduler) CheckTransition(kpID string) bool {
	m := s.masteries[kpID]
	if m == nil {
		return false
	}
	return s.checkTransition(m)
}

func (s *Scheduler) checkTransition(m *models.MasteryRecord) bool {
	if m.Mode == models.ModeRetention {
		return false
	}
	if m.PKnown < s.threshold {
		return false
	}

	now := s.now()
	state := s.fsrs.InitialState(now)
	m.FSRS = &state
	m.Mode = models.ModeRetention
	m.TransitionedAt = &now
	return true
}
