package scheduler

import "github.com/example/tutorbot/pkg/models"

// Pools classifies every knowledge point into the Learning or Retention
// pool. A skill is in the Learning pool while its mode is not Retention or
// its p(known) is below the mastery threshold; the Retention pool is the
// complement. Knowledge points without a mastery record are Learning.
// Both slices come back in id order.
func (s *Scheduler) Pools() (learning, retention []string) {
	for _, id := range s.order {
		if s.inLearningPool(id) {
			learning = append(learning, id)
		} else {
			retention = append(retention, id)
		}
	}
	return learning, retention
}

// inLearningPool reports whether one knowledge point classifies as Learning.
// Membership is always derived from mode and threshold, never stored.
func (s *Scheduler) inLearningPool(kpID string) bool {
	m := s.masteries[kpID]
	if m == nil {
		return true
	}
	return m.Mode != models.ModeRetention || m.PKnown < s.threshold
}
