package scheduler

import (
	"github.com/example/tutorbot/internal/bkt"
	"github.com/example/tutorbot/internal/fsrs"
	"github.com/example/tutorbot/pkg/models"
)

// UpdateResult reports the outcome of one leg of a multi-skill update.
type UpdateResult struct {
	KnowledgePointID string
	// Mode after the update (Retention if the transition just fired).
	Mode models.SchedulingMode
	// PKnown after the update; for Retention-mode skills the frozen value.
	PKnown float64
	// Retrievability after the update, for skills with FSRS state.
	Retrievability float64
	// Transitioned is true when this update pushed the skill across the
	// mastery threshold.
	Transitioned bool
}

// Apply propagates one exercise outcome to every referenced knowledge
// point, in the caller's order. Learning-mode skills get a BKT update with
// the outcome's correctness (Again maps to incorrect, everything else to
// correct); Retention-mode skills get an FSRS review with the full rating.
// After each leg the mastery transition check runs.
//
// Ids that don't name a known knowledge point are skipped without aborting
// the remaining legs. A skill referenced for the first time gets a fresh
// mastery record which is kept in the mastery map, so it persists with the
// rest of the student state.
func (s *Scheduler) Apply(kpIDs []string, rating fsrs.Rating) []UpdateResult {
	now := s.now()
	correct := rating != fsrs.Again

	var results []UpdateResult
	for _, id := range kpIDs {
		if _, known := s.kps[id]; !known {
			continue
		}

		m := s.masteries[id]
		if m == nil {
			m = models.NewMasteryRecord(id)
			s.masteries[id] = m
		}

		if m.Mode == models.ModeLearning {
			m.PKnown = bkt.Update(m.PKnown, correct, bkt.ParamsFor(m))
		} else if m.FSRS == nil {
			// Retention record without FSRS state, e.g. a partially
			// written row: restart the card instead of skipping the update.
			state := s.fsrs.InitialState(now)
			m.FSRS = &state
		} else {
			updated := s.fsrs.Review(*m.FSRS, rating, now)
			m.FSRS = &updated
		}

		m.PracticeCount++
		if correct {
			m.CorrectCount++
			m.ConsecutiveCorrect++
		} else {
			m.ConsecutiveCorrect = 0
		}
		practiced := now
		m.LastPracticed = &practiced

		transitioned := s.checkTransition(m)

		res := UpdateResult{
			KnowledgePointID: id,
			Mode:             m.Mode,
			PKnown:           m.PKnown,
			Transitioned:     transitioned,
		}
		if m.FSRS != nil {
			res.Retrievability = s.fsrs.Retrievability(*m.FSRS, now)
		}
		results = append(results, res)
	}

	s.session.ExercisesSinceMenu++
	return results
}
