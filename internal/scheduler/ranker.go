package scheduler

// neutralPriority is assigned to Retention-pool items that have no FSRS
// state to compute retrievability from.
const neutralPriority = 0.5

// RetentionCandidates ranks the Retention pool by review urgency and
// returns up to count ids, most urgent first. Urgency is 1 minus the FSRS
// retrievability, so the items forgotten furthest surface first. Ties break
// by id ascending.
func (s *Scheduler) RetentionCandidates(count int) []string {
	_, retention := s.Pools()

	now := s.now()
	scored := make([]scoredID, 0, len(retention))
	for _, id := range retention {
		priority := neutralPriority
		if m := s.masteries[id]; m != nil && m.FSRS != nil {
			priority = 1 - s.fsrs.Retrievability(*m.FSRS, now)
		}
		scored = append(scored, scoredID{id: id, score: priority})
	}
	sortScored(scored)
	return takeIDs(scored, count)
}
