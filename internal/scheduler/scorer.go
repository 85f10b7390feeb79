package scheduler

import (
	"math"
	"sort"

	"github.com/example/tutorbot/pkg/models"
)

// Scoring weights for Learning-pool candidates.
const (
	urgencyWeight   = 0.7 // scaled by how far p(known) is from 1
	frontierBonus   = 0.3 // never-practiced items
	recencyPerDay   = 0.1 // per day since last practice
	recencyBonusCap = 0.2
)

// LearningCandidates ranks the Learning-pool candidates for the current
// practice mode and returns up to count ids, best first.
//
// In blocked mode the candidates are the active cluster's Learning-pool
// members, with no prerequisite filter. In interleaved mode they are the
// whole Learning pool restricted to items whose prerequisites are all
// mastered.
//
// Ties break by id ascending, so ranking is deterministic.
func (s *Scheduler) LearningCandidates(count int) []string {
	candidates := s.learningCandidateSet()

	scored := make([]scoredID, 0, len(candidates))
	for _, id := range candidates {
		scored = append(scored, scoredID{id: id, score: s.learningScore(id)})
	}
	sortScored(scored)
	return takeIDs(scored, count)
}

// learningCandidateSet returns the unranked candidate ids in id order.
func (s *Scheduler) learningCandidateSet() []string {
	var candidates []string
	blocked := s.session.PracticeMode == models.PracticeBlocked

	for _, id := range s.order {
		if !s.inLearningPool(id) {
			continue
		}
		if blocked {
			if !s.kps[id].HasTag(s.session.ActiveClusterTag) {
				continue
			}
		} else if !s.prerequisitesMastered(s.kps[id]) {
			continue
		}
		candidates = append(candidates, id)
	}
	return candidates
}

// learningScore computes the urgency score for one Learning-pool item.
func (s *Scheduler) learningScore(kpID string) float64 {
	m := s.masteries[kpID]
	if m == nil {
		// Never practiced: frontier bonus only.
		return frontierBonus
	}

	score := 0.0

	// Urgency: items mid-acquisition rank by how far they are from
	// mastery. Untouched items at zero get no urgency term.
	if m.PKnown > 0 && m.PKnown < s.threshold {
		score += urgencyWeight * math.Max(0, 1-m.PKnown)
	}

	if m.PracticeCount == 0 {
		score += frontierBonus
	} else if m.LastPracticed != nil {
		days := s.now().Sub(*m.LastPracticed).Hours() / 24.0
		if days > 0 {
			score += math.Min(recencyPerDay*days, recencyBonusCap)
		}
	}
	return score
}

type scoredID struct {
	id    string
	score float64
}

// sortScored orders by score descending, id ascending on ties.
func sortScored(scored []scoredID) {
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].id < scored[j].id
	})
}

func takeIDs(scored []scoredID, count int) []string {
	if count < 0 {
		count = 0
	}
	if count > len(scored) {
		count = len(scored)
	}
	ids := make([]string, 0, count)
	for _, sc := range scored[:count] {
		ids = append(ids, sc.id)
	}
	return ids
}
