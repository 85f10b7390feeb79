package scheduler

import (
	"math"
	"math/rand"
)

// ComposeSession builds an ordered queue of up to size knowledge-point ids
// by blending the Learning and Retention pools under the session's
// configured ratio.
//
// With a non-empty Learning pool the queue holds floor(size*ratio) Learning
// picks and the rest Retention picks; a pool smaller than its share simply
// contributes fewer items, never duplicates or substitutes from the other
// pool. An empty Learning pool yields a Retention-only queue.
//
// The blended queue is shuffled with the caller's rng so sessions are
// reproducible under a fixed seed. A nil rng leaves the queue in ranked
// order.
func (s *Scheduler) ComposeSession(size int, rng *rand.Rand) []string {
	if size <= 0 {
		return nil
	}

	learning, _ := s.Pools()
	if len(learning) == 0 {
		return s.RetentionCandidates(size)
	}

	learningCount := int(math.Floor(float64(size) * s.session.LearningRetentionRatio))
	retentionCount := size - learningCount

	queue := s.LearningCandidates(learningCount)
	queue = append(queue, s.RetentionCandidates(retentionCount)...)

	if rng != nil {
		rng.Shuffle(len(queue), func(i, j int) {
			queue[i], queue[j] = queue[j], queue[i]
		})
	}
	return queue
}
