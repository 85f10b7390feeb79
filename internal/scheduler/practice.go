package scheduler

import (
	"fmt"

	"github.com/example/tutorbot/pkg/models"
)

// ActivateBlockedPractice switches the session into blocked practice for
// the given cluster tag. The tag must be a currently eligible cluster with
// at least one Learning-pool member; otherwise ErrInvalidSelection is
// returned and the session is unchanged.
//
// Selecting a different cluster while already blocked simply re-points the
// active cluster; no mastery state is rolled back.
func (s *Scheduler) ActivateBlockedPractice(tag string) error {
	if !s.clusterEligible(tag) {
		return fmt.Errorf("%w: cluster %q is not eligible", ErrInvalidSelection, tag)
	}
	if !s.clusterHasLearningMember(tag) {
		return fmt.Errorf("%w: cluster %q has no learning-pool members", ErrInvalidSelection, tag)
	}

	s.session.PracticeMode = models.PracticeBlocked
	s.session.ActiveClusterTag = tag
	return nil
}

// CheckBlockedComplete reports whether the active blocked cluster has been
// fully mastered. On completion the session drops back to interleaved
// practice, the active tag is cleared, and the caller should show the topic
// menu before serving the next item. Returns false in interleaved mode.
//
// Completion is judged against the full membership of the originally
// selected tag, using the >= threshold comparison.
func (s *Scheduler) CheckBlockedComplete() bool {
	if s.session.PracticeMode != models.PracticeBlocked {
		return false
	}
	if !s.clusterFullyMastered(s.session.ActiveClusterTag) {
		return false
	}

	s.session.PracticeMode = models.PracticeInterleaved
	s.session.ActiveClusterTag = ""
	return true
}

// MarkMenuShown resets the served-since-menu counter after the topic menu
// has been displayed.
func (s *Scheduler) MarkMenuShown() {
	s.session.ExercisesSinceMenu = 0
}

func (s *Scheduler) clusterHasLearningMember(tag string) bool {
	for _, kp := range s.ClusterMembers(tag) {
		if s.inLearningPool(kp.ID) {
			return true
		}
	}
	return false
}
