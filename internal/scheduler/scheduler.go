// Package scheduler implements the exercise scheduling engine: pool
// classification, the one-way BKT->FSRS mastery transition, the
// blocked/interleaved practice state machine, topic-menu eligibility,
// candidate scoring, session composition and multi-skill update
// propagation.
//
// A Scheduler owns one student's mastery map and one session's state. It is
// not safe for concurrent use; a multi-student host must keep one Scheduler
// per student.
package scheduler

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/example/tutorbot/internal/fsrs"
	"github.com/example/tutorbot/pkg/models"
)

// ErrInvalidSelection is returned when blocked practice is activated for a
// cluster that is not currently selectable.
var ErrInvalidSelection = errors.New("scheduler: invalid cluster selection")

// DefaultMasteryThreshold is the p(known) cutoff above which a skill
// permanently moves from Learning to Retention.
const DefaultMasteryThreshold = 0.95

// Config configures a Scheduler. Zero values produce defaults.
type Config struct {
	// MasteryThreshold is the Learning->Retention cutoff; zero -> 0.95.
	MasteryThreshold float64
	// FSRS configures the retention-phase scheduler.
	FSRS fsrs.Config
	// Now overrides the clock, for reproducible runs; nil -> time.Now.
	Now func() time.Time
}

// Scheduler sequences practice items for a single learner.
type Scheduler struct {
	kps       map[string]*models.KnowledgePoint
	order     []string // sorted knowledge-point ids, for deterministic iteration
	masteries map[string]*models.MasteryRecord
	session   *models.SessionState
	threshold float64
	fsrs      *fsrs.Scheduler
	now       func() time.Time
}

// New creates a Scheduler over the given knowledge points, the student's
// mastery map and the session state. A nil mastery map starts a fresh
// student; a nil session starts in interleaved mode with the default ratio.
func New(kps []models.KnowledgePoint, masteries map[string]*models.MasteryRecord, session *models.SessionState, cfg Config) (*Scheduler, error) {
	threshold := cfg.MasteryThreshold
	if threshold == 0 {
		threshold = DefaultMasteryThreshold
	}
	if threshold <= 0 || threshold > 1 {
		return nil, fmt.Errorf("scheduler: mastery threshold %f out of range (0, 1]", threshold)
	}

	fs, err := fsrs.NewScheduler(cfg.FSRS)
	if err != nil {
		return nil, err
	}

	if masteries == nil {
		masteries = make(map[string]*models.MasteryRecord)
	}
	if session == nil {
		session = models.NewSessionState()
	}
	if session.LearningRetentionRatio < 0 || session.LearningRetentionRatio > 1 {
		return nil, fmt.Errorf("scheduler: learning/retention ratio %f out of range [0, 1]",
			session.LearningRetentionRatio)
	}

	byID := make(map[string]*models.KnowledgePoint, len(kps))
	order := make([]string, 0, len(kps))
	for i := range kps {
		kp := &kps[i]
		if _, dup := byID[kp.ID]; dup {
			return nil, fmt.Errorf("scheduler: duplicate knowledge point id %q", kp.ID)
		}
		byID[kp.ID] = kp
		order = append(order, kp.ID)
	}
	sort.Strings(order)

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Scheduler{
		kps:       byID,
		order:     order,
		masteries: masteries,
		session:   session,
		threshold: threshold,
		fsrs:      fs,
		now:       now,
	}, nil
}

// Session returns the session state owned by the scheduler.
func (s *Scheduler) Session() *models.SessionState {
	return s.session
}

// Masteries returns the student's mastery map, keyed by knowledge-point id.
// The caller persists it; the scheduler mutates it through Apply.
func (s *Scheduler) Masteries() map[string]*models.MasteryRecord {
	return s.masteries
}

// Mastery returns the record for a knowledge point, or nil if the skill has
// never been practiced.
func (s *Scheduler) Mastery(kpID string) *models.MasteryRecord {
	return s.masteries[kpID]
}

// KnowledgePoint returns the knowledge point with the given id, or nil.
func (s *Scheduler) KnowledgePoint(kpID string) *models.KnowledgePoint {
	return s.kps[kpID]
}

// Retrievability returns the FSRS recall probability for a Retention-mode
// skill, and false for skills without FSRS state.
func (s *Scheduler) Retrievability(kpID string) (float64, bool) {
	m := s.masteries[kpID]
	if m == nil || m.FSRS == nil {
		return 0, false
	}
	return s.fsrs.Retrievability(*m.FSRS, s.now()), true
}

// isMastered reports whether a knowledge point counts as mastered. A missing
// record is unmastered: the conservative default for membership queries.
func (s *Scheduler) isMastered(kpID string) bool {
	m := s.masteries[kpID]
	if m == nil {
		return false
	}
	return m.IsMastered(s.threshold)
}

// prerequisitesMastered reports whether every prerequisite of the knowledge
// point is mastered. Missing prerequisite records count as unmastered.
func (s *Scheduler) prerequisitesMastered(kp *models.KnowledgePoint) bool {
	for _, preID := range kp.Prerequisites {
		if !s.isMastered(preID) {
			return false
		}
	}
	return true
}
