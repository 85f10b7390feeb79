package models

import "time"

// SchedulingMode tracks which update algorithm drives a knowledge point.
// The transition is one-way: Learning -> Retention, never back.
type SchedulingMode string

const (
	// ModeLearning is the active skill-acquisition phase, driven by BKT.
	ModeLearning SchedulingMode = "learning"
	// ModeRetention is the long-term retention phase, driven by FSRS.
	ModeRetention SchedulingMode = "retention"
)

// Default BKT parameters for a fresh mastery record.
const (
	DefaultPTransit = 0.3
	DefaultPSlip    = 0.1
	DefaultPGuess   = 0.2
)

// MasteryRecord tracks one student's mastery of one knowledge point.
// Mutated exclusively by the update propagator and the transition
// controller.
type MasteryRecord struct {
	KnowledgePointID string         `json:"knowledge_point_id" db:"knowledge_point_id"`
	Mode             SchedulingMode `json:"mode" db:"mode"`

	// BKT track. PKnown stays meaningful after the transition only as the
	// frozen value that crossed the threshold.
	PKnown   float64 `json:"p_known" db:"p_known"`
	PTransit float64 `json:"p_transit" db:"p_transit"`
	PSlip    float64 `json:"p_slip" db:"p_slip"`
	PGuess   float64 `json:"p_guess" db:"p_guess"`

	// Practice stats shared by both modes.
	PracticeCount      int        `json:"practice_count" db:"practice_count"`
	CorrectCount       int        `json:"correct_count" db:"correct_count"`
	ConsecutiveCorrect int        `json:"consecutive_correct" db:"consecutive_correct"`
	LastPracticed      *time.Time `json:"last_practiced,omitempty"`

	// FSRS track, set when Mode becomes Retention.
	FSRS           *FSRSState `json:"fsrs,omitempty"`
	TransitionedAt *time.Time `json:"transitioned_at,omitempty"`
}

// NewMasteryRecord creates a fresh record in Learning mode with the default
// BKT parameters. Absence of a record means "not yet practiced"; records are
// created only here, never lazily with divergent defaults.
func NewMasteryRecord(kpID string) *MasteryRecord {
	return &MasteryRecord{
		KnowledgePointID: kpID,
		Mode:             ModeLearning,
		PKnown:           0.0,
		PTransit:         DefaultPTransit,
		PSlip:            DefaultPSlip,
		PGuess:           DefaultPGuess,
	}
}

// IsMastered reports whether the skill has reached the mastery threshold.
// Retention-mode records are always mastered.
func (m *MasteryRecord) IsMastered(threshold float64) bool {
	if m.Mode == ModeRetention {
		return true
	}
	return m.PKnown >= threshold
}
