package models

// PracticeMode is the current practice regime within Learning mode.
type PracticeMode string

const (
	// PracticeBlocked serves exercises from a single active cluster.
	PracticeBlocked PracticeMode = "blocked"
	// PracticeInterleaved serves exercises across all Learning-pool skills.
	PracticeInterleaved PracticeMode = "interleaved"
)

// DefaultLearningRetentionRatio is the default share of a session drawn
// from the Learning pool.
const DefaultLearningRetentionRatio = 0.7

// SessionState tracks scheduling state for one practice session. Created at
// session start, mutated by the practice state machine and the composer.
type SessionState struct {
	PracticeMode PracticeMode `json:"practice_mode" db:"practice_mode"`
	// ActiveClusterTag is set only while PracticeMode is blocked.
	ActiveClusterTag string `json:"active_cluster_tag" db:"active_cluster_tag"`
	// LearningRetentionRatio is the Learning share of a composed session,
	// a fraction in [0, 1].
	LearningRetentionRatio float64 `json:"learning_retention_ratio" db:"learning_retention_ratio"`
	// ExercisesSinceMenu counts exercises served since the menu was last
	// displayed.
	ExercisesSinceMenu int `json:"exercises_since_menu" db:"exercises_since_menu"`
}

// NewSessionState creates session state with the default interleaved mode
// and composition ratio.
func NewSessionState() *SessionState {
	return &SessionState{
		PracticeMode:           PracticeInterleaved,
		LearningRetentionRatio: DefaultLearningRetentionRatio,
	}
}
