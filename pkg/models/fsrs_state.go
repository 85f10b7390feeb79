package models

import "time"

// FSRSCardState is the learning stage of an FSRS card.
type FSRSCardState int

const (
	FSRSLearning   FSRSCardState = 1 // in initial learning steps
	FSRSReview     FSRSCardState = 2 // entered the long-term review cycle
	FSRSRelearning FSRSCardState = 3 // forgotten, relearning
)

// FSRSState holds the FSRS card state for a knowledge point in Retention
// mode. Fields are stored as primitives so the record serializes cleanly.
type FSRSState struct {
	Stability  float64       `json:"stability"`
	Difficulty float64       `json:"difficulty"`
	Due        time.Time     `json:"due"`
	LastReview *time.Time    `json:"last_review,omitempty"`
	State      FSRSCardState `json:"state"`
	Step       *int          `json:"step,omitempty"` // nil once in Review
}

// Clone returns a deep copy. Pointer fields are copied by value.
func (s FSRSState) Clone() FSRSState {
	out := s
	if s.LastReview != nil {
		v := *s.LastReview
		out.LastReview = &v
	}
	if s.Step != nil {
		v := *s.Step
		out.Step = &v
	}
	return out
}
