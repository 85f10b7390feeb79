package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/example/tutorbot/pkg/models"
)

// knowledgePointRow mirrors the knowledge_points table. Tags and
// prerequisites are stored as JSON arrays.
type knowledgePointRow struct {
	ID            string       `db:"id"`
	Kind          string       `db:"kind"`
	Content       string       `db:"content"`
	Pronunciation string       `db:"pronunciation"`
	Translation   string       `db:"translation"`
	Tags          string       `db:"tags"`
	Prerequisites string       `db:"prerequisites"`
	CreatedAt     sql.NullTime `db:"created_at"`
	UpdatedAt     sql.NullTime `db:"updated_at"`
}

func (r *knowledgePointRow) toModel() (*models.KnowledgePoint, error) {
	kp := &models.KnowledgePoint{
		ID:            r.ID,
		Kind:          models.KnowledgePointKind(r.Kind),
		Content:       r.Content,
		Pronunciation: r.Pronunciation,
		Translation:   r.Translation,
	}
	if r.Tags != "" {
		if err := json.Unmarshal([]byte(r.Tags), &kp.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags for %s: %v", r.ID, err)
		}
	}
	if r.Prerequisites != "" {
		if err := json.Unmarshal([]byte(r.Prerequisites), &kp.Prerequisites); err != nil {
			return nil, fmt.Errorf("failed to decode prerequisites for %s: %v", r.ID, err)
		}
	}
	return kp, nil
}

// masteryRow mirrors the mastery_records table. The FSRS columns are null
// until the skill transitions to Retention mode.
type masteryRow struct {
	KnowledgePointID   string          `db:"knowledge_point_id"`
	Mode               string          `db:"mode"`
	PKnown             float64         `db:"p_known"`
	PTransit           float64         `db:"p_transit"`
	PSlip              float64         `db:"p_slip"`
	PGuess             float64         `db:"p_guess"`
	PracticeCount      int             `db:"practice_count"`
	CorrectCount       int             `db:"correct_count"`
	ConsecutiveCorrect int             `db:"consecutive_correct"`
	LastPracticed      sql.NullTime    `db:"last_practiced"`
	Stability          sql.NullFloat64 `db:"stability"`
	Difficulty         sql.NullFloat64 `db:"difficulty"`
	Due                sql.NullTime    `db:"due"`
	LastReview         sql.NullTime    `db:"last_review"`
	FSRSState          sql.NullInt64   `db:"fsrs_state"`
	FSRSStep           sql.NullInt64   `db:"fsrs_step"`
	TransitionedAt     sql.NullTime    `db:"transitioned_at"`
	CreatedAt          sql.NullTime    `db:"created_at"`
	UpdatedAt          sql.NullTime    `db:"updated_at"`
}

func (r *masteryRow) toModel() *models.MasteryRecord {
	m := &models.MasteryRecord{
		KnowledgePointID:   r.KnowledgePointID,
		Mode:               models.SchedulingMode(r.Mode),
		PKnown:             r.PKnown,
		PTransit:           r.PTransit,
		PSlip:              r.PSlip,
		PGuess:             r.PGuess,
		PracticeCount:      r.PracticeCount,
		CorrectCount:       r.CorrectCount,
		ConsecutiveCorrect: r.ConsecutiveCorrect,
	}
	if r.LastPracticed.Valid {
		t := r.LastPracticed.Time
		m.LastPracticed = &t
	}
	if r.TransitionedAt.Valid {
		t := r.TransitionedAt.Time
		m.TransitionedAt = &t
	}
	if r.Stability.Valid && r.Due.Valid {
		state := &models.FSRSState{
			Stability:  r.Stability.Float64,
			Difficulty: r.Difficulty.Float64,
			Due:        r.Due.Time,
			State:      models.FSRSCardState(r.FSRSState.Int64),
		}
		if r.LastReview.Valid {
			t := r.LastReview.Time
			state.LastReview = &t
		}
		if r.FSRSStep.Valid {
			step := int(r.FSRSStep.Int64)
			state.Step = &step
		}
		m.FSRS = state
	}
	return m
}

func masteryRowFromModel(m *models.MasteryRecord) masteryRow {
	r := masteryRow{
		KnowledgePointID:   m.KnowledgePointID,
		Mode:               string(m.Mode),
		PKnown:             m.PKnown,
		PTransit:           m.PTransit,
		PSlip:              m.PSlip,
		PGuess:             m.PGuess,
		PracticeCount:      m.PracticeCount,
		CorrectCount:       m.CorrectCount,
		ConsecutiveCorrect: m.ConsecutiveCorrect,
	}
	if m.LastPracticed != nil {
		r.LastPracticed = sql.NullTime{Time: *m.LastPracticed, Valid: true}
	}
	if m.TransitionedAt != nil {
		r.TransitionedAt = sql.NullTime{Time: *m.TransitionedAt, Valid: true}
	}
	if m.FSRS != nil {
		r.Stability = sql.NullFloat64{Float64: m.FSRS.Stability, Valid: true}
		r.Difficulty = sql.NullFloat64{Float64: m.FSRS.Difficulty, Valid: true}
		r.Due = sql.NullTime{Time: m.FSRS.Due, Valid: true}
		r.FSRSState = sql.NullInt64{Int64: int64(m.FSRS.State), Valid: true}
		if m.FSRS.LastReview != nil {
			r.LastReview = sql.NullTime{Time: *m.FSRS.LastReview, Valid: true}
		}
		if m.FSRS.Step != nil {
			r.FSRSStep = sql.NullInt64{Int64: int64(*m.FSRS.Step), Valid: true}
		}
	}
	return r
}
