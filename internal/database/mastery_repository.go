package database

import (
	"fmt"
	"time"

	"github.com/example/tutorbot/pkg/models"
)

// MasteryRepository handles database operations for mastery records
type MasteryRepository struct{}

// NewMasteryRepository creates a new repository instance
func NewMasteryRepository() *MasteryRepository {
	return &MasteryRepository{}
}

// LoadAll returns the complete mastery map keyed by knowledge-point id
func (r *MasteryRepository) LoadAll() (map[string]*models.MasteryRecord, error) {
	var rows []masteryRow
	err := DB.Select(&rows, "SELECT * FROM mastery_records")
	if err != nil {
		return nil, fmt.Errorf("failed to load mastery records: %v", err)
	}

	masteries := make(map[string]*models.MasteryRecord, len(rows))
	for i := range rows {
		m := rows[i].toModel()
		masteries[m.KnowledgePointID] = m
	}
	return masteries, nil
}

// Get returns the mastery record for a knowledge point, or nil if the skill
// has never been practiced
func (r *MasteryRepository) Get(kpID string) (*models.MasteryRecord, error) {
	var rows []masteryRow
	err := DB.Select(&rows, "SELECT * FROM mastery_records WHERE knowledge_point_id = $1", kpID)
	if err != nil {
		return nil, fmt.Errorf("failed to get mastery record %s: %v", kpID, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toModel(), nil
}

// Save creates or updates a mastery record
func (r *MasteryRepository) Save(m *models.MasteryRecord) error {
	row := masteryRowFromModel(m)
	_, err := DB.NamedExec(`
		INSERT INTO mastery_records (
			knowledge_point_id, mode, p_known, p_transit, p_slip, p_guess,
			practice_count, correct_count, consecutive_correct, last_practiced,
			stability, difficulty, due, last_review, fsrs_state, fsrs_step,
			transitioned_at
		) VALUES (
			:knowledge_point_id, :mode, :p_known, :p_transit, :p_slip, :p_guess,
			:practice_count, :correct_count, :consecutive_correct, :last_practiced,
			:stability, :difficulty, :due, :last_review, :fsrs_state, :fsrs_step,
			:transitioned_at
		)
		ON CONFLICT (knowledge_point_id) DO UPDATE SET
			mode = EXCLUDED.mode,
			p_known = EXCLUDED.p_known,
			p_transit = EXCLUDED.p_transit,
			p_slip = EXCLUDED.p_slip,
			p_guess = EXCLUDED.p_guess,
			practice_count = EXCLUDED.practice_count,
			correct_count = EXCLUDED.correct_count,
			consecutive_correct = EXCLUDED.consecutive_correct,
			last_practiced = EXCLUDED.last_practiced,
			stability = EXCLUDED.stability,
			difficulty = EXCLUDED.difficulty,
			due = EXCLUDED.due,
			last_review = EXCLUDED.last_review,
			fsrs_state = EXCLUDED.fsrs_state,
			fsrs_step = EXCLUDED.fsrs_step,
			transitioned_at = EXCLUDED.transitioned_at,
			updated_at = CURRENT_TIMESTAMP
	`, row)
	if err != nil {
		return fmt.Errorf("failed to save mastery record %s: %v", m.KnowledgePointID, err)
	}
	return nil
}

// CountDueReviews returns the number of Retention-mode skills whose FSRS
// review has come due
func (r *MasteryRepository) CountDueReviews(now time.Time) (int, error) {
	var count int
	err := DB.Get(&count,
		"SELECT COUNT(*) FROM mastery_records WHERE mode = $1 AND due IS NOT NULL AND due <= $2",
		string(models.ModeRetention), now)
	if err != nil {
		return 0, fmt.Errorf("failed to count due reviews: %v", err)
	}
	return count, nil
}

// SaveAll persists every record in the mastery map
func (r *MasteryRepository) SaveAll(masteries map[string]*models.MasteryRecord) error {
	for _, m := range masteries {
		if err := r.Save(m); err != nil {
			return err
		}
	}
	return nil
}
