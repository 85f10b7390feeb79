package database

import (
	"database/sql"
	"fmt"

	"github.com/example/tutorbot/pkg/models"
)

// SessionRepository handles database operations for the session state.
// A single row (id = 1) holds the last persisted session.
type SessionRepository struct{}

// NewSessionRepository creates a new repository instance
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{}
}

type sessionRow struct {
	ID                     int          `db:"id"`
	PracticeMode           string       `db:"practice_mode"`
	ActiveClusterTag       string       `db:"active_cluster_tag"`
	LearningRetentionRatio float64      `db:"learning_retention_ratio"`
	ExercisesSinceMenu     int          `db:"exercises_since_menu"`
	UpdatedAt              sql.NullTime `db:"updated_at"`
}

// Load returns the persisted session state, or a fresh default session if
// none has been saved yet
func (r *SessionRepository) Load() (*models.SessionState, error) {
	var rows []sessionRow
	err := DB.Select(&rows, "SELECT * FROM session_state WHERE id = 1")
	if err != nil {
		return nil, fmt.Errorf("failed to load session state: %v", err)
	}
	if len(rows) == 0 {
		return models.NewSessionState(), nil
	}
	row := rows[0]
	return &models.SessionState{
		PracticeMode:           models.PracticeMode(row.PracticeMode),
		ActiveClusterTag:       row.ActiveClusterTag,
		LearningRetentionRatio: row.LearningRetentionRatio,
		ExercisesSinceMenu:     row.ExercisesSinceMenu,
	}, nil
}

// Save persists the session state
func (r *SessionRepository) Save(s *models.SessionState) error {
	_, err := DB.Exec(`
		INSERT INTO session_state (id, practice_mode, active_cluster_tag, learning_retention_ratio, exercises_since_menu)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			practice_mode = EXCLUDED.practice_mode,
			active_cluster_tag = EXCLUDED.active_cluster_tag,
			learning_retention_ratio = EXCLUDED.learning_retention_ratio,
			exercises_since_menu = EXCLUDED.exercises_since_menu,
			updated_at = CURRENT_TIMESTAMP
	`, string(s.PracticeMode), s.ActiveClusterTag, s.LearningRetentionRatio, s.ExercisesSinceMenu)
	if err != nil {
		return fmt.Errorf("failed to save session state: %v", err)
	}
	return nil
}
