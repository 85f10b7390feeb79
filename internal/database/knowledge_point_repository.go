package database

import (
	"encoding/json"
	"fmt"

	"github.com/example/tutorbot/pkg/models"
)

// KnowledgePointRepository handles database operations for knowledge points
type KnowledgePointRepository struct{}

// NewKnowledgePointRepository creates a new repository instance
func NewKnowledgePointRepository() *KnowledgePointRepository {
	return &KnowledgePointRepository{}
}

// GetAll returns all knowledge points
func (r *KnowledgePointRepository) GetAll() ([]models.KnowledgePoint, error) {
	var rows []knowledgePointRow
	err := DB.Select(&rows, "SELECT * FROM knowledge_points ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to get knowledge points: %v", err)
	}

	kps := make([]models.KnowledgePoint, 0, len(rows))
	for i := range rows {
		kp, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		kps = append(kps, *kp)
	}
	return kps, nil
}

// GetByID returns a single knowledge point by id
func (r *KnowledgePointRepository) GetByID(id string) (*models.KnowledgePoint, error) {
	var row knowledgePointRow
	err := DB.Get(&row, "SELECT * FROM knowledge_points WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get knowledge point %s: %v", id, err)
	}
	return row.toModel()
}

// GetByKind returns knowledge points of the given kind
func (r *KnowledgePointRepository) GetByKind(kind models.KnowledgePointKind) ([]models.KnowledgePoint, error) {
	var rows []knowledgePointRow
	err := DB.Select(&rows, "SELECT * FROM knowledge_points WHERE kind = $1 ORDER BY id", string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to get knowledge points by kind: %v", err)
	}

	kps := make([]models.KnowledgePoint, 0, len(rows))
	for i := range rows {
		kp, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		kps = append(kps, *kp)
	}
	return kps, nil
}

// Upsert creates or updates a knowledge point
func (r *KnowledgePointRepository) Upsert(kp *models.KnowledgePoint) error {
	tags, err := json.Marshal(kp.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %v", err)
	}
	prereqs, err := json.Marshal(kp.Prerequisites)
	if err != nil {
		return fmt.Errorf("failed to encode prerequisites: %v", err)
	}

	_, err = DB.Exec(`
		INSERT INTO knowledge_points (id, kind, content, pronunciation, translation, tags, prerequisites)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			kind = EXCLUDED.kind,
			content = EXCLUDED.content,
			pronunciation = EXCLUDED.pronunciation,
			translation = EXCLUDED.translation,
			tags = EXCLUDED.tags,
			prerequisites = EXCLUDED.prerequisites,
			updated_at = CURRENT_TIMESTAMP
	`, kp.ID, string(kp.Kind), kp.Content, kp.Pronunciation, kp.Translation, string(tags), string(prereqs))
	if err != nil {
		return fmt.Errorf("failed to upsert knowledge point %s: %v", kp.ID, err)
	}
	return nil
}
