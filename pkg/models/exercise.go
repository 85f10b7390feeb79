package models

// ExerciseType identifies the kind of generated exercise.
type ExerciseType string

const (
	ExerciseSegmentedTranslation ExerciseType = "segmented_translation"
	ExerciseMultipleChoice       ExerciseType = "multiple_choice"
)

// Exercise is a presentable question referencing one or more knowledge
// points. Produced by the exercise generator; the scheduler only ever sees
// the knowledge-point ids.
type Exercise struct {
	ID                string       `json:"id"`
	Type              ExerciseType `json:"type"`
	KnowledgePointIDs []string     `json:"knowledge_point_ids"`
	Difficulty        float64      `json:"difficulty"` // 0.0 easiest .. 1.0 hardest

	// Prompt shown to the student. For multiple choice, Options holds the
	// answer candidates and CorrectIndex the right one. For segmented
	// translation, Chunks holds the target-language segments and
	// CorrectOrder the indices that reassemble the sentence.
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options,omitempty"`
	CorrectIndex int      `json:"correct_index,omitempty"`
	Chunks       []string `json:"chunks,omitempty"`
	CorrectOrder []int    `json:"correct_order,omitempty"`
}
