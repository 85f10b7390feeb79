// Package exercise turns a selected knowledge point into a presentable
// exercise. Generators only read the knowledge-point set; mastery updates
// stay with the scheduler.
package exercise

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/example/tutorbot/pkg/models"
)

// Option counts and difficulty defaults for generated exercises.
const (
	multipleChoiceOptions = 4
	translationExtraKPs   = 2
)

// Generator produces exercises over a fixed knowledge-point set. The rng is
// caller-supplied so generation is reproducible under a fixed seed.
type Generator struct {
	kps  []models.KnowledgePoint
	byID map[string]*models.KnowledgePoint
	rng  *rand.Rand
}

// NewGenerator creates a generator over the given knowledge points.
func NewGenerator(kps []models.KnowledgePoint, rng *rand.Rand) *Generator {
	byID := make(map[string]*models.KnowledgePoint, len(kps))
	for i := range kps {
		byID[kps[i].ID] = &kps[i]
	}
	return &Generator{kps: kps, byID: byID, rng: rng}
}

// MultipleChoice builds a translation multiple-choice exercise for the
// target knowledge point, with distractor options drawn from other items of
// the same kind.
func (g *Generator) MultipleChoice(targetID string) (*models.Exercise, error) {
	target, ok := g.byID[targetID]
	if !ok {
		return nil, fmt.Errorf("exercise: unknown knowledge point %q", targetID)
	}

	options := []string{target.Translation}
	for _, i := range g.rng.Perm(len(g.kps)) {
		if len(options) == multipleChoiceOptions {
			break
		}
		kp := &g.kps[i]
		if kp.ID == target.ID || kp.Kind != target.Kind || kp.Translation == target.Translation {
			continue
		}
		options = append(options, kp.Translation)
	}

	correct := g.rng.Intn(len(options))
	options[0], options[correct] = options[correct], options[0]

	return &models.Exercise{
		ID:                uuid.NewString(),
		Type:              models.ExerciseMultipleChoice,
		KnowledgePointIDs: []string{target.ID},
		Difficulty:        0.3,
		Prompt:            target.Content,
		Options:           options,
		CorrectIndex:      correct,
	}, nil
}

// SegmentedTranslation builds a chunk-ordering exercise around the target
// knowledge point plus a few sampled companions, so one answer propagates
// to several skills.
func (g *Generator) SegmentedTranslation(targetID string) (*models.Exercise, error) {
	target, ok := g.byID[targetID]
	if !ok {
		return nil, fmt.Errorf("exercise: unknown knowledge point %q", targetID)
	}

	ids := []string{target.ID}
	chunks := []string{target.Content}
	prompt := target.Translation
	for _, i := range g.rng.Perm(len(g.kps)) {
		if len(ids) == translationExtraKPs+1 {
			break
		}
		kp := &g.kps[i]
		if kp.ID == target.ID || kp.Kind != models.KindVocabulary {
			continue
		}
		ids = append(ids, kp.ID)
		chunks = append(chunks, kp.Content)
		prompt += " " + kp.Translation
	}

	// Present the chunks shuffled; CorrectOrder reassembles the sentence.
	perm := g.rng.Perm(len(chunks))
	shuffled := make([]string, len(chunks))
	correctOrder := make([]int, len(chunks))
	for shuffledPos, originalPos := range perm {
		shuffled[shuffledPos] = chunks[originalPos]
		correctOrder[originalPos] = shuffledPos
	}

	return &models.Exercise{
		ID:                uuid.NewString(),
		Type:              models.ExerciseSegmentedTranslation,
		KnowledgePointIDs: ids,
		Difficulty:        0.5,
		Prompt:            prompt,
		Chunks:            shuffled,
		CorrectOrder:      correctOrder,
	}, nil
}

// CheckMultipleChoice reports whether the chosen option index is correct.
func CheckMultipleChoice(ex *models.Exercise, choice int) bool {
	return choice == ex.CorrectIndex
}

// CheckOrder reports whether the given chunk order reassembles the
// sentence.
func CheckOrder(ex *models.Exercise, order []int) bool {
	if len(order) != len(ex.CorrectOrder) {
		return false
	}
	for i, v := range order {
		if v != ex.CorrectOrder[i] {
			return false
		}
	}
	return true
}
