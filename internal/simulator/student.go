package simulator

import (
	"math"
	"math/rand"
	"sort"

	"github.com/example/tutorbot/pkg/models"
)

// Config describes a simulated student's learning behavior.
type Config struct {
	// LearningRate is how fast true knowledge increases per correct
	// exercise (0.1 slow, 0.3 average, 0.5 fast).
	LearningRate float64 `json:"learning_rate"`
	// RetentionRate is the per-day probability of retaining learned
	// material; it drives the forgetting curve.
	RetentionRate float64 `json:"retention_rate"`
	// SlipRate is the probability of an error despite knowing the item.
	SlipRate float64 `json:"slip_rate"`
	// GuessRate is the probability of a correct guess without knowing.
	GuessRate float64 `json:"guess_rate"`
}

// DefaultConfig returns an average student.
func DefaultConfig() Config {
	return Config{
		LearningRate:  0.3,
		RetentionRate: 0.85,
		SlipRate:      0.1,
		GuessRate:     0.25,
	}
}

// student holds the ground-truth knowledge the scheduler's estimates are
// trying to track.
type student struct {
	config        Config
	trueKnowledge map[string]float64
	rng           *rand.Rand
}

func newStudent(config Config, rng *rand.Rand) *student {
	return &student{
		config:        config,
		trueKnowledge: make(map[string]float64),
		rng:           rng,
	}
}

// respond generates a correct/incorrect answer from true knowledge of the
// involved knowledge points, the exercise difficulty and the slip/guess
// model.
func (st *student) respond(ex *models.Exercise) bool {
	if len(ex.KnowledgePointIDs) == 0 {
		return st.rng.Float64() < 0.5
	}

	sum := 0.0
	for _, id := range ex.KnowledgePointIDs {
		sum += st.trueKnowledge[id]
	}
	avg := sum / float64(len(ex.KnowledgePointIDs))

	// Harder exercises reduce effective knowledge by up to 30%.
	effective := avg * (1.0 - ex.Difficulty*0.3)

	pCorrect := effective*(1-st.config.SlipRate) + (1-effective)*st.config.GuessRate
	return st.rng.Float64() < pCorrect
}

// learn updates true knowledge after one exercise.
func (st *student) learn(kpID string, correct bool) {
	current := st.trueKnowledge[kpID]
	if correct {
		current += st.config.LearningRate * (1.0 - current)
	} else {
		current *= 0.95
	}
	st.trueKnowledge[kpID] = math.Min(1.0, math.Max(0.0, current))
}

// forget applies the exponential forgetting curve to every known item.
func (st *student) forget(days float64) {
	decay := math.Pow(st.config.RetentionRate, days)
	for id, k := range st.trueKnowledge {
		st.trueKnowledge[id] = k * decay
	}
}

// averageKnowledge returns the mean true knowledge across all items the
// student has seen, or 0 before any practice. The sum runs in id order:
// float addition is order-sensitive and map iteration order is not stable,
// so a fixed order keeps equal seeds producing byte-identical reports.
func (st *student) averageKnowledge() float64 {
	if len(st.trueKnowledge) == 0 {
		return 0
	}
	ids := make([]string, 0, len(st.trueKnowledge))
	for id := range st.trueKnowledge {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	sum := 0.0
	for _, id := range ids {
		sum += st.trueKnowledge[id]
	}
	return sum / float64(len(ids))
}
