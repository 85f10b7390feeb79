package simulator

import (
	"fmt"
	"math"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/tutorbot/pkg/models"
)

func simulatorKPs() []models.KnowledgePoint {
	return []models.KnowledgePoint{
		{ID: "v1", Kind: models.KindVocabulary, Content: "hola", Translation: "hello", Tags: []string{"cluster:greetings"}},
		{ID: "v2", Kind: models.KindVocabulary, Content: "adios", Translation: "goodbye", Tags: []string{"cluster:greetings"}},
		{ID: "v3", Kind: models.KindVocabulary, Content: "gracias", Translation: "thank you", Tags: []string{"cluster:greetings"}},
		{ID: "v4", Kind: models.KindVocabulary, Content: "uno", Translation: "one", Tags: []string{"cluster:numbers"}},
		{ID: "v5", Kind: models.KindVocabulary, Content: "dos", Translation: "two", Tags: []string{"cluster:numbers"}},
		{ID: "v6", Kind: models.KindVocabulary, Content: "tres", Translation: "three", Tags: []string{"cluster:numbers"}},
	}
}

func TestRunProducesDailySummaries(t *testing.T) {
	results, err := Run(simulatorKPs(), DefaultConfig(), 5, 10, 42, false)
	require.NoError(t, err)

	assert.Equal(t, 5, results.Days)
	assert.Len(t, results.Daily, 5)
	assert.Equal(t, int64(42), results.Seed)
	assert.Greater(t, results.TotalExercises, 0)
	assert.Equal(t, 6, results.FinalLearning+results.FinalRetention)

	for i, day := range results.Daily {
		assert.Equal(t, i+1, day.Day)
		assert.LessOrEqual(t, day.CorrectCount, day.TotalExercises)
	}
}

func TestRunIsReproducible(t *testing.T) {
	a, err := Run(simulatorKPs(), DefaultConfig(), 10, 8, 7, false)
	require.NoError(t, err)
	b, err := Run(simulatorKPs(), DefaultConfig(), 10, 8, 7, false)
	require.NoError(t, err)

	assert.Equal(t, a.TotalExercises, b.TotalExercises)
	assert.Equal(t, a.TotalCorrect, b.TotalCorrect)
	assert.Equal(t, a.Daily, b.Daily)
	assert.Equal(t, a.FinalLearning, b.FinalLearning)
	assert.Equal(t, a.FinalRetention, b.FinalRetention)
}

func TestRunDifferentSeedsDiverge(t *testing.T) {
	a, err := Run(simulatorKPs(), DefaultConfig(), 10, 8, 1, false)
	require.NoError(t, err)
	b, err := Run(simulatorKPs(), DefaultConfig(), 10, 8, 2, false)
	require.NoError(t, err)

	// Identical full traces across seeds would mean the seed is ignored.
	assert.NotEqual(t, a.Daily, b.Daily)
}

func TestFastStudentOutlearnsSlowStudent(t *testing.T) {
	fast := DefaultConfig()
	fast.LearningRate = 0.6
	fast.SlipRate = 0.02
	slow := DefaultConfig()
	slow.LearningRate = 0.05
	slow.GuessRate = 0.1

	fastRes, err := Run(simulatorKPs(), fast, 20, 12, 3, false)
	require.NoError(t, err)
	slowRes, err := Run(simulatorKPs(), slow, 20, 12, 3, false)
	require.NoError(t, err)

	fastFinal := fastRes.Daily[len(fastRes.Daily)-1].AvgTrueKnowledge
	slowFinal := slowRes.Daily[len(slowRes.Daily)-1].AvgTrueKnowledge
	assert.Greater(t, fastFinal, slowFinal)
	assert.Greater(t, fastRes.OverallAccuracy, slowRes.OverallAccuracy)
}

func TestStudentLearnAndForget(t *testing.T) {
	st := newStudent(DefaultConfig(), rand.New(rand.NewSource(1)))

	st.learn("v1", true)
	assert.InDelta(t, 0.3, st.trueKnowledge["v1"], 1e-9)

	st.learn("v1", true)
	assert.InDelta(t, 0.51, st.trueKnowledge["v1"], 1e-9)

	st.learn("v1", false)
	assert.InDelta(t, 0.4845, st.trueKnowledge["v1"], 1e-9)

	before := st.trueKnowledge["v1"]
	st.forget(2)
	assert.InDelta(t, before*0.85*0.85, st.trueKnowledge["v1"], 1e-9)
}

func TestAverageKnowledgeStableAcrossCalls(t *testing.T) {
	st := newStudent(DefaultConfig(), rand.New(rand.NewSource(5)))

	// Mixed magnitudes make any change in summation order visible in the
	// last bits of the result.
	for i := 0; i < 200; i++ {
		st.trueKnowledge[fmt.Sprintf("kp-%03d", i)] = st.rng.Float64() * math.Pow(10, float64(i%8-4))
	}

	want := st.averageKnowledge()
	for i := 0; i < 50; i++ {
		assert.Equal(t, want, st.averageKnowledge())
	}
}

func TestWriteJSON(t *testing.T) {
	results, err := Run(simulatorKPs(), DefaultConfig(), 2, 5, 9, false)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, results.WriteJSON(path))
	assert.FileExists(t, path)
}
