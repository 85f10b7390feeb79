package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/tutorbot/internal/fsrs"
	"github.com/example/tutorbot/pkg/models"
)

func TestApplyMultiSkillCorrect(t *testing.T) {
	kps := []models.KnowledgePoint{vocab("a"), vocab("b")}
	masteries := map[string]*models.MasteryRecord{
		"a": learningAt("a", 0.3),
		"b": learningAt("b", 0.6),
	}
	s := newTestScheduler(t, kps, masteries, nil)

	results := s.Apply([]string{"a", "b"}, fsrs.Good)
	require.Len(t, results, 2)

	assert.Greater(t, s.Mastery("a").PKnown, 0.3)
	assert.Greater(t, s.Mastery("b").PKnown, 0.6)
	for _, r := range results {
		assert.False(t, r.Transitioned)
		assert.Equal(t, models.ModeLearning, r.Mode)
	}
}

func TestApplyMultiSkillIncorrectDecreasesBoth(t *testing.T) {
	kps := []models.KnowledgePoint{vocab("a"), vocab("b")}
	masteries := map[string]*models.MasteryRecord{
		"a": learningAt("a", 0.5),
		"b": learningAt("b", 0.8),
	}
	s := newTestScheduler(t, kps, masteries, nil)

	s.Apply([]string{"a", "b"}, fsrs.Again)

	assert.LessOrEqual(t, s.Mastery("a").PKnown, 0.5)
	assert.LessOrEqual(t, s.Mastery("b").PKnown, 0.8)
}

func TestApplyTriggersTransition(t *testing.T) {
	// Spec scenario: p(known)=0.94 plus one correct answer crosses 0.95.
	masteries := map[string]*models.MasteryRecord{"a": learningAt("a", 0.94)}
	s := newTestScheduler(t, []models.KnowledgePoint{vocab("a")}, masteries, nil)

	results := s.Apply([]string{"a"}, fsrs.Good)
	require.Len(t, results, 1)

	assert.True(t, results[0].Transitioned)
	assert.Equal(t, models.ModeRetention, results[0].Mode)
	m := s.Mastery("a")
	assert.Equal(t, models.ModeRetention, m.Mode)
	require.NotNil(t, m.FSRS)
	assert.GreaterOrEqual(t, m.PKnown, 0.95)
}

func TestApplySkipsUnknownIDs(t *testing.T) {
	masteries := map[string]*models.MasteryRecord{"a": learningAt("a", 0.3)}
	s := newTestScheduler(t, []models.KnowledgePoint{vocab("a")}, masteries, nil)

	results := s.Apply([]string{"ghost", "a"}, fsrs.Good)
	require.Len(t, results, 1, "unknown id is skipped, the rest still update")
	assert.Equal(t, "a", results[0].KnowledgePointID)
	assert.Nil(t, s.Mastery("ghost"))
}

func TestApplyCreatesMissingRecord(t *testing.T) {
	s := newTestScheduler(t, []models.KnowledgePoint{vocab("a")}, nil, nil)

	results := s.Apply([]string{"a"}, fsrs.Good)
	require.Len(t, results, 1)

	m := s.Mastery("a")
	require.NotNil(t, m, "first reference creates a persisted record")
	assert.Equal(t, models.ModeLearning, m.Mode)
	assert.Equal(t, 1, m.PracticeCount)
	assert.InDelta(t, models.DefaultPTransit, m.PKnown, 1e-9)
}

func TestApplyRetentionModeUsesFSRS(t *testing.T) {
	s := newTestScheduler(t, []models.KnowledgePoint{vocab("a")}, map[string]*models.MasteryRecord{}, nil)
	s.masteries["a"] = retentionRecord(t, s, "a", 30)
	before := s.Mastery("a").FSRS.Clone()

	results := s.Apply([]string{"a"}, fsrs.Easy)
	require.Len(t, results, 1)

	after := s.Mastery("a").FSRS
	assert.Greater(t, after.Stability, before.Stability, "Easy review grows stability")
	assert.True(t, after.Due.After(before.Due))
	assert.Greater(t, results[0].Retrievability, 0.0)
	assert.Equal(t, models.ModeRetention, results[0].Mode)
}

func TestApplyRestartsMissingFSRSState(t *testing.T) {
	s := newTestScheduler(t, []models.KnowledgePoint{vocab("a")}, map[string]*models.MasteryRecord{}, nil)
	m := retentionRecord(t, s, "a", 10)
	m.FSRS = nil // simulates a partially written database row
	s.masteries["a"] = m

	results := s.Apply([]string{"a"}, fsrs.Good)
	require.Len(t, results, 1)

	after := s.Mastery("a")
	require.NotNil(t, after.FSRS, "the retention card is restarted, not skipped")
	assert.Greater(t, after.FSRS.Stability, 0.0)
	assert.Greater(t, results[0].Retrievability, 0.0)
	assert.Equal(t, models.ModeRetention, after.Mode)
}

func TestApplyUpdatesPracticeStats(t *testing.T) {
	masteries := map[string]*models.MasteryRecord{"a": learningAt("a", 0.3)}
	s := newTestScheduler(t, []models.KnowledgePoint{vocab("a")}, masteries, nil)

	s.Apply([]string{"a"}, fsrs.Good)
	s.Apply([]string{"a"}, fsrs.Good)
	s.Apply([]string{"a"}, fsrs.Again)

	m := s.Mastery("a")
	assert.Equal(t, 4, m.PracticeCount) // one from the fixture
	assert.Equal(t, 2, m.CorrectCount)
	assert.Equal(t, 0, m.ConsecutiveCorrect)
	require.NotNil(t, m.LastPracticed)
	assert.True(t, m.LastPracticed.Equal(testNow))
}

func TestApplyIncrementsSessionCounter(t *testing.T) {
	masteries := map[string]*models.MasteryRecord{"a": learningAt("a", 0.3)}
	s := newTestScheduler(t, []models.KnowledgePoint{vocab("a")}, masteries, nil)

	s.Apply([]string{"a"}, fsrs.Good)
	s.Apply([]string{"a"}, fsrs.Again)
	assert.Equal(t, 2, s.Session().ExercisesSinceMenu)
}

func TestApplyDeterministicOrder(t *testing.T) {
	kps := []models.KnowledgePoint{vocab("a"), vocab("b")}
	s := newTestScheduler(t, kps, nil, nil)

	results := s.Apply([]string{"b", "a"}, fsrs.Good)
	require.Len(t, results, 2)
	assert.Equal(t, "b", results[0].KnowledgePointID)
	assert.Equal(t, "a", results[1].KnowledgePointID)
}
