package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/tutorbot/pkg/models"
)

func TestLearningScoreUrgency(t *testing.T) {
	kps := []models.KnowledgePoint{vocab("a"), vocab("b")}
	masteries := map[string]*models.MasteryRecord{
		"a": learningAt("a", 0.92),
		"b": learningAt("b", 0.40),
	}
	s := newTestScheduler(t, kps, masteries, nil)

	// b is further from mastery, so it carries more urgency.
	// a: 0.7*0.08 + recency 0.1 = 0.156; b: 0.7*0.60 + 0.1 = 0.52
	assert.InDelta(t, 0.156, s.learningScore("a"), 1e-9)
	assert.InDelta(t, 0.52, s.learningScore("b"), 1e-9)

	got := s.LearningCandidates(2)
	assert.Equal(t, []string{"b", "a"}, got)
}

func TestLearningScoreFrontierBonus(t *testing.T) {
	s := newTestScheduler(t, []models.KnowledgePoint{vocab("a")}, nil, nil)

	// Never practiced at all: no record, frontier bonus only.
	assert.InDelta(t, 0.3, s.learningScore("a"), 1e-9)

	// Untouched record at p(known)=0 with zero practice: no urgency term.
	s.masteries["a"] = models.NewMasteryRecord("a")
	assert.InDelta(t, 0.3, s.learningScore("a"), 1e-9)
}

func TestLearningScoreRecencyCapped(t *testing.T) {
	m := learningAt("a", 0.5)
	practiced := testNow.AddDate(0, 0, -10)
	m.LastPracticed = &practiced
	s := newTestScheduler(t, []models.KnowledgePoint{vocab("a")},
		map[string]*models.MasteryRecord{"a": m}, nil)

	// 0.7*0.5 urgency + recency capped at 0.2.
	assert.InDelta(t, 0.55, s.learningScore("a"), 1e-9)
}

func TestLearningScorePracticedToday(t *testing.T) {
	m := learningAt("a", 0.5)
	practiced := testNow
	m.LastPracticed = &practiced
	s := newTestScheduler(t, []models.KnowledgePoint{vocab("a")},
		map[string]*models.MasteryRecord{"a": m}, nil)

	assert.InDelta(t, 0.35, s.learningScore("a"), 1e-9)
}

func TestLearningCandidatesTieBreakByID(t *testing.T) {
	kps := []models.KnowledgePoint{vocab("c"), vocab("a"), vocab("b")}
	s := newTestScheduler(t, kps, nil, nil)

	// All three are unpracticed frontier items with identical scores.
	assert.Equal(t, []string{"a", "b", "c"}, s.LearningCandidates(3))
}

func TestLearningCandidatesBlockedFiltersByTag(t *testing.T) {
	kps := []models.KnowledgePoint{
		vocab("p1", "cluster:pronouns"),
		vocab("p2", "cluster:pronouns"),
		vocab("g1", "cluster:greetings"),
	}
	s := newTestScheduler(t, kps, nil, nil)
	require.NoError(t, s.ActivateBlockedPractice("cluster:pronouns"))

	for _, id := range s.LearningCandidates(10) {
		assert.True(t, s.kps[id].HasTag("cluster:pronouns"),
			"blocked candidate %s must carry the active tag", id)
	}
	assert.Len(t, s.LearningCandidates(10), 2)
}

func TestLearningCandidatesBlockedSkipsPrerequisiteFilter(t *testing.T) {
	// Blocked mode does not filter by prerequisites; interleaved does.
	kps := []models.KnowledgePoint{
		grammar("n1", []string{"p1"}, "cluster:numbers"),
		vocab("p1", "cluster:pronouns"),
	}
	masteries := map[string]*models.MasteryRecord{"p1": learningAt("p1", 0.3)}
	session := models.NewSessionState()
	session.PracticeMode = models.PracticeBlocked
	session.ActiveClusterTag = "cluster:numbers"
	s := newTestScheduler(t, kps, masteries, session)

	assert.Equal(t, []string{"n1"}, s.LearningCandidates(5))
}

func TestLearningCandidatesInterleavedPrerequisiteFilter(t *testing.T) {
	kps := []models.KnowledgePoint{
		grammar("n1", []string{"p1"}, "cluster:numbers"),
		vocab("p1", "cluster:pronouns"),
		vocab("free"),
	}
	masteries := map[string]*models.MasteryRecord{"p1": learningAt("p1", 0.3)}
	s := newTestScheduler(t, kps, masteries, nil)

	got := s.LearningCandidates(5)
	assert.NotContains(t, got, "n1", "unmastered prerequisite excludes the candidate")
	assert.Contains(t, got, "p1")
	assert.Contains(t, got, "free")
}

func TestRetentionCandidatesOrderByUrgency(t *testing.T) {
	kps := []models.KnowledgePoint{vocab("fresh"), vocab("stale")}
	s := newTestScheduler(t, kps, map[string]*models.MasteryRecord{}, nil)
	s.masteries["fresh"] = retentionRecord(t, s, "fresh", 1)
	s.masteries["stale"] = retentionRecord(t, s, "stale", 60)

	// The item reviewed 60 days ago has lower retrievability and must
	// surface first.
	assert.Equal(t, []string{"stale", "fresh"}, s.RetentionCandidates(2))
}

func TestRetentionCandidatesNeutralPriorityWithoutState(t *testing.T) {
	kps := []models.KnowledgePoint{vocab("a"), vocab("b")}
	s := newTestScheduler(t, kps, map[string]*models.MasteryRecord{}, nil)

	// Retention-mode record stripped of FSRS state gets neutral priority.
	s.masteries["a"] = retentionRecord(t, s, "a", 2)
	broken := retentionRecord(t, s, "b", 2)
	broken.FSRS = nil
	s.masteries["b"] = broken

	got := s.RetentionCandidates(2)
	assert.Len(t, got, 2)

	// A reviewed two days ago retains > 0.5 recall, so its priority is
	// below the neutral 0.5 and b ranks first.
	assert.Equal(t, []string{"b", "a"}, got)
}

func TestRetentionCandidatesCount(t *testing.T) {
	kps := []models.KnowledgePoint{vocab("a"), vocab("b"), vocab("c")}
	s := newTestScheduler(t, kps, map[string]*models.MasteryRecord{}, nil)
	for i, id := range []string{"a", "b", "c"} {
		s.masteries[id] = retentionRecord(t, s, id, (i+1)*10)
	}

	assert.Len(t, s.RetentionCandidates(2), 2)
	assert.Len(t, s.RetentionCandidates(10), 3)
	assert.Empty(t, s.RetentionCandidates(0))
}
