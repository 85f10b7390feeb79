package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/tutorbot/pkg/models"
)

func menuFixture(t *testing.T) *Scheduler {
	kps := []models.KnowledgePoint{
		vocab("p1", "cluster:pronouns"),
		vocab("p2", "cluster:pronouns"),
		vocab("g1", "cluster:greetings"),
		grammar("n1", []string{"p1"}, "cluster:numbers"),
		vocab("untagged"),
	}
	return newTestScheduler(t, kps, map[string]*models.MasteryRecord{}, nil)
}

func TestClusterTagsSorted(t *testing.T) {
	s := menuFixture(t)
	assert.Equal(t, []string{"cluster:greetings", "cluster:numbers", "cluster:pronouns"}, s.ClusterTags())
}

func TestClusterMembers(t *testing.T) {
	s := menuFixture(t)
	members := s.ClusterMembers("cluster:pronouns")
	ids := make([]string, 0, len(members))
	for _, kp := range members {
		ids = append(ids, kp.ID)
	}
	assert.Equal(t, []string{"p1", "p2"}, ids)
	assert.Empty(t, s.ClusterMembers("cluster:none"))
}

func TestEligibleClustersExcludesUnmetPrerequisites(t *testing.T) {
	s := menuFixture(t)

	// n1's prerequisite p1 is unmastered, so numbers is out even though n1
	// itself is below the threshold.
	eligible := s.EligibleClusters()
	assert.Equal(t, []string{"cluster:greetings", "cluster:pronouns"}, eligible)

	// Mastering p1 unlocks numbers.
	s.masteries["p1"] = retentionRecord(t, s, "p1", 1)
	assert.Contains(t, s.EligibleClusters(), "cluster:numbers")
}

func TestEligibleClustersExcludesFullyMastered(t *testing.T) {
	s := menuFixture(t)
	s.masteries["g1"] = retentionRecord(t, s, "g1", 1)

	assert.NotContains(t, s.EligibleClusters(), "cluster:greetings")
}

func TestEligibleClustersMasteryByThresholdOnly(t *testing.T) {
	s := menuFixture(t)
	// Above threshold but still in Learning mode counts as mastered for
	// menu purposes.
	s.masteries["g1"] = learningAt("g1", 0.96)

	assert.NotContains(t, s.EligibleClusters(), "cluster:greetings")
}

func TestNoTopicsAvailable(t *testing.T) {
	s := menuFixture(t)
	for _, id := range []string{"p1", "p2", "g1", "n1"} {
		s.masteries[id] = retentionRecord(t, s, id, 1)
	}
	assert.Empty(t, s.EligibleClusters())
}

func TestClusterProgress(t *testing.T) {
	s := menuFixture(t)
	assert.Equal(t, 0.0, s.ClusterProgress("cluster:pronouns"))

	s.masteries["p1"] = retentionRecord(t, s, "p1", 1)
	assert.InDelta(t, 0.5, s.ClusterProgress("cluster:pronouns"), 1e-9)

	s.masteries["p2"] = retentionRecord(t, s, "p2", 1)
	assert.InDelta(t, 1.0, s.ClusterProgress("cluster:pronouns"), 1e-9)

	assert.Equal(t, 0.0, s.ClusterProgress("cluster:empty"))
}

func TestClusterDisplayName(t *testing.T) {
	assert.Equal(t, "Pronouns", ClusterDisplayName("cluster:pronouns"))
	assert.Equal(t, "Basic Greetings", ClusterDisplayName("cluster:basic-greetings"))
	assert.Equal(t, "Time Words And Dates", ClusterDisplayName("cluster:time-words-and-dates"))
}
