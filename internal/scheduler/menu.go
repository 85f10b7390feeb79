package scheduler

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/example/tutorbot/pkg/models"
)

var titleCaser = cases.Title(language.English)

// ClusterTags returns the sorted set of all cluster tags present in the
// knowledge-point set.
func (s *Scheduler) ClusterTags() []string {
	seen := make(map[string]struct{})
	for _, id := range s.order {
		for _, tag := range s.kps[id].ClusterTags() {
			seen[tag] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// ClusterMembers returns the knowledge points carrying the given cluster
// tag, in id order.
func (s *Scheduler) ClusterMembers(tag string) []*models.KnowledgePoint {
	var members []*models.KnowledgePoint
	for _, id := range s.order {
		if s.kps[id].HasTag(tag) {
			members = append(members, s.kps[id])
		}
	}
	return members
}

// EligibleClusters returns the cluster tags the student may currently
// select, in sorted order. A cluster is eligible only when it still has at
// least one unmastered member and every prerequisite of every member is
// mastered; either condition failing disqualifies it.
func (s *Scheduler) EligibleClusters() []string {
	var eligible []string
	for _, tag := range s.ClusterTags() {
		if s.clusterEligible(tag) {
			eligible = append(eligible, tag)
		}
	}
	return eligible
}

func (s *Scheduler) clusterEligible(tag string) bool {
	members := s.ClusterMembers(tag)

	hasUnmastered := false
	for _, kp := range members {
		if !s.isMastered(kp.ID) {
			hasUnmastered = true
			break
		}
	}
	if !hasUnmastered {
		return false
	}

	for _, kp := range members {
		if !s.prerequisitesMastered(kp) {
			return false
		}
	}
	return true
}

// clusterFullyMastered reports whether every member of the cluster is
// mastered. The check runs over the full membership of the tag.
func (s *Scheduler) clusterFullyMastered(tag string) bool {
	members := s.ClusterMembers(tag)
	if len(members) == 0 {
		return false
	}
	for _, kp := range members {
		if !s.isMastered(kp.ID) {
			return false
		}
	}
	return true
}

// ClusterProgress returns the mastered fraction of the cluster's members,
// or 0 for a cluster with no members.
func (s *Scheduler) ClusterProgress(tag string) float64 {
	members := s.ClusterMembers(tag)
	if len(members) == 0 {
		return 0.0
	}
	mastered := 0
	for _, kp := range members {
		if s.isMastered(kp.ID) {
			mastered++
		}
	}
	return float64(mastered) / float64(len(members))
}

// ClusterDisplayName converts a cluster tag to a human-readable name,
// e.g. "cluster:basic-greetings" -> "Basic Greetings".
func ClusterDisplayName(tag string) string {
	name := strings.TrimPrefix(tag, models.ClusterTagPrefix)
	return titleCaser.String(strings.ReplaceAll(name, "-", " "))
}
