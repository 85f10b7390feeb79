package models

import "strings"

// ClusterTagPrefix marks tags that denote cluster membership,
// e.g. "cluster:pronouns".
const ClusterTagPrefix = "cluster:"

// KnowledgePointKind distinguishes vocabulary items from grammar patterns.
type KnowledgePointKind string

const (
	KindVocabulary KnowledgePointKind = "vocabulary"
	KindGrammar    KnowledgePointKind = "grammar"
)

// KnowledgePoint is an atomic skill the learner can master. It is immutable
// reference data: created by content loading, never mutated by the scheduler.
type KnowledgePoint struct {
	ID            string             `json:"id" db:"id"`
	Kind          KnowledgePointKind `json:"kind" db:"kind"`
	Content       string             `json:"content" db:"content"`
	Pronunciation string             `json:"pronunciation" db:"pronunciation"`
	Translation   string             `json:"translation" db:"translation"`
	// Free-form tags; tags prefixed "cluster:" denote cluster membership.
	Tags []string `json:"tags"`
	// IDs of knowledge points that must be mastered first.
	Prerequisites []string `json:"prerequisites"`
}

// HasTag reports whether the knowledge point carries the given tag.
func (kp *KnowledgePoint) HasTag(tag string) bool {
	for _, t := range kp.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ClusterTags returns the subset of tags that denote cluster membership.
func (kp *KnowledgePoint) ClusterTags() []string {
	var tags []string
	for _, t := range kp.Tags {
		if strings.HasPrefix(t, ClusterTagPrefix) {
			tags = append(tags, t)
		}
	}
	return tags
}
