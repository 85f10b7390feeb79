// Package simulator drives the scheduling engine with a simulated student,
// to observe how the engine's mastery estimates track a configurable
// ground-truth learner over many days.
package simulator

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/example/tutorbot/internal/exercise"
	"github.com/example/tutorbot/internal/fsrs"
	"github.com/example/tutorbot/internal/scheduler"
	"github.com/example/tutorbot/pkg/models"
)

// DailySummary aggregates one simulated day.
type DailySummary struct {
	Day              int       `json:"day"`
	Date             time.Time `json:"date"`
	TotalExercises   int       `json:"total_exercises"`
	CorrectCount     int       `json:"correct_count"`
	Accuracy         float64   `json:"accuracy"`
	Transitions      int       `json:"transitions"`
	AvgTrueKnowledge float64   `json:"avg_true_knowledge"`
}

// Results is the complete outcome of a simulation run.
type Results struct {
	Config          Config         `json:"config"`
	Days            int            `json:"days"`
	ExercisesPerDay int            `json:"exercises_per_day"`
	Seed            int64          `json:"seed"`
	TotalExercises  int            `json:"total_exercises"`
	TotalCorrect    int            `json:"total_correct"`
	OverallAccuracy float64        `json:"overall_accuracy"`
	Daily           []DailySummary `json:"daily_summaries"`
	FinalLearning   int            `json:"final_learning_count"`
	FinalRetention  int            `json:"final_retention_count"`
}

// Run simulates a student practicing for the given number of days. The seed
// drives every random decision, so identical inputs reproduce identical
// results.
func Run(kps []models.KnowledgePoint, config Config, days, exercisesPerDay int, seed int64, verbose bool) (*Results, error) {
	rng := rand.New(rand.NewSource(seed))
	st := newStudent(config, rng)
	gen := exercise.NewGenerator(kps, rng)

	current := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return current }

	sched, err := scheduler.New(kps, nil, nil, scheduler.Config{Now: clock})
	if err != nil {
		return nil, err
	}

	results := &Results{
		Config:          config,
		Days:            days,
		ExercisesPerDay: exercisesPerDay,
		Seed:            seed,
	}

	for day := 1; day <= days; day++ {
		summary := simulateDay(sched, gen, st, rng, day, current, exercisesPerDay, verbose)
		results.Daily = append(results.Daily, summary)
		results.TotalExercises += summary.TotalExercises
		results.TotalCorrect += summary.CorrectCount

		current = current.AddDate(0, 0, 1)
		st.forget(1)
	}

	if results.TotalExercises > 0 {
		results.OverallAccuracy = float64(results.TotalCorrect) / float64(results.TotalExercises)
	}
	learning, retention := sched.Pools()
	results.FinalLearning = len(learning)
	results.FinalRetention = len(retention)
	return results, nil
}

// simulateDay runs one day of practice: pick a topic when none is active,
// compose the queue, answer every item and let the scheduler propagate.
func simulateDay(sched *scheduler.Scheduler, gen *exercise.Generator, st *student, rng *rand.Rand, day int, date time.Time, exercisesPerDay int, verbose bool) DailySummary {
	summary := DailySummary{Day: day, Date: date}

	pickTopic(sched, rng)

	queue := sched.ComposeSession(exercisesPerDay, rng)
	if verbose {
		log.Printf("day %d: %d items queued", day, len(queue))
	}

	for _, targetID := range queue {
		ex := generate(gen, rng, targetID)
		if ex == nil {
			continue
		}

		correct := st.respond(ex)
		updates := sched.Apply(ex.KnowledgePointIDs, fsrs.FromCorrect(correct))

		for _, u := range updates {
			st.learn(u.KnowledgePointID, correct)
			if u.Transitioned {
				summary.Transitions++
			}
		}

		summary.TotalExercises++
		if correct {
			summary.CorrectCount++
		}

		if sched.CheckBlockedComplete() {
			sched.MarkMenuShown()
			pickTopic(sched, rng)
		}
	}

	if summary.TotalExercises > 0 {
		summary.Accuracy = float64(summary.CorrectCount) / float64(summary.TotalExercises)
	}
	summary.AvgTrueKnowledge = st.averageKnowledge()
	return summary
}

// pickTopic activates blocked practice for a random eligible cluster when
// the session is interleaved. With no eligible clusters the session simply
// stays interleaved (retention-only behavior).
func pickTopic(sched *scheduler.Scheduler, rng *rand.Rand) {
	if sched.Session().PracticeMode == models.PracticeBlocked {
		return
	}
	eligible := sched.EligibleClusters()
	if len(eligible) == 0 {
		return
	}
	tag := eligible[rng.Intn(len(eligible))]
	if err := sched.ActivateBlockedPractice(tag); err != nil {
		log.Printf("Failed to activate cluster %s: %v", tag, err)
	}
}

// generate alternates exercise types, falling back to multiple choice for
// targets that cannot build a translation exercise.
func generate(gen *exercise.Generator, rng *rand.Rand, targetID string) *models.Exercise {
	var ex *models.Exercise
	var err error
	if rng.Intn(2) == 0 {
		ex, err = gen.SegmentedTranslation(targetID)
	} else {
		ex, err = gen.MultipleChoice(targetID)
	}
	if err != nil {
		return nil
	}
	return ex
}

// WriteJSON saves the results report to the given path.
func (r *Results) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write results: %v", err)
	}
	return nil
}
