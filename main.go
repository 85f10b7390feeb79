package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/tutorbot/internal/database"
	"github.com/example/tutorbot/internal/exercise"
	"github.com/example/tutorbot/internal/fsrs"
	"github.com/example/tutorbot/internal/importer"
	"github.com/example/tutorbot/internal/reminder"
	"github.com/example/tutorbot/internal/scheduler"
	"github.com/example/tutorbot/internal/simulator"
	"github.com/example/tutorbot/pkg/models"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "import":
			runImport(os.Args[2:])
			return
		case "simulate":
			runSimulate(os.Args[2:])
			return
		}
	}

	runInteractive()
}

// runImport loads knowledge points from an Excel or CSV file into the
// database.
func runImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	file := fs.String("file", "", "Path to the Excel or CSV content file")
	sheet := fs.String("sheet", "Sheet1", "Sheet name (Excel only)")
	startRow := fs.Int("start-row", 2, "First data row (1-based)")
	fs.Parse(args)

	if *file == "" {
		log.Fatal("import: -file is required")
	}

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	config := importer.DefaultConfig()
	config.FilePath = *file
	config.SheetName = *sheet
	config.StartRow = *startRow

	result, err := importer.ImportKnowledgePoints(config)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Import complete: %d processed, %d imported, %d skipped",
		result.TotalProcessed, result.Imported, result.Skipped)
	for _, e := range result.Errors {
		log.Printf("  %s", e)
	}
}

// runSimulate runs the simulated student against the scheduling engine and
// writes a JSON report.
func runSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	days := fs.Int("days", 30, "Number of days to simulate")
	perDay := fs.Int("exercises-per-day", 20, "Exercises per simulated day")
	learningRate := fs.Float64("learning-rate", 0.3, "Student learning rate")
	retentionRate := fs.Float64("retention-rate", 0.85, "Student daily retention rate")
	slipRate := fs.Float64("slip-rate", 0.1, "Probability of slipping on a known item")
	guessRate := fs.Float64("guess-rate", 0.25, "Probability of guessing an unknown item")
	seed := fs.Int64("seed", 42, "Random seed")
	output := fs.String("output", "simulation_results.json", "Report output path")
	verbose := fs.Bool("verbose", false, "Log per-day progress")
	fs.Parse(args)

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	kps, err := database.NewKnowledgePointRepository().GetAll()
	if err != nil {
		log.Fatalf("Failed to load knowledge points: %v", err)
	}
	if len(kps) == 0 {
		log.Fatal("No knowledge points in the database; run the import command first")
	}

	config := simulator.Config{
		LearningRate:  *learningRate,
		RetentionRate: *retentionRate,
		SlipRate:      *slipRate,
		GuessRate:     *guessRate,
	}

	results, err := simulator.Run(kps, config, *days, *perDay, *seed, *verbose)
	if err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	if err := results.WriteJSON(*output); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}

	log.Printf("Simulated %d days, %d exercises, %.1f%% accuracy",
		results.Days, results.TotalExercises, results.OverallAccuracy*100)
	log.Printf("Final pools: %d learning, %d retention", results.FinalLearning, results.FinalRetention)
	log.Printf("Report written to %s", *output)
}

// consoleNotifier prints due-review reminders to the terminal.
type consoleNotifier struct{}

func (consoleNotifier) NotifyDueReviews(count int) error {
	fmt.Printf("\n*** You have %d reviews due. Keep your streak going! ***\n", count)
	return nil
}

// runInteractive starts the tutoring loop: topic menu, exercise answering,
// mastery feedback, with state persisted between runs.
func runInteractive() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	kps, err := database.NewKnowledgePointRepository().GetAll()
	if err != nil {
		log.Fatalf("Failed to load knowledge points: %v", err)
	}
	if len(kps) == 0 {
		log.Fatal("No knowledge points in the database; run the import command first")
	}

	masteryRepo := database.NewMasteryRepository()
	sessionRepo := database.NewSessionRepository()

	masteries, err := masteryRepo.LoadAll()
	if err != nil {
		log.Fatalf("Failed to load mastery records: %v", err)
	}
	session, err := sessionRepo.Load()
	if err != nil {
		log.Fatalf("Failed to load session state: %v", err)
	}

	sched, err := scheduler.New(kps, masteries, session, scheduler.Config{})
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	reminders := reminder.New(consoleNotifier{})
	reminders.Start()
	defer reminders.Stop()

	save := func() {
		if err := masteryRepo.SaveAll(sched.Masteries()); err != nil {
			log.Printf("Failed to save mastery records: %v", err)
		}
		if err := sessionRepo.Save(sched.Session()); err != nil {
			log.Printf("Failed to save session state: %v", err)
		}
	}

	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v, saving progress...", sig)
		save()
		database.Close()
		os.Exit(0)
	}()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	gen := exercise.NewGenerator(kps, rng)
	input := bufio.NewScanner(os.Stdin)

	fmt.Println("Welcome back! Press Ctrl+C to stop at any time.")
	if err := reminders.RunManualCheck(); err != nil {
		log.Printf("Error checking due reviews: %v", err)
	}

	for {
		if sched.Session().PracticeMode == models.PracticeInterleaved {
			if !showMenu(sched, input) {
				break
			}
		}

		queue := sched.ComposeSession(sessionSize(), rng)
		if len(queue) == 0 {
			fmt.Println("Nothing to practice right now. Come back later!")
			break
		}

		for _, targetID := range queue {
			ex, err := gen.MultipleChoice(targetID)
			if err != nil {
				log.Printf("Failed to generate exercise for %s: %v", targetID, err)
				continue
			}
			if !askExercise(sched, ex, input) {
				save()
				return
			}
		}
		save()

		if sched.CheckBlockedComplete() {
			fmt.Println("\nTopic complete! Back to the menu.")
		}
	}

	save()
	fmt.Println("See you next time!")
}

// showMenu displays the eligible topics and activates the chosen one.
// Returns false when the student quits or input ends.
func showMenu(sched *scheduler.Scheduler, input *bufio.Scanner) bool {
	eligible := sched.EligibleClusters()
	sched.MarkMenuShown()
	if len(eligible) == 0 {
		fmt.Println("\nNo new topics available, reviewing what you know.")
		return true
	}

	fmt.Println("\nChoose a topic (or press Enter for mixed review, q to quit):")
	for i, tag := range eligible {
		fmt.Printf("  %d. %s (%.0f%% mastered)\n",
			i+1, scheduler.ClusterDisplayName(tag), sched.ClusterProgress(tag)*100)
	}

	fmt.Print("> ")
	if !input.Scan() {
		return false
	}
	choice := strings.TrimSpace(input.Text())
	if choice == "q" {
		return false
	}
	if choice == "" {
		return true
	}

	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(eligible) {
		fmt.Println("Not a valid choice, staying in mixed review.")
		return true
	}
	if err := sched.ActivateBlockedPractice(eligible[n-1]); err != nil {
		fmt.Printf("Cannot start that topic: %v\n", err)
	}
	return true
}

// askExercise presents one multiple-choice exercise, applies the outcome
// and echoes the mastery change. Returns false when input ends or the
// student quits.
func askExercise(sched *scheduler.Scheduler, ex *models.Exercise, input *bufio.Scanner) bool {
	fmt.Printf("\nTranslate: %s\n", ex.Prompt)
	for i, opt := range ex.Options {
		fmt.Printf("  %d. %s\n", i+1, opt)
	}

	fmt.Print("> ")
	if !input.Scan() {
		return false
	}
	answer := strings.TrimSpace(input.Text())
	if answer == "q" {
		return false
	}

	choice, err := strconv.Atoi(answer)
	correct := err == nil && exercise.CheckMultipleChoice(ex, choice-1)
	if correct {
		fmt.Println("Correct!")
	} else {
		fmt.Printf("Not quite. The answer was: %s\n", ex.Options[ex.CorrectIndex])
	}

	updates := sched.Apply(ex.KnowledgePointIDs, fsrs.FromCorrect(correct))
	for _, u := range updates {
		if u.Transitioned {
			kp := sched.KnowledgePoint(u.KnowledgePointID)
			fmt.Printf("Mastered %q! It moves to long-term review.\n", kp.Content)
		}
	}
	return true
}

// sessionSize reads the per-round exercise count from the environment.
func sessionSize() int {
	if value := os.Getenv("SESSION_SIZE"); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return 10
}
