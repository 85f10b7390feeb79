// Package reminder runs the periodic due-review check. When Retention-mode
// skills come due it notifies the student through the configured Notifier.
package reminder

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/tutorbot/internal/database"
)

// Default quiet-hours boundaries for notifications.
const (
	DefaultStartHour = 8
	DefaultEndHour   = 22
)

// Notifier delivers a due-review reminder to the student.
type Notifier interface {
	NotifyDueReviews(count int) error
}

// Scheduler manages the recurring due-review check.
type Scheduler struct {
	scheduler *gocron.Scheduler
	notifier  Notifier
}

// New creates a reminder scheduler delivering through the given notifier.
func New(notifier Notifier) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		notifier:  notifier,
	}
}

// Start begins the hourly due-review check without blocking.
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.checkAndNotify)
	s.scheduler.StartAsync()
}

// Stop terminates the scheduled checks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// RunManualCheck forces an immediate due-review check.
func (s *Scheduler) RunManualCheck() error {
	count, err := database.NewMasteryRepository().CountDueReviews(time.Now())
	if err != nil {
		return err
	}
	if count > 0 {
		return s.notifier.NotifyDueReviews(count)
	}
	return nil
}

// checkAndNotify counts due reviews and notifies inside the allowed hours.
func (s *Scheduler) checkAndNotify() {
	hour := time.Now().Hour()
	start := hourFromEnv("NOTIFICATION_START_HOUR", DefaultStartHour)
	end := hourFromEnv("NOTIFICATION_END_HOUR", DefaultEndHour)

	if hour < start || hour > end {
		log.Printf("Current hour %d is outside notification hours (%d-%d), skipping reminder", hour, start, end)
		return
	}

	if err := s.RunManualCheck(); err != nil {
		log.Printf("Error checking due reviews: %v", err)
	}
}

func hourFromEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if h, err := strconv.Atoi(value); err == nil && h >= 0 && h <= 23 {
			return h
		}
	}
	return fallback
}
