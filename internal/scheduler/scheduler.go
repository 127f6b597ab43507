// Package scheduler runs the background job that reminds learners about due
// reviews. The engine itself is request-scoped; this is the only long-lived
// piece, and it only reads.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/phrasedrill/pkg/models"
)

// Notifier delivers a due-review reminder to one learner
type Notifier interface {
	SendReminder(learnerID int64, dueCount int) error
}

// DueCounter counts due mastery records per learner
type DueCounter interface {
	DueCounts(ctx context.Context, asOf time.Time) ([]models.LearnerDueCount, error)
}

// Scheduler manages the periodic reminder check
type Scheduler struct {
	scheduler *gocron.Scheduler
	due       DueCounter
	notifier  Notifier
	startHour int
	endHour   int
}

// New creates a scheduler that checks hourly within [startHour, endHour]
func New(due DueCounter, notifier Notifier, startHour, endHour int) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		due:       due,
		notifier:  notifier,
		startHour: startHour,
		endHour:   endHour,
	}
}

// Start begins running the hourly reminder check without blocking
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminders)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminders notifies every learner with due reviews, within the
// configured quiet-hours window
func (s *Scheduler) checkAndSendReminders() {
	now := time.Now().UTC()
	if hour := now.Hour(); hour < s.startHour || hour > s.endHour {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	counts, err := s.due.DueCounts(ctx, now)
	if err != nil {
		log.Printf("scheduler: counting due reviews: %v", err)
		return
	}
	for _, c := range counts {
		if c.Due == 0 {
			continue
		}
		if err := s.notifier.SendReminder(c.LearnerID, c.Due); err != nil {
			log.Printf("scheduler: reminding learner %d: %v", c.LearnerID, err)
		}
	}
}

// RunManualCheck forces a reminder check for a specific learner
func (s *Scheduler) RunManualCheck(ctx context.Context, learnerID int64) error {
	counts, err := s.due.DueCounts(ctx, time.Now().UTC())
	if err != nil {
		return err
	}
	for _, c := range counts {
		if c.LearnerID == learnerID && c.Due > 0 {
			return s.notifier.SendReminder(c.LearnerID, c.Due)
		}
	}
	return nil
}

// LogNotifier is the default Notifier; it only records the reminder.
// Deployments plug in a real delivery channel.
type LogNotifier struct{}

// SendReminder implements Notifier
func (LogNotifier) SendReminder(learnerID int64, dueCount int) error {
	log.Printf("scheduler: learner %d has %d reviews due", learnerID, dueCount)
	return nil
}
