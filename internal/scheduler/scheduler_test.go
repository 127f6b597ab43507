package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/phrasedrill/pkg/models"
)

type fakeDue struct {
	counts []models.LearnerDueCount
}

func (f *fakeDue) DueCounts(_ context.Context, _ time.Time) ([]models.LearnerDueCount, error) {
	return f.counts, nil
}

type captureNotifier struct {
	sent map[int64]int
}

func (c *captureNotifier) SendReminder(learnerID int64, dueCount int) error {
	c.sent[learnerID] = dueCount
	return nil
}

func TestRunManualCheck(t *testing.T) {
	due := &fakeDue{counts: []models.LearnerDueCount{
		{LearnerID: 1, Due: 3},
		{LearnerID: 2, Due: 0},
	}}
	notifier := &captureNotifier{sent: map[int64]int{}}
	s := New(due, notifier, 0, 23)

	require.NoError(t, s.RunManualCheck(context.Background(), 1))
	assert.Equal(t, map[int64]int{1: 3}, notifier.sent)

	// A learner with nothing due gets no reminder.
	require.NoError(t, s.RunManualCheck(context.Background(), 2))
	assert.Len(t, notifier.sent, 1)
}

func TestCheckAndSendReminders_NotifiesEveryLearnerWithDue(t *testing.T) {
	due := &fakeDue{counts: []models.LearnerDueCount{
		{LearnerID: 1, Due: 3},
		{LearnerID: 2, Due: 0},
		{LearnerID: 3, Due: 12},
	}}
	notifier := &captureNotifier{sent: map[int64]int{}}
	s := New(due, notifier, 0, 23)

	s.checkAndSendReminders()
	assert.Equal(t, map[int64]int{1: 3, 3: 12}, notifier.sent)
}

func TestCheckAndSendReminders_QuietHours(t *testing.T) {
	due := &fakeDue{counts: []models.LearnerDueCount{{LearnerID: 1, Due: 3}}}
	notifier := &captureNotifier{sent: map[int64]int{}}

	// A window no hour can satisfy keeps the job silent.
	s := New(due, notifier, 5, 4)
	s.checkAndSendReminders()
	assert.Empty(t, notifier.sent)
}
