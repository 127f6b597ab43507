// Package scheduling implements the per-key mastery state machine that drives
// spaced repetition. A record advances one stage on a correct answer and
// falls back one stage on a wrong one; the stage indexes an increasing table
// of review intervals.
package scheduling

import (
	"time"

	"github.com/example/phrasedrill/pkg/models"
)

// DefaultIntervals is the review interval table in days, indexed by stage.
// The table length fixes the maximum stage.
var DefaultIntervals = []int{1, 3, 7, 14, 30, 60}

// Policy holds the tunable spaced-repetition parameters
type Policy struct {
	// Review intervals in days, indexed by stage
	Intervals []int
}

// NewPolicy creates a policy with the default interval table
func NewPolicy() *Policy {
	return &Policy{Intervals: DefaultIntervals}
}

// NewPolicyWithIntervals creates a policy with a custom interval table.
// An empty table falls back to the defaults.
func NewPolicyWithIntervals(intervals []int) *Policy {
	if len(intervals) == 0 {
		return NewPolicy()
	}
	return &Policy{Intervals: intervals}
}

// MaxStage is the highest reachable mastery stage
func (p *Policy) MaxStage() int {
	return len(p.Intervals) - 1
}

// Interval returns the review interval in days for a stage, clamped to the table
func (p *Policy) Interval(stage int) int {
	if stage < 0 {
		stage = 0
	}
	if stage > p.MaxStage() {
		stage = p.MaxStage()
	}
	return p.Intervals[stage]
}

// NewState returns the implicit starting record for a key the learner has
// never answered. Feeding it through ApplyOutcome covers the "no prior
// state" path with the same code as the update path.
func NewState(learnerID int64, itemID, mode, module string) models.MasteryState {
	return models.MasteryState{
		LearnerID: learnerID,
		ItemID:    itemID,
		Mode:      mode,
		Module:    module,
	}
}

// ApplyOutcome advances a mastery record for one judged answer and returns
// the new record. Stage stays within [0, MaxStage]; the next review date is
// derived from the new stage and anchored at the day of the answer.
func (p *Policy) ApplyOutcome(state models.MasteryState, isCorrect bool, today time.Time) models.MasteryState {
	day := DateOf(today)
	if isCorrect {
		if state.Stage < p.MaxStage() {
			state.Stage++
		}
		state.CorrectStreak++
		state.TotalCorrect++
	} else {
		if state.Stage > 0 {
			state.Stage--
		}
		state.CorrectStreak = 0
		state.TotalWrong++
	}
	state.LastReviewOn = day
	state.NextReviewOn = day.AddDate(0, 0, p.Interval(state.Stage))
	return state
}

// DateOf truncates a timestamp to its UTC calendar date
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
