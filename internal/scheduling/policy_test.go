package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/phrasedrill/pkg/models"
)

var testDay = time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)

func TestApplyOutcome_FirstCorrect(t *testing.T) {
	p := NewPolicy()
	state := NewState(1, "item-1", models.ModeTyping, models.ModuleLexicon)

	next := p.ApplyOutcome(state, true, testDay)

	assert.Equal(t, 1, next.Stage)
	assert.Equal(t, 1, next.CorrectStreak)
	assert.Equal(t, 1, next.TotalCorrect)
	assert.Equal(t, 0, next.TotalWrong)
	assert.Equal(t, DateOf(testDay), next.LastReviewOn)
	assert.Equal(t, DateOf(testDay).AddDate(0, 0, p.Interval(1)), next.NextReviewOn)
}

func TestApplyOutcome_FirstWrong(t *testing.T) {
	p := NewPolicy()
	state := NewState(1, "item-1", models.ModeClick, models.ModuleIdiom)

	next := p.ApplyOutcome(state, false, testDay)

	// Stage never drops below zero.
	assert.Equal(t, 0, next.Stage)
	assert.Equal(t, 0, next.CorrectStreak)
	assert.Equal(t, 1, next.TotalWrong)
	assert.Equal(t, DateOf(testDay).AddDate(0, 0, p.Interval(0)), next.NextReviewOn)
}

func TestApplyOutcome_StageCappedAtMax(t *testing.T) {
	p := NewPolicy()
	state := NewState(1, "item-1", models.ModeTyping, models.ModuleVocab)
	state.Stage = p.MaxStage()

	next := p.ApplyOutcome(state, true, testDay)

	assert.Equal(t, p.MaxStage(), next.Stage)
	assert.Equal(t, DateOf(testDay).AddDate(0, 0, p.Interval(p.MaxStage())), next.NextReviewOn)
}

func TestApplyOutcome_WrongResetsStreakNotTotals(t *testing.T) {
	p := NewPolicy()
	state := NewState(7, "item-2", models.ModeTyping, models.ModuleLexicon)
	state.Stage = 3
	state.CorrectStreak = 3
	state.TotalCorrect = 5
	state.TotalWrong = 2

	next := p.ApplyOutcome(state, false, testDay)

	assert.Equal(t, 2, next.Stage)
	assert.Equal(t, 0, next.CorrectStreak)
	assert.Equal(t, 5, next.TotalCorrect)
	assert.Equal(t, 3, next.TotalWrong)
}

func TestApplyOutcome_Properties(t *testing.T) {
	p := NewPolicy()
	state := NewState(1, "item-1", models.ModeTyping, models.ModuleLexicon)

	// Any mixed sequence keeps the invariants: stage within bounds, counters
	// summing to the number of submissions, next review never in the past.
	outcomes := []bool{true, true, false, true, false, false, false, true, true, true, true, true, true, false}
	day := testDay
	for i, ok := range outcomes {
		prevStage := state.Stage
		state = p.ApplyOutcome(state, ok, day)

		assert.GreaterOrEqual(t, state.Stage, 0)
		assert.LessOrEqual(t, state.Stage, p.MaxStage())
		if ok {
			assert.GreaterOrEqual(t, state.Stage, prevStage, "correct answer must not decrease stage")
		} else {
			assert.LessOrEqual(t, state.Stage, prevStage, "wrong answer must not increase stage")
		}
		assert.Equal(t, i+1, state.TotalCorrect+state.TotalWrong)
		assert.False(t, state.NextReviewOn.Before(DateOf(day)))

		day = day.AddDate(0, 0, 1)
	}
}

func TestInterval_Monotonic(t *testing.T) {
	p := NewPolicy()
	for stage := 1; stage <= p.MaxStage(); stage++ {
		assert.GreaterOrEqual(t, p.Interval(stage), p.Interval(stage-1))
	}
	// Out-of-range stages clamp instead of panicking.
	assert.Equal(t, p.Interval(0), p.Interval(-3))
	assert.Equal(t, p.Interval(p.MaxStage()), p.Interval(99))
}

func TestNewPolicyWithIntervals(t *testing.T) {
	p := NewPolicyWithIntervals([]int{1, 5, 20})
	require.Equal(t, 2, p.MaxStage())
	assert.Equal(t, 20, p.Interval(2))

	// Empty tables fall back to the defaults.
	assert.Equal(t, DefaultIntervals, NewPolicyWithIntervals(nil).Intervals)
}

func TestDateOf(t *testing.T) {
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), DateOf(testDay))
}
