// Package judge decides whether a submitted answer is correct, records the
// attempt and feeds the outcome into the learner's mastery schedule.
package judge

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/example/phrasedrill/internal/normalize"
	"github.com/example/phrasedrill/internal/scheduling"
	"github.com/example/phrasedrill/pkg/models"
)

// QuestionGetter fetches one question by ID
type QuestionGetter interface {
	Get(ctx context.Context, id string) (*models.Question, error)
}

// ItemFinder resolves an item by its canonical expression within a module
type ItemFinder interface {
	FindByExpression(ctx context.Context, module, expression string) (*models.Item, error)
}

// StateStore reads and upserts mastery records by their full four-part key
type StateStore interface {
	Get(ctx context.Context, learnerID int64, itemID, mode, module string) (*models.MasteryState, error)
	Upsert(ctx context.Context, state *models.MasteryState) error
}

// AttemptWriter appends one attempt log record
type AttemptWriter interface {
	Append(ctx context.Context, attempt *models.AttemptLog) error
}

// Submission is one learner answer to one question. Answer may be empty,
// e.g. on a click timeout; an empty answer is always judged incorrect.
type Submission struct {
	LearnerID  int64
	QuestionID string
	Answer     string
	ElapsedMS  int
}

// Result is the judgment returned to the caller. Scheduled reports whether
// the mastery record was updated; a false value with a correct judgment
// means progress tracking is delayed, not lost.
type Result struct {
	IsCorrect         bool   `json:"is_correct"`
	CorrectExpression string `json:"correct_expression"`
	Scheduled         bool   `json:"scheduled"`
	// ItemResolved distinguishes "nothing to schedule" from "scheduling
	// failed": only a resolved item with Scheduled=false means delay.
	ItemResolved bool `json:"item_resolved"`
}

// Judge orchestrates one submission: match, log, schedule
type Judge struct {
	questions QuestionGetter
	items     ItemFinder
	states    StateStore
	attempts  AttemptWriter
	policy    *scheduling.Policy

	// Now is the clock used for scheduling; replaceable in tests
	Now func() time.Time
}

// New creates a judge over the given stores
func New(questions QuestionGetter, items ItemFinder, states StateStore, attempts AttemptWriter, policy *scheduling.Policy) *Judge {
	return &Judge{
		questions: questions,
		items:     items,
		states:    states,
		attempts:  attempts,
		policy:    policy,
		Now:       time.Now,
	}
}

// Submit judges one answer. The attempt log is written unconditionally once
// the question is known; a failed log write is fatal for the call but the
// judgment is still returned, flagged as unscheduled. A failed scheduling
// upsert is logged and swallowed so the learner still gets their result.
func (j *Judge) Submit(ctx context.Context, sub Submission) (*Result, error) {
	if sub.LearnerID == 0 {
		return nil, models.ErrUnauthenticated
	}
	if sub.QuestionID == "" {
		return nil, fmt.Errorf("%w: missing question id", models.ErrInvalidInput)
	}

	q, err := j.questions.Get(ctx, sub.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("load question %s: %w", sub.QuestionID, err)
	}

	isCorrect := j.match(q, sub.Answer)
	result := &Result{IsCorrect: isCorrect, CorrectExpression: q.CorrectExpression}

	itemID := j.resolveItem(ctx, q)
	result.ItemResolved = itemID != nil

	attempt := &models.AttemptLog{
		ID:         uuid.NewString(),
		LearnerID:  sub.LearnerID,
		QuestionID: q.ID,
		ItemID:     itemID,
		Mode:       q.Mode,
		Module:     q.Module,
		IsCorrect:  isCorrect,
		Answer:     sub.Answer,
		ElapsedMS:  sub.ElapsedMS,
	}
	if err := j.attempts.Append(ctx, attempt); err != nil {
		return result, fmt.Errorf("append attempt log: %w", err)
	}

	if itemID == nil {
		// No item, nothing to schedule; the judgment and log stand on their own.
		return result, nil
	}

	state, err := j.states.Get(ctx, sub.LearnerID, *itemID, q.Mode, q.Module)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		log.Printf("judge: read mastery state for learner %d item %s: %v", sub.LearnerID, *itemID, err)
		return result, nil
	}
	current := scheduling.NewState(sub.LearnerID, *itemID, q.Mode, q.Module)
	if state != nil {
		current = *state
	}
	next := j.policy.ApplyOutcome(current, isCorrect, j.Now())
	if err := j.states.Upsert(ctx, &next); err != nil {
		log.Printf("judge: upsert mastery state for learner %d item %s: %v", sub.LearnerID, *itemID, err)
		return result, nil
	}
	result.Scheduled = true
	return result, nil
}

// match applies the mode's comparison rule. Click answers are exact string
// matches because choices are presented verbatim; typing answers are
// compared after normalization.
func (j *Judge) match(q *models.Question, answer string) bool {
	switch q.Mode {
	case models.ModeClick:
		return answer == q.CorrectExpression
	case models.ModeTyping:
		if answer == "" {
			return false
		}
		return normalize.Equal(answer, q.CorrectExpression)
	default:
		return false
	}
}

// resolveItem returns the item ID to schedule against: the question's own
// link when present, otherwise a best-effort expression lookup within the
// same module. nil means scheduling is skipped for this submission.
func (j *Judge) resolveItem(ctx context.Context, q *models.Question) *string {
	if q.ItemID != nil && *q.ItemID != "" {
		return q.ItemID
	}
	item, err := j.items.FindByExpression(ctx, q.Module, q.CorrectExpression)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			log.Printf("judge: resolve item for question %s: %v", q.ID, err)
		}
		return nil
	}
	return &item.ID
}
