package selection

import (
	"context"
	"time"

	"github.com/example/phrasedrill/pkg/models"
)

// In-memory sources backing the selector and binder tests.

type fakeItems struct {
	items []models.Item
	err   error
}

func (f *fakeItems) List(_ context.Context, skill, module, category string) ([]models.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Item
	for _, it := range f.items {
		if it.Skill != skill || it.Module != module {
			continue
		}
		if category != "" && it.Category != category {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

type fakeStates struct {
	states []models.MasteryState
	err    error
}

func (f *fakeStates) ListForLearner(_ context.Context, learnerID int64, mode, module string) ([]models.MasteryState, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.MasteryState
	for _, st := range f.states {
		if st.LearnerID != learnerID || st.Module != module {
			continue
		}
		if mode != "" && st.Mode != mode {
			continue
		}
		out = append(out, st)
	}
	return out, nil
}

type fakeQuestions struct {
	questions []models.Question
	err       error
}

func (f *fakeQuestions) List(_ context.Context, skill, mode, module, category string) ([]models.Question, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Question
	for _, q := range f.questions {
		if q.Skill != skill || q.Mode != mode || q.Module != module {
			continue
		}
		if category != "" && q.Category != category {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

var today = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func item(id, module, category string, typing bool) models.Item {
	return models.Item{
		ID:            id,
		Skill:         models.SkillWriting,
		Module:        module,
		Category:      category,
		Expression:    "expr " + id,
		TypingEnabled: typing,
	}
}

// dueState is a record whose review date has already passed
func dueState(learnerID int64, itemID, mode, module string) models.MasteryState {
	return models.MasteryState{
		LearnerID:    learnerID,
		ItemID:       itemID,
		Mode:         mode,
		Module:       module,
		Stage:        1,
		NextReviewOn: today.AddDate(0, 0, -1),
	}
}

// futureState is a record scheduled past today, neither due nor new
func futureState(learnerID int64, itemID, mode, module string) models.MasteryState {
	return models.MasteryState{
		LearnerID:    learnerID,
		ItemID:       itemID,
		Mode:         mode,
		Module:       module,
		Stage:        2,
		NextReviewOn: today.AddDate(0, 0, 7),
	}
}

func question(id, mode, module, category string, itemID string) models.Question {
	q := models.Question{
		ID:                id,
		Skill:             models.SkillWriting,
		Mode:              mode,
		Module:            module,
		Category:          category,
		Prompt:            "prompt " + id,
		CorrectExpression: "expr " + id,
	}
	if itemID != "" {
		q.ItemID = &itemID
	}
	return q
}
