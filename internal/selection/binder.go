package selection

import (
	"context"
	"math/rand"

	"github.com/example/phrasedrill/pkg/models"
)

// QuestionSource lists catalog questions in scope. Empty category means no filter.
type QuestionSource interface {
	List(ctx context.Context, skill, mode, module, category string) ([]models.Question, error)
}

// Binder resolves selected item IDs into concrete questions. Several
// questions may share one item (variant phrasing); the binder picks one per
// item at random, then pads an under-filled result from the fallback pool of
// questions not tied to any selected item.
type Binder struct {
	questions QuestionSource
	rnd       *rand.Rand
}

// NewBinder creates a binder. The random source is injected so tests can pin
// the sampling.
func NewBinder(questions QuestionSource, rnd *rand.Rand) *Binder {
	return &Binder{questions: questions, rnd: rnd}
}

// Bind returns up to limit questions for the selected item IDs, in selection
// order, with fallback questions appended after the bound ones. Fewer than
// limit questions is a valid outcome on a sparse catalog, never an error.
func (b *Binder) Bind(ctx context.Context, itemIDs []string, skill, mode, module, category string, limit int) ([]models.Question, error) {
	all, err := b.questions.List(ctx, skill, mode, module, "")
	if err != nil {
		return nil, err
	}

	selected := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		selected[id] = true
	}
	groups := make(map[string][]models.Question)
	for _, q := range all {
		if q.ItemID != nil && selected[*q.ItemID] {
			groups[*q.ItemID] = append(groups[*q.ItemID], q)
		}
	}

	result := make([]models.Question, 0, limit)
	for _, id := range itemIDs {
		if len(result) >= limit {
			return result, nil
		}
		group := groups[id]
		if len(group) == 0 {
			continue
		}
		result = append(result, group[b.rnd.Intn(len(group))])
	}
	if len(result) >= limit {
		return result, nil
	}

	// Fallback pool: questions outside the selected set, unlinked questions
	// included. The category filter applies only here.
	pool := all
	if category != "" {
		pool, err = b.questions.List(ctx, skill, mode, module, category)
		if err != nil {
			return nil, err
		}
	}
	var fallback []models.Question
	for _, q := range pool {
		if q.ItemID != nil && selected[*q.ItemID] {
			continue
		}
		fallback = append(fallback, q)
	}
	b.rnd.Shuffle(len(fallback), func(i, j int) {
		fallback[i], fallback[j] = fallback[j], fallback[i]
	})
	for _, q := range fallback {
		if len(result) >= limit {
			break
		}
		result = append(result, q)
	}
	return result, nil
}
