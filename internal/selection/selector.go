// Package selection decides which items and questions a learner is served.
// Two strategies exist: a balanced round-robin across several modules and a
// due-then-new fill within a single module. They are intentionally kept as
// two named operations; see the package tests for the behavioral difference.
package selection

import (
	"context"
	"fmt"
	"time"

	"github.com/example/phrasedrill/internal/scheduling"
	"github.com/example/phrasedrill/pkg/models"
)

// ItemSource lists catalog items in scope. Empty category means no filter.
type ItemSource interface {
	List(ctx context.Context, skill, module, category string) ([]models.Item, error)
}

// StateSource lists a learner's mastery records. Empty mode means any mode.
type StateSource interface {
	ListForLearner(ctx context.Context, learnerID int64, mode, module string) ([]models.MasteryState, error)
}

// Selector computes bounded, ordered, duplicate-free item ID lists.
// It is read-only: no call ever mutates mastery state.
type Selector struct {
	items  ItemSource
	states StateSource
}

// NewSelector creates a selector over the given sources
func NewSelector(items ItemSource, states StateSource) *Selector {
	return &Selector{items: items, states: states}
}

// BalancedDueItems selects up to limit item IDs across several modules.
// Due items are drawn round-robin in module order, one per module per pass;
// when every due pool is exhausted the remainder is filled from items the
// learner has never seen, without module balancing. An empty result is valid.
func (s *Selector) BalancedDueItems(ctx context.Context, learnerID int64, skill string, modules []string, limit int, today time.Time) ([]string, error) {
	if learnerID == 0 {
		return nil, models.ErrUnauthenticated
	}
	if !models.ValidSkill(skill) {
		return nil, fmt.Errorf("%w: skill %q", models.ErrInvalidInput, skill)
	}
	if len(modules) == 0 {
		return nil, fmt.Errorf("%w: no modules", models.ErrInvalidInput)
	}
	for _, m := range modules {
		if !models.ValidModule(m) {
			return nil, fmt.Errorf("%w: module %q", models.ErrInvalidInput, m)
		}
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit %d", models.ErrInvalidInput, limit)
	}

	day := scheduling.DateOf(today)
	duePools := make([][]string, len(modules))
	var newIDs []string

	for i, module := range modules {
		items, err := s.items.List(ctx, skill, module, "")
		if err != nil {
			return nil, err
		}
		states, err := s.states.ListForLearner(ctx, learnerID, "", module)
		if err != nil {
			return nil, err
		}
		inScope := make(map[string]bool, len(items))
		for _, it := range items {
			inScope[it.ID] = true
		}
		due := make(map[string]bool)
		seen := make(map[string]bool)
		for j := range states {
			st := &states[j]
			if !inScope[st.ItemID] {
				continue
			}
			seen[st.ItemID] = true
			if st.Due(day) {
				due[st.ItemID] = true
			}
		}
		// Catalog order keeps both pools stable across calls.
		for _, it := range items {
			if due[it.ID] {
				duePools[i] = append(duePools[i], it.ID)
			} else if !seen[it.ID] {
				newIDs = append(newIDs, it.ID)
			}
		}
	}

	result := make([]string, 0, limit)
	picked := make(map[string]bool)

	// Round-robin over the due pools, one pop per module per pass. A pass
	// that makes no progress means every pool is drained.
	for len(result) < limit {
		progress := false
		for i := range duePools {
			if len(result) >= limit {
				break
			}
			for len(duePools[i]) > 0 {
				id := duePools[i][0]
				duePools[i] = duePools[i][1:]
				if !picked[id] {
					picked[id] = true
					result = append(result, id)
					progress = true
					break
				}
			}
		}
		if !progress {
			break
		}
	}

	for _, id := range newIDs {
		if len(result) >= limit {
			break
		}
		if !picked[id] {
			picked[id] = true
			result = append(result, id)
		}
	}
	return result, nil
}

// DueThenNewItems selects up to limit item IDs within a single module and
// optional category, for one answer mode. Due items are exhausted before any
// new item is considered; there is no round-robin on this path. In typing
// mode only items with typing enabled may enter the new pool, while due items
// are not re-filtered (a due record implies past eligibility).
func (s *Selector) DueThenNewItems(ctx context.Context, learnerID int64, skill, module, category, mode string, limit int, today time.Time) ([]string, error) {
	if learnerID == 0 {
		return nil, models.ErrUnauthenticated
	}
	if !models.ValidSkill(skill) {
		return nil, fmt.Errorf("%w: skill %q", models.ErrInvalidInput, skill)
	}
	if !models.ValidModule(module) {
		return nil, fmt.Errorf("%w: module %q", models.ErrInvalidInput, module)
	}
	if !models.ValidMode(mode) {
		return nil, fmt.Errorf("%w: mode %q", models.ErrInvalidInput, mode)
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit %d", models.ErrInvalidInput, limit)
	}

	items, err := s.items.List(ctx, skill, module, category)
	if err != nil {
		return nil, err
	}
	states, err := s.states.ListForLearner(ctx, learnerID, mode, module)
	if err != nil {
		return nil, err
	}

	day := scheduling.DateOf(today)
	inScope := make(map[string]bool, len(items))
	for _, it := range items {
		inScope[it.ID] = true
	}
	due := make(map[string]bool)
	seen := make(map[string]bool)
	for i := range states {
		st := &states[i]
		if !inScope[st.ItemID] {
			continue
		}
		seen[st.ItemID] = true
		if st.Due(day) {
			due[st.ItemID] = true
		}
	}

	result := make([]string, 0, limit)
	for _, it := range items {
		if len(result) >= limit {
			return result, nil
		}
		if due[it.ID] {
			result = append(result, it.ID)
		}
	}
	for _, it := range items {
		if len(result) >= limit {
			break
		}
		if seen[it.ID] {
			continue
		}
		if mode == models.ModeTyping && !it.TypingEnabled {
			continue
		}
		result = append(result, it.ID)
	}
	return result, nil
}
