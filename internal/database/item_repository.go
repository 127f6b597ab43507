package database

import (
	"context"

	"github.com/example/phrasedrill/pkg/models"
)

// ItemRepository handles database operations for catalog items
type ItemRepository struct{}

// NewItemRepository creates a new repository instance
func NewItemRepository() *ItemRepository {
	return &ItemRepository{}
}

// List returns items for a skill and module, optionally restricted to a
// category. Ordered by id so selection pools are stable across calls.
func (r *ItemRepository) List(ctx context.Context, skill, module, category string) ([]models.Item, error) {
	var items []models.Item
	var err error
	if category != "" {
		err = DB.SelectContext(ctx, &items, `
			SELECT * FROM items
			WHERE skill = $1 AND module = $2 AND category = $3
			ORDER BY id
		`, skill, module, category)
	} else {
		err = DB.SelectContext(ctx, &items, `
			SELECT * FROM items
			WHERE skill = $1 AND module = $2
			ORDER BY id
		`, skill, module)
	}
	if err != nil {
		return nil, storeErr("list items", err)
	}
	return items, nil
}

// Get returns an item by ID
func (r *ItemRepository) Get(ctx context.Context, id string) (*models.Item, error) {
	var item models.Item
	if err := DB.GetContext(ctx, &item, "SELECT * FROM items WHERE id = $1", id); err != nil {
		return nil, storeErr("get item", err)
	}
	return &item, nil
}

// FindByExpression returns the item whose canonical expression matches within
// a module. Used as the best-effort item resolution for unlinked questions.
func (r *ItemRepository) FindByExpression(ctx context.Context, module, expression string) (*models.Item, error) {
	var item models.Item
	err := DB.GetContext(ctx, &item, `
		SELECT * FROM items
		WHERE module = $1 AND expression = $2
		ORDER BY id
		LIMIT 1
	`, module, expression)
	if err != nil {
		return nil, storeErr("find item by expression", err)
	}
	return &item, nil
}

// Upsert inserts or replaces an item row. Only the content pipeline import
// path writes items; at runtime the catalog is immutable.
func (r *ItemRepository) Upsert(ctx context.Context, item *models.Item) error {
	_, err := DB.ExecContext(ctx, `
		INSERT INTO items (id, skill, module, category, expression, ja_hint, typing_enabled)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			skill = EXCLUDED.skill,
			module = EXCLUDED.module,
			category = EXCLUDED.category,
			expression = EXCLUDED.expression,
			ja_hint = EXCLUDED.ja_hint,
			typing_enabled = EXCLUDED.typing_enabled
	`, item.ID, item.Skill, item.Module, item.Category, item.Expression, item.JaHint, item.TypingEnabled)
	if err != nil {
		return storeErr("upsert item", err)
	}
	return nil
}
