package database

import (
	"context"

	"github.com/example/phrasedrill/pkg/models"
)

// QuestionRepository handles database operations for questions
type QuestionRepository struct{}

// NewQuestionRepository creates a new repository instance
func NewQuestionRepository() *QuestionRepository {
	return &QuestionRepository{}
}

// List returns questions for a skill, mode and module, optionally restricted
// to a category. Ordered by id for stable grouping.
func (r *QuestionRepository) List(ctx context.Context, skill, mode, module, category string) ([]models.Question, error) {
	var questions []models.Question
	var err error
	if category != "" {
		err = DB.SelectContext(ctx, &questions, `
			SELECT * FROM questions
			WHERE skill = $1 AND mode = $2 AND module = $3 AND category = $4
			ORDER BY id
		`, skill, mode, module, category)
	} else {
		err = DB.SelectContext(ctx, &questions, `
			SELECT * FROM questions
			WHERE skill = $1 AND mode = $2 AND module = $3
			ORDER BY id
		`, skill, mode, module)
	}
	if err != nil {
		return nil, storeErr("list questions", err)
	}
	return questions, nil
}

// Get returns a question by ID
func (r *QuestionRepository) Get(ctx context.Context, id string) (*models.Question, error) {
	var q models.Question
	if err := DB.GetContext(ctx, &q, "SELECT * FROM questions WHERE id = $1", id); err != nil {
		return nil, storeErr("get question", err)
	}
	return &q, nil
}

// Upsert inserts or replaces a question row. Import path only.
func (r *QuestionRepository) Upsert(ctx context.Context, q *models.Question) error {
	_, err := DB.ExecContext(ctx, `
		INSERT INTO questions (
			id, skill, mode, module, category, prompt,
			correct_expression, choices, hint_first_char, hint_length, item_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			skill = EXCLUDED.skill,
			mode = EXCLUDED.mode,
			module = EXCLUDED.module,
			category = EXCLUDED.category,
			prompt = EXCLUDED.prompt,
			correct_expression = EXCLUDED.correct_expression,
			choices = EXCLUDED.choices,
			hint_first_char = EXCLUDED.hint_first_char,
			hint_length = EXCLUDED.hint_length,
			item_id = EXCLUDED.item_id
	`, q.ID, q.Skill, q.Mode, q.Module, q.Category, q.Prompt,
		q.CorrectExpression, q.Choices, q.HintFirstChar, q.HintLength, q.ItemID)
	if err != nil {
		return storeErr("upsert question", err)
	}
	return nil
}
