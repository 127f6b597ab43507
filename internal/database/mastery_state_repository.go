package database

import (
	"context"
	"time"

	"github.com/example/phrasedrill/pkg/models"
)

// MasteryStateRepository handles database operations for mastery records
type MasteryStateRepository struct{}

// NewMasteryStateRepository creates a new repository instance
func NewMasteryStateRepository() *MasteryStateRepository {
	return &MasteryStateRepository{}
}

// Get returns the mastery record for a full four-part key
func (r *MasteryStateRepository) Get(ctx context.Context, learnerID int64, itemID, mode, module string) (*models.MasteryState, error) {
	var state models.MasteryState
	err := DB.GetContext(ctx, &state, `
		SELECT * FROM mastery_states
		WHERE learner_id = $1 AND item_id = $2 AND mode = $3 AND module = $4
	`, learnerID, itemID, mode, module)
	if err != nil {
		return nil, storeErr("get mastery state", err)
	}
	return &state, nil
}

// ListForLearner returns all of a learner's records for a module, optionally
// restricted to one answer mode
func (r *MasteryStateRepository) ListForLearner(ctx context.Context, learnerID int64, mode, module string) ([]models.MasteryState, error) {
	var states []models.MasteryState
	var err error
	if mode != "" {
		err = DB.SelectContext(ctx, &states, `
			SELECT * FROM mastery_states
			WHERE learner_id = $1 AND mode = $2 AND module = $3
			ORDER BY item_id
		`, learnerID, mode, module)
	} else {
		err = DB.SelectContext(ctx, &states, `
			SELECT * FROM mastery_states
			WHERE learner_id = $1 AND module = $2
			ORDER BY item_id
		`, learnerID, module)
	}
	if err != nil {
		return nil, storeErr("list mastery states", err)
	}
	return states, nil
}

// ListDue returns a learner's records due on or before asOf, most overdue
// first, optionally restricted by mode and module
func (r *MasteryStateRepository) ListDue(ctx context.Context, learnerID int64, mode, module string, asOf time.Time) ([]models.MasteryState, error) {
	query := `
		SELECT * FROM mastery_states
		WHERE learner_id = $1 AND next_review_on <= $2
	`
	args := []interface{}{learnerID, asOf}
	if mode != "" {
		query += " AND mode = $3"
		args = append(args, mode)
	}
	if module != "" {
		if mode != "" {
			query += " AND module = $4"
		} else {
			query += " AND module = $3"
		}
		args = append(args, module)
	}
	query += " ORDER BY next_review_on ASC"

	var states []models.MasteryState
	if err := DB.SelectContext(ctx, &states, query, args...); err != nil {
		return nil, storeErr("list due mastery states", err)
	}
	return states, nil
}

// Upsert writes a mastery record keyed by the full
// (learner_id, item_id, mode, module) tuple. Concurrent submissions for the
// same key serialize on the conflict target, last write wins.
func (r *MasteryStateRepository) Upsert(ctx context.Context, state *models.MasteryState) error {
	_, err := DB.ExecContext(ctx, `
		INSERT INTO mastery_states (
			learner_id, item_id, mode, module, stage,
			correct_streak, total_correct, total_wrong,
			last_review_on, next_review_on
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (learner_id, item_id, mode, module) DO UPDATE SET
			stage = EXCLUDED.stage,
			correct_streak = EXCLUDED.correct_streak,
			total_correct = EXCLUDED.total_correct,
			total_wrong = EXCLUDED.total_wrong,
			last_review_on = EXCLUDED.last_review_on,
			next_review_on = EXCLUDED.next_review_on,
			updated_at = CURRENT_TIMESTAMP
	`, state.LearnerID, state.ItemID, state.Mode, state.Module, state.Stage,
		state.CorrectStreak, state.TotalCorrect, state.TotalWrong,
		state.LastReviewOn, state.NextReviewOn)
	if err != nil {
		return storeErr("upsert mastery state", err)
	}
	return nil
}

// DueCounts returns the number of due records per learner as of a date.
// Used by the reminder scheduler.
func (r *MasteryStateRepository) DueCounts(ctx context.Context, asOf time.Time) ([]models.LearnerDueCount, error) {
	var counts []models.LearnerDueCount
	err := DB.SelectContext(ctx, &counts, `
		SELECT learner_id, COUNT(*) AS due
		FROM mastery_states
		WHERE next_review_on <= $1
		GROUP BY learner_id
		ORDER BY learner_id
	`, asOf)
	if err != nil {
		return nil, storeErr("due counts", err)
	}
	return counts, nil
}

// LearnerStats returns summary statistics about a learner's progress
func (r *MasteryStateRepository) LearnerStats(ctx context.Context, learnerID int64, asOf time.Time, masteredStage int) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var tracked int
	err := DB.GetContext(ctx, &tracked,
		"SELECT COUNT(*) FROM mastery_states WHERE learner_id = $1", learnerID)
	if err != nil {
		return nil, storeErr("learner stats", err)
	}
	stats["tracked_items"] = tracked

	var due int
	err = DB.GetContext(ctx, &due,
		"SELECT COUNT(*) FROM mastery_states WHERE learner_id = $1 AND next_review_on <= $2",
		learnerID, asOf)
	if err != nil {
		return nil, storeErr("learner stats", err)
	}
	stats["due_today"] = due

	var mastered int
	err = DB.GetContext(ctx, &mastered,
		"SELECT COUNT(*) FROM mastery_states WHERE learner_id = $1 AND stage >= $2",
		learnerID, masteredStage)
	if err != nil {
		return nil, storeErr("learner stats", err)
	}
	stats["mastered"] = mastered

	var totals struct {
		Correct int `db:"correct"`
		Wrong   int `db:"wrong"`
	}
	err = DB.GetContext(ctx, &totals, `
		SELECT COALESCE(SUM(total_correct), 0) AS correct,
		       COALESCE(SUM(total_wrong), 0) AS wrong
		FROM mastery_states WHERE learner_id = $1
	`, learnerID)
	if err != nil {
		return nil, storeErr("learner stats", err)
	}
	stats["total_correct"] = totals.Correct
	stats["total_wrong"] = totals.Wrong
	accuracy := 0.0
	if totals.Correct+totals.Wrong > 0 {
		accuracy = float64(totals.Correct) / float64(totals.Correct+totals.Wrong) * 100
	}
	stats["accuracy_percent"] = accuracy

	return stats, nil
}
