package database

import (
	"context"

	"github.com/example/phrasedrill/pkg/models"
)

// AttemptLogRepository handles database operations for attempt logs
type AttemptLogRepository struct{}

// NewAttemptLogRepository creates a new repository instance
func NewAttemptLogRepository() *AttemptLogRepository {
	return &AttemptLogRepository{}
}

// Append writes one attempt record. Logs are append-only; there is no
// update or delete path.
func (r *AttemptLogRepository) Append(ctx context.Context, attempt *models.AttemptLog) error {
	_, err := DB.ExecContext(ctx, `
		INSERT INTO attempt_logs (
			id, learner_id, question_id, item_id, mode, module,
			is_correct, answer, elapsed_ms
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, attempt.ID, attempt.LearnerID, attempt.QuestionID, attempt.ItemID,
		attempt.Mode, attempt.Module, attempt.IsCorrect, attempt.Answer, attempt.ElapsedMS)
	if err != nil {
		return storeErr("append attempt log", err)
	}
	return nil
}

// CountForLearner returns how many attempts a learner has logged
func (r *AttemptLogRepository) CountForLearner(ctx context.Context, learnerID int64) (int, error) {
	var count int
	err := DB.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM attempt_logs WHERE learner_id = $1", learnerID)
	if err != nil {
		return 0, storeErr("count attempt logs", err)
	}
	return count, nil
}
