package models

import "time"

// AttemptLog is an append-only record of one judged submission.
// Logs are written once, never mutated, and never read back by the engine.
type AttemptLog struct {
	ID         string    `json:"id" db:"id"`
	LearnerID  int64     `json:"learner_id" db:"learner_id"`
	QuestionID string    `json:"question_id" db:"question_id"`
	ItemID     *string   `json:"item_id" db:"item_id"` // nil when no item could be resolved
	Mode       string    `json:"mode" db:"mode"`
	Module     string    `json:"module" db:"module"`
	IsCorrect  bool      `json:"is_correct" db:"is_correct"`
	Answer     string    `json:"answer" db:"answer"` // raw answer as submitted, may be empty
	ElapsedMS  int       `json:"elapsed_ms" db:"elapsed_ms"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
