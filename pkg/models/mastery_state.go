package models

import "time"

// MasteryState tracks a learner's progress with one item in one answer mode.
// Exactly one record may exist per (learner_id, item_id, mode, module);
// absence of a record means the item is new for that learner.
type MasteryState struct {
	ID            int64     `json:"id" db:"id"`
	LearnerID     int64     `json:"learner_id" db:"learner_id"`
	ItemID        string    `json:"item_id" db:"item_id"`
	Mode          string    `json:"mode" db:"mode"`
	Module        string    `json:"module" db:"module"`
	Stage         int       `json:"stage" db:"stage"` // mastery level driving the review interval
	CorrectStreak int       `json:"correct_streak" db:"correct_streak"`
	TotalCorrect  int       `json:"total_correct" db:"total_correct"`
	TotalWrong    int       `json:"total_wrong" db:"total_wrong"`
	LastReviewOn  time.Time `json:"last_review_on" db:"last_review_on"`
	NextReviewOn  time.Time `json:"next_review_on" db:"next_review_on"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// Due reports whether the record is due for review as of the given day
func (s *MasteryState) Due(asOf time.Time) bool {
	return !s.NextReviewOn.After(asOf)
}

// LearnerDueCount is the number of due records one learner has accumulated
type LearnerDueCount struct {
	LearnerID int64 `json:"learner_id" db:"learner_id"`
	Due       int   `json:"due" db:"due"`
}
