package models

import "time"

// Item represents a fixed expression to learn.
// Items are created by the offline content pipeline and are immutable at runtime.
type Item struct {
	ID            string    `json:"id" db:"id"`
	Skill         string    `json:"skill" db:"skill"`
	Module        string    `json:"module" db:"module"`
	Category      string    `json:"category" db:"category"`
	Expression    string    `json:"expression" db:"expression"`
	JaHint        string    `json:"ja_hint" db:"ja_hint"` // Optional Japanese gloss
	TypingEnabled bool      `json:"typing_enabled" db:"typing_enabled"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
