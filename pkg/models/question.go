package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList is a []string stored as a JSON array in a TEXT column
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
}

// Question represents a concrete prompt shown to a learner.
// A question may reference one Item via ItemID; questions without a linked
// item are excluded from scheduling and only serve as fallback filler.
type Question struct {
	ID                string     `json:"id" db:"id"`
	Skill             string     `json:"skill" db:"skill"`
	Mode              string     `json:"mode" db:"mode"`
	Module            string     `json:"module" db:"module"`
	Category          string     `json:"category" db:"category"`
	Prompt            string     `json:"prompt" db:"prompt"`
	CorrectExpression string     `json:"correct_expression" db:"correct_expression"`
	Choices           StringList `json:"choices" db:"choices"`                 // click mode only
	HintFirstChar     string     `json:"hint_first_char" db:"hint_first_char"` // typing mode only
	HintLength        int        `json:"hint_length" db:"hint_length"`         // typing mode only
	ItemID            *string    `json:"item_id" db:"item_id"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
}
