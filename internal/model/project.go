package model

import "time"

// Project is a grouping container for related tasks.
type Project struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Emoji       string    `json:"emoji,omitempty" db:"emoji"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
