package models

import "time"

// Wish is a personal goal with a target completion date
type Wish struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	TargetDate  string    `json:"targetDate"` // YYYY-MM-DD format
	CreatedAt   time.Time `json:"createdAt"`
	IsDone      bool      `json:"isDone"`
}
