package entity

import "time"

// Subject is a taxonomy tag referenced by resources, discussions, quizzes and
// flashcards. Immutable once created; CreatedBy is only set for custom
// subjects added by users.
type Subject struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	Color       string    `json:"color"`
	IsCustom    bool      `json:"is_custom"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
