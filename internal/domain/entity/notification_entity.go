package entity

import "time"

// Notification types, one per triggering event kind.
const (
	NotifResource   = "resource"
	NotifDiscussion = "discussion"
	NotifComment    = "comment"
	NotifLike       = "like"
	NotifQuiz       = "quiz"
	NotifFlashcard  = "flashcard"
)

// Notification is a persisted fan-out record addressed to a single user.
// Created only by the dispatcher; the read flag is the only mutable field and
// only the recipient may delete it.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Link      string    `json:"link,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
