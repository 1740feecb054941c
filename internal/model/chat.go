package model

import "time"

// ChatMessage is one entry in the community chat. A bounded tail of recent
// messages is persisted so late joiners get context.
type ChatMessage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	TeamID    string    `json:"teamId,omitempty"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
