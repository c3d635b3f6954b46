package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a study event pushed to a connected client.
type Notification struct {
	Id        uuid.UUID `json:"id"`
	UserId    string    `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
