package dto

import "time"

// StudyEventMessage is the payload carried on the in-process event bus.
type StudyEventMessage struct {
	Type       string                 `json:"type"`
	Payload    map[string]interface{} `json:"payload"`
	OccurredAt time.Time              `json:"occurred_at"`
}
