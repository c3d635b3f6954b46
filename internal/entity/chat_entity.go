package entity

import (
	"context"
	"time"
)

// ChatStreamer sends one user turn and streams the reply fragments back.
// Implemented by the AI client's chat session.
type ChatStreamer interface {
	StreamMessage(ctx context.Context, text string, onDelta func(string)) (string, error)
}

// ChatSession is one conversation anchored to a chapter. Sessions are held
// in memory and expire with inactivity; clients reference them by id.
type ChatSession struct {
	Id          string
	UserId      string
	Book        string
	Chapter     int
	Translation string
	CreatedAt   time.Time
	Streamer    ChatStreamer
}
