package dto

// StartChatRequest opens a chat session anchored to one chapter.
type StartChatRequest struct {
	Book    string `json:"book" validate:"required"`
	Chapter int    `json:"chapter" validate:"required,min=1"`
}

type StartChatResponse struct {
	SessionId string `json:"session_id"`
	Book      string `json:"book"`
	Chapter   int    `json:"chapter"`
}

// ChatClientFrame is what the websocket client sends.
type ChatClientFrame struct {
	SessionId string `json:"session_id"`
	Text      string `json:"text"`
}

// ChatServerFrame is what the server streams back. Type is one of "delta",
// "done" or "error".
type ChatServerFrame struct {
	Type      string `json:"type"`
	SessionId string `json:"session_id,omitempty"`
	Text      string `json:"text,omitempty"`
}
