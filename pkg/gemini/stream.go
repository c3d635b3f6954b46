package gemini

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatSession holds one conversation bound to a system instruction. Sessions
// are explicit objects created by NewChatSession and passed by the caller
// into every send; there is no process-wide current conversation.
type ChatSession struct {
	client  *Client
	system  string
	mu      sync.Mutex
	history []chatContent
}

// NewChatSession starts a conversation seeded with a system instruction.
func (c *Client) NewChatSession(systemInstruction string) *ChatSession {
	return &ChatSession{
		client: c,
		system: systemInstruction,
	}
}

// StreamMessage sends one user turn and streams the reply. onDelta receives
// each text fragment in order; the full reply is returned once the stream
// ends. On success both turns are appended to the session history. On error
// the user turn is not recorded, so the caller may retry the same text.
func (s *ChatSession) StreamMessage(ctx context.Context, text string, onDelta func(string)) (string, error) {
	s.mu.Lock()
	contents := make([]chatContent, len(s.history), len(s.history)+1)
	copy(contents, s.history)
	s.mu.Unlock()

	contents = append(contents, chatContent{Parts: []chatPart{{Text: text}}, Role: RoleUser})

	payload := generateRequest{
		Contents: contents,
		SystemInstruction: &chatContent{
			Parts: []chatPart{{Text: s.system}},
		},
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:streamGenerateContent?alt=sse", s.client.BaseURL, s.client.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-goog-api-key", s.client.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := s.client.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		var ae apiErrorBody
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(res.Body)
		_ = json.Unmarshal(buf.Bytes(), &ae)
		return "", classifyError(res.StatusCode, ae.Error.Status, firstNonEmpty(ae.Error.Message, buf.String()))
	}

	var reply strings.Builder
	scanner := bufio.NewScanner(res.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" || data == "[DONE]" {
			continue
		}

		var chunk generateResponse
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			continue
		}
		for _, cand := range chunk.Candidates {
			for _, part := range cand.Content.Parts {
				if part.Text == "" {
					continue
				}
				reply.WriteString(part.Text)
				if onDelta != nil {
					onDelta(part.Text)
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("stream interrupted: %w", err)
	}

	full := reply.String()

	s.mu.Lock()
	s.history = append(s.history,
		chatContent{Parts: []chatPart{{Text: text}}, Role: RoleUser},
		chatContent{Parts: []chatPart{{Text: full}}, Role: RoleModel},
	)
	s.mu.Unlock()

	return full, nil
}

// HistoryLen reports how many turns the session has recorded.
func (s *ChatSession) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}
