package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bible-study-be/internal/constant"
	"bible-study-be/internal/entity"
	"bible-study-be/internal/pkg/logger"
	"bible-study-be/internal/repository/contract"
	"bible-study-be/internal/repository/memory"
	"bible-study-be/pkg/canon"

	"github.com/google/uuid"
)

type IChatService interface {
	// StartSession opens a conversation anchored to one chapter. The session
	// id is the client's handle for every later message.
	StartSession(ctx context.Context, userId, book string, chapter int) (*entity.ChatSession, error)

	// StreamMessage sends one user turn on an existing session. onDelta
	// receives reply fragments in order; the full reply is returned at the
	// end.
	StreamMessage(ctx context.Context, userId, sessionId, text string, onDelta func(string)) (string, error)
}

// StreamerFactory builds a fresh conversation bound to a system instruction.
type StreamerFactory func(systemInstruction string) entity.ChatStreamer

var ErrSessionNotFound = errors.New("chat session not found")

type chatService struct {
	sessions  *memory.ChatSessionRepository
	profiles  contract.ProfileRepository
	mirror    *memory.ChapterCache
	newStream StreamerFactory
	logger    logger.ILogger
}

func NewChatService(
	sessions *memory.ChatSessionRepository,
	profiles contract.ProfileRepository,
	mirror *memory.ChapterCache,
	newStream StreamerFactory,
	log logger.ILogger,
) IChatService {
	return &chatService{
		sessions:  sessions,
		profiles:  profiles,
		mirror:    mirror,
		newStream: newStream,
		logger:    log,
	}
}

func (s *chatService) StartSession(ctx context.Context, userId, book string, chapter int) (*entity.ChatSession, error) {
	bookRef, ok := canon.Find(book)
	if !ok || !canon.ValidRef(book, chapter) {
		return nil, ErrInvalidReference
	}
	book = bookRef.Name

	translation := constant.DefaultTranslation
	if profile, err := s.profiles.Fetch(ctx, userId); err == nil {
		translation = profile.Translation
	}

	// Anchor the conversation with the chapter text when it is already
	// cached; the reference alone carries it otherwise.
	textBlock := ""
	if bundle, found := s.mirror.Get(canon.CacheKey(book, chapter, translation)); found {
		var b strings.Builder
		b.WriteString("Chapter text:\n")
		for _, v := range bundle.Verses {
			if v.Verse == constant.ErrorVerseNumber {
				continue
			}
			fmt.Fprintf(&b, "%d. %s\n", v.Verse, strings.TrimSpace(v.Text))
		}
		textBlock = b.String()
	}

	instruction := fmt.Sprintf(constant.ChatSystemInstructionV1, book, chapter, translation, textBlock)

	session := &entity.ChatSession{
		Id:          uuid.New().String(),
		UserId:      userId,
		Book:        book,
		Chapter:     chapter,
		Translation: translation,
		CreatedAt:   time.Now(),
		Streamer:    s.newStream(instruction),
	}
	s.sessions.Save(session)

	s.logger.Info("chat_service", "session started", map[string]interface{}{
		"session_id": session.Id,
		"user_id":    userId,
		"chapter":    canon.ChapterKey(book, chapter),
	})
	return session, nil
}

func (s *chatService) StreamMessage(ctx context.Context, userId, sessionId, text string, onDelta func(string)) (string, error) {
	session, found := s.sessions.Get(sessionId)
	if !found || session.UserId != userId {
		return "", ErrSessionNotFound
	}

	reply, err := session.Streamer.StreamMessage(ctx, text, onDelta)
	if err != nil {
		s.logger.Error("chat_service", "stream failed", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return "", err
	}

	s.sessions.Touch(session)
	return reply, nil
}
