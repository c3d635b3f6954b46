package memory

import (
	"time"

	"bible-study-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

type ChatSessionRepository struct {
	cache *cache.Cache
}

func NewChatSessionRepository() *ChatSessionRepository {
	// Sessions idle for an hour are dropped; expired items are purged
	// every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ChatSessionRepository{
		cache: c,
	}
}

func (r *ChatSessionRepository) Save(session *entity.ChatSession) {
	r.cache.Set(session.Id, session, cache.DefaultExpiration)
}

func (r *ChatSessionRepository) Get(sessionId string) (*entity.ChatSession, bool) {
	if x, found := r.cache.Get(sessionId); found {
		return x.(*entity.ChatSession), true
	}
	return nil, false
}

// Touch refreshes the idle timer on an active session.
func (r *ChatSessionRepository) Touch(session *entity.ChatSession) {
	r.cache.Set(session.Id, session, cache.DefaultExpiration)
}

func (r *ChatSessionRepository) Delete(sessionId string) {
	r.cache.Delete(sessionId)
}
