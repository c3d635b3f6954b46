package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bible-study-be/internal/pkg/logger"
)

const keyPrefix = "study:"

// Store wraps a KV with JSON encoding and the corruption guard. Reads never
// fail the caller: a missing, unreadable, or corrupt value is reported as a
// plain miss, and corrupt values are deleted so the next write starts clean.
type Store struct {
	kv        KV
	logger    logger.ILogger
	onCorrupt func(key string)
}

func NewStore(kv KV, log logger.ILogger) *Store {
	return &Store{
		kv:     kv,
		logger: log,
	}
}

// OnCorruption registers fn to run exactly once for each corrupt value a read
// drops. Used to surface a non-blocking notice; the read still misses.
func (s *Store) OnCorruption(fn func(key string)) {
	s.onCorrupt = fn
}

func storeKey(key string) string {
	return fmt.Sprintf("%s%s", keyPrefix, key)
}

// ReadJSON loads and decodes the value at key. The second return is false on
// any miss, including a corrupt blob.
func ReadJSON[T any](ctx context.Context, s *Store, key string) (*T, bool) {
	raw, err := s.kv.Get(ctx, storeKey(key))
	if err != nil {
		if !errors.Is(err, ErrKeyMissing) {
			s.logger.Warn("localstore", "read failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		return nil, false
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		s.logger.Warn("localstore", "corrupt value dropped", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		if delErr := s.kv.Delete(ctx, storeKey(key)); delErr != nil {
			s.logger.Warn("localstore", "failed to drop corrupt value", map[string]interface{}{
				"key":   key,
				"error": delErr.Error(),
			})
		}
		if s.onCorrupt != nil {
			s.onCorrupt(key)
		}
		return nil, false
	}

	return &value, true
}

// WriteJSON encodes and stores the value at key.
func WriteJSON(ctx context.Context, s *Store, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for %s: %w", key, err)
	}
	return s.kv.Set(ctx, storeKey(key), string(raw))
}

// Delete removes the value at key. A missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.kv.Delete(ctx, storeKey(key))
	if errors.Is(err, ErrKeyMissing) {
		return nil
	}
	return err
}
