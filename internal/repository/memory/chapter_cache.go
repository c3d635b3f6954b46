package memory

import (
	"bible-study-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// ChapterCache is the process-local mirror of chapter content bundles, keyed
// by the canonical cache key (e.g. "genesis_1_web"). Entries never expire;
// the full canon is small enough to keep resident, and a stale bundle is
// impossible because chapter text and generated content are immutable once
// complete.
type ChapterCache struct {
	cache *cache.Cache
}

func NewChapterCache() *ChapterCache {
	return &ChapterCache{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (r *ChapterCache) Get(key string) (*entity.ChapterContentBundle, bool) {
	if x, found := r.cache.Get(key); found {
		return x.(*entity.ChapterContentBundle), true
	}
	return nil, false
}

func (r *ChapterCache) Set(key string, bundle *entity.ChapterContentBundle) {
	r.cache.Set(key, bundle, cache.NoExpiration)
}

func (r *ChapterCache) Delete(key string) {
	r.cache.Delete(key)
}

// Warm seeds the mirror from a profile's cached content in one pass.
func (r *ChapterCache) Warm(content map[string]*entity.ChapterContentBundle) {
	for key, bundle := range content {
		if bundle == nil {
			continue
		}
		r.cache.Set(key, bundle, cache.NoExpiration)
	}
}
