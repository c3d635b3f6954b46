package canon

import (
	"fmt"
	"strings"
)

// CacheKey derives the deterministic key for a (book, chapter, translation)
// triple. Whitespace runs in the book name are collapsed so that every call
// site produces the identical key string.
func CacheKey(book string, chapter int, translation string) string {
	b := strings.ReplaceAll(normalizeName(book), " ", "_")
	return fmt.Sprintf("%s_%d_%s", strings.ToLower(b), chapter, strings.ToLower(translation))
}

// ChapterKey is the key used for completed-chapter sets, bookmarks and notes.
// It is translation-independent.
func ChapterKey(book string, chapter int) string {
	return fmt.Sprintf("%s %d", normalizeName(book), chapter)
}
