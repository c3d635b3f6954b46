package entity

import "time"

// StudyMode enumerates the ways a user moves through scripture.
type StudyMode string

const (
	StudyModeRandom      StudyMode = "random"
	StudyModeBrowse      StudyMode = "browse"
	StudyModeReadThrough StudyMode = "read_through"
	StudyModeBookmarks   StudyMode = "bookmarks"
	StudyModeParallel    StudyMode = "parallel"
)

// StudyModes lists every valid mode, for boundary validation.
var StudyModes = []string{
	string(StudyModeRandom),
	string(StudyModeBrowse),
	string(StudyModeReadThrough),
	string(StudyModeBookmarks),
	string(StudyModeParallel),
}

// ChapterRef identifies a chapter a user explicitly selected.
type ChapterRef struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
}

// UserData is the validated in-memory form of a user's profile row. Every
// slice and map field is guaranteed non-nil once the row has passed through
// the profile mapper.
type UserData struct {
	Id                string
	Username          string
	StudyMode         StudyMode
	ReadThroughIndex  int
	SelectedChapter   *ChapterRef
	CompletedChapters []string
	Bookmarks         []string
	Notes             map[string]string
	CachedContent     map[string]*ChapterContentBundle
	Translation       string
	UpdatedAt         time.Time
}

// ProfilePatch describes a partial profile update. Nil fields are absent and
// must never appear in the encoded wire patch; a nil slice or map means
// "leave unchanged", an empty one means "set to empty". SelectedChapterSet
// distinguishes "clear the selection" from "don't touch it".
type ProfilePatch struct {
	Username           *string
	StudyMode          *StudyMode
	ReadThroughIndex   *int
	SelectedChapter    *ChapterRef
	SelectedChapterSet bool
	CompletedChapters  []string
	Bookmarks          []string
	Notes              map[string]string
	CachedContent      map[string]*ChapterContentBundle
	Translation        *string
}
