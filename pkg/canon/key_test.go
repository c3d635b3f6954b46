package canon

import (
	"testing"
)

func TestCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		book        string
		chapter     int
		translation string
		want        string
	}{
		{
			name:        "simple book",
			book:        "Genesis",
			chapter:     1,
			translation: "web",
			want:        "genesis_1_web",
		},
		{
			name:        "numbered book",
			book:        "1 John",
			chapter:     3,
			translation: "web",
			want:        "1_john_3_web",
		},
		{
			name:        "extra internal whitespace",
			book:        "1   John",
			chapter:     3,
			translation: "web",
			want:        "1_john_3_web",
		},
		{
			name:        "surrounding whitespace",
			book:        "  Song of Solomon ",
			chapter:     2,
			translation: "kjv",
			want:        "song_of_solomon_2_kjv",
		},
		{
			name:        "translation case folded",
			book:        "Genesis",
			chapter:     1,
			translation: "WEB",
			want:        "genesis_1_web",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CacheKey(tt.book, tt.chapter, tt.translation)
			if got != tt.want {
				t.Errorf("CacheKey() = %q, want %q", got, tt.want)
			}
			// Must be deterministic across calls.
			if again := CacheKey(tt.book, tt.chapter, tt.translation); again != got {
				t.Errorf("CacheKey() second call = %q, want %q", again, got)
			}
		})
	}
}

func TestChapterKey(t *testing.T) {
	if got := ChapterKey("1  John", 3); got != "1 John 3" {
		t.Errorf("ChapterKey() = %q, want %q", got, "1 John 3")
	}
}

func TestValidRef(t *testing.T) {
	tests := []struct {
		book    string
		chapter int
		want    bool
	}{
		{"Genesis", 1, true},
		{"Genesis", 50, true},
		{"Genesis", 51, false},
		{"Genesis", 0, false},
		{"genesis", 1, true},
		{"Opinions", 1, false},
		{"Psalms", 150, true},
		{"1 Thessalonians", 5, true},
		{"2 Thessalonians", 3, true},
		{"2 Thessalonians", 4, false},
		{"Jude", 1, true},
		{"Jude", 2, false},
	}
	for _, tt := range tests {
		if got := ValidRef(tt.book, tt.chapter); got != tt.want {
			t.Errorf("ValidRef(%q, %d) = %v, want %v", tt.book, tt.chapter, got, tt.want)
		}
	}
}

func TestPlan(t *testing.T) {
	if TotalChapters != 1189 {
		t.Fatalf("TotalChapters = %d, want 1189", TotalChapters)
	}

	book, chapter := PlanAt(0)
	if book.Name != "Genesis" || chapter != 1 {
		t.Errorf("PlanAt(0) = %s %d, want Genesis 1", book.Name, chapter)
	}

	book, chapter = PlanAt(50)
	if book.Name != "Exodus" || chapter != 1 {
		t.Errorf("PlanAt(50) = %s %d, want Exodus 1", book.Name, chapter)
	}

	// Positions after 2 Thessalonians depend on its 3-chapter count.
	book, chapter = PlanAt(1119)
	if book.Name != "1 Timothy" || chapter != 1 {
		t.Errorf("PlanAt(1119) = %s %d, want 1 Timothy 1", book.Name, chapter)
	}

	book, chapter = PlanAt(1188)
	if book.Name != "Revelation" || chapter != 22 {
		t.Errorf("PlanAt(1188) = %s %d, want Revelation 22", book.Name, chapter)
	}

	// Wraps instead of overflowing.
	book, chapter = PlanAt(1189)
	if book.Name != "Genesis" || chapter != 1 {
		t.Errorf("PlanAt(1189) = %s %d, want Genesis 1", book.Name, chapter)
	}
}
