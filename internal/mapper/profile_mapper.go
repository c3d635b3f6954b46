package mapper

import (
	"encoding/json"
	"time"

	"bible-study-be/internal/constant"
	"bible-study-be/internal/entity"
	"bible-study-be/pkg/normalize"
)

// ProfileMapper converts between the backend's wire representation of a
// profile row and the validated entity.UserData record. DecodeRow is total:
// whatever shape the backend returns, the result has every container field
// present and every enum valid.
type ProfileMapper struct{}

func NewProfileMapper() *ProfileMapper {
	return &ProfileMapper{}
}

// DecodeRow builds a UserData from a loosely-typed profile row.
func (m *ProfileMapper) DecodeRow(row map[string]interface{}) *entity.UserData {
	if row == nil {
		row = map[string]interface{}{}
	}

	data := &entity.UserData{
		Id:                normalize.String(row["id"], ""),
		Username:          normalize.String(row["username"], constant.DefaultUsername),
		StudyMode:         entity.StudyMode(normalize.Enum(row["study_mode"], entity.StudyModes, string(entity.StudyModeReadThrough))),
		ReadThroughIndex:  normalize.Int(row["read_through_index"], 0),
		SelectedChapter:   decodeChapterRef(row["user_selected_chapter"]),
		CompletedChapters: normalize.StringSlice(row["completed_chapters"]),
		Bookmarks:         normalize.StringSlice(row["bookmarks"]),
		Notes:             normalize.StringMap(row["notes"]),
		CachedContent:     decodeCachedContent(row["cached_content"]),
		Translation:       normalize.String(row["translation"], constant.DefaultTranslation),
	}

	if ts, ok := row["updated_at"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
			data.UpdatedAt = parsed
		}
	}

	return data
}

// decodeChapterRef trusts the nested selection only if it carries a string
// book name and a numeric chapter; anything else decodes to no selection.
func decodeChapterRef(v interface{}) *entity.ChapterRef {
	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil
	}
	book, ok := obj["book"].(string)
	if !ok || book == "" {
		return nil
	}
	chapter := normalize.Int(obj["chapter"], 0)
	if chapter < 1 {
		return nil
	}
	return &entity.ChapterRef{Book: book, Chapter: chapter}
}

// decodeCachedContent re-marshals the cached_content object and decodes it
// into typed bundles. A malformed blob yields an empty map; individual
// bundles are normalized so their containers are never nil.
func decodeCachedContent(v interface{}) map[string]*entity.ChapterContentBundle {
	out := map[string]*entity.ChapterContentBundle{}
	obj, ok := v.(map[string]interface{})
	if !ok {
		return out
	}

	raw, err := json.Marshal(obj)
	if err != nil {
		return out
	}
	var decoded map[string]*entity.ChapterContentBundle
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return out
	}

	for key, bundle := range decoded {
		if bundle == nil {
			continue
		}
		out[key] = normalizeBundle(bundle)
	}
	return out
}

// normalizeBundle guarantees the bundle invariant: verses and enrichment
// containers are present even when the stored blob omitted them.
func normalizeBundle(b *entity.ChapterContentBundle) *entity.ChapterContentBundle {
	if b.Verses == nil {
		b.Verses = []entity.Verse{}
	}
	if b.Enrichments == nil {
		b.Enrichments = entity.EmptyEnrichments()
	} else {
		if b.Enrichments.CrossReferences == nil {
			b.Enrichments.CrossReferences = []entity.CrossReference{}
		}
		if b.Enrichments.WordStudies == nil {
			b.Enrichments.WordStudies = []entity.WordStudy{}
		}
		if b.Enrichments.Interpretations == nil {
			b.Enrichments.Interpretations = []entity.Interpretation{}
		}
		if b.Enrichments.HistoricalContext.Points == nil {
			b.Enrichments.HistoricalContext.Points = []string{}
		}
		if b.Enrichments.LiteraryAnalysis.Points == nil {
			b.Enrichments.LiteraryAnalysis.Points = []string{}
		}
	}
	if b.DeepDive != nil {
		if b.DeepDive.VerseAnalysis == nil {
			b.DeepDive.VerseAnalysis = []entity.VerseAnalysis{}
		}
		if b.DeepDive.ReflectionQuestions == nil {
			b.DeepDive.ReflectionQuestions = []string{}
		}
	}
	return b
}

// EncodePatch maps a partial update to its wire field names. Fields absent
// from the patch are omitted entirely so the backend merge cannot clobber
// unrelated columns.
func (m *ProfileMapper) EncodePatch(p *entity.ProfilePatch) map[string]interface{} {
	patch := map[string]interface{}{}
	if p == nil {
		return patch
	}

	if p.Username != nil {
		patch["username"] = *p.Username
	}
	if p.StudyMode != nil {
		patch["study_mode"] = string(*p.StudyMode)
	}
	if p.ReadThroughIndex != nil {
		patch["read_through_index"] = *p.ReadThroughIndex
	}
	if p.SelectedChapterSet {
		if p.SelectedChapter != nil {
			patch["user_selected_chapter"] = map[string]interface{}{
				"book":    p.SelectedChapter.Book,
				"chapter": p.SelectedChapter.Chapter,
			}
		} else {
			patch["user_selected_chapter"] = nil
		}
	}
	if p.CompletedChapters != nil {
		patch["completed_chapters"] = p.CompletedChapters
	}
	if p.Bookmarks != nil {
		patch["bookmarks"] = p.Bookmarks
	}
	if p.Notes != nil {
		patch["notes"] = p.Notes
	}
	if p.CachedContent != nil {
		patch["cached_content"] = p.CachedContent
	}
	if p.Translation != nil {
		patch["translation"] = *p.Translation
	}

	return patch
}

// EncodeRow produces the full wire row for a freshly created profile.
func (m *ProfileMapper) EncodeRow(data *entity.UserData) map[string]interface{} {
	row := map[string]interface{}{
		"id":                 data.Id,
		"username":           data.Username,
		"study_mode":         string(data.StudyMode),
		"read_through_index": data.ReadThroughIndex,
		"completed_chapters": data.CompletedChapters,
		"bookmarks":          data.Bookmarks,
		"notes":              data.Notes,
		"cached_content":     data.CachedContent,
		"translation":        data.Translation,
	}
	if data.SelectedChapter != nil {
		row["user_selected_chapter"] = map[string]interface{}{
			"book":    data.SelectedChapter.Book,
			"chapter": data.SelectedChapter.Chapter,
		}
	} else {
		row["user_selected_chapter"] = nil
	}
	return row
}
