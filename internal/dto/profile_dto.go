package dto

import "bible-study-be/internal/entity"

type ProfileResponse struct {
	Id                string             `json:"id"`
	Username          string             `json:"username"`
	StudyMode         string             `json:"study_mode"`
	ReadThroughIndex  int                `json:"read_through_index"`
	SelectedChapter   *entity.ChapterRef `json:"selected_chapter,omitempty"`
	CompletedChapters []string           `json:"completed_chapters"`
	Bookmarks         []string           `json:"bookmarks"`
	Notes             map[string]string  `json:"notes"`
	Translation       string             `json:"translation"`
}

// NewProfileResponse flattens a UserData for the API. Cached content stays
// server-side; clients fetch chapters through the chapter endpoint.
func NewProfileResponse(data *entity.UserData) *ProfileResponse {
	if data == nil {
		return nil
	}
	return &ProfileResponse{
		Id:                data.Id,
		Username:          data.Username,
		StudyMode:         string(data.StudyMode),
		ReadThroughIndex:  data.ReadThroughIndex,
		SelectedChapter:   data.SelectedChapter,
		CompletedChapters: data.CompletedChapters,
		Bookmarks:         data.Bookmarks,
		Notes:             data.Notes,
		Translation:       data.Translation,
	}
}

type UpdateUsernameRequest struct {
	Username string `json:"username" validate:"required,min=2,max=40"`
}

type UpdateStudyModeRequest struct {
	StudyMode string `json:"study_mode" validate:"required,oneof=random browse read_through bookmarks parallel"`
}

type UpdateTranslationRequest struct {
	Translation string `json:"translation" validate:"required,min=2,max=16"`
}

type SelectChapterRequest struct {
	Book    string `json:"book" validate:"required"`
	Chapter int    `json:"chapter" validate:"required,min=1"`
}

type ChapterKeyRequest struct {
	Book    string `json:"book" validate:"required"`
	Chapter int    `json:"chapter" validate:"required,min=1"`
}

type SaveNoteRequest struct {
	Book    string `json:"book" validate:"required"`
	Chapter int    `json:"chapter" validate:"required,min=1"`
	Text    string `json:"text" validate:"required"`
}
