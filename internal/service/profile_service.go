package service

import (
	"context"
	"errors"

	"bible-study-be/internal/constant"
	"bible-study-be/internal/entity"
	"bible-study-be/internal/pkg/logger"
	"bible-study-be/internal/repository/contract"
	"bible-study-be/pkg/canon"
)

type IProfileService interface {
	GetProfile(ctx context.Context, userId string) (*entity.UserData, error)
	UpdateUsername(ctx context.Context, userId, username string) (*entity.UserData, error)
	SetStudyMode(ctx context.Context, userId string, mode entity.StudyMode) (*entity.UserData, error)
	SetTranslation(ctx context.Context, userId, translation string) (*entity.UserData, error)
	SelectChapter(ctx context.Context, userId, book string, chapter int) (*entity.UserData, error)
	ClearSelectedChapter(ctx context.Context, userId string) (*entity.UserData, error)
	ToggleBookmark(ctx context.Context, userId, book string, chapter int) (*entity.UserData, error)
	ToggleCompleted(ctx context.Context, userId, book string, chapter int) (*entity.UserData, error)
	SaveNote(ctx context.Context, userId, book string, chapter int, text string) (*entity.UserData, error)
	DeleteNote(ctx context.Context, userId, book string, chapter int) (*entity.UserData, error)
	// ReadThroughChapter resolves the user's current position in the whole
	// canon walk.
	ReadThroughChapter(ctx context.Context, userId string) (entity.ChapterRef, error)
}

var ErrInvalidStudyMode = errors.New("invalid study mode")

type profileService struct {
	profiles  contract.ProfileRepository
	publisher IPublisherService
	logger    logger.ILogger
}

func NewProfileService(profiles contract.ProfileRepository, publisher IPublisherService, log logger.ILogger) IProfileService {
	return &profileService{
		profiles:  profiles,
		publisher: publisher,
		logger:    log,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userId string) (*entity.UserData, error) {
	return s.profiles.Fetch(ctx, userId)
}

func (s *profileService) UpdateUsername(ctx context.Context, userId, username string) (*entity.UserData, error) {
	data, err := s.profiles.Fetch(ctx, userId)
	if err != nil {
		return nil, err
	}
	if username == "" {
		username = constant.DefaultUsername
	}
	if err := s.profiles.Update(ctx, userId, &entity.ProfilePatch{Username: &username}); err != nil {
		return nil, err
	}
	data.Username = username
	return data, nil
}

func (s *profileService) SetStudyMode(ctx context.Context, userId string, mode entity.StudyMode) (*entity.UserData, error) {
	if !validStudyMode(mode) {
		return nil, ErrInvalidStudyMode
	}
	data, err := s.profiles.Fetch(ctx, userId)
	if err != nil {
		return nil, err
	}
	if err := s.profiles.Update(ctx, userId, &entity.ProfilePatch{StudyMode: &mode}); err != nil {
		return nil, err
	}
	data.StudyMode = mode
	return data, nil
}

func (s *profileService) SetTranslation(ctx context.Context, userId, translation string) (*entity.UserData, error) {
	data, err := s.profiles.Fetch(ctx, userId)
	if err != nil {
		return nil, err
	}
	if translation == "" {
		translation = constant.DefaultTranslation
	}
	if err := s.profiles.Update(ctx, userId, &entity.ProfilePatch{Translation: &translation}); err != nil {
		return nil, err
	}
	data.Translation = translation
	return data, nil
}

func (s *profileService) SelectChapter(ctx context.Context, userId, book string, chapter int) (*entity.UserData, error) {
	bookRef, ok := canon.Find(book)
	if !ok || !canon.ValidRef(book, chapter) {
		return nil, ErrInvalidReference
	}
	data, err := s.profiles.Fetch(ctx, userId)
	if err != nil {
		return nil, err
	}

	ref := &entity.ChapterRef{Book: bookRef.Name, Chapter: chapter}
	patch := &entity.ProfilePatch{SelectedChapter: ref, SelectedChapterSet: true}
	if err := s.profiles.Update(ctx, userId, patch); err != nil {
		return nil, err
	}
	data.SelectedChapter = ref
	return data, nil
}

func (s *profileService) ClearSelectedChapter(ctx context.Context, userId string) (*entity.UserData, error) {
	data, err := s.profiles.Fetch(ctx, userId)
	if err != nil {
		return nil, err
	}
	if err := s.profiles.Update(ctx, userId, &entity.ProfilePatch{SelectedChapterSet: true}); err != nil {
		return nil, err
	}
	data.SelectedChapter = nil
	return data, nil
}

func (s *profileService) ToggleBookmark(ctx context.Context, userId, book string, chapter int) (*entity.UserData, error) {
	bookRef, ok := canon.Find(book)
	if !ok || !canon.ValidRef(book, chapter) {
		return nil, ErrInvalidReference
	}
	data, err := s.profiles.Fetch(ctx, userId)
	if err != nil {
		return nil, err
	}

	key := canon.ChapterKey(bookRef.Name, chapter)
	bookmarks, added := toggleKey(data.Bookmarks, key)

	if err := s.profiles.Update(ctx, userId, &entity.ProfilePatch{Bookmarks: bookmarks}); err != nil {
		return nil, err
	}
	data.Bookmarks = bookmarks

	if added {
		s.publish(ctx, constant.EventBookmarkAdded, map[string]interface{}{
			"user_id": userId,
			"chapter": key,
		})
	}
	return data, nil
}

func (s *profileService) ToggleCompleted(ctx context.Context, userId, book string, chapter int) (*entity.UserData, error) {
	bookRef, ok := canon.Find(book)
	if !ok || !canon.ValidRef(book, chapter) {
		return nil, ErrInvalidReference
	}
	data, err := s.profiles.Fetch(ctx, userId)
	if err != nil {
		return nil, err
	}

	key := canon.ChapterKey(bookRef.Name, chapter)
	completed, added := toggleKey(data.CompletedChapters, key)

	patch := &entity.ProfilePatch{CompletedChapters: completed}

	// Completing the chapter the read-through plan points at advances the
	// plan to the next one.
	if added && data.StudyMode == entity.StudyModeReadThrough {
		planBook, planChapter := canon.PlanAt(data.ReadThroughIndex)
		if canon.ChapterKey(planBook.Name, planChapter) == key {
			next := data.ReadThroughIndex + 1
			patch.ReadThroughIndex = &next
			data.ReadThroughIndex = next
		}
	}

	if err := s.profiles.Update(ctx, userId, patch); err != nil {
		return nil, err
	}
	data.CompletedChapters = completed

	if added {
		s.publish(ctx, constant.EventChapterCompleted, map[string]interface{}{
			"user_id": userId,
			"chapter": key,
		})
	}
	return data, nil
}

func (s *profileService) SaveNote(ctx context.Context, userId, book string, chapter int, text string) (*entity.UserData, error) {
	bookRef, ok := canon.Find(book)
	if !ok || !canon.ValidRef(book, chapter) {
		return nil, ErrInvalidReference
	}
	data, err := s.profiles.Fetch(ctx, userId)
	if err != nil {
		return nil, err
	}

	notes := copyNotes(data.Notes)
	notes[canon.ChapterKey(bookRef.Name, chapter)] = text

	if err := s.profiles.Update(ctx, userId, &entity.ProfilePatch{Notes: notes}); err != nil {
		return nil, err
	}
	data.Notes = notes
	return data, nil
}

func (s *profileService) DeleteNote(ctx context.Context, userId, book string, chapter int) (*entity.UserData, error) {
	bookRef, ok := canon.Find(book)
	if !ok || !canon.ValidRef(book, chapter) {
		return nil, ErrInvalidReference
	}
	data, err := s.profiles.Fetch(ctx, userId)
	if err != nil {
		return nil, err
	}

	notes := copyNotes(data.Notes)
	delete(notes, canon.ChapterKey(bookRef.Name, chapter))

	if err := s.profiles.Update(ctx, userId, &entity.ProfilePatch{Notes: notes}); err != nil {
		return nil, err
	}
	data.Notes = notes
	return data, nil
}

func (s *profileService) ReadThroughChapter(ctx context.Context, userId string) (entity.ChapterRef, error) {
	data, err := s.profiles.Fetch(ctx, userId)
	if err != nil {
		return entity.ChapterRef{}, err
	}
	book, chapter := canon.PlanAt(data.ReadThroughIndex)
	return entity.ChapterRef{Book: book.Name, Chapter: chapter}, nil
}

func (s *profileService) publish(ctx context.Context, eventType string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishStudyEvent(ctx, eventType, payload); err != nil {
		s.logger.Warn("profile_service", "failed to publish event", map[string]interface{}{
			"type": eventType, "error": err.Error(),
		})
	}
}

func validStudyMode(mode entity.StudyMode) bool {
	for _, m := range entity.StudyModes {
		if string(mode) == m {
			return true
		}
	}
	return false
}

// toggleKey removes key if present, appends it otherwise. The second return
// reports whether the key was added.
func toggleKey(keys []string, key string) ([]string, bool) {
	out := make([]string, 0, len(keys)+1)
	found := false
	for _, k := range keys {
		if k == key {
			found = true
			continue
		}
		out = append(out, k)
	}
	if !found {
		out = append(out, key)
	}
	return out, !found
}

func copyNotes(notes map[string]string) map[string]string {
	out := make(map[string]string, len(notes)+1)
	for k, v := range notes {
		out[k] = v
	}
	return out
}
