package service

import (
	"context"
	"testing"

	"bible-study-be/internal/constant"
	"bible-study-be/internal/entity"
	"bible-study-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileFixture() (IProfileService, *fakeProfileRepo, *fakePublisher) {
	repo := &fakeProfileRepo{
		data: &entity.UserData{
			Id:                "u1",
			Username:          "Dana",
			StudyMode:         entity.StudyModeReadThrough,
			ReadThroughIndex:  0,
			CompletedChapters: []string{},
			Bookmarks:         []string{},
			Notes:             map[string]string{},
			CachedContent:     map[string]*entity.ChapterContentBundle{},
			Translation:       constant.DefaultTranslation,
		},
	}
	publisher := &fakePublisher{}
	return NewProfileService(repo, publisher, logger.NewNoopLogger()), repo, publisher
}

func TestToggleBookmark(t *testing.T) {
	svc, repo, publisher := newProfileFixture()
	ctx := context.Background()

	data, err := svc.ToggleBookmark(ctx, "u1", "john", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"John 3"}, data.Bookmarks)
	assert.Equal(t, []string{constant.EventBookmarkAdded}, publisher.events)

	// Toggling again removes the bookmark and publishes nothing new.
	repo.data.Bookmarks = data.Bookmarks
	data, err = svc.ToggleBookmark(ctx, "u1", "John", 3)
	require.NoError(t, err)
	assert.Empty(t, data.Bookmarks)
	assert.Len(t, publisher.events, 1)
}

func TestToggleCompletedAdvancesReadThrough(t *testing.T) {
	svc, repo, publisher := newProfileFixture()
	ctx := context.Background()

	// Genesis 1 is the plan chapter at index 0.
	data, err := svc.ToggleCompleted(ctx, "u1", "Genesis", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Genesis 1"}, data.CompletedChapters)
	assert.Equal(t, 1, data.ReadThroughIndex)
	assert.Equal(t, []string{constant.EventChapterCompleted}, publisher.events)

	require.Len(t, repo.patches, 1)
	require.NotNil(t, repo.patches[0].ReadThroughIndex)
	assert.Equal(t, 1, *repo.patches[0].ReadThroughIndex)
}

func TestToggleCompletedOffPlanDoesNotAdvance(t *testing.T) {
	svc, repo, _ := newProfileFixture()

	data, err := svc.ToggleCompleted(context.Background(), "u1", "Exodus", 5)
	require.NoError(t, err)
	assert.Equal(t, 0, data.ReadThroughIndex)
	require.Len(t, repo.patches, 1)
	assert.Nil(t, repo.patches[0].ReadThroughIndex)
}

func TestSelectAndClearChapter(t *testing.T) {
	svc, repo, _ := newProfileFixture()
	ctx := context.Background()

	data, err := svc.SelectChapter(ctx, "u1", "psalms", 23)
	require.NoError(t, err)
	require.NotNil(t, data.SelectedChapter)
	assert.Equal(t, "Psalms", data.SelectedChapter.Book)
	assert.Equal(t, 23, data.SelectedChapter.Chapter)

	data, err = svc.ClearSelectedChapter(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, data.SelectedChapter)

	// The clear is an explicit null write, not an omitted field.
	require.Len(t, repo.patches, 2)
	assert.True(t, repo.patches[1].SelectedChapterSet)
	assert.Nil(t, repo.patches[1].SelectedChapter)
}

func TestSelectChapterRejectsInvalidReference(t *testing.T) {
	svc, _, _ := newProfileFixture()

	_, err := svc.SelectChapter(context.Background(), "u1", "Genesis", 99)
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestSetStudyModeRejectsUnknownMode(t *testing.T) {
	svc, _, _ := newProfileFixture()

	_, err := svc.SetStudyMode(context.Background(), "u1", entity.StudyMode("speedrun"))
	assert.ErrorIs(t, err, ErrInvalidStudyMode)

	data, err := svc.SetStudyMode(context.Background(), "u1", entity.StudyModeBrowse)
	require.NoError(t, err)
	assert.Equal(t, entity.StudyModeBrowse, data.StudyMode)
}

func TestNotes(t *testing.T) {
	svc, repo, _ := newProfileFixture()
	ctx := context.Background()

	data, err := svc.SaveNote(ctx, "u1", "Genesis", 1, "creation")
	require.NoError(t, err)
	assert.Equal(t, "creation", data.Notes["Genesis 1"])

	repo.data.Notes = data.Notes
	data, err = svc.DeleteNote(ctx, "u1", "Genesis", 1)
	require.NoError(t, err)
	assert.NotContains(t, data.Notes, "Genesis 1")
}

func TestReadThroughChapter(t *testing.T) {
	svc, repo, _ := newProfileFixture()

	ref, err := svc.ReadThroughChapter(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.ChapterRef{Book: "Genesis", Chapter: 1}, ref)

	repo.data.ReadThroughIndex = 50
	ref, err = svc.ReadThroughChapter(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.ChapterRef{Book: "Exodus", Chapter: 1}, ref)
}
