package service

import (
	"context"
	"errors"
	"testing"

	"bible-study-be/internal/constant"
	"bible-study-be/internal/entity"
	"bible-study-be/internal/pkg/logger"
	"bible-study-be/internal/repository/contract"
	"bible-study-be/internal/repository/localstore"
	"bible-study-be/internal/repository/memory"
	"bible-study-be/pkg/bibleapi"
	"bible-study-be/pkg/gemini"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfileRepo struct {
	data    *entity.UserData
	err     error
	patches []*entity.ProfilePatch
}

func (f *fakeProfileRepo) Fetch(ctx context.Context, userId string) (*entity.UserData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func (f *fakeProfileRepo) Insert(ctx context.Context, data *entity.UserData) (*entity.UserData, error) {
	return data, nil
}

func (f *fakeProfileRepo) Update(ctx context.Context, userId string, patch *entity.ProfilePatch) error {
	f.patches = append(f.patches, patch)
	return nil
}

type fakeTextFetcher struct {
	calls int
	err   error
}

func (f *fakeTextFetcher) GetChapter(ctx context.Context, book string, chapter int, translation string) (*bibleapi.ChapterText, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &bibleapi.ChapterText{
		Reference: "Genesis 1",
		Verses: []bibleapi.Verse{
			{BookId: "GEN", BookName: book, Chapter: chapter, Verse: 1, Text: "In the beginning"},
			{BookId: "GEN", BookName: book, Chapter: chapter, Verse: 2, Text: "And the earth was without form"},
		},
		TranslationId: translation,
	}, nil
}

type fakeGenerator struct {
	deepDiveCalls int
	enrichCalls   int
	deepDiveErr   error
	enrichErr     error
	onDeepDive    func()
}

func (f *fakeGenerator) GenerateDeepDive(ctx context.Context, book string, chapter int, verses []entity.Verse) (*entity.DeepDiveData, error) {
	f.deepDiveCalls++
	if f.onDeepDive != nil {
		f.onDeepDive()
	}
	if f.deepDiveErr != nil {
		return nil, f.deepDiveErr
	}
	return &entity.DeepDiveData{
		Summary:             "summary",
		HistoricalContext:   "context",
		VerseAnalysis:       []entity.VerseAnalysis{},
		ReflectionQuestions: []string{"q1"},
	}, nil
}

func (f *fakeGenerator) GenerateEnrichments(ctx context.Context, book string, chapter int, verses []entity.Verse) (*entity.AllEnrichmentData, error) {
	f.enrichCalls++
	if f.enrichErr != nil {
		return nil, f.enrichErr
	}
	enrich := entity.EmptyEnrichments()
	enrich.CrossReferences = []entity.CrossReference{
		{Verse: 1, Reference: "John 1:1", Text: "In the beginning was the Word", Connection: "creation"},
	}
	return enrich, nil
}

type fakePublisher struct {
	events []string
}

func (f *fakePublisher) PublishStudyEvent(ctx context.Context, eventType string, payload map[string]interface{}) error {
	f.events = append(f.events, eventType)
	return nil
}

type mapKV struct {
	values map[string]string
}

func (m *mapKV) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", localstore.ErrKeyMissing
	}
	return v, nil
}

func (m *mapKV) Set(ctx context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func (m *mapKV) Delete(ctx context.Context, key string) error {
	delete(m.values, key)
	return nil
}

type chapterFixture struct {
	svc       *chapterService
	profiles  *fakeProfileRepo
	texts     *fakeTextFetcher
	generator *fakeGenerator
	publisher *fakePublisher
	kv        *mapKV
}

func newChapterFixture() *chapterFixture {
	profiles := &fakeProfileRepo{
		data: &entity.UserData{
			Id:                "u1",
			Username:          "Dana",
			StudyMode:         entity.StudyModeReadThrough,
			CompletedChapters: []string{},
			Bookmarks:         []string{},
			Notes:             map[string]string{},
			CachedContent:     map[string]*entity.ChapterContentBundle{},
			Translation:       constant.DefaultTranslation,
		},
	}
	texts := &fakeTextFetcher{}
	generator := &fakeGenerator{}
	publisher := &fakePublisher{}
	kv := &mapKV{values: map[string]string{}}
	local := localstore.NewStore(kv, logger.NewNoopLogger())

	svc := NewChapterService(
		profiles,
		memory.NewChapterCache(),
		local,
		texts,
		generator,
		publisher,
		logger.NewNoopLogger(),
	).(*chapterService)

	return &chapterFixture{
		svc:       svc,
		profiles:  profiles,
		texts:     texts,
		generator: generator,
		publisher: publisher,
		kv:        kv,
	}
}

func TestGetChapterAssemblesAndPersistsOnMiss(t *testing.T) {
	f := newChapterFixture()

	bundle, key, fromCache, err := f.svc.GetChapter(context.Background(), "u1", "Genesis", 1, "")
	require.NoError(t, err)
	assert.Equal(t, "genesis_1_web", key)
	assert.False(t, fromCache)
	require.Len(t, bundle.Verses, 2)
	require.NotNil(t, bundle.DeepDive)
	assert.Equal(t, "summary", bundle.DeepDive.Summary)

	// All three cache layers now hold the bundle.
	_, inMirror := f.svc.mirror.Get(key)
	assert.True(t, inMirror)
	assert.Contains(t, f.kv.values, "study:"+key)
	require.Len(t, f.profiles.patches, 1)
	assert.Contains(t, f.profiles.patches[0].CachedContent, key)

	assert.Equal(t, []string{constant.EventChapterCached}, f.publisher.events)
}

func TestGetChapterCacheHitSkipsCollaborators(t *testing.T) {
	f := newChapterFixture()
	ctx := context.Background()

	_, _, _, err := f.svc.GetChapter(ctx, "u1", "Genesis", 1, "")
	require.NoError(t, err)
	require.Equal(t, 1, f.texts.calls)
	require.Equal(t, 1, f.generator.deepDiveCalls)

	// Second request is served from the mirror without touching anything.
	_, _, fromCache, err := f.svc.GetChapter(ctx, "u1", "Genesis", 1, "")
	require.NoError(t, err)
	assert.True(t, fromCache)
	assert.Equal(t, 1, f.texts.calls)
	assert.Equal(t, 1, f.generator.deepDiveCalls)
	assert.Len(t, f.profiles.patches, 1)
}

func TestGetChapterNormalizesReference(t *testing.T) {
	f := newChapterFixture()

	_, key, _, err := f.svc.GetChapter(context.Background(), "u1", "  genesis ", 1, "")
	require.NoError(t, err)
	assert.Equal(t, "genesis_1_web", key)

	// The same chapter through a differently spelled reference is a hit.
	_, _, _, err = f.svc.GetChapter(context.Background(), "u1", "GENESIS", 1, "")
	require.NoError(t, err)
	assert.Equal(t, 1, f.texts.calls)
}

func TestGetChapterRejectsInvalidReference(t *testing.T) {
	f := newChapterFixture()

	_, _, _, err := f.svc.GetChapter(context.Background(), "u1", "Genesis", 51, "")
	assert.ErrorIs(t, err, ErrInvalidReference)

	_, _, _, err = f.svc.GetChapter(context.Background(), "u1", "Hezekiah", 1, "")
	assert.ErrorIs(t, err, ErrInvalidReference)
	assert.Equal(t, 0, f.texts.calls)
}

func TestGetChapterTextFailureSynthesizesErrorBundle(t *testing.T) {
	f := newChapterFixture()
	f.texts.err = bibleapi.ErrReferenceNotFound

	bundle, key, _, err := f.svc.GetChapter(context.Background(), "u1", "Genesis", 1, "")
	require.NoError(t, err)
	require.Len(t, bundle.Verses, 1)
	assert.Equal(t, constant.ErrorVerseNumber, bundle.Verses[0].Verse)
	assert.NotEmpty(t, bundle.Verses[0].Text)

	// Generation still ran and its real output rides along with the
	// synthesized verse list.
	assert.Equal(t, 1, f.generator.deepDiveCalls)
	assert.Equal(t, 1, f.generator.enrichCalls)
	require.NotNil(t, bundle.DeepDive)
	assert.Equal(t, "summary", bundle.DeepDive.Summary)
	require.NotNil(t, bundle.Enrichments)
	assert.NotEmpty(t, bundle.Enrichments.CrossReferences)

	// Error bundles are never cached.
	_, inMirror := f.svc.mirror.Get(key)
	assert.False(t, inMirror)
	assert.Empty(t, f.kv.values)
	assert.Empty(t, f.profiles.patches)
	assert.Empty(t, f.publisher.events)
}

func TestGetChapterTextQuotaFailureUsesQuotaMessage(t *testing.T) {
	f := newChapterFixture()
	f.texts.err = errors.New("You exceeded your current quota")

	bundle, key, _, err := f.svc.GetChapter(context.Background(), "u1", "Genesis", 1, "")
	require.NoError(t, err)
	require.Len(t, bundle.Verses, 1)
	assert.Equal(t, constant.ErrorVerseNumber, bundle.Verses[0].Verse)
	assert.Equal(t, constant.QuotaExceededMessage, bundle.Verses[0].Text)

	// Enrichment content is the real data from the succeeded call.
	assert.Equal(t, 1, f.generator.enrichCalls)
	require.NotNil(t, bundle.Enrichments)
	assert.NotEmpty(t, bundle.Enrichments.CrossReferences)

	_, inMirror := f.svc.mirror.Get(key)
	assert.False(t, inMirror)
	assert.Empty(t, f.profiles.patches)
}

func TestGetChapterQuotaFailureIsNotPersisted(t *testing.T) {
	f := newChapterFixture()
	f.generator.deepDiveErr = gemini.ErrQuotaExceeded

	bundle, key, _, err := f.svc.GetChapter(context.Background(), "u1", "Genesis", 1, "")
	require.NoError(t, err)

	// The verses still render, the guide carries the quota message.
	require.Len(t, bundle.Verses, 2)
	require.NotNil(t, bundle.DeepDive)
	assert.Equal(t, constant.QuotaExceededMessage, bundle.DeepDive.Summary)

	_, inMirror := f.svc.mirror.Get(key)
	assert.False(t, inMirror)
	assert.Empty(t, f.profiles.patches)
}

func TestGetChapterGenericAIFailureIsNotPersisted(t *testing.T) {
	f := newChapterFixture()
	f.generator.enrichErr = errors.New("model unavailable")

	bundle, _, _, err := f.svc.GetChapter(context.Background(), "u1", "Genesis", 1, "")
	require.NoError(t, err)
	require.NotNil(t, bundle.Enrichments)
	assert.Empty(t, bundle.Enrichments.CrossReferences)
	assert.Empty(t, f.profiles.patches)
}

func TestGetChapterStaleAssemblyDoesNotPersist(t *testing.T) {
	f := newChapterFixture()

	// A newer request for the same user begins while generation is running.
	f.generator.onDeepDive = func() {
		f.svc.guard.begin("u1")
	}

	bundle, key, _, err := f.svc.GetChapter(context.Background(), "u1", "Genesis", 1, "")
	require.NoError(t, err)
	require.NotNil(t, bundle.DeepDive)

	// The result is returned but no layer keeps it.
	_, inMirror := f.svc.mirror.Get(key)
	assert.False(t, inMirror)
	assert.Empty(t, f.kv.values)
	assert.Empty(t, f.profiles.patches)
	assert.Empty(t, f.publisher.events)
}

func TestGetChapterServedFromProfileCache(t *testing.T) {
	f := newChapterFixture()
	cached := &entity.ChapterContentBundle{
		Verses:      []entity.Verse{{BookName: "Genesis", Chapter: 1, Verse: 1, Text: "cached"}},
		Enrichments: entity.EmptyEnrichments(),
	}
	f.profiles.data.CachedContent["genesis_1_web"] = cached

	bundle, _, fromCache, err := f.svc.GetChapter(context.Background(), "u1", "Genesis", 1, "")
	require.NoError(t, err)
	assert.True(t, fromCache)
	assert.Equal(t, "cached", bundle.Verses[0].Text)
	assert.Equal(t, 0, f.texts.calls)

	// Faster layers are seeded from the profile hit.
	_, inMirror := f.svc.mirror.Get("genesis_1_web")
	assert.True(t, inMirror)
	assert.Contains(t, f.kv.values, "study:genesis_1_web")
}

func TestGetChapterWithoutProfileStillServes(t *testing.T) {
	f := newChapterFixture()
	f.profiles.err = contract.ErrProfileNotFound

	bundle, key, _, err := f.svc.GetChapter(context.Background(), "u1", "Genesis", 1, "")
	require.NoError(t, err)
	assert.Equal(t, "genesis_1_web", key)
	require.Len(t, bundle.Verses, 2)

	// No profile to write back to, but the local layers are warm.
	assert.Empty(t, f.profiles.patches)
	_, inMirror := f.svc.mirror.Get(key)
	assert.True(t, inMirror)
}
