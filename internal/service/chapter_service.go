package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"bible-study-be/internal/constant"
	"bible-study-be/internal/entity"
	"bible-study-be/internal/pkg/logger"
	"bible-study-be/internal/repository/contract"
	"bible-study-be/internal/repository/localstore"
	"bible-study-be/internal/repository/memory"
	"bible-study-be/pkg/bibleapi"
	"bible-study-be/pkg/canon"
	"bible-study-be/pkg/gemini"
	"bible-study-be/pkg/study"
)

type IChapterService interface {
	// GetChapter returns the content bundle for (book, chapter), from cache
	// when possible and assembled on miss. An empty translation means the
	// user's preferred one. cached reports whether the bundle came from a
	// cache layer. The bundle is never nil on a nil error.
	GetChapter(ctx context.Context, userId, book string, chapter int, translation string) (*entity.ChapterContentBundle, string, bool, error)
}

// TextFetcher is the slice of the text API the orchestrator needs.
type TextFetcher interface {
	GetChapter(ctx context.Context, book string, chapter int, translation string) (*bibleapi.ChapterText, error)
}

var ErrInvalidReference = errors.New("invalid chapter reference")

// requestGuard hands out per-user sequence tokens. A token captured at the
// start of an assembly is stale once the same user starts a newer one, and
// stale assemblies must not persist their result.
type requestGuard struct {
	mu  sync.Mutex
	seq map[string]uint64
}

func newRequestGuard() *requestGuard {
	return &requestGuard{seq: map[string]uint64{}}
}

func (g *requestGuard) begin(userId string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq[userId]++
	return g.seq[userId]
}

func (g *requestGuard) current(userId string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seq[userId]
}

type chapterService struct {
	profiles  contract.ProfileRepository
	mirror    *memory.ChapterCache
	local     *localstore.Store
	texts     TextFetcher
	generator study.Generator
	publisher IPublisherService
	guard     *requestGuard
	logger    logger.ILogger
}

func NewChapterService(
	profiles contract.ProfileRepository,
	mirror *memory.ChapterCache,
	local *localstore.Store,
	texts TextFetcher,
	generator study.Generator,
	publisher IPublisherService,
	log logger.ILogger,
) IChapterService {
	return &chapterService{
		profiles:  profiles,
		mirror:    mirror,
		local:     local,
		texts:     texts,
		generator: generator,
		publisher: publisher,
		guard:     newRequestGuard(),
		logger:    log,
	}
}

func (s *chapterService) GetChapter(ctx context.Context, userId, book string, chapter int, translation string) (*entity.ChapterContentBundle, string, bool, error) {
	bookRef, ok := canon.Find(book)
	if !ok || !canon.ValidRef(book, chapter) {
		return nil, "", false, ErrInvalidReference
	}
	book = bookRef.Name

	profile := s.loadProfile(ctx, userId)
	if translation == "" {
		translation = constant.DefaultTranslation
		if profile != nil {
			translation = profile.Translation
		}
	}
	key := canon.CacheKey(book, chapter, translation)

	// 1. Process-local mirror
	if bundle, found := s.mirror.Get(key); found {
		return bundle, key, true, nil
	}

	// 2. Device-local store (guarded read; corrupt blobs count as misses)
	if bundle, found := localstore.ReadJSON[entity.ChapterContentBundle](ctx, s.local, key); found {
		s.mirror.Set(key, bundle)
		return bundle, key, true, nil
	}

	// 3. Profile-backed cache
	if profile != nil {
		if bundle, found := profile.CachedContent[key]; found {
			s.mirror.Set(key, bundle)
			if err := localstore.WriteJSON(ctx, s.local, key, bundle); err != nil {
				s.logger.Warn("chapter_service", "failed to seed local store", map[string]interface{}{
					"key": key, "error": err.Error(),
				})
			}
			return bundle, key, true, nil
		}
	}

	// 4. Full assembly
	token := s.guard.begin(userId)
	bundle, complete := s.assemble(ctx, book, chapter, translation)

	if complete && s.guard.current(userId) == token {
		s.persist(ctx, userId, profile, key, book, chapter, bundle)
	} else if complete {
		s.logger.Info("chapter_service", "assembly superseded, skipping persist", map[string]interface{}{
			"user_id": userId, "key": key,
		})
	}

	return bundle, key, false, nil
}

func (s *chapterService) loadProfile(ctx context.Context, userId string) *entity.UserData {
	profile, err := s.profiles.Fetch(ctx, userId)
	if err != nil {
		s.logger.Warn("chapter_service", "serving without profile", map[string]interface{}{
			"user_id": userId, "error": err.Error(),
		})
		return nil
	}
	return profile
}

// assemble fetches the chapter text and generates the study content. It
// always returns a renderable bundle; complete is true only when every part
// succeeded, which is the bar for caching. A text failure does not abort the
// AI calls: commentary is still useful without the raw text, so generation
// proceeds and only the verse list is synthesized.
func (s *chapterService) assemble(ctx context.Context, book string, chapter int, translation string) (*entity.ChapterContentBundle, bool) {
	text, textErr := s.texts.GetChapter(ctx, book, chapter, translation)

	verses := []entity.Verse{}
	if textErr != nil {
		s.logger.Error("chapter_service", "chapter text fetch failed", map[string]interface{}{
			"book": book, "chapter": chapter, "error": textErr.Error(),
		})
	} else {
		for _, v := range text.Verses {
			verses = append(verses, entity.Verse{
				BookId:   v.BookId,
				BookName: v.BookName,
				Chapter:  v.Chapter,
				Verse:    v.Verse,
				Text:     v.Text,
			})
		}
		if len(verses) == 0 {
			textErr = errors.New("no verses returned for this chapter")
		}
	}

	var (
		wg          sync.WaitGroup
		deepDive    *entity.DeepDiveData
		deepDiveErr error
		enrich      *entity.AllEnrichmentData
		enrichErr   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		deepDive, deepDiveErr = s.generator.GenerateDeepDive(ctx, book, chapter, verses)
	}()
	go func() {
		defer wg.Done()
		enrich, enrichErr = s.generator.GenerateEnrichments(ctx, book, chapter, verses)
	}()
	wg.Wait()

	if deepDiveErr != nil {
		s.logger.Error("chapter_service", "deep dive generation failed", map[string]interface{}{
			"book": book, "chapter": chapter, "error": deepDiveErr.Error(),
		})
		deepDive = &entity.DeepDiveData{
			Summary:             aiMessage(deepDiveErr),
			VerseAnalysis:       []entity.VerseAnalysis{},
			ReflectionQuestions: []string{},
		}
	}
	if enrichErr != nil {
		s.logger.Error("chapter_service", "enrichment generation failed", map[string]interface{}{
			"book": book, "chapter": chapter, "error": enrichErr.Error(),
		})
		enrich = entity.EmptyEnrichments()
	}

	if textErr != nil {
		verses = errorVerses(book, chapter, textMessage(textErr))
	}

	bundle := &entity.ChapterContentBundle{
		Verses:      verses,
		DeepDive:    deepDive,
		Enrichments: enrich,
	}
	return bundle, textErr == nil && deepDiveErr == nil && enrichErr == nil
}

// persist writes the completed bundle to every cache layer. Failures are
// logged and swallowed; the user already has their content.
func (s *chapterService) persist(ctx context.Context, userId string, profile *entity.UserData, key, book string, chapter int, bundle *entity.ChapterContentBundle) {
	s.mirror.Set(key, bundle)

	if err := localstore.WriteJSON(ctx, s.local, key, bundle); err != nil {
		s.logger.Warn("chapter_service", "failed to persist to local store", map[string]interface{}{
			"key": key, "error": err.Error(),
		})
	}

	if profile != nil {
		merged := make(map[string]*entity.ChapterContentBundle, len(profile.CachedContent)+1)
		for k, v := range profile.CachedContent {
			merged[k] = v
		}
		merged[key] = bundle

		patch := &entity.ProfilePatch{CachedContent: merged}
		if err := s.profiles.Update(ctx, userId, patch); err != nil {
			s.logger.Warn("chapter_service", "failed to persist to profile", map[string]interface{}{
				"user_id": userId, "key": key, "error": err.Error(),
			})
		}
	}

	if s.publisher != nil {
		err := s.publisher.PublishStudyEvent(ctx, constant.EventChapterCached, map[string]interface{}{
			"user_id":   userId,
			"cache_key": key,
			"chapter":   canon.ChapterKey(book, chapter),
		})
		if err != nil {
			s.logger.Warn("chapter_service", "failed to publish cache event", map[string]interface{}{
				"key": key, "error": err.Error(),
			})
		}
	}
}

// errorVerses synthesizes a single-entry verse list carrying a human-readable
// message. The sentinel verse number keeps it distinguishable from text.
func errorVerses(book string, chapter int, message string) []entity.Verse {
	return []entity.Verse{
		{
			BookName: book,
			Chapter:  chapter,
			Verse:    constant.ErrorVerseNumber,
			Text:     message,
		},
	}
}

func textMessage(err error) string {
	if gemini.IsQuota(err) {
		return constant.QuotaExceededMessage
	}
	if errors.Is(err, bibleapi.ErrReferenceNotFound) {
		return "This chapter could not be found in the selected translation."
	}
	return fmt.Sprintf("Could not load the chapter text right now. Please try again. (%s)", err)
}

func aiMessage(err error) string {
	if gemini.IsQuota(err) {
		return constant.QuotaExceededMessage
	}
	return "Study notes could not be generated for this chapter right now."
}
