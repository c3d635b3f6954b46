package controller

import (
	"errors"
	"strconv"

	"bible-study-be/internal/dto"
	"bible-study-be/internal/pkg/serverutils"
	"bible-study-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChapterController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
}

type chapterController struct {
	chapterService service.IChapterService
	profileService service.IProfileService
}

func NewChapterController(chapterService service.IChapterService, profileService service.IProfileService) IChapterController {
	return &chapterController{
		chapterService: chapterService,
		profileService: profileService,
	}
}

func (c *chapterController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/study/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("chapter", c.Show)
}

// Show serves GET /study/v1/chapter?book=Genesis&chapter=1. Without query
// parameters it falls back to the user's read-through position.
func (c *chapterController) Show(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	book := ctx.Query("book")
	chapter, _ := strconv.Atoi(ctx.Query("chapter"))
	translation := ctx.Query("translation")

	if book == "" {
		ref, err := c.profileService.ReadThroughChapter(ctx.Context(), userId)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "book and chapter are required"))
		}
		book = ref.Book
		chapter = ref.Chapter
	}

	bundle, key, cached, err := c.chapterService.GetChapter(ctx.Context(), userId, book, chapter, translation)
	if err != nil {
		if errors.Is(err, service.ErrInvalidReference) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid chapter reference"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Chapter content", dto.ChapterResponse{
		Book:     book,
		Chapter:  chapter,
		CacheKey: key,
		Cached:   cached,
		Content:  bundle,
	}))
}
