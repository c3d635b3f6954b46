package controller

import (
	"errors"

	"bible-study-be/internal/dto"
	"bible-study-be/internal/entity"
	"bible-study-be/internal/pkg/serverutils"
	"bible-study-be/internal/repository/contract"
	"bible-study-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IProfileController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	UpdateUsername(ctx *fiber.Ctx) error
	SetStudyMode(ctx *fiber.Ctx) error
	SetTranslation(ctx *fiber.Ctx) error
	SelectChapter(ctx *fiber.Ctx) error
	ClearSelectedChapter(ctx *fiber.Ctx) error
	ToggleBookmark(ctx *fiber.Ctx) error
	ToggleCompleted(ctx *fiber.Ctx) error
	SaveNote(ctx *fiber.Ctx) error
	DeleteNote(ctx *fiber.Ctx) error
	ReadThroughChapter(ctx *fiber.Ctx) error
}

type profileController struct {
	profileService service.IProfileService
}

func NewProfileController(profileService service.IProfileService) IProfileController {
	return &profileController{
		profileService: profileService,
	}
}

func (c *profileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/profile/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.Show)
	h.Put("username", c.UpdateUsername)
	h.Put("study-mode", c.SetStudyMode)
	h.Put("translation", c.SetTranslation)
	h.Put("selected-chapter", c.SelectChapter)
	h.Delete("selected-chapter", c.ClearSelectedChapter)
	h.Post("bookmarks/toggle", c.ToggleBookmark)
	h.Post("completed/toggle", c.ToggleCompleted)
	h.Put("notes", c.SaveNote)
	h.Delete("notes", c.DeleteNote)
	h.Get("read-through", c.ReadThroughChapter)
}

func (c *profileController) Show(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	data, err := c.profileService.GetProfile(ctx.Context(), userId)
	if err != nil {
		return profileError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("User profile", dto.NewProfileResponse(data)))
}

func (c *profileController) UpdateUsername(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	var req dto.UpdateUsernameRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	data, err := c.profileService.UpdateUsername(ctx.Context(), userId, req.Username)
	if err != nil {
		return profileError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Username updated", dto.NewProfileResponse(data)))
}

func (c *profileController) SetStudyMode(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	var req dto.UpdateStudyModeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	data, err := c.profileService.SetStudyMode(ctx.Context(), userId, entity.StudyMode(req.StudyMode))
	if err != nil {
		return profileError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Study mode updated", dto.NewProfileResponse(data)))
}

func (c *profileController) SetTranslation(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	var req dto.UpdateTranslationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	data, err := c.profileService.SetTranslation(ctx.Context(), userId, req.Translation)
	if err != nil {
		return profileError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Translation updated", dto.NewProfileResponse(data)))
}

func (c *profileController) SelectChapter(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	var req dto.SelectChapterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	data, err := c.profileService.SelectChapter(ctx.Context(), userId, req.Book, req.Chapter)
	if err != nil {
		return profileError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Chapter selected", dto.NewProfileResponse(data)))
}

func (c *profileController) ClearSelectedChapter(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	data, err := c.profileService.ClearSelectedChapter(ctx.Context(), userId)
	if err != nil {
		return profileError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Selection cleared", dto.NewProfileResponse(data)))
}

func (c *profileController) ToggleBookmark(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	var req dto.ChapterKeyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	data, err := c.profileService.ToggleBookmark(ctx.Context(), userId, req.Book, req.Chapter)
	if err != nil {
		return profileError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Bookmark toggled", dto.NewProfileResponse(data)))
}

func (c *profileController) ToggleCompleted(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	var req dto.ChapterKeyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	data, err := c.profileService.ToggleCompleted(ctx.Context(), userId, req.Book, req.Chapter)
	if err != nil {
		return profileError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Completion toggled", dto.NewProfileResponse(data)))
}

func (c *profileController) SaveNote(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	var req dto.SaveNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	data, err := c.profileService.SaveNote(ctx.Context(), userId, req.Book, req.Chapter, req.Text)
	if err != nil {
		return profileError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Note saved", dto.NewProfileResponse(data)))
}

func (c *profileController) DeleteNote(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	var req dto.ChapterKeyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	data, err := c.profileService.DeleteNote(ctx.Context(), userId, req.Book, req.Chapter)
	if err != nil {
		return profileError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Note deleted", dto.NewProfileResponse(data)))
}

func (c *profileController) ReadThroughChapter(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	ref, err := c.profileService.ReadThroughChapter(ctx.Context(), userId)
	if err != nil {
		return profileError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Current read-through chapter", ref))
}

func profileError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, contract.ErrProfileNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Profile not found"))
	case errors.Is(err, service.ErrInvalidReference):
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid chapter reference"))
	case errors.Is(err, service.ErrInvalidStudyMode):
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid study mode"))
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
}
