package controller

import (
	"context"
	"errors"
	"os"

	"bible-study-be/internal/constant"
	"bible-study-be/internal/dto"
	"bible-study-be/internal/pkg/logger"
	"bible-study-be/internal/pkg/serverutils"
	"bible-study-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	StartSession(ctx *fiber.Ctx) error
	ServeWs(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
	logger      logger.ILogger
}

func NewChatController(chatService service.IChatService, log logger.ILogger) IChatController {
	return &chatController{
		chatService: chatService,
		logger:      log,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("session", serverutils.JwtMiddleware, c.StartSession)
	h.Get("ws", c.ServeWs)
}

func (c *chatController) StartSession(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	var req dto.StartChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	session, err := c.chatService.StartSession(ctx.Context(), userId, req.Book, req.Chapter)
	if err != nil {
		if errors.Is(err, service.ErrInvalidReference) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid chapter reference"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Chat session started", dto.StartChatResponse{
		SessionId: session.Id,
		Book:      session.Book,
		Chapter:   session.Chapter,
	}))
}

// ServeWs upgrades to a websocket and relays chat turns. Each client frame
// names its session; replies stream back as delta frames followed by a done
// frame carrying the full text.
func (c *chatController) ServeWs(ctx *fiber.Ctx) error {
	// Browsers cannot set headers on websocket dials, so the token rides the
	// query string; the header is still honored for tooling.
	tokenStr := ctx.Query("token")
	if tokenStr == "" {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("SUPABASE_JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}
	userId, _ := claims["sub"].(string)
	if userId == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing subject"})
	}

	if websocket.IsWebSocketUpgrade(ctx) {
		return websocket.New(func(conn *websocket.Conn) {
			c.chatLoop(conn, userId)
		})(ctx)
	}
	return fiber.ErrUpgradeRequired
}

func (c *chatController) chatLoop(conn *websocket.Conn, userId string) {
	for {
		var frame dto.ChatClientFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}
		if frame.SessionId == "" || frame.Text == "" {
			_ = conn.WriteJSON(dto.ChatServerFrame{Type: "error", Text: "session_id and text are required"})
			continue
		}

		onDelta := func(delta string) {
			_ = conn.WriteJSON(dto.ChatServerFrame{
				Type:      "delta",
				SessionId: frame.SessionId,
				Text:      delta,
			})
		}

		full, err := c.chatService.StreamMessage(context.Background(), userId, frame.SessionId, frame.Text, onDelta)
		if err != nil {
			// Whatever already streamed is replaced by the error message so
			// the client never renders a half answer.
			message := constant.ChatErrorMessage
			if errors.Is(err, service.ErrSessionNotFound) {
				message = "This chat session has expired. Please start a new one."
			}
			c.logger.Error("chat_controller", "stream failed", map[string]interface{}{
				"session_id": frame.SessionId,
				"error":      err.Error(),
			})
			_ = conn.WriteJSON(dto.ChatServerFrame{
				Type:      "error",
				SessionId: frame.SessionId,
				Text:      message,
			})
			continue
		}

		_ = conn.WriteJSON(dto.ChatServerFrame{
			Type:      "done",
			SessionId: frame.SessionId,
			Text:      full,
		})
	}
}
