package controller

import (
	"errors"

	"ai-bookrec-be/internal/dto"
	"ai-bookrec-be/internal/pkg/serverutils"
	"ai-bookrec-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendChat(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.SendChat)
}

func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendChat(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUnknownUser) {
			return fiber.NewError(fiber.StatusUnauthorized, "등록되지 않은 사용자입니다. 먼저 사용자 등록을 해주세요.")
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}
