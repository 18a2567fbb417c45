package controller

import (
	"errors"

	"ai-bookrec-be/internal/dto"
	"ai-bookrec-be/internal/pkg/serverutils"
	"ai-bookrec-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRecommendationController interface {
	RegisterRoutes(r fiber.Router)
	BookRecommend(ctx *fiber.Ctx) error
	EmbeddingRecommend(ctx *fiber.Ctx) error
}

type recommendationController struct {
	recommendationService service.IRecommendationService
}

func NewRecommendationController(recommendationService service.IRecommendationService) IRecommendationController {
	return &recommendationController{
		recommendationService: recommendationService,
	}
}

func (c *recommendationController) RegisterRoutes(r fiber.Router) {
	r.Post("/book-recommend", c.BookRecommend)
	r.Post("/book-recommend/embedding", c.EmbeddingRecommend)
}

func (c *recommendationController) BookRecommend(ctx *fiber.Ctx) error {
	var req dto.BookRecommendRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.recommendationService.BookRecommend(ctx.Context(), &req)
	if err != nil {
		return mapRecommendationError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get recommendations", res))
}

func (c *recommendationController) EmbeddingRecommend(ctx *fiber.Ctx) error {
	var req dto.EmbeddingRecommendRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.recommendationService.EmbeddingRecommend(ctx.Context(), &req)
	if err != nil {
		return mapRecommendationError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get embedding recommendations", res))
}

func mapRecommendationError(err error) error {
	switch {
	case errors.Is(err, service.ErrUnknownUser):
		return fiber.NewError(fiber.StatusUnauthorized, "등록되지 않은 사용자입니다. 먼저 사용자 등록을 해주세요.")
	case errors.Is(err, service.ErrNotReady):
		return fiber.NewError(fiber.StatusPaymentRequired, "아직 추천이 준비되지 않았어요. 대화를 조금 더 이어가 주세요.")
	case errors.Is(err, service.ErrEmptyRecommendations):
		return fiber.NewError(fiber.StatusBadRequest, "추천된 책 목록이 비어 있어요. 대화를 다시 이어가 주세요.")
	case errors.Is(err, service.ErrNoCatalogMatch):
		return fiber.NewError(fiber.StatusBadRequest, "추천된 책의 정보를 찾을 수 없어요.")
	case errors.Is(err, service.ErrNoKeywords):
		return fiber.NewError(fiber.StatusBadRequest, "아직 관심 키워드가 없어요. 대화를 먼저 시작해주세요.")
	default:
		return err
	}
}
