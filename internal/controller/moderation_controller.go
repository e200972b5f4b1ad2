package controller

import (
	"direct-chat-be/internal/dto"
	"direct-chat-be/internal/pkg/serverutils"
	"direct-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IModerationController interface {
	RegisterRoutes(r fiber.Router)
	BlockUser(ctx *fiber.Ctx) error
	ReportItem(ctx *fiber.Ctx) error
}

type moderationController struct {
	moderationService service.IModerationService
	authMiddleware    fiber.Handler
}

func NewModerationController(moderationService service.IModerationService, authMiddleware fiber.Handler) IModerationController {
	return &moderationController{
		moderationService: moderationService,
		authMiddleware:    authMiddleware,
	}
}

func (c *moderationController) RegisterRoutes(r fiber.Router) {
	r.Post("/block-user", c.authMiddleware, c.BlockUser)
	r.Post("/report-item", c.authMiddleware, c.ReportItem)
}

func (c *moderationController) BlockUser(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.BlockUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.InvalidArgument("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.moderationService.BlockUser(ctx.Context(), userId, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success block user", nil))
}

func (c *moderationController) ReportItem(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.ReportItemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.InvalidArgument("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.moderationService.ReportItem(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success report item", res))
}
