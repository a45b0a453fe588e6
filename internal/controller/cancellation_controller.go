package controller

import (
	"adorder-be/internal/dto"
	"adorder-be/internal/entity"
	"adorder-be/internal/pkg/apperror"
	"adorder-be/internal/pkg/serverutils"
	"adorder-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICancellationController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	ListMine(ctx *fiber.Ctx) error
	AdminList(ctx *fiber.Ctx) error
	AdminProcess(ctx *fiber.Ctx) error
}

type cancellationController struct {
	service service.ICancellationService
	auth    fiber.Handler
}

func NewCancellationController(service service.ICancellationService, auth fiber.Handler) ICancellationController {
	return &cancellationController{service: service, auth: auth}
}

func (c *cancellationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/cancellation-requests", c.auth)
	h.Post("/", c.Create)
	h.Get("/", c.ListMine)

	admin := r.Group("/admin/cancellation-requests", c.auth, serverutils.RequireCapability(entity.CapProcessCancellations))
	admin.Get("/", c.AdminList)
	admin.Patch("/:id", c.AdminProcess)
}

func (c *cancellationController) Create(ctx *fiber.Ctx) error {
	principal, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return err
	}
	var req dto.CreateCancellationRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.CreateRequest(ctx.UserContext(), principal, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Request submitted", res))
}

func (c *cancellationController) ListMine(ctx *fiber.Ctx) error {
	principal, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return err
	}
	var req dto.ListMyCancellationsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return apperror.InvalidArgument("invalid query parameters")
	}
	var itemId *uuid.UUID
	if req.OrderItemId != "" {
		id, err := uuid.Parse(req.OrderItemId)
		if err != nil {
			return apperror.InvalidArgument("invalid order_item_id")
		}
		itemId = &id
	}
	res, err := c.service.ListMyRequests(ctx.UserContext(), principal, itemId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *cancellationController) AdminList(ctx *fiber.Ctx) error {
	principal, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return err
	}
	var req dto.AdminCancellationListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return apperror.InvalidArgument("invalid query parameters")
	}
	res, err := c.service.ListRequests(ctx.UserContext(), principal, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *cancellationController) AdminProcess(ctx *fiber.Ctx) error {
	principal, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.ProcessCancellationRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.ProcessRequest(ctx.UserContext(), principal, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse(res.Message, res))
}
