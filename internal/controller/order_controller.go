package controller

import (
	"adorder-be/internal/dto"
	"adorder-be/internal/pkg/serverutils"
	"adorder-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOrderController interface {
	RegisterRoutes(r fiber.Router)
	Confirm(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	GetItem(ctx *fiber.Ctx) error
	ListMessages(ctx *fiber.Ctx) error
	PostMessage(ctx *fiber.Ctx) error
	DeleteMessage(ctx *fiber.Ctx) error
}

type orderController struct {
	service        service.IOrderService
	messageService service.IMessageService
	auth           fiber.Handler
}

func NewOrderController(service service.IOrderService, messageService service.IMessageService, auth fiber.Handler) IOrderController {
	return &orderController{
		service:        service,
		messageService: messageService,
		auth:           auth,
	}
}

func (c *orderController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/orders", c.auth)
	h.Post("/confirm", c.Confirm)
	h.Get("/", c.List)
	h.Get("/items/:id", c.GetItem)
	h.Get("/items/:id/messages", c.ListMessages)
	h.Post("/items/:id/messages", c.PostMessage)
	h.Delete("/items/:id/messages/:messageId", c.DeleteMessage)
	h.Get("/:id", c.Get)
}

func (c *orderController) Confirm(ctx *fiber.Ctx) error {
	principal, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return err
	}
	var req dto.ConfirmOrderRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.ConfirmOrder(ctx.UserContext(), principal, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Order confirmed", res))
}

func (c *orderController) List(ctx *fiber.Ctx) error {
	principal, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.ListOrders(ctx.UserContext(), principal)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *orderController) Get(ctx *fiber.Ctx) error {
	principal, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}
	res, err := c.service.GetOrder(ctx.UserContext(), principal, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *orderController) GetItem(ctx *fiber.Ctx) error {
	principal, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}
	res, err := c.service.GetOrderItem(ctx.UserContext(), principal, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *orderController) ListMessages(ctx *fiber.Ctx) error {
	principal, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}
	res, err := c.messageService.ListMessages(ctx.UserContext(), principal, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *orderController) PostMessage(ctx *fiber.Ctx) error {
	principal, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.PostMessageRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.messageService.PostMessage(ctx.UserContext(), principal, id, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Message sent", res))
}

func (c *orderController) DeleteMessage(ctx *fiber.Ctx) error {
	principal, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}
	messageId, err := serverutils.ParseUUIDParam(ctx, "messageId")
	if err != nil {
		return err
	}
	if err := c.messageService.DeleteMessage(ctx.UserContext(), principal, id, messageId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Message deleted", nil))
}
