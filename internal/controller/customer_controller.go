package controller

import (
	"adorder-be/internal/dto"
	"adorder-be/internal/pkg/serverutils"
	"adorder-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICustomerController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	ListKeywords(ctx *fiber.Ctx) error
	AddKeywords(ctx *fiber.Ctx) error
	DeleteKeyword(ctx *fiber.Ctx) error
}

type customerController struct {
	service service.ICustomerService
	auth    fiber.Handler
}

func NewCustomerController(service service.ICustomerService, auth fiber.Handler) ICustomerController {
	return &customerController{service: service, auth: auth}
}

func (c *customerController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/customers", c.auth)
	h.Get("/", c.List)
	h.Post("/", c.Create)
	h.Get("/:id", c.Get)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)

	h.Get("/:id/keywords", c.ListKeywords)
	h.Post("/:id/keywords", c.AddKeywords)
	h.Delete("/:id/keywords/:keywordId", c.DeleteKeyword)
}

func (c *customerController) List(ctx *fiber.Ctx) error {
	principal, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.List(ctx.UserContext(), principal)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *customerController) Get(ctx *fiber.Ctx) error {
	principal, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}
	res, err := c.service.Get(ctx.UserContext(), principal, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *customerController) Create(ctx *fiber.Ctx) error {
	principal, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return err
	}
	var req dto.CustomerRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.Create(ctx.UserContext(), principal, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Customer created", res))
}

func (c *customerController) Update(ctx *fiber.Ctx) error {
	principal, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.CustomerRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.Update(ctx.UserContext(), principal, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Customer updated", res))
}

func (c *customerController) Delete(ctx *fiber.Ctx) error {
	principal, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}
	if err := c.service.Delete(ctx.UserContext(), principal, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Customer deleted", nil))
}

func (c *customerController) ListKeywords(ctx *fiber.Ctx) error {
	principal, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}
	res, err := c.service.ListKeywords(ctx.UserContext(), principal, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *customerController) AddKeywords(ctx *fiber.Ctx) error {
	principal, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.AddKeywordsRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.AddKeywords(ctx.UserContext(), principal, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Keywords added", res))
}

func (c *customerController) DeleteKeyword(ctx *fiber.Ctx) error {
	principal, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}
	keywordId, err := serverutils.ParseUUIDParam(ctx, "keywordId")
	if err != nil {
		return err
	}
	if err := c.service.DeleteKeyword(ctx.UserContext(), principal, id, keywordId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Keyword deleted", nil))
}
