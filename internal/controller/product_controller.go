package controller

import (
	"adorder-be/internal/dto"
	"adorder-be/internal/entity"
	"adorder-be/internal/pkg/apperror"
	"adorder-be/internal/pkg/serverutils"
	"adorder-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IProductController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	SetInputDefs(ctx *fiber.Ctx) error
	ListTemplates(ctx *fiber.Ctx) error
	CreateTemplate(ctx *fiber.Ctx) error
	ListPricingRules(ctx *fiber.Ctx) error
	UpsertPricingRule(ctx *fiber.Ctx) error
}

type productController struct {
	service service.IProductService
	auth    fiber.Handler
}

func NewProductController(service service.IProductService, auth fiber.Handler) IProductController {
	return &productController{service: service, auth: auth}
}

func (c *productController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/products", c.auth)
	h.Get("/", c.List)
	h.Get("/:id", c.Get)

	catalog := serverutils.RequireCapability(entity.CapManageCatalog)
	admin := r.Group("/admin", c.auth)
	admin.Post("/products", catalog, c.Create)
	admin.Put("/products/:id", catalog, c.Update)
	admin.Put("/products/:id/input-defs", catalog, c.SetInputDefs)
	admin.Get("/input-templates", catalog, c.ListTemplates)
	admin.Post("/input-templates", catalog, c.CreateTemplate)
	admin.Get("/pricing-rules", catalog, c.ListPricingRules)
	admin.Put("/pricing-rules/:tier", catalog, c.UpsertPricingRule)
}

func (c *productController) List(ctx *fiber.Ctx) error {
	principal, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return err
	}
	var req dto.ProductListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return apperror.InvalidArgument("invalid query parameters")
	}
	res, err := c.service.ListProducts(ctx.UserContext(), principal, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *productController) Get(ctx *fiber.Ctx) error {
	principal, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}
	res, err := c.service.GetProduct(ctx.UserContext(), principal, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *productController) Create(ctx *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.CreateProduct(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Product created", res))
}

func (c *productController) Update(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.ProductRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.UpdateProduct(ctx.UserContext(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Product updated", res))
}

func (c *productController) SetInputDefs(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.SetInputDefsRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.SetInputDefs(ctx.UserContext(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Input definitions updated", res))
}

func (c *productController) ListTemplates(ctx *fiber.Ctx) error {
	res, err := c.service.ListTemplates(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *productController) CreateTemplate(ctx *fiber.Ctx) error {
	var req dto.TemplateRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.CreateTemplate(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Template created", res))
}

func (c *productController) ListPricingRules(ctx *fiber.Ctx) error {
	res, err := c.service.ListPricingRules(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *productController) UpsertPricingRule(ctx *fiber.Ctx) error {
	var req dto.PricingRuleRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.UpsertPricingRule(ctx.UserContext(), ctx.Params("tier"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Pricing rule saved", res))
}
