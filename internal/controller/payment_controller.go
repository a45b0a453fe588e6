package controller

import (
	"adorder-be/internal/dto"
	"adorder-be/internal/pkg/apperror"
	"adorder-be/internal/pkg/serverutils"
	"adorder-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Callback(ctx *fiber.Ctx) error
}

type paymentController struct {
	service service.IPaymentService
	auth    fiber.Handler
}

func NewPaymentController(service service.IPaymentService, auth fiber.Handler) IPaymentController {
	return &paymentController{service: service, auth: auth}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/payment")
	// Gateway notifications are authenticated by signature, not by token.
	h.Post("/callback", c.Callback)

	// Protected Routes
	h.Post("/", c.auth, c.Create)
	h.Get("/", c.auth, c.List)
}

func (c *paymentController) Create(ctx *fiber.Ctx) error {
	principal, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return err
	}
	var req dto.CreatePaymentRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.CreatePayment(ctx.UserContext(), principal, &req, ctx.IP(), ctx.Get(fiber.HeaderUserAgent))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment created", res))
}

func (c *paymentController) List(ctx *fiber.Ctx) error {
	principal, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return err
	}
	var req dto.PaymentListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return apperror.InvalidArgument("invalid query parameters")
	}
	res, err := c.service.ListPayments(ctx.UserContext(), principal, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *paymentController) Callback(ctx *fiber.Ctx) error {
	var req dto.PaymentCallbackRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.HandleCallback(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("OK", res))
}
