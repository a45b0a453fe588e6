package controller

import (
	"adorder-be/internal/dto"
	"adorder-be/internal/pkg/serverutils"
	"adorder-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
	Dashboard(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
	auth    fiber.Handler
}

func NewAuthController(service service.IAuthService, auth fiber.Handler) IAuthController {
	return &authController{service: service, auth: auth}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/login", c.Login)
	h.Get("/me", c.auth, c.Me)

	r.Get("/dashboard", c.auth, c.Dashboard)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.Login(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	principal, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.Me(ctx.UserContext(), principal)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *authController) Dashboard(ctx *fiber.Ctx) error {
	principal, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.Dashboard(ctx.UserContext(), principal)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}
