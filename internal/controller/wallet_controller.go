package controller

import (
	"adorder-be/internal/dto"
	"adorder-be/internal/pkg/apperror"
	"adorder-be/internal/pkg/serverutils"
	"adorder-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWalletController interface {
	RegisterRoutes(r fiber.Router)
	Get(ctx *fiber.Ctx) error
}

type walletController struct {
	service service.ILedgerService
	auth    fiber.Handler
}

func NewWalletController(service service.ILedgerService, auth fiber.Handler) IWalletController {
	return &walletController{service: service, auth: auth}
}

func (c *walletController) RegisterRoutes(r fiber.Router) {
	r.Get("/wallet", c.auth, c.Get)
}

// Get returns the caller's balance and a page of ledger history.
func (c *walletController) Get(ctx *fiber.Ctx) error {
	principal, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return err
	}
	var req dto.WalletRequest
	if err := ctx.QueryParser(&req); err != nil {
		return apperror.InvalidArgument("invalid query parameters")
	}
	res, err := c.service.GetWallet(ctx.UserContext(), principal.UserID, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}
