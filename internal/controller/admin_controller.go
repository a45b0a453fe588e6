// FILE: internal/controller/admin_controller.go
package controller

import (
	"adorder-be/internal/dto"
	"adorder-be/internal/entity"
	"adorder-be/internal/pkg/apperror"
	"adorder-be/internal/pkg/serverutils"
	"adorder-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)

	// Users
	CreateUser(ctx *fiber.Ctx) error
	ListUsers(ctx *fiber.Ctx) error
	AdjustBalance(ctx *fiber.Ctx) error
	GetUserWallet(ctx *fiber.Ctx) error

	// Orders
	ListOrders(ctx *fiber.Ctx) error
	UpdateOrderStatus(ctx *fiber.Ctx) error

	// Logs
	GetLogs(ctx *fiber.Ctx) error
}

type adminController struct {
	adminService  service.IAdminService
	orderService  service.IOrderService
	ledgerService service.ILedgerService
	auth          fiber.Handler
}

func NewAdminController(adminService service.IAdminService, orderService service.IOrderService, ledgerService service.ILedgerService, auth fiber.Handler) IAdminController {
	return &adminController{
		adminService:  adminService,
		orderService:  orderService,
		ledgerService: ledgerService,
		auth:          auth,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	admin := r.Group("/admin", c.auth)

	admin.Post("/users", serverutils.RequireCapability(entity.CapManageUsers), c.CreateUser)
	admin.Get("/users", serverutils.RequireCapability(entity.CapManageUsers), c.ListUsers)
	admin.Post("/users/:id/ledger-adjustments", serverutils.RequireCapability(entity.CapAdjustBalance), c.AdjustBalance)
	admin.Get("/users/:id/wallet", serverutils.RequireCapability(entity.CapAdjustBalance), c.GetUserWallet)

	admin.Get("/orders", serverutils.RequireCapability(entity.CapViewAllOrders), c.ListOrders)
	admin.Patch("/orders/:id/status", serverutils.RequireCapability(entity.CapManageOrders), c.UpdateOrderStatus)

	admin.Get("/logs", serverutils.RequireCapability(entity.CapManageUsers), c.GetLogs)
}

func (c *adminController) CreateUser(ctx *fiber.Ctx) error {
	principal, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return err
	}
	var req dto.AdminCreateUserRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.adminService.CreateUser(ctx.UserContext(), principal, req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("User created", res))
}

func (c *adminController) ListUsers(ctx *fiber.Ctx) error {
	principal, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return err
	}
	var req dto.AdminUserListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return apperror.InvalidArgument("invalid query parameters")
	}
	res, err := c.adminService.ListUsers(ctx.UserContext(), principal, req.Page, req.Limit, req.Tier)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *adminController) AdjustBalance(ctx *fiber.Ctx) error {
	principal, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return err
	}
	userId, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.AdjustBalanceRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.adminService.AdjustBalance(ctx.UserContext(), principal, userId, req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Balance adjusted", res))
}

// GetUserWallet returns the wallet together with a reconciliation of the
// maintained balance against the ledger.
func (c *adminController) GetUserWallet(ctx *fiber.Ctx) error {
	userId, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.WalletRequest
	if err := ctx.QueryParser(&req); err != nil {
		return apperror.InvalidArgument("invalid query parameters")
	}
	wallet, err := c.ledgerService.GetWallet(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	rec, err := c.ledgerService.Reconcile(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", dto.AdminWalletResponse{Wallet: wallet, Reconcile: rec}))
}

func (c *adminController) ListOrders(ctx *fiber.Ctx) error {
	var req dto.AdminOrderListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return apperror.InvalidArgument("invalid query parameters")
	}
	res, err := c.orderService.ListAllOrders(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *adminController) UpdateOrderStatus(ctx *fiber.Ctx) error {
	principal, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return err
	}
	orderId, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateOrderStatusRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.orderService.UpdateOrderStatus(ctx.UserContext(), principal, orderId, req.Status)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Order status updated", res))
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	principal, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return err
	}
	var req dto.LogListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return apperror.InvalidArgument("invalid query parameters")
	}
	res, err := c.adminService.GetSystemLogs(ctx.UserContext(), principal, req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}
