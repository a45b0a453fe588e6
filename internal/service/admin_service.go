package service

import (
	"context"
	"strings"

	"adorder-be/internal/dto"
	"adorder-be/internal/entity"
	"adorder-be/internal/pkg/apperror"
	"adorder-be/internal/pkg/logger"
	"adorder-be/internal/repository/specification"
	"adorder-be/internal/repository/unitofwork"
	"adorder-be/pkg/admin/user"
	"adorder-be/pkg/events"

	"github.com/google/uuid"
)

type IAdminService interface {
	// User Management
	CreateUser(ctx context.Context, principal entity.Principal, req dto.AdminCreateUserRequest) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, principal entity.Principal, page, limit int, tier string) (*dto.PaginatedResponse[dto.UserResponse], error)

	// Ledger
	AdjustBalance(ctx context.Context, principal entity.Principal, userId uuid.UUID, req dto.AdjustBalanceRequest) (*dto.AdjustBalanceResponse, error)

	// Logs
	GetSystemLogs(ctx context.Context, principal entity.Principal, req dto.LogListRequest) ([]logger.LogEntry, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger

	// Domain Components
	userManager    *user.Manager
	eventPublisher events.Publisher
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
	userManager *user.Manager,
	eventPublisher events.Publisher,
) IAdminService {
	return &adminService{
		uowFactory:     uowFactory,
		logger:         logger,
		userManager:    userManager,
		eventPublisher: eventPublisher,
	}
}

// ============================================================================
// User Management
// ============================================================================

func (s *adminService) CreateUser(ctx context.Context, principal entity.Principal, req dto.AdminCreateUserRequest) (*dto.UserResponse, error) {
	if !principal.Can(entity.CapManageUsers) {
		return nil, apperror.Forbidden("admin access required")
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	created, err := s.userManager.Create(ctx, uow, req)
	if err != nil {
		return nil, err
	}
	res := toUserResponse(created)
	return &res, nil
}

func (s *adminService) ListUsers(ctx context.Context, principal entity.Principal, page, limit int, tier string) (*dto.PaginatedResponse[dto.UserResponse], error) {
	if !principal.Can(entity.CapManageUsers) {
		return nil, apperror.Forbidden("admin access required")
	}
	if tier != "" && !entity.UserTier(tier).Valid() {
		return nil, apperror.InvalidArgument("invalid tier filter")
	}
	page, limit = normalizePage(page, limit, 20, 100)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	users, total, err := s.userManager.FindAll(ctx, uow, page, limit, tier)
	if err != nil {
		return nil, err
	}
	res := &dto.PaginatedResponse[dto.UserResponse]{
		Items: make([]dto.UserResponse, 0, len(users)),
		Total: total,
		Page:  page,
		Limit: limit,
	}
	for _, u := range users {
		res.Items = append(res.Items, toUserResponse(u))
	}
	return res, nil
}

// ============================================================================
// Ledger
// ============================================================================

// AdjustBalance writes an admin_adjust entry. Unlike system debits it may take
// the balance below zero.
func (s *adminService) AdjustBalance(ctx context.Context, principal entity.Principal, userId uuid.UUID, req dto.AdjustBalanceRequest) (*dto.AdjustBalanceResponse, error) {
	if !principal.Can(entity.CapAdjustBalance) {
		return nil, apperror.Forbidden("admin access required")
	}
	memo := strings.TrimSpace(req.Memo)
	if memo == "" {
		return nil, apperror.InvalidArgument("memo is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	target, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if target == nil {
		return nil, apperror.NotFound("user not found")
	}

	entry, err := AppendEntry(ctx, uow.LedgerRepository(), LedgerWrite{
		UserId: userId,
		Type:   entity.TransactionTypeAdminAdjust,
		Amount: req.Amount,
		Memo:   memo,
	})
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}

	s.logger.Info("ADMIN", "Balance adjusted", map[string]interface{}{
		"userId":  userId.String(),
		"adminId": principal.UserID.String(),
		"amount":  entry.Amount,
	})
	s.eventPublisher.PublishBalanceAdjusted(ctx, userId, principal.UserID, entry.Amount, entry.BalanceAfter, memo)

	return &dto.AdjustBalanceResponse{
		Entry:      toLedgerEntryResponse(entry),
		NewBalance: entry.BalanceAfter,
	}, nil
}

// ============================================================================
// Logs
// ============================================================================

func (s *adminService) GetSystemLogs(ctx context.Context, principal entity.Principal, req dto.LogListRequest) ([]logger.LogEntry, error) {
	if !principal.IsAdmin() {
		return nil, apperror.Forbidden("admin access required")
	}
	_, limit := normalizePage(1, req.Limit, 50, 500)
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}
	logs, err := s.logger.GetLogs(req.Level, limit, offset)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return logs, nil
}
