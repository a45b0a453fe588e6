// FILE: internal/service/cancellation_service.go
package service

import (
	"context"
	"strings"
	"time"

	"adorder-be/internal/dto"
	"adorder-be/internal/entity"
	"adorder-be/internal/pkg/apperror"
	"adorder-be/internal/pkg/logger"
	"adorder-be/internal/repository/specification"
	"adorder-be/internal/repository/unitofwork"
	"adorder-be/pkg/database"
	"adorder-be/pkg/events"

	"github.com/google/uuid"
)

type ICancellationService interface {
	CreateRequest(ctx context.Context, principal entity.Principal, req *dto.CreateCancellationRequest) (*dto.CancellationResponse, error)
	ListMyRequests(ctx context.Context, principal entity.Principal, orderItemId *uuid.UUID) ([]*dto.CancellationResponse, error)
	ListRequests(ctx context.Context, principal entity.Principal, req *dto.AdminCancellationListRequest) (*dto.PaginatedResponse[dto.AdminCancellationResponse], error)
	ProcessRequest(ctx context.Context, principal entity.Principal, requestId uuid.UUID, req *dto.ProcessCancellationRequest) (*dto.ProcessCancellationResponse, error)
}

type cancellationService struct {
	uowFactory             unitofwork.RepositoryFactory
	eventPublisher         events.Publisher
	mailPublisher          IPublisherService
	logger                 logger.ILogger
	refundCreditOnApproval bool
}

func NewCancellationService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher events.Publisher,
	mailPublisher IPublisherService,
	log logger.ILogger,
	refundCreditOnApproval bool,
) ICancellationService {
	return &cancellationService{
		uowFactory:             uowFactory,
		eventPublisher:         eventPublisher,
		mailPublisher:          mailPublisher,
		logger:                 log,
		refundCreditOnApproval: refundCreditOnApproval,
	}
}

func (s *cancellationService) CreateRequest(ctx context.Context, principal entity.Principal, req *dto.CreateCancellationRequest) (*dto.CancellationResponse, error) {
	// 1. Validate input
	requestType := entity.CancellationRequestType(req.RequestType)
	if !requestType.Valid() {
		return nil, apperror.InvalidArgument("request_type must be one of pause, cancel, refund")
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, apperror.InvalidArgument("reason is required")
	}
	if req.OrderItemId == uuid.Nil {
		return nil, apperror.InvalidArgument("order_item_id is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// 2. Item must exist and belong to the caller
	item, err := uow.OrderRepository().FindItem(ctx, specification.ByID{ID: req.OrderItemId})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if item == nil || item.Order == nil {
		return nil, apperror.NotFound("order item not found")
	}
	if item.Order.UserId != principal.UserID {
		return nil, apperror.Forbidden("you do not own this order item")
	}

	// 3. At most one pending request per item
	pending, err := uow.CancellationRepository().FindOne(ctx,
		specification.ByOrderItemID{OrderItemID: item.Id},
		specification.ByStatus{Status: string(entity.CancellationStatusPending)},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if pending != nil {
		return nil, apperror.Conflict(apperror.ReasonAlreadyPending, "a pending request already exists for this item")
	}

	request := &entity.CancellationRequest{
		OrderItemID: item.Id,
		UserID:      principal.UserID,
		RequestType: requestType,
		Status:      entity.CancellationStatusPending,
		Reason:      reason,
		Details:     req.Details,
	}
	if err := uow.CancellationRepository().Create(ctx, request); err != nil {
		// The partial unique index catches the race the lookup above cannot.
		if database.IsUniqueViolation(err) {
			return nil, apperror.Conflict(apperror.ReasonAlreadyPending, "a pending request already exists for this item")
		}
		return nil, apperror.Internal(err)
	}

	s.eventPublisher.PublishCancellationRequested(ctx, request.ID, item.Id, principal.UserID, string(requestType))
	res := toCancellationResponse(request)
	return &res, nil
}

func (s *cancellationService) ListMyRequests(ctx context.Context, principal entity.Principal, orderItemId *uuid.UUID) ([]*dto.CancellationResponse, error) {
	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: principal.UserID},
	}
	if orderItemId != nil {
		specs = append(specs, specification.ByOrderItemID{OrderItemID: *orderItemId})
	}
	specs = append(specs, specification.OrderBy{Field: "created_at", Desc: true})

	uow := s.uowFactory.NewUnitOfWork(ctx)
	requests, err := uow.CancellationRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	res := make([]*dto.CancellationResponse, 0, len(requests))
	for _, r := range requests {
		item := toCancellationResponse(r)
		res = append(res, &item)
	}
	return res, nil
}

func (s *cancellationService) ListRequests(ctx context.Context, principal entity.Principal, req *dto.AdminCancellationListRequest) (*dto.PaginatedResponse[dto.AdminCancellationResponse], error) {
	if !principal.Can(entity.CapProcessCancellations) {
		return nil, apperror.Forbidden("admin access required")
	}
	if req.Status != "" && !entity.CancellationStatus(req.Status).Valid() {
		return nil, apperror.InvalidArgument("invalid status filter")
	}
	if req.Type != "" && !entity.CancellationRequestType(req.Type).Valid() {
		return nil, apperror.InvalidArgument("invalid type filter")
	}
	page, limit := normalizePage(req.Page, req.Limit, 20, 100)

	filters := []specification.Specification{
		specification.ByStatus{Status: req.Status},
		specification.ByRequestType{RequestType: req.Type},
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	total, err := uow.CancellationRepository().Count(ctx, filters...)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	requests, err := uow.CancellationRepository().FindAllWithDetails(ctx, append(filters,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Page(page, limit),
	)...)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	res := &dto.PaginatedResponse[dto.AdminCancellationResponse]{
		Items: make([]dto.AdminCancellationResponse, 0, len(requests)),
		Total: total,
		Page:  page,
		Limit: limit,
	}
	for _, r := range requests {
		item := dto.AdminCancellationResponse{
			CancellationResponse: toCancellationResponse(r),
			User:                 toCancellationUserInfo(r.User),
			Processor:            toCancellationUserInfo(r.Processor),
		}
		if r.OrderItem != nil {
			info := &dto.CancellationItemInfo{
				Id:         r.OrderItem.Id,
				ClientName: r.OrderItem.ClientName,
				Status:     string(r.OrderItem.Status),
				ItemPrice:  r.OrderItem.ItemPrice,
				OrderId:    r.OrderItem.OrderId,
			}
			if r.OrderItem.Order != nil {
				info.ProductName = r.OrderItem.Order.ProductName
			}
			item.OrderItem = info
		}
		res.Items = append(res.Items, item)
	}
	return res, nil
}

func (s *cancellationService) ProcessRequest(ctx context.Context, principal entity.Principal, requestId uuid.UUID, req *dto.ProcessCancellationRequest) (*dto.ProcessCancellationResponse, error) {
	// 1. Authorization and input
	if !principal.Can(entity.CapProcessCancellations) {
		return nil, apperror.Forbidden("admin access required")
	}
	var status entity.CancellationStatus
	switch req.Action {
	case entity.CancellationActionApprove:
		status = entity.CancellationStatusApproved
	case entity.CancellationActionReject:
		status = entity.CancellationStatusRejected
	default:
		return nil, apperror.InvalidArgument("action must be approve or reject")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	// 2. Request must exist and still be pending
	request, err := uow.CancellationRepository().FindOne(ctx, specification.ByID{ID: requestId})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if request == nil {
		return nil, apperror.NotFound("cancellation request not found")
	}
	if request.Status != entity.CancellationStatusPending {
		return nil, apperror.Conflict(apperror.ReasonAlreadyProcessed, "request has already been processed")
	}

	// 3. Conditional transition; a concurrent processor sees zero rows
	now := time.Now()
	affected, err := uow.CancellationRepository().MarkProcessed(ctx, requestId, status, req.AdminNotes, principal.UserID, now)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if affected == 0 {
		return nil, apperror.Conflict(apperror.ReasonAlreadyProcessed, "request has already been processed")
	}

	// 4. On approval move the item and credit refunds
	item, err := uow.OrderRepository().FindItem(ctx, specification.ByID{ID: request.OrderItemID})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if status == entity.CancellationStatusApproved {
		if item == nil {
			return nil, apperror.PartialFailure(apperror.ReasonItemUpdateFailed, "order item no longer exists", nil)
		}
		updated, err := uow.OrderRepository().UpdateItemStatus(ctx, item.Id, request.RequestType.TargetItemStatus())
		if err != nil || updated == 0 {
			s.logger.Error("CANCELLATION", "Failed to update order item status", map[string]interface{}{
				"request_id": requestId.String(),
				"item_id":    item.Id.String(),
			})
			return nil, apperror.PartialFailure(apperror.ReasonItemUpdateFailed, "failed to update order item status", err)
		}

		if request.RequestType == entity.CancellationTypeRefund && s.refundCreditOnApproval && item.ItemPrice > 0 {
			orderId := item.OrderId
			if _, err := AppendEntry(ctx, uow.LedgerRepository(), LedgerWrite{
				UserId:  request.UserID,
				Type:    entity.TransactionTypeRefund,
				Amount:  item.ItemPrice,
				OrderId: &orderId,
				Memo:    "Refund for " + item.ClientName,
			}); err != nil {
				return nil, apperror.InternalReason(apperror.ReasonLedgerWriteFailed, err)
			}
		}
	}

	processed, err := uow.CancellationRepository().FindOne(ctx, specification.ByID{ID: requestId})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	requester, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: request.UserID})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}

	s.logger.Info("CANCELLATION", "Request processed", map[string]interface{}{
		"request_id": requestId.String(),
		"action":     req.Action,
		"admin_id":   principal.UserID.String(),
	})
	s.eventPublisher.PublishCancellationProcessed(ctx, requestId, request.OrderItemID, request.UserID, string(request.RequestType), string(status))

	if requester != nil {
		clientName := ""
		if item != nil {
			clientName = item.ClientName
		}
		enqueueMail(ctx, s.mailPublisher, s.logger, dto.MailJob{
			Kind:        dto.MailKindCancellationProcessed,
			ToEmail:     requester.Email,
			ClientName:  clientName,
			RequestType: string(request.RequestType),
			Status:      string(status),
			AdminNote:   req.AdminNotes,
		})
	}

	message := "Request rejected"
	if status == entity.CancellationStatusApproved {
		message = "Request approved"
	}
	return &dto.ProcessCancellationResponse{
		Request: toCancellationResponse(processed),
		Message: message,
	}, nil
}

func toCancellationResponse(r *entity.CancellationRequest) dto.CancellationResponse {
	return dto.CancellationResponse{
		Id:          r.ID,
		OrderItemId: r.OrderItemID,
		UserId:      r.UserID,
		RequestType: string(r.RequestType),
		Status:      string(r.Status),
		Reason:      r.Reason,
		Details:     r.Details,
		AdminNote:   r.AdminNote,
		ProcessedAt: r.ProcessedAt,
		ProcessedBy: r.ProcessedBy,
		CreatedAt:   r.CreatedAt,
	}
}

func toCancellationUserInfo(u *entity.User) *dto.CancellationUserInfo {
	if u == nil {
		return nil
	}
	return &dto.CancellationUserInfo{
		Id:          u.Id,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CompanyName: u.CompanyName,
	}
}
