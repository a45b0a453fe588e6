package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"adorder-be/internal/dto"
	"adorder-be/internal/entity"
	"adorder-be/internal/pkg/apperror"
	"adorder-be/internal/pkg/logger"
	"adorder-be/internal/repository/specification"
	"adorder-be/internal/repository/unitofwork"
	"adorder-be/pkg/events"

	"github.com/google/uuid"
)

type IOrderService interface {
	ConfirmOrder(ctx context.Context, principal entity.Principal, req *dto.ConfirmOrderRequest) (*dto.ConfirmOrderResponse, error)
	GetOrder(ctx context.Context, principal entity.Principal, orderId uuid.UUID) (*dto.OrderDetailResponse, error)
	ListOrders(ctx context.Context, principal entity.Principal) ([]*dto.OrderResponse, error)
	GetOrderItem(ctx context.Context, principal entity.Principal, itemId uuid.UUID) (*dto.OrderItemDetailResponse, error)

	// Admin
	ListAllOrders(ctx context.Context, req *dto.AdminOrderListRequest) (*dto.PaginatedResponse[dto.OrderResponse], error)
	UpdateOrderStatus(ctx context.Context, principal entity.Principal, orderId uuid.UUID, status string) (*dto.OrderResponse, error)
}

type orderService struct {
	uowFactory     unitofwork.RepositoryFactory
	productService IProductService
	eventPublisher events.Publisher
	logger         logger.ILogger
}

func NewOrderService(
	uowFactory unitofwork.RepositoryFactory,
	productService IProductService,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IOrderService {
	return &orderService{
		uowFactory:     uowFactory,
		productService: productService,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

// pricedLine is a cart line after server-side recomputation.
type pricedLine struct {
	clientName string
	dailyQty   int64
	weeks      int64
	totalQty   int64
	itemPrice  int64
	details    map[string]interface{}
}

func priceCart(items []dto.ConfirmOrderItem, unitPrice int64) ([]pricedLine, error) {
	if len(items) == 0 {
		return nil, apperror.InvalidArgumentReason(apperror.ReasonEmptyCart, "cart is empty")
	}
	if unitPrice < 0 || unitPrice > entity.MaxUnitPrice {
		return nil, apperror.InvalidArgument("unitPrice is out of range")
	}
	var cartQty, cartPrice int64
	lines := make([]pricedLine, 0, len(items))
	for i, item := range items {
		name := strings.TrimSpace(item.ClientName)
		if name == "" {
			return nil, apperror.InvalidArgument(fmt.Sprintf("items[%d]: clientName is required", i))
		}
		if item.DailyCount < 0 || item.Weeks < 0 {
			return nil, apperror.InvalidArgument(fmt.Sprintf("items[%d]: dailyCount and weeks must not be negative", i))
		}
		if item.DailyCount > entity.MaxDailyCount || item.Weeks > entity.MaxWeeks {
			return nil, apperror.InvalidArgument(fmt.Sprintf("items[%d]: dailyCount or weeks exceeds the allowed maximum", i))
		}
		totalQty, ok := entity.TotalQuantity(item.DailyCount, item.Weeks)
		if !ok {
			return nil, apperror.InvalidArgument(fmt.Sprintf("items[%d]: quantity is out of range", i))
		}
		price, ok := entity.ItemPrice(totalQty, unitPrice)
		if !ok {
			return nil, apperror.InvalidArgument(fmt.Sprintf("items[%d]: price is out of range", i))
		}
		if cartQty, ok = entity.AddAmount(cartQty, totalQty); !ok {
			return nil, apperror.InvalidArgument("cart quantity is out of range")
		}
		if cartPrice, ok = entity.AddAmount(cartPrice, price); !ok {
			return nil, apperror.InvalidArgument("cart total is out of range")
		}
		if item.TotalCount != 0 && item.TotalCount != totalQty {
			return nil, apperror.InvalidArgument(fmt.Sprintf("items[%d]: totalCount does not match dailyCount × 7 × weeks", i))
		}
		if item.EstimatedPrice != 0 && item.EstimatedPrice != price {
			return nil, apperror.InvalidArgument(fmt.Sprintf("items[%d]: estimatedPrice does not match totalCount × unitPrice", i))
		}
		details := item.Details
		if details == nil {
			details = map[string]interface{}{}
		}
		lines = append(lines, pricedLine{
			clientName: name,
			dailyQty:   item.DailyCount,
			weeks:      item.Weeks,
			totalQty:   totalQty,
			itemPrice:  price,
			details:    details,
		})
	}
	return lines, nil
}

func (s *orderService) ConfirmOrder(ctx context.Context, principal entity.Principal, req *dto.ConfirmOrderRequest) (*dto.ConfirmOrderResponse, error) {
	// 1. Validate and price the cart
	lines, err := priceCart(req.Items, req.UnitPrice)
	if err != nil {
		return nil, err
	}

	// 2. Check the product and the caller's tier price
	product, err := s.productService.LoadProduct(ctx, req.ProductId)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, apperror.NotFound("product not found")
	}
	unitPrice, err := s.productService.UnitPrice(ctx, product, principal.Tier)
	if err != nil {
		return nil, err
	}
	if unitPrice != req.UnitPrice {
		e := apperror.InvalidArgumentReason(apperror.ReasonPriceMismatch, "unit price does not match the catalog price")
		e.Details = map[string]interface{}{"expected": unitPrice, "submitted": req.UnitPrice}
		return nil, e
	}
	for _, line := range lines {
		if err := ValidateItemDetails(product, line.details); err != nil {
			return nil, err
		}
	}

	var totalQty, totalPrice int64
	detailLines := make([]entity.OrderDetailLine, 0, len(lines))
	for _, line := range lines {
		totalQty += line.totalQty
		totalPrice += line.itemPrice
		detailLines = append(detailLines, entity.OrderDetailLine{
			ClientName:     line.clientName,
			DailyCount:     line.dailyQty,
			Weeks:          line.weeks,
			TotalCount:     line.totalQty,
			EstimatedPrice: line.itemPrice,
		})
	}

	// 3. One transaction: balance check, order, items, ledger debit
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	wallet, err := uow.LedgerRepository().LockWallet(ctx, principal.UserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if wallet.Balance < totalPrice {
		return nil, apperror.InsufficientBalance(totalPrice, wallet.Balance)
	}

	now := time.Now()
	order := &entity.Order{
		UserId:       principal.UserID,
		ProductId:    product.Id,
		ProductName:  product.Name,
		UnitPrice:    unitPrice,
		Quantity:     totalQty,
		TotalPrice:   totalPrice,
		OrderDetails: entity.OrderDetails{Items: detailLines},
		UserTier:     principal.Tier,
		Status:       entity.OrderStatusReceived,
		ConfirmedAt:  &now,
	}
	if err := uow.OrderRepository().Create(ctx, order); err != nil {
		return nil, apperror.Internal(err)
	}

	items := make([]*entity.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, &entity.OrderItem{
			OrderId:     order.Id,
			ClientName:  line.clientName,
			DailyQty:    line.dailyQty,
			Weeks:       line.weeks,
			TotalQty:    line.totalQty,
			UnitPrice:   unitPrice,
			ItemPrice:   line.itemPrice,
			ItemDetails: line.details,
			Status:      entity.OrderStatusReceived,
		})
	}
	if err := uow.OrderRepository().CreateItems(ctx, items); err != nil {
		s.logger.Error("ORDER", "Failed to create order items", map[string]interface{}{"order_id": order.Id.String(), "error": err.Error()})
		return nil, apperror.InternalReason(apperror.ReasonItemCreationFailed, err)
	}

	newBalance := wallet.Balance
	if totalPrice > 0 {
		entry, err := AppendEntry(ctx, uow.LedgerRepository(), LedgerWrite{
			UserId:  principal.UserID,
			Type:    entity.TransactionTypeDeduct,
			Amount:  -totalPrice,
			OrderId: &order.Id,
			Memo:    fmt.Sprintf("Order %s: %s × %d", order.Id, product.Name, len(items)),
		})
		if err != nil {
			if apperror.KindOf(err) == apperror.KindInsufficientBalance {
				return nil, err
			}
			s.logger.Error("ORDER", "Failed to write ledger entry", map[string]interface{}{"order_id": order.Id.String(), "error": err.Error()})
			return nil, apperror.InternalReason(apperror.ReasonLedgerWriteFailed, err)
		}
		newBalance = entry.BalanceAfter
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}

	s.logger.Info("ORDER", "Order confirmed", map[string]interface{}{
		"order_id":    order.Id.String(),
		"user_id":     principal.UserID.String(),
		"total_price": totalPrice,
		"item_count":  len(items),
	})
	s.eventPublisher.PublishOrderConfirmed(ctx, order.Id, principal.UserID, totalPrice, len(items))

	return &dto.ConfirmOrderResponse{
		OrderId:       order.Id,
		TotalQuantity: totalQty,
		TotalPrice:    totalPrice,
		ItemCount:     len(items),
		NewBalance:    newBalance,
	}, nil
}

func (s *orderService) GetOrder(ctx context.Context, principal entity.Principal, orderId uuid.UUID) (*dto.OrderDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	order, err := uow.OrderRepository().FindOne(ctx,
		specification.ByID{ID: orderId},
		specification.UserOwnedBy{UserID: principal.UserID},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if order == nil {
		return nil, apperror.NotFound("order not found")
	}

	start, end := orderPeriod(order.CreatedAt, order.Items)
	return &dto.OrderDetailResponse{
		OrderResponse: toOrderResponse(order),
		InputDefs:     s.inputDefsFor(ctx, order.ProductId),
		StartDate:     start,
		EndDate:       end,
	}, nil
}

func (s *orderService) ListOrders(ctx context.Context, principal entity.Principal) ([]*dto.OrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	orders, err := uow.OrderRepository().FindAllWithItems(ctx,
		specification.UserOwnedBy{UserID: principal.UserID},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	res := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		r := toOrderResponse(o)
		res = append(res, &r)
	}
	return res, nil
}

func (s *orderService) GetOrderItem(ctx context.Context, principal entity.Principal, itemId uuid.UUID) (*dto.OrderItemDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	item, err := uow.OrderRepository().FindItem(ctx, specification.ByID{ID: itemId})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if item == nil || item.Order == nil {
		return nil, apperror.NotFound("order item not found")
	}
	if item.Order.UserId != principal.UserID && !principal.Can(entity.CapViewAllOrders) {
		return nil, apperror.NotFound("order item not found")
	}

	start, end := orderPeriod(item.CreatedAt, []*entity.OrderItem{item})
	return &dto.OrderItemDetailResponse{
		OrderItemResponse: toOrderItemResponse(item),
		Order: dto.OrderSummary{
			Id:          item.Order.Id,
			ProductId:   item.Order.ProductId,
			ProductName: item.Order.ProductName,
			Status:      string(item.Order.Status),
			CreatedAt:   item.Order.CreatedAt,
		},
		InputDefs: s.inputDefsFor(ctx, item.Order.ProductId),
		StartDate: start,
		EndDate:   end,
	}, nil
}

func (s *orderService) ListAllOrders(ctx context.Context, req *dto.AdminOrderListRequest) (*dto.PaginatedResponse[dto.OrderResponse], error) {
	if req.Status != "" && !entity.OrderStatus(req.Status).Valid() {
		return nil, apperror.InvalidArgument("invalid status filter")
	}
	page, limit := normalizePage(req.Page, req.Limit, 20, 100)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	filter := specification.ByStatus{Status: req.Status}
	total, err := uow.OrderRepository().Count(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	orders, err := uow.OrderRepository().FindAllWithItems(ctx,
		filter,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Page(page, limit),
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	res := &dto.PaginatedResponse[dto.OrderResponse]{
		Items: make([]dto.OrderResponse, 0, len(orders)),
		Total: total,
		Page:  page,
		Limit: limit,
	}
	for _, o := range orders {
		res.Items = append(res.Items, toOrderResponse(o))
	}
	return res, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, principal entity.Principal, orderId uuid.UUID, status string) (*dto.OrderResponse, error) {
	if !principal.Can(entity.CapManageOrders) {
		return nil, apperror.Forbidden("admin access required")
	}
	next := entity.OrderStatus(status)
	if !next.Valid() {
		return nil, apperror.InvalidArgument("invalid status")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: orderId})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if order == nil {
		return nil, apperror.NotFound("order not found")
	}
	prev := order.Status
	if !prev.CanTransitionTo(next) {
		return nil, apperror.Conflict(apperror.ReasonInvalidTransition,
			fmt.Sprintf("cannot move order from %s to %s", prev, next))
	}

	if err := uow.OrderRepository().UpdateStatus(ctx, orderId, next); err != nil {
		return nil, apperror.Internal(err)
	}
	if err := uow.OrderRepository().UpdateItemsStatusByOrder(ctx, orderId, next); err != nil {
		return nil, apperror.Internal(err)
	}
	updated, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: orderId})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}

	s.eventPublisher.PublishOrderStatusChanged(ctx, orderId, order.UserId, string(prev), string(next))
	res := toOrderResponse(updated)
	return &res, nil
}

// inputDefsFor is best effort: an order outlives its catalog entry.
func (s *orderService) inputDefsFor(ctx context.Context, productId uuid.UUID) []dto.InputDefResponse {
	product, err := s.productService.LoadProduct(ctx, productId)
	if err != nil {
		return []dto.InputDefResponse{}
	}
	return toInputDefResponses(product.InputDefs)
}

// orderPeriod runs from start for the first item's weeks.
func orderPeriod(start time.Time, items []*entity.OrderItem) (time.Time, time.Time) {
	if len(items) == 0 {
		return start, start
	}
	days := int(items[0].Weeks) * entity.DaysPerWeek
	return start, start.AddDate(0, 0, days)
}

func toOrderItemResponse(i *entity.OrderItem) dto.OrderItemResponse {
	details := i.ItemDetails
	if details == nil {
		details = map[string]interface{}{}
	}
	return dto.OrderItemResponse{
		Id:          i.Id,
		OrderId:     i.OrderId,
		ClientName:  i.ClientName,
		DailyQty:    i.DailyQty,
		Weeks:       i.Weeks,
		TotalQty:    i.TotalQty,
		UnitPrice:   i.UnitPrice,
		ItemPrice:   i.ItemPrice,
		ItemDetails: details,
		Status:      string(i.Status),
		CreatedAt:   i.CreatedAt,
	}
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, i := range o.Items {
		items = append(items, toOrderItemResponse(i))
	}
	return dto.OrderResponse{
		Id:          o.Id,
		UserId:      o.UserId,
		ProductId:   o.ProductId,
		ProductName: o.ProductName,
		UnitPrice:   o.UnitPrice,
		Quantity:    o.Quantity,
		TotalPrice:  o.TotalPrice,
		UserTier:    string(o.UserTier),
		Status:      string(o.Status),
		ConfirmedAt: o.ConfirmedAt,
		CreatedAt:   o.CreatedAt,
		Items:       items,
	}
}
