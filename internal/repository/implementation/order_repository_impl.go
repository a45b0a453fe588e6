package implementation

import (
	"context"
	"errors"

	"adorder-be/internal/entity"
	"adorder-be/internal/mapper"
	"adorder-be/internal/model"
	"adorder-be/internal/repository/contract"
	"adorder-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type orderRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OrderMapper
}

func NewOrderRepository(db *gorm.DB) contract.OrderRepository {
	return &orderRepositoryImpl{
		db:     db,
		mapper: mapper.NewOrderMapper(),
	}
}

func (r *orderRepositoryImpl) Create(ctx context.Context, order *entity.Order) error {
	if order.Id == uuid.Nil {
		order.Id = uuid.New()
	}
	m := r.mapper.ToModel(order)
	if err := r.db.WithContext(ctx).Omit("Items", "Product").Create(m).Error; err != nil {
		return err
	}
	order.CreatedAt = m.CreatedAt
	order.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *orderRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
	var m model.Order
	query := specification.ApplyAll(r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *orderRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error) {
	return r.findAll(r.db.WithContext(ctx), specs...)
}

func (r *orderRepositoryImpl) FindAllWithItems(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error) {
	query := r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	})
	return r.findAll(query, specs...)
}

func (r *orderRepositoryImpl) findAll(db *gorm.DB, specs ...specification.Specification) ([]*entity.Order, error) {
	var rows []*model.Order
	if err := specification.ApplyAll(db, specs...).Find(&rows).Error; err != nil {
		return nil, err
	}
	orders := make([]*entity.Order, 0, len(rows))
	for _, m := range rows {
		orders = append(orders, r.mapper.ToEntity(m))
	}
	return orders, nil
}

func (r *orderRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := specification.ApplyAll(r.db.WithContext(ctx).Model(&model.Order{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *orderRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}

func (r *orderRepositoryImpl) CreateItems(ctx context.Context, items []*entity.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]*model.OrderItem, 0, len(items))
	for _, item := range items {
		if item.Id == uuid.Nil {
			item.Id = uuid.New()
		}
		rows = append(rows, r.mapper.ItemToModel(item))
	}
	if err := r.db.WithContext(ctx).Omit("Order").Create(&rows).Error; err != nil {
		return err
	}
	for i, row := range rows {
		items[i].CreatedAt = row.CreatedAt
		items[i].UpdatedAt = row.UpdatedAt
	}
	return nil
}

func (r *orderRepositoryImpl) FindItem(ctx context.Context, specs ...specification.Specification) (*entity.OrderItem, error) {
	var m model.OrderItem
	query := specification.ApplyAll(r.db.WithContext(ctx).Preload("Order"), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ItemToEntity(&m), nil
}

func (r *orderRepositoryImpl) FindItems(ctx context.Context, specs ...specification.Specification) ([]*entity.OrderItem, error) {
	var rows []*model.OrderItem
	if err := specification.ApplyAll(r.db.WithContext(ctx), specs...).Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]*entity.OrderItem, 0, len(rows))
	for _, m := range rows {
		items = append(items, r.mapper.ItemToEntity(m))
	}
	return items, nil
}

func (r *orderRepositoryImpl) UpdateItemStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Where("id = ?", id).
		Update("status", string(status))
	return res.RowsAffected, res.Error
}

func (r *orderRepositoryImpl) UpdateItemsStatusByOrder(ctx context.Context, orderId uuid.UUID, status entity.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Where("order_id = ? AND status NOT IN ?", orderId, []string{
			string(entity.OrderStatusCancelled),
			string(entity.OrderStatusRefunded),
		}).
		Update("status", string(status)).Error
}
