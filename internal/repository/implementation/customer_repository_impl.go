package implementation

import (
	"context"
	"errors"

	"adorder-be/internal/entity"
	"adorder-be/internal/model"
	"adorder-be/internal/repository/contract"
	"adorder-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type customerRepositoryImpl struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) contract.CustomerRepository {
	return &customerRepositoryImpl{db: db}
}

func (r *customerRepositoryImpl) Create(ctx context.Context, customer *entity.Customer) error {
	if customer.Id == uuid.Nil {
		customer.Id = uuid.New()
	}
	m := &model.Customer{
		Id:           customer.Id,
		UserId:       customer.UserId,
		BusinessName: customer.BusinessName,
		PlaceId:      customer.PlaceId,
		PlaceUrl:     customer.PlaceUrl,
		Contact:      customer.Contact,
	}
	if err := r.db.WithContext(ctx).Omit("Keywords").Create(m).Error; err != nil {
		return err
	}
	customer.CreatedAt = m.CreatedAt
	customer.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *customerRepositoryImpl) Update(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Model(&model.Customer{}).
		Where("id = ?", customer.Id).
		Updates(map[string]interface{}{
			"business_name": customer.BusinessName,
			"place_id":      customer.PlaceId,
			"place_url":     customer.PlaceUrl,
			"contact":       customer.Contact,
		}).Error
}

func (r *customerRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("customer_id = ?", id).Delete(&model.CustomerKeyword{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&model.Customer{}).Error
}

func (r *customerRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Customer, error) {
	var m model.Customer
	if err := specification.ApplyAll(r.db.WithContext(ctx), specs...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return customerToEntity(&m), nil
}

func (r *customerRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Customer, error) {
	var rows []*model.Customer
	if err := specification.ApplyAll(r.db.WithContext(ctx), specs...).Find(&rows).Error; err != nil {
		return nil, err
	}
	customers := make([]*entity.Customer, 0, len(rows))
	for _, m := range rows {
		customers = append(customers, customerToEntity(m))
	}
	return customers, nil
}

func (r *customerRepositoryImpl) CreateKeywords(ctx context.Context, keywords []*entity.CustomerKeyword) error {
	if len(keywords) == 0 {
		return nil
	}
	rows := make([]*model.CustomerKeyword, 0, len(keywords))
	for _, k := range keywords {
		if k.Id == uuid.Nil {
			k.Id = uuid.New()
		}
		rows = append(rows, &model.CustomerKeyword{Id: k.Id, CustomerId: k.CustomerId, Keyword: k.Keyword})
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return err
	}
	for i, row := range rows {
		keywords[i].CreatedAt = row.CreatedAt
	}
	return nil
}

func (r *customerRepositoryImpl) FindKeywords(ctx context.Context, specs ...specification.Specification) ([]*entity.CustomerKeyword, error) {
	var rows []*model.CustomerKeyword
	if err := specification.ApplyAll(r.db.WithContext(ctx), specs...).Find(&rows).Error; err != nil {
		return nil, err
	}
	keywords := make([]*entity.CustomerKeyword, 0, len(rows))
	for _, m := range rows {
		keywords = append(keywords, &entity.CustomerKeyword{
			Id:         m.Id,
			CustomerId: m.CustomerId,
			Keyword:    m.Keyword,
			CreatedAt:  m.CreatedAt,
		})
	}
	return keywords, nil
}

func (r *customerRepositoryImpl) DeleteKeyword(ctx context.Context, customerId, keywordId uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", keywordId, customerId).
		Delete(&model.CustomerKeyword{})
	return res.RowsAffected, res.Error
}

func customerToEntity(m *model.Customer) *entity.Customer {
	return &entity.Customer{
		Id:           m.Id,
		UserId:       m.UserId,
		BusinessName: m.BusinessName,
		PlaceId:      m.PlaceId,
		PlaceUrl:     m.PlaceUrl,
		Contact:      m.Contact,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
