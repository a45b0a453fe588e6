package mapper

import (
	"encoding/json"

	"adorder-be/internal/entity"
	"adorder-be/internal/model"

	"gorm.io/datatypes"
)

type OrderMapper struct{}

func NewOrderMapper() *OrderMapper {
	return &OrderMapper{}
}

func (m *OrderMapper) ToEntity(o *model.Order) *entity.Order {
	if o == nil {
		return nil
	}
	var details entity.OrderDetails
	if len(o.OrderDetails) > 0 {
		_ = json.Unmarshal(o.OrderDetails, &details)
	}
	order := &entity.Order{
		Id:           o.Id,
		UserId:       o.UserId,
		ProductId:    o.ProductId,
		ProductName:  o.ProductName,
		UnitPrice:    o.UnitPrice,
		Quantity:     o.Quantity,
		TotalPrice:   o.TotalPrice,
		OrderDetails: details,
		UserTier:     entity.UserTier(o.UserTier),
		Status:       entity.OrderStatus(o.Status),
		ConfirmedAt:  o.ConfirmedAt,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
	for i := range o.Items {
		order.Items = append(order.Items, m.ItemToEntity(&o.Items[i]))
	}
	return order
}

func (m *OrderMapper) ToModel(o *entity.Order) *model.Order {
	if o == nil {
		return nil
	}
	raw, _ := json.Marshal(o.OrderDetails)
	return &model.Order{
		Id:           o.Id,
		UserId:       o.UserId,
		ProductId:    o.ProductId,
		ProductName:  o.ProductName,
		UnitPrice:    o.UnitPrice,
		Quantity:     o.Quantity,
		TotalPrice:   o.TotalPrice,
		OrderDetails: datatypes.JSON(raw),
		UserTier:     string(o.UserTier),
		Status:       string(o.Status),
		ConfirmedAt:  o.ConfirmedAt,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

func (m *OrderMapper) ItemToEntity(i *model.OrderItem) *entity.OrderItem {
	if i == nil {
		return nil
	}
	item := &entity.OrderItem{
		Id:          i.Id,
		OrderId:     i.OrderId,
		ClientName:  i.ClientName,
		DailyQty:    i.DailyQty,
		Weeks:       i.Weeks,
		TotalQty:    i.TotalQty,
		UnitPrice:   i.UnitPrice,
		ItemPrice:   i.ItemPrice,
		ItemDetails: FromJSON(i.ItemDetails),
		Status:      entity.OrderStatus(i.Status),
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
	if i.Order != nil {
		item.Order = m.ToEntity(i.Order)
	}
	return item
}

func (m *OrderMapper) ItemToModel(i *entity.OrderItem) *model.OrderItem {
	if i == nil {
		return nil
	}
	return &model.OrderItem{
		Id:          i.Id,
		OrderId:     i.OrderId,
		ClientName:  i.ClientName,
		DailyQty:    i.DailyQty,
		Weeks:       i.Weeks,
		TotalQty:    i.TotalQty,
		UnitPrice:   i.UnitPrice,
		ItemPrice:   i.ItemPrice,
		ItemDetails: ToJSON(i.ItemDetails),
		Status:      string(i.Status),
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}
