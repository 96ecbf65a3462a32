package mapper

import (
	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/model"
)

type OrderMapper struct {
	users *UserMapper
	milks *MilkMapper
}

func NewOrderMapper() *OrderMapper {
	return &OrderMapper{users: NewUserMapper(), milks: NewMilkMapper()}
}

func (m *OrderMapper) ToEntity(o *model.Order) *entity.Order {
	if o == nil {
		return nil
	}
	e := &entity.Order{
		Id:              o.Id,
		CustomerId:      o.CustomerId,
		SellerId:        o.SellerId,
		MilkId:          o.MilkId,
		OrderType:       entity.OrderType(o.OrderType),
		DeliveryDate:    o.DeliveryDate,
		Quantity:        o.Quantity,
		PricePerLiter:   o.PricePerLiter,
		TotalAmount:     o.TotalAmount,
		Status:          entity.OrderStatus(o.Status),
		SubscriptionId:  o.SubscriptionId,
		DeliveryAddress: addressToEntity(o.DeliveryAddress),
		Notes:           o.Notes,
		CancelledAt:     o.CancelledAt,
		CancelReason:    o.CancelReason,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Customer:        m.users.ToEntity(o.Customer),
		Seller:          m.users.ToEntity(o.Seller),
		Milk:            m.milks.ToEntity(o.Milk),
	}
	if o.Subscription != nil {
		e.Subscription = NewSubscriptionMapper().ToEntity(o.Subscription)
	}
	return e
}

func (m *OrderMapper) ToModel(o *entity.Order) *model.Order {
	if o == nil {
		return nil
	}
	return &model.Order{
		Id:              o.Id,
		CustomerId:      o.CustomerId,
		SellerId:        o.SellerId,
		MilkId:          o.MilkId,
		OrderType:       string(o.OrderType),
		DeliveryDate:    o.DeliveryDate,
		Quantity:        o.Quantity,
		PricePerLiter:   o.PricePerLiter,
		TotalAmount:     o.TotalAmount,
		Status:          string(o.Status),
		SubscriptionId:  o.SubscriptionId,
		DeliveryAddress: addressToModel(o.DeliveryAddress),
		Notes:           o.Notes,
		CancelledAt:     o.CancelledAt,
		CancelReason:    o.CancelReason,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func (m *OrderMapper) ToEntities(orders []*model.Order) []*entity.Order {
	result := make([]*entity.Order, len(orders))
	for i, o := range orders {
		result[i] = m.ToEntity(o)
	}
	return result
}

func (m *OrderMapper) ToModels(orders []*entity.Order) []*model.Order {
	result := make([]*model.Order, len(orders))
	for i, o := range orders {
		result[i] = m.ToModel(o)
	}
	return result
}
