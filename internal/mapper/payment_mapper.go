package mapper

import (
	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/model"
)

type PaymentMapper struct {
	users         *UserMapper
	orders        *OrderMapper
	subscriptions *SubscriptionMapper
}

func NewPaymentMapper() *PaymentMapper {
	return &PaymentMapper{
		users:         NewUserMapper(),
		orders:        NewOrderMapper(),
		subscriptions: NewSubscriptionMapper(),
	}
}

func (m *PaymentMapper) ToEntity(p *model.Payment) *entity.Payment {
	if p == nil {
		return nil
	}
	return &entity.Payment{
		Id:             p.Id,
		CustomerId:     p.CustomerId,
		SellerId:       p.SellerId,
		OrderId:        p.OrderId,
		SubscriptionId: p.SubscriptionId,
		Amount:         p.Amount,
		PaymentMethod:  entity.PaymentMethod(p.PaymentMethod),
		PaymentStatus:  entity.PaymentStatus(p.PaymentStatus),
		TransactionId:  p.TransactionId,
		Notes:          p.Notes,
		PaidAt:         p.PaidAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		Customer:       m.users.ToEntity(p.Customer),
		Seller:         m.users.ToEntity(p.Seller),
		Order:          m.orders.ToEntity(p.Order),
		Subscription:   m.subscriptions.ToEntity(p.Subscription),
	}
}

func (m *PaymentMapper) ToModel(p *entity.Payment) *model.Payment {
	if p == nil {
		return nil
	}
	return &model.Payment{
		Id:             p.Id,
		CustomerId:     p.CustomerId,
		SellerId:       p.SellerId,
		OrderId:        p.OrderId,
		SubscriptionId: p.SubscriptionId,
		Amount:         p.Amount,
		PaymentMethod:  string(p.PaymentMethod),
		PaymentStatus:  string(p.PaymentStatus),
		TransactionId:  p.TransactionId,
		Notes:          p.Notes,
		PaidAt:         p.PaidAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (m *PaymentMapper) ToEntities(payments []*model.Payment) []*entity.Payment {
	result := make([]*entity.Payment, len(payments))
	for i, p := range payments {
		result[i] = m.ToEntity(p)
	}
	return result
}
