package mapper

import (
	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/model"
)

type SubscriptionMapper struct {
	users *UserMapper
	milks *MilkMapper
}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{users: NewUserMapper(), milks: NewMilkMapper()}
}

func (m *SubscriptionMapper) ToEntity(s *model.Subscription) *entity.Subscription {
	if s == nil {
		return nil
	}
	paused := make([]entity.PausedDate, len(s.PausedDates))
	for i, p := range s.PausedDates {
		paused[i] = entity.PausedDate{Date: p.Date, PausedAt: p.PausedAt}
	}
	return &entity.Subscription{
		Id:              s.Id,
		CustomerId:      s.CustomerId,
		SellerId:        s.SellerId,
		MilkId:          s.MilkId,
		StartDate:       s.StartDate,
		OriginalDays:    s.OriginalDays,
		ExtendedDays:    s.ExtendedDays,
		TotalDays:       s.TotalDays,
		EndDate:         s.EndDate,
		QuantityPerDay:  s.QuantityPerDay,
		PricePerLiter:   s.PricePerLiter,
		TotalAmount:     s.TotalAmount,
		Status:          entity.SubscriptionStatus(s.Status),
		PausedDates:     paused,
		DeliveryAddress: addressToEntity(s.DeliveryAddress),
		Notes:           s.Notes,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
		Customer:        m.users.ToEntity(s.Customer),
		Seller:          m.users.ToEntity(s.Seller),
		Milk:            m.milks.ToEntity(s.Milk),
	}
}

// ToModel maps the subscription row only. Paused dates are written through
// SubscriptionRepository.AddPausedDate.
func (m *SubscriptionMapper) ToModel(s *entity.Subscription) *model.Subscription {
	if s == nil {
		return nil
	}
	return &model.Subscription{
		Id:              s.Id,
		CustomerId:      s.CustomerId,
		SellerId:        s.SellerId,
		MilkId:          s.MilkId,
		StartDate:       s.StartDate,
		OriginalDays:    s.OriginalDays,
		ExtendedDays:    s.ExtendedDays,
		TotalDays:       s.TotalDays,
		EndDate:         s.EndDate,
		QuantityPerDay:  s.QuantityPerDay,
		PricePerLiter:   s.PricePerLiter,
		TotalAmount:     s.TotalAmount,
		Status:          string(s.Status),
		DeliveryAddress: addressToModel(s.DeliveryAddress),
		Notes:           s.Notes,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) ToEntities(subs []*model.Subscription) []*entity.Subscription {
	result := make([]*entity.Subscription, len(subs))
	for i, s := range subs {
		result[i] = m.ToEntity(s)
	}
	return result
}
