package mapper

import (
	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/model"
)

type RatingMapper struct {
	users  *UserMapper
	milks  *MilkMapper
	orders *OrderMapper
}

func NewRatingMapper() *RatingMapper {
	return &RatingMapper{users: NewUserMapper(), milks: NewMilkMapper(), orders: NewOrderMapper()}
}

func (m *RatingMapper) ToEntity(r *model.Rating) *entity.Rating {
	if r == nil {
		return nil
	}
	return &entity.Rating{
		Id:           r.Id,
		CustomerId:   r.CustomerId,
		SellerId:     r.SellerId,
		MilkId:       r.MilkId,
		OrderId:      r.OrderId,
		RatingType:   entity.RatingType(r.RatingType),
		MilkRating:   r.MilkRating,
		SellerRating: r.SellerRating,
		MilkReview:   r.MilkReview,
		SellerReview: r.SellerReview,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		Customer:     m.users.ToEntity(r.Customer),
		Seller:       m.users.ToEntity(r.Seller),
		Milk:         m.milks.ToEntity(r.Milk),
		Order:        m.orders.ToEntity(r.Order),
	}
}

func (m *RatingMapper) ToModel(r *entity.Rating) *model.Rating {
	if r == nil {
		return nil
	}
	return &model.Rating{
		Id:           r.Id,
		CustomerId:   r.CustomerId,
		SellerId:     r.SellerId,
		MilkId:       r.MilkId,
		OrderId:      r.OrderId,
		RatingType:   string(r.RatingType),
		MilkRating:   r.MilkRating,
		SellerRating: r.SellerRating,
		MilkReview:   r.MilkReview,
		SellerReview: r.SellerReview,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (m *RatingMapper) ToEntities(ratings []*model.Rating) []*entity.Rating {
	result := make([]*entity.Rating, len(ratings))
	for i, r := range ratings {
		result[i] = m.ToEntity(r)
	}
	return result
}
