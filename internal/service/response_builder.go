package service

import (
	"time"

	"milk-platform-be/internal/dto"
	"milk-platform-be/internal/entity"
	"milk-platform-be/pkg/schedule"
)

func toAddressDto(a entity.Address) dto.AddressDto {
	return dto.AddressDto{Street: a.Street, City: a.City, State: a.State, Pincode: a.Pincode}
}

func toAddressEntity(a dto.AddressDto) entity.Address {
	return entity.Address{Street: a.Street, City: a.City, State: a.State, Pincode: a.Pincode}
}

func toUserSummary(u *entity.User) *dto.UserSummary {
	if u == nil {
		return nil
	}
	res := &dto.UserSummary{
		Id:            u.Id,
		Name:          u.Name,
		Email:         u.Email,
		Phone:         u.Phone,
		BusinessName:  u.BusinessName,
		AverageRating: u.AverageRating,
		TotalRatings:  u.TotalRatings,
	}
	if u.Address != (entity.Address{}) {
		addr := toAddressDto(u.Address)
		res.Address = &addr
	}
	return res
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		Id:            u.Id,
		Name:          u.Name,
		Email:         u.Email,
		Phone:         u.Phone,
		Role:          string(u.Role),
		BusinessName:  u.BusinessName,
		Address:       toAddressDto(u.Address),
		IsActive:      u.IsActive,
		AverageRating: u.AverageRating,
		TotalRatings:  u.TotalRatings,
		CreatedAt:     u.CreatedAt,
	}
}

func toMilkResponse(m *entity.Milk) *dto.MilkResponse {
	if m == nil {
		return nil
	}
	days := m.AvailabilityDays
	if days == nil {
		days = []string{}
	}
	return &dto.MilkResponse{
		Id:                 m.Id,
		SellerId:           m.SellerId,
		Seller:             toUserSummary(m.Seller),
		MilkType:           string(m.MilkType),
		CustomMilkType:     m.CustomMilkType,
		DisplayType:        m.EffectiveType(),
		PricePerLiter:      m.PricePerLiter,
		FatPercentage:      m.FatPercentage,
		QualityDescription: m.QualityDescription,
		Nutrients: dto.NutrientsDto{
			Protein:  m.Nutrients.Protein,
			Calcium:  m.Nutrients.Calcium,
			Vitamins: m.Nutrients.Vitamins,
			Minerals: m.Nutrients.Minerals,
		},
		AvailabilityDays: days,
		IsAvailable:      m.IsAvailable,
		AverageRating:    m.AverageRating,
		TotalRatings:     m.TotalRatings,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func toMilkResponses(milks []*entity.Milk) []*dto.MilkResponse {
	res := make([]*dto.MilkResponse, 0, len(milks))
	for _, m := range milks {
		res = append(res, toMilkResponse(m))
	}
	return res
}

func toSubscriptionRef(s *entity.Subscription) *dto.SubscriptionRef {
	if s == nil {
		return nil
	}
	return &dto.SubscriptionRef{Id: s.Id, Status: string(s.Status), StartDate: s.StartDate, EndDate: s.EndDate}
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	return &dto.OrderResponse{
		Id:              o.Id,
		CustomerId:      o.CustomerId,
		SellerId:        o.SellerId,
		MilkId:          o.MilkId,
		Customer:        toUserSummary(o.Customer),
		Seller:          toUserSummary(o.Seller),
		Milk:            toMilkResponse(o.Milk),
		OrderType:       string(o.OrderType),
		DeliveryDate:    o.DeliveryDate,
		Quantity:        o.Quantity,
		PricePerLiter:   o.PricePerLiter,
		TotalAmount:     o.TotalAmount,
		Status:          string(o.Status),
		SubscriptionId:  o.SubscriptionId,
		Subscription:    toSubscriptionRef(o.Subscription),
		DeliveryAddress: toAddressDto(o.DeliveryAddress),
		Notes:           o.Notes,
		CancelledAt:     o.CancelledAt,
		CancelReason:    o.CancelReason,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func toOrderResponses(orders []*entity.Order) []*dto.OrderResponse {
	res := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		res = append(res, toOrderResponse(o))
	}
	return res
}

// toSubscriptionResponse attaches the derived metrics computed at now.
func toSubscriptionResponse(s *entity.Subscription, totalPaid float64, now time.Time) *dto.SubscriptionResponse {
	paused := make([]dto.PausedDateDto, 0, len(s.PausedDates))
	for _, p := range s.PausedDates {
		paused = append(paused, dto.PausedDateDto{Date: p.Date, PausedAt: p.PausedAt})
	}
	res := &dto.SubscriptionResponse{
		Id:              s.Id,
		CustomerId:      s.CustomerId,
		SellerId:        s.SellerId,
		MilkId:          s.MilkId,
		Customer:        toUserSummary(s.Customer),
		Seller:          toUserSummary(s.Seller),
		Milk:            toMilkResponse(s.Milk),
		StartDate:       s.StartDate,
		EndDate:         s.EndDate,
		OriginalDays:    s.OriginalDays,
		ExtendedDays:    s.ExtendedDays,
		TotalDays:       s.TotalDays,
		QuantityPerDay:  s.QuantityPerDay,
		PricePerLiter:   s.PricePerLiter,
		TotalAmount:     s.TotalAmount,
		Status:          string(s.Status),
		PausedDates:     paused,
		DeliveryAddress: toAddressDto(s.DeliveryAddress),
		Notes:           s.Notes,
		TotalPaid:       totalPaid,
		RemainingAmount: schedule.RemainingAmount(s.TotalAmount, totalPaid),
		RemainingDays:   schedule.RemainingDays(s, now),
		CompletedDays:   schedule.CompletedDays(s, now),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
	if len(s.Orders) > 0 {
		res.Orders = toOrderResponses(s.Orders)
	}
	return res
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		Id:             p.Id,
		CustomerId:     p.CustomerId,
		SellerId:       p.SellerId,
		Customer:       toUserSummary(p.Customer),
		Seller:         toUserSummary(p.Seller),
		OrderId:        p.OrderId,
		SubscriptionId: p.SubscriptionId,
		Order:          toOrderResponse(p.Order),
		Subscription:   toSubscriptionRef(p.Subscription),
		Amount:         p.Amount,
		PaymentMethod:  string(p.PaymentMethod),
		PaymentStatus:  string(p.PaymentStatus),
		TransactionId:  p.TransactionId,
		Notes:          p.Notes,
		PaidAt:         p.PaidAt,
		CreatedAt:      p.CreatedAt,
	}
}

func toPaymentResponses(payments []*entity.Payment) []*dto.PaymentResponse {
	res := make([]*dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		res = append(res, toPaymentResponse(p))
	}
	return res
}

func toRatingResponse(r *entity.Rating) *dto.RatingResponse {
	return &dto.RatingResponse{
		Id:           r.Id,
		CustomerId:   r.CustomerId,
		SellerId:     r.SellerId,
		MilkId:       r.MilkId,
		OrderId:      r.OrderId,
		Customer:     toUserSummary(r.Customer),
		Seller:       toUserSummary(r.Seller),
		Milk:         toMilkResponse(r.Milk),
		RatingType:   string(r.RatingType),
		MilkRating:   r.MilkRating,
		SellerRating: r.SellerRating,
		MilkReview:   r.MilkReview,
		SellerReview: r.SellerReview,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toRatingResponses(ratings []*entity.Rating) []*dto.RatingResponse {
	res := make([]*dto.RatingResponse, 0, len(ratings))
	for _, r := range ratings {
		res = append(res, toRatingResponse(r))
	}
	return res
}
