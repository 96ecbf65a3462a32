package schedule

import (
	"time"

	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/pkg/apperror"

	"github.com/google/uuid"
)

const (
	MinQuantityPerDay   = 0.5
	MaxSubscriptionDays = 365
)

var ErrStartDateInPast = apperror.Validation("Start date cannot be in the past")

type SubscriptionPlan struct {
	CustomerId      uuid.UUID
	Milk            *entity.Milk
	StartDate       time.Time
	NumberOfDays    int
	QuantityPerDay  float64
	DeliveryAddress entity.Address
	Notes           string
}

// Generate builds an active subscription and one pending order per day of the plan.
// The listing price is snapshotted onto the subscription and every order.
func Generate(plan SubscriptionPlan, now time.Time) (*entity.Subscription, []*entity.Order, error) {
	milk := plan.Milk
	if milk == nil {
		return nil, nil, apperror.NotFound("Milk not found")
	}
	if !milk.IsAvailable {
		return nil, nil, apperror.Validation("This milk is currently not available")
	}
	if plan.NumberOfDays < 1 {
		return nil, nil, apperror.Validation("Number of days must be at least 1")
	}
	if plan.NumberOfDays > MaxSubscriptionDays {
		return nil, nil, apperror.Validation("Number of days cannot exceed %d", MaxSubscriptionDays)
	}
	if plan.QuantityPerDay < MinQuantityPerDay {
		return nil, nil, apperror.Validation("Minimum quantity is %.1f liter", MinQuantityPerDay)
	}

	start := DateOf(plan.StartDate.In(now.Location()))
	if start.Before(DateOf(now)) {
		return nil, nil, ErrStartDateInPast
	}

	sub := &entity.Subscription{
		Id:              uuid.New(),
		CustomerId:      plan.CustomerId,
		SellerId:        milk.SellerId,
		MilkId:          milk.Id,
		StartDate:       start,
		OriginalDays:    plan.NumberOfDays,
		ExtendedDays:    0,
		TotalDays:       plan.NumberOfDays,
		EndDate:         AddDays(start, plan.NumberOfDays-1),
		QuantityPerDay:  plan.QuantityPerDay,
		PricePerLiter:   milk.PricePerLiter,
		TotalAmount:     plan.QuantityPerDay * milk.PricePerLiter * float64(plan.NumberOfDays),
		Status:          entity.SubscriptionStatusActive,
		PausedDates:     []entity.PausedDate{},
		DeliveryAddress: plan.DeliveryAddress,
		Notes:           plan.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	orders := make([]*entity.Order, 0, plan.NumberOfDays)
	for i := 0; i < plan.NumberOfDays; i++ {
		orders = append(orders, newSubscriptionOrder(sub, AddDays(start, i), now))
	}
	return sub, orders, nil
}

func newSubscriptionOrder(sub *entity.Subscription, day, now time.Time) *entity.Order {
	subId := sub.Id
	return &entity.Order{
		Id:              uuid.New(),
		CustomerId:      sub.CustomerId,
		SellerId:        sub.SellerId,
		MilkId:          sub.MilkId,
		OrderType:       entity.OrderTypeSubscription,
		DeliveryDate:    day,
		Quantity:        sub.QuantityPerDay,
		PricePerLiter:   sub.PricePerLiter,
		TotalAmount:     sub.QuantityPerDay * sub.PricePerLiter,
		Status:          entity.OrderStatusPending,
		SubscriptionId:  &subId,
		DeliveryAddress: sub.DeliveryAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// NewDailyOrder prices a one-off order against the listing's current price.
func NewDailyOrder(customerId uuid.UUID, milk *entity.Milk, deliveryDate time.Time, quantity float64, address entity.Address, notes string, now time.Time) *entity.Order {
	return &entity.Order{
		Id:              uuid.New(),
		CustomerId:      customerId,
		SellerId:        milk.SellerId,
		MilkId:          milk.Id,
		OrderType:       entity.OrderTypeDaily,
		DeliveryDate:    DateOf(deliveryDate.In(now.Location())),
		Quantity:        quantity,
		PricePerLiter:   milk.PricePerLiter,
		TotalAmount:     quantity * milk.PricePerLiter,
		Status:          entity.OrderStatusPending,
		DeliveryAddress: address,
		Notes:           notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
