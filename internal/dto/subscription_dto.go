package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSubscriptionRequest struct {
	MilkId          uuid.UUID   `json:"milkId" validate:"required"`
	StartDate       string      `json:"startDate" validate:"required"`
	NumberOfDays    int         `json:"numberOfDays" validate:"required,min=1,max=365"`
	QuantityPerDay  float64     `json:"quantityPerDay" validate:"required,gte=0.5"`
	DeliveryAddress *AddressDto `json:"deliveryAddress"`
	Notes           string      `json:"notes"`
}

type PauseDateRequest struct {
	PauseDate string `json:"pauseDate" validate:"required"`
}

type UpdateSubscriptionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active paused"`
}

type SubscriptionListQuery struct {
	Status string `query:"status"`
}

type PausedDateDto struct {
	Date     time.Time `json:"date"`
	PausedAt time.Time `json:"pausedAt"`
}

type SubscriptionResponse struct {
	Id              uuid.UUID        `json:"id"`
	CustomerId      uuid.UUID        `json:"customerId"`
	SellerId        uuid.UUID        `json:"sellerId"`
	MilkId          uuid.UUID        `json:"milkId"`
	Customer        *UserSummary     `json:"customer,omitempty"`
	Seller          *UserSummary     `json:"seller,omitempty"`
	Milk            *MilkResponse    `json:"milk,omitempty"`
	StartDate       time.Time        `json:"startDate"`
	EndDate         time.Time        `json:"endDate"`
	OriginalDays    int              `json:"originalDays"`
	ExtendedDays    int              `json:"extendedDays"`
	TotalDays       int              `json:"totalDays"`
	QuantityPerDay  float64          `json:"quantityPerDay"`
	PricePerLiter   float64          `json:"pricePerLiter"`
	TotalAmount     float64          `json:"totalAmount"`
	Status          string           `json:"status"`
	PausedDates     []PausedDateDto  `json:"pausedDates"`
	DeliveryAddress AddressDto       `json:"deliveryAddress"`
	Notes           string           `json:"notes,omitempty"`
	TotalPaid       float64          `json:"totalPaid"`
	RemainingAmount float64          `json:"remainingAmount"`
	RemainingDays   int              `json:"remainingDays"`
	CompletedDays   int              `json:"completedDays"`
	Orders          []*OrderResponse `json:"orders,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

type CreateSubscriptionResponse struct {
	Subscription  *SubscriptionResponse `json:"subscription"`
	OrdersCreated int                   `json:"ordersCreated"`
}

type PauseDateResponse struct {
	Subscription   *SubscriptionResponse `json:"subscription"`
	PausedDate     time.Time             `json:"pausedDate"`
	CancelledOrder *OrderResponse        `json:"cancelledOrder,omitempty"`
	MakeUpOrder    *OrderResponse        `json:"makeUpOrder,omitempty"`
}
