package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateDailyOrderRequest struct {
	MilkId          uuid.UUID   `json:"milkId" validate:"required"`
	DeliveryDate    string      `json:"deliveryDate" validate:"required"`
	Quantity        float64     `json:"quantity" validate:"required,gte=0.5"`
	DeliveryAddress *AddressDto `json:"deliveryAddress"`
	Notes           string      `json:"notes"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed delivered cancelled"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

type CustomerOrderQuery struct {
	Status    string `query:"status"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
}

type SellerOrderQuery struct {
	Status string `query:"status"`
	Date   string `query:"date"`
}

type SubscriptionRef struct {
	Id        uuid.UUID `json:"id"`
	Status    string    `json:"status"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

type OrderResponse struct {
	Id              uuid.UUID        `json:"id"`
	CustomerId      uuid.UUID        `json:"customerId"`
	SellerId        uuid.UUID        `json:"sellerId"`
	MilkId          uuid.UUID        `json:"milkId"`
	Customer        *UserSummary     `json:"customer,omitempty"`
	Seller          *UserSummary     `json:"seller,omitempty"`
	Milk            *MilkResponse    `json:"milk,omitempty"`
	OrderType       string           `json:"orderType"`
	DeliveryDate    time.Time        `json:"deliveryDate"`
	Quantity        float64          `json:"quantity"`
	PricePerLiter   float64          `json:"pricePerLiter"`
	TotalAmount     float64          `json:"totalAmount"`
	Status          string           `json:"status"`
	SubscriptionId  *uuid.UUID       `json:"subscriptionId,omitempty"`
	Subscription    *SubscriptionRef `json:"subscription,omitempty"`
	DeliveryAddress AddressDto       `json:"deliveryAddress"`
	Notes           string           `json:"notes,omitempty"`
	CancelledAt     *time.Time       `json:"cancelledAt,omitempty"`
	CancelReason    string           `json:"cancelReason,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}
