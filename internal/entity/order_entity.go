package entity

import (
	"time"

	"milk-platform-be/internal/pkg/apperror"

	"github.com/google/uuid"
)

type OrderType string
type OrderStatus string

const (
	OrderTypeDaily        OrderType = "daily"
	OrderTypeSubscription OrderType = "subscription"

	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

const (
	CancelReasonPaused                = "Paused by customer"
	CancelReasonSubscriptionCancelled = "Subscription cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusDelivered, OrderStatusCancelled},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	Id              uuid.UUID
	CustomerId      uuid.UUID
	SellerId        uuid.UUID
	MilkId          uuid.UUID
	OrderType       OrderType
	DeliveryDate    time.Time
	Quantity        float64
	PricePerLiter   float64
	TotalAmount     float64
	Status          OrderStatus
	SubscriptionId  *uuid.UUID
	DeliveryAddress Address
	Notes           string
	CancelledAt     *time.Time
	CancelReason    string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Customer     *User
	Seller       *User
	Milk         *Milk
	Subscription *Subscription
}

// TransitionTo moves the order along pending -> confirmed -> delivered.
// Cancellation goes through Cancel so the reason is recorded.
func (o *Order) TransitionTo(next OrderStatus, at time.Time) error {
	if !next.Valid() {
		return apperror.Validation("Invalid order status: %s", next)
	}
	if next == OrderStatusCancelled {
		return o.Cancel("", at)
	}
	if !o.Status.CanTransitionTo(next) {
		return apperror.State("Cannot change order status from %s to %s", o.Status, next)
	}
	o.Status = next
	o.UpdatedAt = at
	return nil
}

func (o *Order) Cancel(reason string, at time.Time) error {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return apperror.State("Cannot cancel order with status: %s", o.Status)
	}
	o.Status = OrderStatusCancelled
	o.CancelReason = reason
	o.CancelledAt = &at
	o.UpdatedAt = at
	return nil
}
