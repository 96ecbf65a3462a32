// FILE: internal/entity/subscription_entity.go
package entity

import (
	"time"

	"milk-platform-be/internal/pkg/apperror"

	"github.com/google/uuid"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusPaused    SubscriptionStatus = "paused"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusCompleted SubscriptionStatus = "completed"
)

var subscriptionTransitions = map[SubscriptionStatus][]SubscriptionStatus{
	SubscriptionStatusActive: {SubscriptionStatusPaused, SubscriptionStatusCancelled, SubscriptionStatusCompleted},
	SubscriptionStatusPaused: {SubscriptionStatusActive, SubscriptionStatusCancelled},
}

func (s SubscriptionStatus) Valid() bool {
	switch s {
	case SubscriptionStatusActive, SubscriptionStatusPaused, SubscriptionStatusCancelled, SubscriptionStatusCompleted:
		return true
	}
	return false
}

func (s SubscriptionStatus) CanTransitionTo(next SubscriptionStatus) bool {
	for _, allowed := range subscriptionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type PausedDate struct {
	Date     time.Time
	PausedAt time.Time
}

type Subscription struct {
	Id              uuid.UUID
	CustomerId      uuid.UUID
	SellerId        uuid.UUID
	MilkId          uuid.UUID
	StartDate       time.Time
	OriginalDays    int
	ExtendedDays    int
	TotalDays       int
	EndDate         time.Time
	QuantityPerDay  float64
	PricePerLiter   float64
	TotalAmount     float64
	Status          SubscriptionStatus
	PausedDates     []PausedDate
	DeliveryAddress Address
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Customer *User
	Seller   *User
	Milk     *Milk
	Orders   []*Order
}

// IsPausedOn reports whether the calendar date of day is already in the paused set.
func (s *Subscription) IsPausedOn(day time.Time) bool {
	y, m, d := day.Date()
	for _, p := range s.PausedDates {
		py, pm, pd := p.Date.In(day.Location()).Date()
		if py == y && pm == m && pd == d {
			return true
		}
	}
	return false
}

// TransitionTo validates and applies a status change.
func (s *Subscription) TransitionTo(next SubscriptionStatus, at time.Time) error {
	if !next.Valid() {
		return apperror.Validation("Invalid subscription status: %s", next)
	}
	if !s.Status.CanTransitionTo(next) {
		if next == SubscriptionStatusCancelled {
			return apperror.State("Cannot cancel subscription with status: %s", s.Status)
		}
		return apperror.State("Cannot change subscription status from %s to %s", s.Status, next)
	}
	s.Status = next
	s.UpdatedAt = at
	return nil
}
