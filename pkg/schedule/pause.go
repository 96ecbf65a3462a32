package schedule

import (
	"time"

	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/pkg/apperror"
)

var (
	ErrPauseTooLate     = apperror.Validation("Pause must be requested at least 1 day in advance")
	ErrPauseOutOfPeriod = apperror.Validation("Date is outside subscription period")
	ErrAlreadyPaused    = apperror.State("This date is already paused")
	ErrPauseNotActive   = apperror.State("Can only pause active subscriptions")
)

type PauseOutcome struct {
	Date           time.Time
	CancelledOrder *entity.Order
	MakeUpOrder    *entity.Order
}

// ValidatePause checks a single-day pause request. The first failing rule wins.
func ValidatePause(sub *entity.Subscription, date, now time.Time) error {
	if sub.Status != entity.SubscriptionStatusActive {
		return ErrPauseNotActive
	}
	day := DateOf(date.In(now.Location()))
	tomorrow := AddDays(DateOf(now), 1)

	if day.Before(tomorrow) {
		return ErrPauseTooLate
	}
	start := DateOf(sub.StartDate.In(now.Location()))
	end := DateOf(sub.EndDate.In(now.Location()))
	if day.Before(start) || day.After(end) {
		return ErrPauseOutOfPeriod
	}
	if sub.IsPausedOn(day) {
		return ErrAlreadyPaused
	}
	return nil
}

// Pause records date as paused and extends the subscription by one day.
// dayOrder is the subscription's order for that date, if any; it is cancelled
// when still pending and a make-up order is scheduled on the new end date.
// Nothing is mutated when validation fails.
func Pause(sub *entity.Subscription, dayOrder *entity.Order, date, now time.Time) (*PauseOutcome, error) {
	if err := ValidatePause(sub, date, now); err != nil {
		return nil, err
	}

	day := DateOf(date.In(now.Location()))
	sub.PausedDates = append(sub.PausedDates, entity.PausedDate{Date: day, PausedAt: now})
	sub.ExtendedDays++
	sub.TotalDays = sub.OriginalDays + sub.ExtendedDays
	sub.EndDate = AddDays(DateOf(sub.EndDate.In(now.Location())), 1)
	sub.UpdatedAt = now

	outcome := &PauseOutcome{Date: day}
	if dayOrder != nil && dayOrder.Status == entity.OrderStatusPending {
		if err := dayOrder.Cancel(entity.CancelReasonPaused, now); err != nil {
			return nil, err
		}
		outcome.CancelledOrder = dayOrder
		outcome.MakeUpOrder = newSubscriptionOrder(sub, sub.EndDate, now)
	}
	return outcome, nil
}

// CancelOutstanding cancels the pending orders of a cancelled subscription
// whose delivery date is not before now, and returns the ones it changed.
func CancelOutstanding(orders []*entity.Order, now time.Time) []*entity.Order {
	var changed []*entity.Order
	for _, o := range orders {
		if o.Status != entity.OrderStatusPending || o.DeliveryDate.Before(now) {
			continue
		}
		if err := o.Cancel(entity.CancelReasonSubscriptionCancelled, now); err == nil {
			changed = append(changed, o)
		}
	}
	return changed
}
