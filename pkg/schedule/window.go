package schedule

import (
	"time"

	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/pkg/apperror"
)

const (
	sameDayOpenHour  = 5
	sameDayCloseHour = 10
)

var (
	ErrPastDeliveryDate = apperror.Validation("Cannot place orders for past dates")
	ErrSameDayClosed    = apperror.Validation("Same-day orders are only allowed between 5:00 AM and 10:00 AM")
)

// ValidateOrderTime admits any future date, and today only while the
// local hour is in [5, 10).
func ValidateOrderTime(deliveryDate, now time.Time) error {
	today := DateOf(now)
	day := DateOf(deliveryDate.In(now.Location()))

	switch {
	case day.Before(today):
		return ErrPastDeliveryDate
	case day.Equal(today):
		if h := now.Hour(); h < sameDayOpenHour || h >= sameDayCloseHour {
			return ErrSameDayClosed
		}
	}
	return nil
}

// ValidateWeekday rejects a delivery date outside the listing's availability days.
func ValidateWeekday(milk *entity.Milk, deliveryDate time.Time) error {
	day := deliveryDate.Weekday()
	if !milk.AvailableOn(day) {
		return apperror.Validation("Milk is not available on %s", day)
	}
	return nil
}
