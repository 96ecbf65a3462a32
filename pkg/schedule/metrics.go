package schedule

import (
	"math"
	"time"

	"milk-platform-be/internal/entity"
)

const oneDay = 24 * time.Hour

// RemainingDays is the number of started days between now and the end date, zero once it has passed.
func RemainingDays(sub *entity.Subscription, now time.Time) int {
	if !sub.EndDate.After(now) {
		return 0
	}
	return int(math.Ceil(float64(sub.EndDate.Sub(now)) / float64(oneDay)))
}

// CompletedDays is the number of whole days since the start date, capped at the total days.
func CompletedDays(sub *entity.Subscription, now time.Time) int {
	if sub.StartDate.After(now) {
		return 0
	}
	done := int(now.Sub(sub.StartDate) / oneDay)
	if done > sub.TotalDays {
		return sub.TotalDays
	}
	return done
}

// RemainingAmount may go negative when a subscription is overpaid.
func RemainingAmount(total, paid float64) float64 {
	return total - paid
}
