package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type BySubscription struct {
	SubscriptionID uuid.UUID
}

func (s BySubscription) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("subscription_id = ?", s.SubscriptionID)
}

type ByOrder struct {
	OrderID uuid.UUID
}

func (s ByOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("order_id = ?", s.OrderID)
}

type ByMilk struct {
	MilkID uuid.UUID
}

func (s ByMilk) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("milk_id = ?", s.MilkID)
}

// DeliveredOn keeps orders whose delivery date falls on the calendar day starting at Day.
type DeliveredOn struct {
	Day time.Time
}

func (s DeliveredOn) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("delivery_date >= ? AND delivery_date < ?", s.Day, s.Day.AddDate(0, 0, 1))
}

type EndsBefore struct {
	Day time.Time
}

func (s EndsBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("end_date < ?", s.Day)
}

type AvailableMilk struct{}

func (s AvailableMilk) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_available = ?", true)
}

// MilkTypeMatches matches the enumerated type or, for "Other" listings, the custom name.
type MilkTypeMatches struct {
	Type string
}

func (s MilkTypeMatches) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("(LOWER(milk_type) = LOWER(?) OR (milk_type = 'Other' AND LOWER(custom_milk_type) = LOWER(?)))", s.Type, s.Type)
}

type ByRatingType struct {
	RatingType string
}

func (s ByRatingType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("rating_type = ?", s.RatingType)
}
