package model

import (
	"time"

	"github.com/google/uuid"
)

type Subscription struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerId      uuid.UUID `gorm:"type:uuid;not null;index"`
	SellerId        uuid.UUID `gorm:"type:uuid;not null;index"`
	MilkId          uuid.UUID `gorm:"type:uuid;not null;index"`
	StartDate       time.Time `gorm:"not null"`
	OriginalDays    int       `gorm:"not null"`
	ExtendedDays    int       `gorm:"not null;default:0"`
	TotalDays       int       `gorm:"not null"`
	EndDate         time.Time `gorm:"not null;index"`
	QuantityPerDay  float64   `gorm:"not null"`
	PricePerLiter   float64   `gorm:"not null"`
	TotalAmount     float64   `gorm:"not null"`
	Status          string    `gorm:"type:varchar(20);not null;index"`
	DeliveryAddress Address   `gorm:"embedded;embeddedPrefix:delivery_"`
	Notes           string    `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`

	PausedDates []SubscriptionPausedDate `gorm:"foreignKey:SubscriptionId"`
	Customer    *User                    `gorm:"foreignKey:CustomerId"`
	Seller      *User                    `gorm:"foreignKey:SellerId"`
	Milk        *Milk                    `gorm:"foreignKey:MilkId"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

type SubscriptionPausedDate struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SubscriptionId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscription_paused_day"`
	Date           time.Time `gorm:"not null;uniqueIndex:idx_subscription_paused_day"`
	PausedAt       time.Time `gorm:"not null"`
}

func (SubscriptionPausedDate) TableName() string {
	return "subscription_paused_dates"
}
