package model

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	Id              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerId      uuid.UUID  `gorm:"type:uuid;not null;index"`
	SellerId        uuid.UUID  `gorm:"type:uuid;not null;index"`
	MilkId          uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrderType       string     `gorm:"type:varchar(20);not null"`
	DeliveryDate    time.Time  `gorm:"not null;index"`
	Quantity        float64    `gorm:"not null"`
	PricePerLiter   float64    `gorm:"not null"`
	TotalAmount     float64    `gorm:"not null"`
	Status          string     `gorm:"type:varchar(20);not null;index"`
	SubscriptionId  *uuid.UUID `gorm:"type:uuid;index"`
	DeliveryAddress Address    `gorm:"embedded;embeddedPrefix:delivery_"`
	Notes           string     `gorm:"type:text"`
	CancelledAt     *time.Time
	CancelReason    string    `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`

	Customer     *User         `gorm:"foreignKey:CustomerId"`
	Seller       *User         `gorm:"foreignKey:SellerId"`
	Milk         *Milk         `gorm:"foreignKey:MilkId"`
	Subscription *Subscription `gorm:"foreignKey:SubscriptionId"`
}

func (Order) TableName() string {
	return "orders"
}
