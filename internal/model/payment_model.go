package model

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	Id             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerId     uuid.UUID  `gorm:"type:uuid;not null;index"`
	SellerId       uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrderId        *uuid.UUID `gorm:"type:uuid;index"`
	SubscriptionId *uuid.UUID `gorm:"type:uuid;index"`
	Amount         float64    `gorm:"not null"`
	PaymentMethod  string     `gorm:"type:varchar(20);not null"`
	PaymentStatus  string     `gorm:"type:varchar(20);not null;index"`
	TransactionId  string     `gorm:"type:varchar(255);index"`
	Notes          string     `gorm:"type:text"`
	PaidAt         *time.Time `gorm:"index"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime"`

	Customer     *User         `gorm:"foreignKey:CustomerId"`
	Seller       *User         `gorm:"foreignKey:SellerId"`
	Order        *Order        `gorm:"foreignKey:OrderId"`
	Subscription *Subscription `gorm:"foreignKey:SubscriptionId"`
}

func (Payment) TableName() string {
	return "payments"
}
