package model

import (
	"time"

	"github.com/google/uuid"
)

type Rating struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerId   uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_rating_customer_order"`
	SellerId     uuid.UUID  `gorm:"type:uuid;not null;index"`
	MilkId       *uuid.UUID `gorm:"type:uuid;index"`
	OrderId      *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_rating_customer_order"`
	RatingType   string     `gorm:"type:varchar(10);not null"`
	MilkRating   *int       `gorm:"type:smallint"`
	SellerRating *int       `gorm:"type:smallint"`
	MilkReview   string     `gorm:"type:text"`
	SellerReview string     `gorm:"type:text"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`

	Customer *User  `gorm:"foreignKey:CustomerId"`
	Seller   *User  `gorm:"foreignKey:SellerId"`
	Milk     *Milk  `gorm:"foreignKey:MilkId"`
	Order    *Order `gorm:"foreignKey:OrderId"`
}

func (Rating) TableName() string {
	return "ratings"
}
