package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type RatingType string

const (
	RatingTypeMilk   RatingType = "milk"
	RatingTypeSeller RatingType = "seller"
	RatingTypeBoth   RatingType = "both"
)

func (t RatingType) Valid() bool {
	return t == RatingTypeMilk || t == RatingTypeSeller || t == RatingTypeBoth
}

func (t RatingType) IncludesMilk() bool {
	return t == RatingTypeMilk || t == RatingTypeBoth
}

func (t RatingType) IncludesSeller() bool {
	return t == RatingTypeSeller || t == RatingTypeBoth
}

type Rating struct {
	Id           uuid.UUID
	CustomerId   uuid.UUID
	SellerId     uuid.UUID
	MilkId       *uuid.UUID
	OrderId      *uuid.UUID
	RatingType   RatingType
	MilkRating   *int
	SellerRating *int
	MilkReview   string
	SellerReview string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Customer *User
	Seller   *User
	Milk     *Milk
	Order    *Order
}

type RatingAggregate struct {
	Average float64
	Count   int
}

// Rounded returns the average rounded to one decimal place.
func (a RatingAggregate) Rounded() float64 {
	return math.Round(a.Average*10) / 10
}
