package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateRatingRequest struct {
	SellerId     uuid.UUID  `json:"sellerId" validate:"required"`
	MilkId       *uuid.UUID `json:"milkId"`
	OrderId      *uuid.UUID `json:"orderId"`
	RatingType   string     `json:"ratingType" validate:"required,oneof=milk seller both"`
	MilkRating   *int       `json:"milkRating" validate:"omitempty,min=1,max=5"`
	SellerRating *int       `json:"sellerRating" validate:"omitempty,min=1,max=5"`
	MilkReview   string     `json:"milkReview"`
	SellerReview string     `json:"sellerReview"`
}

type UpdateRatingRequest struct {
	MilkRating   *int    `json:"milkRating" validate:"omitempty,min=1,max=5"`
	SellerRating *int    `json:"sellerRating" validate:"omitempty,min=1,max=5"`
	MilkReview   *string `json:"milkReview"`
	SellerReview *string `json:"sellerReview"`
}

type ReceivedRatingQuery struct {
	RatingType string `query:"ratingType"`
}

type RatingResponse struct {
	Id           uuid.UUID     `json:"id"`
	CustomerId   uuid.UUID     `json:"customerId"`
	SellerId     uuid.UUID     `json:"sellerId"`
	MilkId       *uuid.UUID    `json:"milkId,omitempty"`
	OrderId      *uuid.UUID    `json:"orderId,omitempty"`
	Customer     *UserSummary  `json:"customer,omitempty"`
	Seller       *UserSummary  `json:"seller,omitempty"`
	Milk         *MilkResponse `json:"milk,omitempty"`
	RatingType   string        `json:"ratingType"`
	MilkRating   *int          `json:"milkRating,omitempty"`
	SellerRating *int          `json:"sellerRating,omitempty"`
	MilkReview   string        `json:"milkReview,omitempty"`
	SellerReview string        `json:"sellerReview,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

type RatingListResponse struct {
	Ratings       []*RatingResponse `json:"ratings"`
	AverageRating float64           `json:"averageRating"`
	TotalRatings  int               `json:"totalRatings"`
}
