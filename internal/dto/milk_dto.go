package dto

import (
	"time"

	"github.com/google/uuid"
)

type NutrientsDto struct {
	Protein  float64 `json:"protein"`
	Calcium  float64 `json:"calcium"`
	Vitamins string  `json:"vitamins"`
	Minerals string  `json:"minerals"`
}

type CreateMilkRequest struct {
	MilkType           string       `json:"milkType" validate:"required,oneof=Cow Buffalo Goat Camel Sheep Other"`
	CustomMilkType     string       `json:"customMilkType"`
	PricePerLiter      float64      `json:"pricePerLiter" validate:"gte=0"`
	FatPercentage      float64      `json:"fatPercentage" validate:"gte=0,lte=100"`
	QualityDescription string       `json:"qualityDescription"`
	Nutrients          NutrientsDto `json:"nutrients"`
	AvailabilityDays   []string     `json:"availabilityDays"`
	IsAvailable        *bool        `json:"isAvailable"`
}

// UpdateMilkRequest is a partial update; nil fields are left unchanged.
type UpdateMilkRequest struct {
	MilkType           *string       `json:"milkType" validate:"omitempty,oneof=Cow Buffalo Goat Camel Sheep Other"`
	CustomMilkType     *string       `json:"customMilkType"`
	PricePerLiter      *float64      `json:"pricePerLiter" validate:"omitempty,gte=0"`
	FatPercentage      *float64      `json:"fatPercentage" validate:"omitempty,gte=0,lte=100"`
	QualityDescription *string       `json:"qualityDescription"`
	Nutrients          *NutrientsDto `json:"nutrients"`
	AvailabilityDays   []string      `json:"availabilityDays"`
	IsAvailable        *bool         `json:"isAvailable"`
}

type MilkResponse struct {
	Id                 uuid.UUID    `json:"id"`
	SellerId           uuid.UUID    `json:"sellerId"`
	Seller             *UserSummary `json:"seller,omitempty"`
	MilkType           string       `json:"milkType"`
	CustomMilkType     string       `json:"customMilkType,omitempty"`
	DisplayType        string       `json:"displayType"`
	PricePerLiter      float64      `json:"pricePerLiter"`
	FatPercentage      float64      `json:"fatPercentage"`
	QualityDescription string       `json:"qualityDescription"`
	Nutrients          NutrientsDto `json:"nutrients"`
	AvailabilityDays   []string     `json:"availabilityDays"`
	IsAvailable        bool         `json:"isAvailable"`
	AverageRating      float64      `json:"averageRating"`
	TotalRatings       int          `json:"totalRatings"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

type MilkTypeResponse struct {
	MilkType    string `json:"milkType"`
	SellerCount int    `json:"sellerCount"`
}
