package dto

import (
	"time"

	"github.com/google/uuid"
)

type AddressDto struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// UserSummary is the joined view of a customer or seller inside other resources.
type UserSummary struct {
	Id            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	Phone         string      `json:"phone,omitempty"`
	BusinessName  string      `json:"businessName,omitempty"`
	Address       *AddressDto `json:"address,omitempty"`
	AverageRating float64     `json:"averageRating"`
	TotalRatings  int         `json:"totalRatings"`
}

type DateRangeQuery struct {
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
}

type HealthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}
