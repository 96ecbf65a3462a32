package dto

import (
	"time"

	"github.com/google/uuid"
)

type CustomerSignupRequest struct {
	Name     string     `json:"name" validate:"required"`
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=6"`
	Phone    string     `json:"phone" validate:"required"`
	Address  AddressDto `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateSellerRequest struct {
	Name         string     `json:"name" validate:"required"`
	Email        string     `json:"email" validate:"required,email"`
	Password     string     `json:"password" validate:"required,min=6"`
	Phone        string     `json:"phone" validate:"required"`
	BusinessName string     `json:"businessName" validate:"required"`
	Address      AddressDto `json:"address"`
}

type SetUserActiveRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

type UserResponse struct {
	Id            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Role          string     `json:"role"`
	BusinessName  string     `json:"businessName,omitempty"`
	Address       AddressDto `json:"address"`
	IsActive      bool       `json:"isActive"`
	AverageRating float64    `json:"averageRating"`
	TotalRatings  int        `json:"totalRatings"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}
