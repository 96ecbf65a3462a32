// FILE: internal/entity/user_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleCustomer UserRole = "customer"
	UserRoleSeller   UserRole = "seller"
	UserRoleAdmin    UserRole = "admin"
)

type Address struct {
	Street  string
	City    string
	State   string
	Pincode string
}

type User struct {
	Id            uuid.UUID
	Name          string
	Email         string
	PasswordHash  string
	Phone         string
	Role          UserRole
	BusinessName  string
	Address       Address
	IsActive      bool
	AverageRating float64
	TotalRatings  int
	CreatedBy     *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Principal is the authenticated caller of an operation.
type Principal struct {
	Id   uuid.UUID
	Role UserRole
}

func (p Principal) IsAdmin() bool {
	return p.Role == UserRoleAdmin
}
