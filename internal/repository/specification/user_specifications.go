package specification

import (
	"gorm.io/gorm"

	"github.com/google/uuid"
)

type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(email) = LOWER(?)", s.Email)
}

type ByRole struct {
	Role string
}

func (s ByRole) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role = ?", s.Role)
}

type ActiveUsers struct{}

func (s ActiveUsers) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// OwnedByCustomer restricts to rows whose customer_id matches.
type OwnedByCustomer struct {
	CustomerID uuid.UUID
}

func (s OwnedByCustomer) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("customer_id = ?", s.CustomerID)
}

type OwnedBySeller struct {
	SellerID uuid.UUID
}

func (s OwnedBySeller) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("seller_id = ?", s.SellerID)
}
