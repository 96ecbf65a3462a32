package scope

import "gorm.io/gorm"

func CompletedPayments(db *gorm.DB) *gorm.DB {
	return db.Where("payment_status = ?", "completed")
}

func SellerRatings(db *gorm.DB) *gorm.DB {
	return db.Where("seller_rating IS NOT NULL")
}

func MilkRatings(db *gorm.DB) *gorm.DB {
	return db.Where("milk_rating IS NOT NULL")
}
