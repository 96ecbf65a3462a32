package model

import (
	"time"

	"github.com/google/uuid"
)

type Address struct {
	Street  string `gorm:"type:varchar(255)"`
	City    string `gorm:"type:varchar(100)"`
	State   string `gorm:"type:varchar(100)"`
	Pincode string `gorm:"type:varchar(20)"`
}

type User struct {
	Id            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string     `gorm:"type:varchar(255);not null"`
	Email         string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash  string     `gorm:"type:varchar(255);not null"`
	Phone         string     `gorm:"type:varchar(20)"`
	Role          string     `gorm:"type:varchar(20);not null;index"`
	BusinessName  string     `gorm:"type:varchar(255)"`
	Address       Address    `gorm:"embedded;embeddedPrefix:address_"`
	IsActive      bool       `gorm:"not null"`
	AverageRating float64    `gorm:"not null;default:0"`
	TotalRatings  int        `gorm:"not null;default:0"`
	CreatedBy     *uuid.UUID `gorm:"type:uuid"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
