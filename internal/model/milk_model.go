package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MilkNutrients struct {
	Protein  float64 `json:"protein"`
	Calcium  float64 `json:"calcium"`
	Vitamins string  `json:"vitamins"`
	Minerals string  `json:"minerals"`
}

type Milk struct {
	Id                 uuid.UUID                         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SellerId           uuid.UUID                         `gorm:"type:uuid;not null;index"`
	MilkType           string                            `gorm:"type:varchar(20);not null;index"`
	CustomMilkType     string                            `gorm:"type:varchar(100)"`
	PricePerLiter      float64                           `gorm:"not null"`
	FatPercentage      float64                           `gorm:"not null;default:0"`
	QualityDescription string                            `gorm:"type:text"`
	Nutrients          datatypes.JSONType[MilkNutrients] `gorm:"type:jsonb"`
	AvailabilityDays   datatypes.JSONSlice[string]       `gorm:"type:jsonb"`
	IsAvailable        bool                              `gorm:"not null;index"`
	AverageRating      float64                           `gorm:"not null;default:0"`
	TotalRatings       int                               `gorm:"not null;default:0"`
	CreatedAt          time.Time                         `gorm:"autoCreateTime"`
	UpdatedAt          time.Time                         `gorm:"autoUpdateTime"`
	DeletedAt          gorm.DeletedAt                    `gorm:"index"`

	Seller *User `gorm:"foreignKey:SellerId"`
}

func (Milk) TableName() string {
	return "milks"
}
