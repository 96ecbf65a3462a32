package entity

import (
	"strings"
	"time"

	"milk-platform-be/internal/pkg/apperror"

	"github.com/google/uuid"
)

type MilkType string

const (
	MilkTypeCow     MilkType = "Cow"
	MilkTypeBuffalo MilkType = "Buffalo"
	MilkTypeGoat    MilkType = "Goat"
	MilkTypeCamel   MilkType = "Camel"
	MilkTypeSheep   MilkType = "Sheep"
	MilkTypeOther   MilkType = "Other"
)

var MilkTypes = []MilkType{
	MilkTypeCow, MilkTypeBuffalo, MilkTypeGoat, MilkTypeCamel, MilkTypeSheep, MilkTypeOther,
}

type Nutrients struct {
	Protein  float64
	Calcium  float64
	Vitamins string
	Minerals string
}

type Milk struct {
	Id                 uuid.UUID
	SellerId           uuid.UUID
	MilkType           MilkType
	CustomMilkType     string
	PricePerLiter      float64
	FatPercentage      float64
	QualityDescription string
	Nutrients          Nutrients
	AvailabilityDays   []string
	IsAvailable        bool
	AverageRating      float64
	TotalRatings       int
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Seller *User
}

// EffectiveType is the custom name for "Other" listings and the enumerated type otherwise.
func (m *Milk) EffectiveType() string {
	if m.MilkType == MilkTypeOther && strings.TrimSpace(m.CustomMilkType) != "" {
		return strings.TrimSpace(m.CustomMilkType)
	}
	return string(m.MilkType)
}

// Validate checks the listing fields and clears a custom name left on an enumerated type.
func (m *Milk) Validate() error {
	known := false
	for _, t := range MilkTypes {
		if m.MilkType == t {
			known = true
			break
		}
	}
	if !known {
		return apperror.Validation("Invalid milk type: %s", m.MilkType)
	}
	if m.MilkType == MilkTypeOther && strings.TrimSpace(m.CustomMilkType) == "" {
		return apperror.Validation("Please provide custom milk type name")
	}
	if m.MilkType != MilkTypeOther {
		m.CustomMilkType = ""
	}
	if m.PricePerLiter < 0 {
		return apperror.Validation("Price cannot be negative")
	}
	if m.FatPercentage < 0 || m.FatPercentage > 100 {
		return apperror.Validation("Fat percentage must be between 0 and 100")
	}
	for _, day := range m.AvailabilityDays {
		if _, ok := ParseWeekday(day); !ok {
			return apperror.Validation("Invalid availability day: %s", day)
		}
	}
	return nil
}

// AvailableOn reports whether the listing is delivered on the given weekday.
// An empty day list means every day.
func (m *Milk) AvailableOn(day time.Weekday) bool {
	if len(m.AvailabilityDays) == 0 {
		return true
	}
	for _, d := range m.AvailabilityDays {
		if wd, ok := ParseWeekday(d); ok && wd == day {
			return true
		}
	}
	return false
}

func ParseWeekday(name string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), strings.TrimSpace(name)) {
			return d, true
		}
	}
	return time.Sunday, false
}

type MilkTypeSummary struct {
	MilkType    string
	SellerCount int
}
