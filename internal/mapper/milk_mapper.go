package mapper

import (
	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/model"

	"gorm.io/datatypes"
)

type MilkMapper struct {
	users *UserMapper
}

func NewMilkMapper() *MilkMapper {
	return &MilkMapper{users: NewUserMapper()}
}

func (m *MilkMapper) ToEntity(mk *model.Milk) *entity.Milk {
	if mk == nil {
		return nil
	}
	n := mk.Nutrients.Data()
	days := []string(mk.AvailabilityDays)
	if days == nil {
		days = []string{}
	}
	return &entity.Milk{
		Id:                 mk.Id,
		SellerId:           mk.SellerId,
		MilkType:           entity.MilkType(mk.MilkType),
		CustomMilkType:     mk.CustomMilkType,
		PricePerLiter:      mk.PricePerLiter,
		FatPercentage:      mk.FatPercentage,
		QualityDescription: mk.QualityDescription,
		Nutrients: entity.Nutrients{
			Protein:  n.Protein,
			Calcium:  n.Calcium,
			Vitamins: n.Vitamins,
			Minerals: n.Minerals,
		},
		AvailabilityDays: days,
		IsAvailable:      mk.IsAvailable,
		AverageRating:    mk.AverageRating,
		TotalRatings:     mk.TotalRatings,
		CreatedAt:        mk.CreatedAt,
		UpdatedAt:        mk.UpdatedAt,
		Seller:           m.users.ToEntity(mk.Seller),
	}
}

// ToModel leaves the Seller relation unset; it is read-only.
func (m *MilkMapper) ToModel(mk *entity.Milk) *model.Milk {
	if mk == nil {
		return nil
	}
	return &model.Milk{
		Id:                 mk.Id,
		SellerId:           mk.SellerId,
		MilkType:           string(mk.MilkType),
		CustomMilkType:     mk.CustomMilkType,
		PricePerLiter:      mk.PricePerLiter,
		FatPercentage:      mk.FatPercentage,
		QualityDescription: mk.QualityDescription,
		Nutrients: datatypes.NewJSONType(model.MilkNutrients{
			Protein:  mk.Nutrients.Protein,
			Calcium:  mk.Nutrients.Calcium,
			Vitamins: mk.Nutrients.Vitamins,
			Minerals: mk.Nutrients.Minerals,
		}),
		AvailabilityDays: datatypes.NewJSONSlice(mk.AvailabilityDays),
		IsAvailable:      mk.IsAvailable,
		AverageRating:    mk.AverageRating,
		TotalRatings:     mk.TotalRatings,
		CreatedAt:        mk.CreatedAt,
		UpdatedAt:        mk.UpdatedAt,
	}
}

func (m *MilkMapper) ToEntities(milks []*model.Milk) []*entity.Milk {
	result := make([]*entity.Milk, len(milks))
	for i, mk := range milks {
		result[i] = m.ToEntity(mk)
	}
	return result
}
