package mapper

import (
	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:            u.Id,
		Name:          u.Name,
		Email:         u.Email,
		PasswordHash:  u.PasswordHash,
		Phone:         u.Phone,
		Role:          entity.UserRole(u.Role),
		BusinessName:  u.BusinessName,
		Address:       addressToEntity(u.Address),
		IsActive:      u.IsActive,
		AverageRating: u.AverageRating,
		TotalRatings:  u.TotalRatings,
		CreatedBy:     u.CreatedBy,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:            u.Id,
		Name:          u.Name,
		Email:         u.Email,
		PasswordHash:  u.PasswordHash,
		Phone:         u.Phone,
		Role:          string(u.Role),
		BusinessName:  u.BusinessName,
		Address:       addressToModel(u.Address),
		IsActive:      u.IsActive,
		AverageRating: u.AverageRating,
		TotalRatings:  u.TotalRatings,
		CreatedBy:     u.CreatedBy,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (m *UserMapper) ToEntities(users []*model.User) []*entity.User {
	result := make([]*entity.User, len(users))
	for i, u := range users {
		result[i] = m.ToEntity(u)
	}
	return result
}

func addressToEntity(a model.Address) entity.Address {
	return entity.Address{Street: a.Street, City: a.City, State: a.State, Pincode: a.Pincode}
}

func addressToModel(a entity.Address) model.Address {
	return model.Address{Street: a.Street, City: a.City, State: a.State, Pincode: a.Pincode}
}
