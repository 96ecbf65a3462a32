package implementation

import (
	"context"
	"errors"

	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/mapper"
	"milk-platform-be/internal/model"
	"milk-platform-be/internal/repository/contract"
	"milk-platform-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MilkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MilkMapper
}

func NewMilkRepository(db *gorm.DB) contract.MilkRepository {
	return &MilkRepositoryImpl{
		db:     db,
		mapper: mapper.NewMilkMapper(),
	}
}

func (r *MilkRepositoryImpl) Create(ctx context.Context, milk *entity.Milk) error {
	m := r.mapper.ToModel(milk)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return err
	}
	milk.Id = m.Id
	milk.CreatedAt = m.CreatedAt
	milk.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *MilkRepositoryImpl) Update(ctx context.Context, milk *entity.Milk) error {
	m := r.mapper.ToModel(milk)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(m).Error; err != nil {
		return err
	}
	milk.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *MilkRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Milk{}).Error
}

func (r *MilkRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Milk, error) {
	var m model.Milk
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MilkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Milk, error) {
	var milks []*model.Milk
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&milks).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(milks), nil
}

func (r *MilkRepositoryImpl) ListTypes(ctx context.Context) ([]entity.MilkTypeSummary, error) {
	var rows []struct {
		MilkType    string
		SellerCount int
	}
	err := r.db.WithContext(ctx).Model(&model.Milk{}).
		Select(`CASE WHEN milk_type = 'Other' AND COALESCE(custom_milk_type, '') <> '' THEN custom_milk_type ELSE milk_type END AS milk_type,
			COUNT(DISTINCT seller_id) AS seller_count`).
		Where("is_available = ?", true).
		Group("1").
		Order("1 ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]entity.MilkTypeSummary, len(rows))
	for i, row := range rows {
		result[i] = entity.MilkTypeSummary{MilkType: row.MilkType, SellerCount: row.SellerCount}
	}
	return result, nil
}

func (r *MilkRepositoryImpl) UpdateRating(ctx context.Context, id uuid.UUID, agg entity.RatingAggregate) error {
	return r.db.WithContext(ctx).Model(&model.Milk{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"average_rating": agg.Rounded(),
			"total_ratings":  agg.Count,
		}).Error
}
