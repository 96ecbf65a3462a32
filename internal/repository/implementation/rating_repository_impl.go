package implementation

import (
	"context"
	"errors"

	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/mapper"
	"milk-platform-be/internal/model"
	"milk-platform-be/internal/repository/contract"
	"milk-platform-be/internal/repository/scope"
	"milk-platform-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RatingMapper
}

func NewRatingRepository(db *gorm.DB) contract.RatingRepository {
	return &RatingRepositoryImpl{
		db:     db,
		mapper: mapper.NewRatingMapper(),
	}
}

func (r *RatingRepositoryImpl) Create(ctx context.Context, rating *entity.Rating) error {
	m := r.mapper.ToModel(rating)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return err
	}
	rating.Id = m.Id
	rating.CreatedAt = m.CreatedAt
	rating.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *RatingRepositoryImpl) Update(ctx context.Context, rating *entity.Rating) error {
	m := r.mapper.ToModel(rating)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(m).Error; err != nil {
		return err
	}
	rating.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *RatingRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Rating{}).Error
}

func (r *RatingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Rating, error) {
	var m model.Rating
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *RatingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Rating, error) {
	var ratings []*model.Rating
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&ratings).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(ratings), nil
}

func (r *RatingRepositoryImpl) SellerAggregate(ctx context.Context, sellerId uuid.UUID) (entity.RatingAggregate, error) {
	return r.aggregate("seller_rating", r.db.WithContext(ctx).Model(&model.Rating{}).
		Scopes(scope.SellerRatings).
		Where("seller_id = ?", sellerId))
}

func (r *RatingRepositoryImpl) MilkAggregate(ctx context.Context, milkId uuid.UUID) (entity.RatingAggregate, error) {
	return r.aggregate("milk_rating", r.db.WithContext(ctx).Model(&model.Rating{}).
		Scopes(scope.MilkRatings).
		Where("milk_id = ?", milkId))
}

func (r *RatingRepositoryImpl) aggregate(column string, query *gorm.DB) (entity.RatingAggregate, error) {
	var row struct {
		Average float64
		Count   int
	}
	err := query.Select("COALESCE(AVG(" + column + "), 0) AS average, COUNT(*) AS count").Scan(&row).Error
	if err != nil {
		return entity.RatingAggregate{}, err
	}
	return entity.RatingAggregate{Average: row.Average, Count: row.Count}, nil
}
