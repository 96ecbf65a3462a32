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

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SubscriptionMapper
}

func NewSubscriptionRepository(db *gorm.DB) contract.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSubscriptionMapper(),
	}
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, sub *entity.Subscription) error {
	m := r.mapper.ToModel(sub)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return err
	}
	sub.Id = m.Id
	sub.CreatedAt = m.CreatedAt
	sub.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, sub *entity.Subscription) error {
	m := r.mapper.ToModel(sub)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(m).Error; err != nil {
		return err
	}
	sub.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *SubscriptionRepositoryImpl) AddPausedDate(ctx context.Context, subscriptionId uuid.UUID, paused entity.PausedDate) error {
	return r.db.WithContext(ctx).Create(&model.SubscriptionPausedDate{
		SubscriptionId: subscriptionId,
		Date:           paused.Date,
		PausedAt:       paused.PausedAt,
	}).Error
}

// FindOne always loads the paused dates; the pause engine depends on them.
func (r *SubscriptionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Subscription, error) {
	var m model.Subscription
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Preload("PausedDates").First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SubscriptionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Subscription, error) {
	var subs []*model.Subscription
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Preload("PausedDates").Find(&subs).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(subs), nil
}
