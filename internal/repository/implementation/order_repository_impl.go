package implementation

import (
	"context"
	"errors"

	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/mapper"
	"milk-platform-be/internal/model"
	"milk-platform-be/internal/repository/contract"
	"milk-platform-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const orderBatchSize = 100

type OrderRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OrderMapper
}

func NewOrderRepository(db *gorm.DB) contract.OrderRepository {
	return &OrderRepositoryImpl{
		db:     db,
		mapper: mapper.NewOrderMapper(),
	}
}

func (r *OrderRepositoryImpl) Create(ctx context.Context, order *entity.Order) error {
	m := r.mapper.ToModel(order)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return err
	}
	order.Id = m.Id
	order.CreatedAt = m.CreatedAt
	order.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *OrderRepositoryImpl) CreateBatch(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	models := r.mapper.ToModels(orders)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).CreateInBatches(models, orderBatchSize).Error; err != nil {
		return err
	}
	for i, m := range models {
		orders[i].Id = m.Id
		orders[i].CreatedAt = m.CreatedAt
		orders[i].UpdatedAt = m.UpdatedAt
	}
	return nil
}

func (r *OrderRepositoryImpl) Update(ctx context.Context, order *entity.Order) error {
	m := r.mapper.ToModel(order)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(m).Error; err != nil {
		return err
	}
	order.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *OrderRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
	var m model.Order
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *OrderRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error) {
	var orders []*model.Order
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(orders), nil
}
