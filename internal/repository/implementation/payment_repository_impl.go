package implementation

import (
	"context"
	"errors"
	"time"

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

type PaymentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PaymentMapper
}

func NewPaymentRepository(db *gorm.DB) contract.PaymentRepository {
	return &PaymentRepositoryImpl{
		db:     db,
		mapper: mapper.NewPaymentMapper(),
	}
}

func (r *PaymentRepositoryImpl) Create(ctx context.Context, payment *entity.Payment) error {
	m := r.mapper.ToModel(payment)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return err
	}
	payment.Id = m.Id
	payment.CreatedAt = m.CreatedAt
	payment.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *PaymentRepositoryImpl) Update(ctx context.Context, payment *entity.Payment) error {
	m := r.mapper.ToModel(payment)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(m).Error; err != nil {
		return err
	}
	payment.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *PaymentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Payment, error) {
	var m model.Payment
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PaymentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Payment, error) {
	var payments []*model.Payment
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&payments).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(payments), nil
}

func (r *PaymentRepositoryImpl) SumCompleted(ctx context.Context, specs ...specification.Specification) (float64, error) {
	var total float64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Payment{}).Scopes(scope.CompletedPayments), specs...)
	if err := query.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *PaymentRepositoryImpl) MonthlyCompleted(ctx context.Context, sellerId uuid.UUID, loc *time.Location, limit int) ([]entity.MonthlyEarning, error) {
	zone := "UTC"
	if loc != nil && loc != time.Local {
		zone = loc.String()
	}

	var rows []struct {
		Year  int
		Month int
		Total float64
		Count int
	}
	err := r.db.WithContext(ctx).Model(&model.Payment{}).
		Scopes(scope.CompletedPayments).
		Select(`CAST(EXTRACT(YEAR FROM COALESCE(paid_at, created_at) AT TIME ZONE ?) AS INTEGER) AS year,
			CAST(EXTRACT(MONTH FROM COALESCE(paid_at, created_at) AT TIME ZONE ?) AS INTEGER) AS month,
			COALESCE(SUM(amount), 0) AS total,
			COUNT(*) AS count`, zone, zone).
		Where("seller_id = ?", sellerId).
		Group("year, month").
		Order("year DESC, month DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]entity.MonthlyEarning, len(rows))
	for i, row := range rows {
		result[i] = entity.MonthlyEarning{Year: row.Year, Month: row.Month, Total: row.Total, Count: row.Count}
	}
	return result, nil
}
