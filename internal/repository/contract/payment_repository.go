package contract

import (
	"context"
	"time"

	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	Update(ctx context.Context, payment *entity.Payment) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Payment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Payment, error)

	// SumCompleted totals completed payments matching specs.
	SumCompleted(ctx context.Context, specs ...specification.Specification) (float64, error)
	// MonthlyCompleted groups a seller's completed payments by paid month in loc, newest first.
	MonthlyCompleted(ctx context.Context, sellerId uuid.UUID, loc *time.Location, limit int) ([]entity.MonthlyEarning, error)
}
