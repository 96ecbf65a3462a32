package contract

import (
	"context"

	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MilkRepository interface {
	Create(ctx context.Context, milk *entity.Milk) error
	Update(ctx context.Context, milk *entity.Milk) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Milk, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Milk, error)

	// ListTypes groups available listings by effective type with distinct seller counts.
	ListTypes(ctx context.Context) ([]entity.MilkTypeSummary, error)
	UpdateRating(ctx context.Context, id uuid.UUID, agg entity.RatingAggregate) error
}
