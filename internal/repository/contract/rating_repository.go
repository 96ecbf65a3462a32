package contract

import (
	"context"

	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RatingRepository interface {
	Create(ctx context.Context, rating *entity.Rating) error
	Update(ctx context.Context, rating *entity.Rating) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Rating, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Rating, error)

	SellerAggregate(ctx context.Context, sellerId uuid.UUID) (entity.RatingAggregate, error)
	MilkAggregate(ctx context.Context, milkId uuid.UUID) (entity.RatingAggregate, error)
}
