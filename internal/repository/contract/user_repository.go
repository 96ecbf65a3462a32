package contract

import (
	"context"

	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// UpdateRating stores the seller's aggregate rating.
	UpdateRating(ctx context.Context, id uuid.UUID, agg entity.RatingAggregate) error
}
