package contract

import (
	"context"

	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *entity.Subscription) error
	Update(ctx context.Context, sub *entity.Subscription) error
	AddPausedDate(ctx context.Context, subscriptionId uuid.UUID, paused entity.PausedDate) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Subscription, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Subscription, error)
}
