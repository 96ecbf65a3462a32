package unitofwork

import (
	"context"

	"milk-platform-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	MilkRepository() contract.MilkRepository
	OrderRepository() contract.OrderRepository
	SubscriptionRepository() contract.SubscriptionRepository
	PaymentRepository() contract.PaymentRepository
	RatingRepository() contract.RatingRepository
}
