// FILE: internal/service/subscription_service.go
package service

import (
	"context"
	"strings"

	"milk-platform-be/internal/constant"
	"milk-platform-be/internal/dto"
	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/pkg/apperror"
	"milk-platform-be/internal/pkg/logger"
	"milk-platform-be/internal/repository/specification"
	"milk-platform-be/internal/repository/unitofwork"
	"milk-platform-be/pkg/schedule"

	"github.com/google/uuid"
)

var subscriptionRelations = specification.With("Customer", "Seller", "Milk")

type ISubscriptionService interface {
	Create(ctx context.Context, actor entity.Principal, req *dto.CreateSubscriptionRequest) (*dto.CreateSubscriptionResponse, error)
	ListForCustomer(ctx context.Context, actor entity.Principal, query *dto.SubscriptionListQuery) ([]*dto.SubscriptionResponse, error)
	ListForSeller(ctx context.Context, actor entity.Principal, query *dto.SubscriptionListQuery) ([]*dto.SubscriptionResponse, error)
	Get(ctx context.Context, actor entity.Principal, id uuid.UUID) (*dto.SubscriptionResponse, error)
	PauseDate(ctx context.Context, actor entity.Principal, id uuid.UUID, req *dto.PauseDateRequest) (*dto.PauseDateResponse, error)
	Cancel(ctx context.Context, actor entity.Principal, id uuid.UUID) (*dto.SubscriptionResponse, error)
	UpdateStatus(ctx context.Context, actor entity.Principal, id uuid.UUID, req *dto.UpdateSubscriptionStatusRequest) (*dto.SubscriptionResponse, error)

	// CompleteExpired marks active subscriptions whose end date has passed as completed.
	CompleteExpired(ctx context.Context) (int, error)
}

type subscriptionService struct {
	uowFactory unitofwork.RepositoryFactory
	calendar   schedule.Calendar
	notifier   Notifier
	logger     logger.ILogger
}

func NewSubscriptionService(uowFactory unitofwork.RepositoryFactory, calendar schedule.Calendar, notifier Notifier, log logger.ILogger) ISubscriptionService {
	return &subscriptionService{
		uowFactory: uowFactory,
		calendar:   calendar,
		notifier:   notifier,
		logger:     log,
	}
}

func (s *subscriptionService) Create(ctx context.Context, actor entity.Principal, req *dto.CreateSubscriptionRequest) (*dto.CreateSubscriptionResponse, error) {
	if actor.Role != entity.UserRoleCustomer {
		return nil, apperror.Forbidden("Only customers can subscribe")
	}
	startDate, err := s.calendar.ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	milk, err := uow.MilkRepository().FindOne(ctx, specification.ByID{ID: req.MilkId})
	if err != nil {
		return nil, apperror.Internal("failed to load milk", err)
	}

	address := entity.Address{}
	if req.DeliveryAddress != nil && *req.DeliveryAddress != (dto.AddressDto{}) {
		address = toAddressEntity(*req.DeliveryAddress)
	} else {
		customer, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: actor.Id})
		if err != nil {
			return nil, apperror.Internal("failed to load customer", err)
		}
		if customer != nil {
			address = customer.Address
		}
	}

	now := s.calendar.Now()
	sub, orders, err := schedule.Generate(schedule.SubscriptionPlan{
		CustomerId:      actor.Id,
		Milk:            milk,
		StartDate:       startDate,
		NumberOfDays:    req.NumberOfDays,
		QuantityPerDay:  req.QuantityPerDay,
		DeliveryAddress: address,
		Notes:           strings.TrimSpace(req.Notes),
	}, now)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal("failed to begin transaction", err)
	}
	defer uow.Rollback()

	if err := uow.SubscriptionRepository().Create(ctx, sub); err != nil {
		return nil, apperror.Internal("failed to create subscription", err)
	}
	if err := uow.OrderRepository().CreateBatch(ctx, orders); err != nil {
		return nil, apperror.Internal("failed to create subscription orders", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal("failed to commit subscription", err)
	}

	res, err := s.load(ctx, sub.Id, false)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, SellerAudience(sub.SellerId), constant.EventNewSubscription, res)

	return &dto.CreateSubscriptionResponse{Subscription: res, OrdersCreated: len(orders)}, nil
}

func (s *subscriptionService) ListForCustomer(ctx context.Context, actor entity.Principal, query *dto.SubscriptionListQuery) ([]*dto.SubscriptionResponse, error) {
	return s.list(ctx, query.Status,
		specification.OwnedByCustomer{CustomerID: actor.Id},
		specification.With("Seller", "Milk"),
	)
}

func (s *subscriptionService) ListForSeller(ctx context.Context, actor entity.Principal, query *dto.SubscriptionListQuery) ([]*dto.SubscriptionResponse, error) {
	return s.list(ctx, query.Status,
		specification.OwnedBySeller{SellerID: actor.Id},
		specification.With("Customer", "Milk"),
	)
}

func (s *subscriptionService) list(ctx context.Context, status string, specs ...specification.Specification) ([]*dto.SubscriptionResponse, error) {
	if status != "" {
		if !entity.SubscriptionStatus(status).Valid() {
			return nil, apperror.Validation("Invalid subscription status: %s", status)
		}
		specs = append(specs, specification.ByStatus{Status: status})
	}
	specs = append(specs, specification.OrderBy{Field: "created_at", Desc: true})

	uow := s.uowFactory.NewUnitOfWork(ctx)
	subs, err := uow.SubscriptionRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.Internal("failed to list subscriptions", err)
	}

	now := s.calendar.Now()
	res := make([]*dto.SubscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		paid, err := uow.PaymentRepository().SumCompleted(ctx, specification.BySubscription{SubscriptionID: sub.Id})
		if err != nil {
			return nil, apperror.Internal("failed to sum payments", err)
		}
		res = append(res, toSubscriptionResponse(sub, paid, now))
	}
	return res, nil
}

func (s *subscriptionService) Get(ctx context.Context, actor entity.Principal, id uuid.UUID) (*dto.SubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sub, err := uow.SubscriptionRepository().FindOne(ctx, specification.ByID{ID: id}, subscriptionRelations)
	if err != nil {
		return nil, apperror.Internal("failed to load subscription", err)
	}
	if sub == nil {
		return nil, apperror.NotFound("Subscription not found")
	}
	if !actor.IsAdmin() && sub.CustomerId != actor.Id && sub.SellerId != actor.Id {
		return nil, apperror.Forbidden("Not authorized to view this subscription")
	}
	return s.withLedger(ctx, uow, sub, true)
}

func (s *subscriptionService) PauseDate(ctx context.Context, actor entity.Principal, id uuid.UUID, req *dto.PauseDateRequest) (*dto.PauseDateResponse, error) {
	day, err := s.calendar.ParseDate(req.PauseDate)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal("failed to begin transaction", err)
	}
	defer uow.Rollback()

	sub, err := s.lockOwned(ctx, uow, actor, id, "pause")
	if err != nil {
		return nil, err
	}
	dayOrder, err := uow.OrderRepository().FindOne(ctx,
		specification.BySubscription{SubscriptionID: sub.Id},
		specification.DeliveredOn{Day: day},
		specification.ByStatus{Status: string(entity.OrderStatusPending)},
	)
	if err != nil {
		return nil, apperror.Internal("failed to load order for paused date", err)
	}

	outcome, err := schedule.Pause(sub, dayOrder, day, s.calendar.Now())
	if err != nil {
		return nil, err
	}

	if err := uow.SubscriptionRepository().Update(ctx, sub); err != nil {
		return nil, apperror.Internal("failed to update subscription", err)
	}
	if err := uow.SubscriptionRepository().AddPausedDate(ctx, sub.Id, sub.PausedDates[len(sub.PausedDates)-1]); err != nil {
		return nil, apperror.Internal("failed to record paused date", err)
	}
	if outcome.CancelledOrder != nil {
		if err := uow.OrderRepository().Update(ctx, outcome.CancelledOrder); err != nil {
			return nil, apperror.Internal("failed to cancel paused order", err)
		}
	}
	if outcome.MakeUpOrder != nil {
		if err := uow.OrderRepository().Create(ctx, outcome.MakeUpOrder); err != nil {
			return nil, apperror.Internal("failed to schedule make-up order", err)
		}
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal("failed to commit pause", err)
	}

	subRes, err := s.load(ctx, sub.Id, false)
	if err != nil {
		return nil, err
	}
	res := &dto.PauseDateResponse{
		Subscription:   subRes,
		PausedDate:     outcome.Date,
		CancelledOrder: toOrderResponse(outcome.CancelledOrder),
		MakeUpOrder:    toOrderResponse(outcome.MakeUpOrder),
	}
	s.notifier.Notify(ctx, SellerAudience(sub.SellerId), constant.EventSubscriptionPaused, map[string]interface{}{
		"subscription": subRes,
		"pausedDate":   schedule.FormatDate(outcome.Date),
	})
	return res, nil
}

func (s *subscriptionService) Cancel(ctx context.Context, actor entity.Principal, id uuid.UUID) (*dto.SubscriptionResponse, error) {
	now := s.calendar.Now()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal("failed to begin transaction", err)
	}
	defer uow.Rollback()

	sub, err := s.lockOwned(ctx, uow, actor, id, "cancel")
	if err != nil {
		return nil, err
	}
	if err := sub.TransitionTo(entity.SubscriptionStatusCancelled, now); err != nil {
		return nil, err
	}

	pending, err := uow.OrderRepository().FindAll(ctx,
		specification.BySubscription{SubscriptionID: sub.Id},
		specification.ByStatus{Status: string(entity.OrderStatusPending)},
	)
	if err != nil {
		return nil, apperror.Internal("failed to load subscription orders", err)
	}
	cancelled := schedule.CancelOutstanding(pending, now)
	for _, o := range cancelled {
		if err := uow.OrderRepository().Update(ctx, o); err != nil {
			return nil, apperror.Internal("failed to cancel subscription order", err)
		}
	}
	if err := uow.SubscriptionRepository().Update(ctx, sub); err != nil {
		return nil, apperror.Internal("failed to update subscription", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal("failed to commit cancellation", err)
	}

	res, err := s.load(ctx, sub.Id, false)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, SellerAudience(sub.SellerId), constant.EventSubscriptionCancelled, res)
	return res, nil
}

// UpdateStatus pauses or resumes the whole subscription. Orders are left as they are.
func (s *subscriptionService) UpdateStatus(ctx context.Context, actor entity.Principal, id uuid.UUID, req *dto.UpdateSubscriptionStatusRequest) (*dto.SubscriptionResponse, error) {
	next := entity.SubscriptionStatus(req.Status)
	if next != entity.SubscriptionStatusPaused && next != entity.SubscriptionStatusActive {
		return nil, apperror.Validation("Status must be one of: paused, active")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal("failed to begin transaction", err)
	}
	defer uow.Rollback()

	sub, err := s.lockOwned(ctx, uow, actor, id, "update")
	if err != nil {
		return nil, err
	}
	if err := sub.TransitionTo(next, s.calendar.Now()); err != nil {
		return nil, err
	}
	if err := uow.SubscriptionRepository().Update(ctx, sub); err != nil {
		return nil, apperror.Internal("failed to update subscription", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal("failed to commit status change", err)
	}

	res, err := s.load(ctx, sub.Id, false)
	if err != nil {
		return nil, err
	}
	event := constant.EventSubscriptionPaused
	if next == entity.SubscriptionStatusActive {
		event = constant.EventSubscriptionResumed
	}
	s.notifier.Notify(ctx, SellerAudience(sub.SellerId), event, map[string]interface{}{"subscription": res})
	return res, nil
}

func (s *subscriptionService) CompleteExpired(ctx context.Context) (int, error) {
	now := s.calendar.Now()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer uow.Rollback()

	expired, err := uow.SubscriptionRepository().FindAll(ctx,
		specification.ByStatus{Status: string(entity.SubscriptionStatusActive)},
		specification.EndsBefore{Day: s.calendar.Today()},
		specification.ForUpdate{},
	)
	if err != nil {
		return 0, err
	}
	for _, sub := range expired {
		if err := sub.TransitionTo(entity.SubscriptionStatusCompleted, now); err != nil {
			return 0, err
		}
		if err := uow.SubscriptionRepository().Update(ctx, sub); err != nil {
			return 0, err
		}
	}
	if err := uow.Commit(); err != nil {
		return 0, err
	}

	if len(expired) > 0 {
		s.logger.Info("SubscriptionService", "Completed expired subscriptions", map[string]interface{}{"count": len(expired)})
	}
	return len(expired), nil
}

// lockOwned loads the subscription row for update and checks that actor is its customer or an admin.
func (s *subscriptionService) lockOwned(ctx context.Context, uow unitofwork.UnitOfWork, actor entity.Principal, id uuid.UUID, action string) (*entity.Subscription, error) {
	sub, err := uow.SubscriptionRepository().FindOne(ctx, specification.ByID{ID: id}, specification.ForUpdate{})
	if err != nil {
		return nil, apperror.Internal("failed to load subscription", err)
	}
	if sub == nil {
		return nil, apperror.NotFound("Subscription not found")
	}
	if !actor.IsAdmin() && sub.CustomerId != actor.Id {
		return nil, apperror.Forbidden("Not authorized to " + action + " this subscription")
	}
	return sub, nil
}

func (s *subscriptionService) load(ctx context.Context, id uuid.UUID, withOrders bool) (*dto.SubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sub, err := uow.SubscriptionRepository().FindOne(ctx, specification.ByID{ID: id}, subscriptionRelations)
	if err != nil {
		return nil, apperror.Internal("failed to load subscription", err)
	}
	if sub == nil {
		return nil, apperror.NotFound("Subscription not found")
	}
	return s.withLedger(ctx, uow, sub, withOrders)
}

func (s *subscriptionService) withLedger(ctx context.Context, uow unitofwork.UnitOfWork, sub *entity.Subscription, withOrders bool) (*dto.SubscriptionResponse, error) {
	if withOrders {
		orders, err := uow.OrderRepository().FindAll(ctx,
			specification.BySubscription{SubscriptionID: sub.Id},
			specification.OrderBy{Field: "delivery_date"},
		)
		if err != nil {
			return nil, apperror.Internal("failed to load subscription orders", err)
		}
		sub.Orders = orders
	}
	paid, err := uow.PaymentRepository().SumCompleted(ctx, specification.BySubscription{SubscriptionID: sub.Id})
	if err != nil {
		return nil, apperror.Internal("failed to sum payments", err)
	}
	return toSubscriptionResponse(sub, paid, s.calendar.Now()), nil
}
