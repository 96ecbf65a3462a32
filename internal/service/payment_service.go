// FILE: internal/service/payment_service.go
package service

import (
	"context"
	"strings"

	"milk-platform-be/internal/constant"
	"milk-platform-be/internal/dto"
	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/pkg/apperror"
	"milk-platform-be/internal/pkg/logger"
	"milk-platform-be/internal/pkg/paymentgateway"
	"milk-platform-be/internal/repository/specification"
	"milk-platform-be/internal/repository/unitofwork"
	"milk-platform-be/pkg/schedule"

	"github.com/google/uuid"
)

const earningsMonths = 12

var paymentRelations = specification.With("Customer", "Seller", "Order", "Subscription")

type IPaymentService interface {
	Create(ctx context.Context, actor entity.Principal, req *dto.CreatePaymentRequest) (*dto.CreatePaymentResponse, error)
	HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error
	ListForCustomer(ctx context.Context, actor entity.Principal, query *dto.DateRangeQuery) ([]*dto.PaymentResponse, error)
	ListForSeller(ctx context.Context, actor entity.Principal, query *dto.SellerPaymentQuery) (*dto.SellerPaymentsResponse, error)
	ListForSubscription(ctx context.Context, actor entity.Principal, subscriptionId uuid.UUID) (*dto.SubscriptionPaymentsResponse, error)
	SellerSummary(ctx context.Context, actor entity.Principal) (*dto.EarningsSummaryResponse, error)
}

type paymentService struct {
	uowFactory unitofwork.RepositoryFactory
	gateway    paymentgateway.Gateway
	calendar   schedule.Calendar
	notifier   Notifier
	logger     logger.ILogger
}

func NewPaymentService(uowFactory unitofwork.RepositoryFactory, gateway paymentgateway.Gateway, calendar schedule.Calendar, notifier Notifier, log logger.ILogger) IPaymentService {
	return &paymentService{
		uowFactory: uowFactory,
		gateway:    gateway,
		calendar:   calendar,
		notifier:   notifier,
		logger:     log,
	}
}

func (s *paymentService) Create(ctx context.Context, actor entity.Principal, req *dto.CreatePaymentRequest) (*dto.CreatePaymentResponse, error) {
	if req.OrderId == nil && req.SubscriptionId == nil {
		return nil, apperror.Validation("Please provide either order ID or subscription ID")
	}
	if req.Amount <= 0 {
		return nil, apperror.Validation("Amount must be greater than 0")
	}
	method := entity.PaymentMethod(req.PaymentMethod)
	if !method.Valid() || method == entity.PaymentMethodGateway {
		return nil, apperror.Validation("Invalid payment method: %s", req.PaymentMethod)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	sellerId, err := s.resolveSeller(ctx, uow, actor, req)
	if err != nil {
		return nil, err
	}

	now := s.calendar.Now()
	payment := &entity.Payment{
		Id:             uuid.New(),
		CustomerId:     actor.Id,
		SellerId:       sellerId,
		OrderId:        req.OrderId,
		SubscriptionId: req.SubscriptionId,
		Amount:         req.Amount,
		PaymentMethod:  method,
		PaymentStatus:  entity.PaymentStatusCompleted,
		TransactionId:  strings.TrimSpace(req.TransactionId),
		Notes:          req.Notes,
		PaidAt:         &now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	online := method != entity.PaymentMethodCash && s.gateway.Enabled()
	if online {
		payment.PaymentStatus = entity.PaymentStatusPending
		payment.PaidAt = nil
	}

	if err := uow.PaymentRepository().Create(ctx, payment); err != nil {
		return nil, apperror.Internal("failed to record payment", err)
	}

	res := &dto.CreatePaymentResponse{}
	if online {
		customer, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: actor.Id})
		if err != nil {
			return nil, apperror.Internal("failed to load customer", err)
		}
		checkout, err := s.gateway.CreateTransaction(paymentgateway.Transaction{
			Reference: payment.Id.String(),
			Amount:    payment.Amount,
			ItemName:  "Milk payment",
			Customer:  gatewayCustomer(customer),
		})
		if err != nil {
			payment.PaymentStatus = entity.PaymentStatusFailed
			payment.UpdatedAt = s.calendar.Now()
			if uerr := uow.PaymentRepository().Update(ctx, payment); uerr != nil {
				s.logger.Error("PaymentService", "Failed to mark payment failed", map[string]interface{}{"payment_id": payment.Id, "error": uerr.Error()})
			}
			return nil, apperror.Internal("failed to create gateway transaction", err)
		}
		res.SnapToken = checkout.Token
		res.RedirectUrl = checkout.RedirectURL
	}

	full, err := s.load(ctx, uow, payment.Id)
	if err != nil {
		return nil, err
	}
	res.Payment = full
	if payment.PaymentStatus == entity.PaymentStatusCompleted {
		s.notifier.Notify(ctx, SellerAudience(payment.SellerId), constant.EventPaymentReceived, full)
	}
	return res, nil
}

// HandleNotification settles a pending gateway payment. Entries that already left pending are never changed.
func (s *paymentService) HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error {
	if !s.gateway.VerifySignature(req.OrderId, req.StatusCode, req.GrossAmount, req.SignatureKey) {
		s.logger.Warn("PaymentService", "Rejected gateway notification with bad signature", map[string]interface{}{"order_id": req.OrderId})
		return apperror.Unauthorized("Invalid signature")
	}
	paymentId, err := uuid.Parse(req.OrderId)
	if err != nil {
		return apperror.Validation("Invalid order id format")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperror.Internal("failed to begin transaction", err)
	}
	defer uow.Rollback()

	payment, err := uow.PaymentRepository().FindOne(ctx, specification.ByID{ID: paymentId}, specification.ForUpdate{})
	if err != nil {
		return apperror.Internal("failed to load payment", err)
	}
	if payment == nil {
		return apperror.NotFound("Payment not found")
	}
	if payment.PaymentStatus != entity.PaymentStatusPending {
		return nil
	}

	now := s.calendar.Now()
	switch paymentgateway.SettlementOf(req.TransactionStatus, req.FraudStatus) {
	case paymentgateway.SettlementPaid:
		payment.PaymentStatus = entity.PaymentStatusCompleted
		payment.PaidAt = &now
	case paymentgateway.SettlementFailed:
		payment.PaymentStatus = entity.PaymentStatusFailed
	default:
		return nil
	}
	if req.TransactionId != "" {
		payment.TransactionId = req.TransactionId
	}
	payment.UpdatedAt = now

	if err := uow.PaymentRepository().Update(ctx, payment); err != nil {
		return apperror.Internal("failed to settle payment", err)
	}
	if err := uow.Commit(); err != nil {
		return apperror.Internal("failed to commit payment settlement", err)
	}

	s.logger.Info("PaymentService", "Gateway payment settled", map[string]interface{}{"payment_id": payment.Id, "status": payment.PaymentStatus})
	if payment.PaymentStatus == entity.PaymentStatusCompleted {
		full, err := s.load(ctx, s.uowFactory.NewUnitOfWork(ctx), payment.Id)
		if err == nil {
			s.notifier.Notify(ctx, SellerAudience(payment.SellerId), constant.EventPaymentReceived, full)
		}
	}
	return nil
}

func (s *paymentService) ListForCustomer(ctx context.Context, actor entity.Principal, query *dto.DateRangeQuery) ([]*dto.PaymentResponse, error) {
	createdRange, err := parseDateRange(s.calendar, "created_at", query.StartDate, query.EndDate)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	payments, err := uow.PaymentRepository().FindAll(ctx,
		specification.OwnedByCustomer{CustomerID: actor.Id},
		createdRange,
		specification.With("Seller", "Order", "Subscription"),
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, apperror.Internal("failed to list payments", err)
	}
	return toPaymentResponses(payments), nil
}

func (s *paymentService) ListForSeller(ctx context.Context, actor entity.Principal, query *dto.SellerPaymentQuery) (*dto.SellerPaymentsResponse, error) {
	createdRange, err := parseDateRange(s.calendar, "created_at", query.StartDate, query.EndDate)
	if err != nil {
		return nil, err
	}
	filters := []specification.Specification{
		specification.OwnedBySeller{SellerID: actor.Id},
		createdRange,
	}
	if query.CustomerId != "" {
		customerId, err := uuid.Parse(query.CustomerId)
		if err != nil {
			return nil, apperror.Validation("Invalid customer id: %s", query.CustomerId)
		}
		filters = append(filters, specification.OwnedByCustomer{CustomerID: customerId})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	payments, err := uow.PaymentRepository().FindAll(ctx, append(filters,
		specification.With("Customer", "Order", "Subscription"),
		specification.OrderBy{Field: "created_at", Desc: true},
	)...)
	if err != nil {
		return nil, apperror.Internal("failed to list payments", err)
	}
	total, err := uow.PaymentRepository().SumCompleted(ctx, filters...)
	if err != nil {
		return nil, apperror.Internal("failed to sum earnings", err)
	}
	return &dto.SellerPaymentsResponse{Payments: toPaymentResponses(payments), TotalEarnings: total}, nil
}

func (s *paymentService) ListForSubscription(ctx context.Context, actor entity.Principal, subscriptionId uuid.UUID) (*dto.SubscriptionPaymentsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sub, err := uow.SubscriptionRepository().FindOne(ctx, specification.ByID{ID: subscriptionId})
	if err != nil {
		return nil, apperror.Internal("failed to load subscription", err)
	}
	if sub == nil {
		return nil, apperror.NotFound("Subscription not found")
	}
	if !actor.IsAdmin() && sub.CustomerId != actor.Id && sub.SellerId != actor.Id {
		return nil, apperror.Forbidden("Not authorized")
	}

	payments, err := uow.PaymentRepository().FindAll(ctx,
		specification.BySubscription{SubscriptionID: sub.Id},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, apperror.Internal("failed to list payments", err)
	}
	paid, err := uow.PaymentRepository().SumCompleted(ctx, specification.BySubscription{SubscriptionID: sub.Id})
	if err != nil {
		return nil, apperror.Internal("failed to sum payments", err)
	}

	return &dto.SubscriptionPaymentsResponse{
		Payments: toPaymentResponses(payments),
		Summary: dto.SubscriptionPaymentSummary{
			TotalAmount:     sub.TotalAmount,
			TotalPaid:       paid,
			RemainingAmount: schedule.RemainingAmount(sub.TotalAmount, paid),
		},
	}, nil
}

func (s *paymentService) SellerSummary(ctx context.Context, actor entity.Principal) (*dto.EarningsSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	total, err := uow.PaymentRepository().SumCompleted(ctx, specification.OwnedBySeller{SellerID: actor.Id})
	if err != nil {
		return nil, apperror.Internal("failed to sum earnings", err)
	}
	months, err := uow.PaymentRepository().MonthlyCompleted(ctx, actor.Id, s.calendar.Location(), earningsMonths)
	if err != nil {
		return nil, apperror.Internal("failed to group earnings", err)
	}

	active, err := uow.SubscriptionRepository().FindAll(ctx,
		specification.OwnedBySeller{SellerID: actor.Id},
		specification.ByStatus{Status: string(entity.SubscriptionStatusActive)},
	)
	if err != nil {
		return nil, apperror.Internal("failed to load active subscriptions", err)
	}
	pending := 0.0
	for _, sub := range active {
		paid, err := uow.PaymentRepository().SumCompleted(ctx, specification.BySubscription{SubscriptionID: sub.Id})
		if err != nil {
			return nil, apperror.Internal("failed to sum payments", err)
		}
		pending += schedule.RemainingAmount(sub.TotalAmount, paid)
	}

	monthly := make([]dto.MonthlyEarningDto, 0, len(months))
	for _, m := range months {
		monthly = append(monthly, dto.MonthlyEarningDto{Year: m.Year, Month: m.Month, Total: m.Total, Count: m.Count})
	}
	return &dto.EarningsSummaryResponse{TotalEarnings: total, PendingAmount: pending, MonthlyEarnings: monthly}, nil
}

// resolveSeller checks the referenced order and subscription belong to actor and returns their seller.
func (s *paymentService) resolveSeller(ctx context.Context, uow unitofwork.UnitOfWork, actor entity.Principal, req *dto.CreatePaymentRequest) (uuid.UUID, error) {
	var sellerId uuid.UUID

	if req.OrderId != nil {
		order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: *req.OrderId})
		if err != nil {
			return uuid.Nil, apperror.Internal("failed to load order", err)
		}
		if order == nil {
			return uuid.Nil, apperror.NotFound("Order not found")
		}
		if order.CustomerId != actor.Id {
			return uuid.Nil, apperror.Forbidden("Not authorized")
		}
		sellerId = order.SellerId
	}

	if req.SubscriptionId != nil {
		sub, err := uow.SubscriptionRepository().FindOne(ctx, specification.ByID{ID: *req.SubscriptionId})
		if err != nil {
			return uuid.Nil, apperror.Internal("failed to load subscription", err)
		}
		if sub == nil {
			return uuid.Nil, apperror.NotFound("Subscription not found")
		}
		if sub.CustomerId != actor.Id {
			return uuid.Nil, apperror.Forbidden("Not authorized")
		}
		if sellerId != uuid.Nil && sellerId != sub.SellerId {
			return uuid.Nil, apperror.Validation("Order and subscription belong to different sellers")
		}
		sellerId = sub.SellerId
	}
	return sellerId, nil
}

func (s *paymentService) load(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*dto.PaymentResponse, error) {
	payment, err := uow.PaymentRepository().FindOne(ctx, specification.ByID{ID: id}, paymentRelations)
	if err != nil {
		return nil, apperror.Internal("failed to load payment", err)
	}
	if payment == nil {
		return nil, apperror.NotFound("Payment not found")
	}
	return toPaymentResponse(payment), nil
}

func gatewayCustomer(u *entity.User) paymentgateway.Customer {
	if u == nil {
		return paymentgateway.Customer{}
	}
	return paymentgateway.Customer{Name: u.Name, Email: u.Email, Phone: u.Phone}
}
