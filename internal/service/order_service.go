package service

import (
	"context"
	"strings"

	"milk-platform-be/internal/constant"
	"milk-platform-be/internal/dto"
	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/pkg/apperror"
	"milk-platform-be/internal/repository/specification"
	"milk-platform-be/internal/repository/unitofwork"
	"milk-platform-be/pkg/schedule"

	"github.com/google/uuid"
)

var orderRelations = specification.With("Customer", "Seller", "Milk", "Subscription")

type IOrderService interface {
	CreateDaily(ctx context.Context, actor entity.Principal, req *dto.CreateDailyOrderRequest) (*dto.OrderResponse, error)
	ListForCustomer(ctx context.Context, actor entity.Principal, query *dto.CustomerOrderQuery) ([]*dto.OrderResponse, error)
	ListForSeller(ctx context.Context, actor entity.Principal, query *dto.SellerOrderQuery) ([]*dto.OrderResponse, error)
	Get(ctx context.Context, actor entity.Principal, id uuid.UUID) (*dto.OrderResponse, error)
	UpdateStatus(ctx context.Context, actor entity.Principal, id uuid.UUID, req *dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error)
	Cancel(ctx context.Context, actor entity.Principal, id uuid.UUID, req *dto.CancelOrderRequest) (*dto.OrderResponse, error)
}

type orderService struct {
	uowFactory unitofwork.RepositoryFactory
	calendar   schedule.Calendar
	notifier   Notifier
}

func NewOrderService(uowFactory unitofwork.RepositoryFactory, calendar schedule.Calendar, notifier Notifier) IOrderService {
	return &orderService{
		uowFactory: uowFactory,
		calendar:   calendar,
		notifier:   notifier,
	}
}

func (s *orderService) CreateDaily(ctx context.Context, actor entity.Principal, req *dto.CreateDailyOrderRequest) (*dto.OrderResponse, error) {
	if actor.Role != entity.UserRoleCustomer {
		return nil, apperror.Forbidden("Only customers can place orders")
	}
	if req.Quantity < schedule.MinQuantityPerDay {
		return nil, apperror.Validation("Minimum quantity is %.1f liter", schedule.MinQuantityPerDay)
	}

	now := s.calendar.Now()
	deliveryDate, err := s.calendar.ParseDate(req.DeliveryDate)
	if err != nil {
		return nil, err
	}
	if err := schedule.ValidateOrderTime(deliveryDate, now); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	milk, err := uow.MilkRepository().FindOne(ctx, specification.ByID{ID: req.MilkId})
	if err != nil {
		return nil, apperror.Internal("failed to load milk", err)
	}
	if milk == nil {
		return nil, apperror.NotFound("Milk product not found")
	}
	if !milk.IsAvailable {
		return nil, apperror.Validation("This milk product is currently unavailable")
	}
	if err := schedule.ValidateWeekday(milk, deliveryDate); err != nil {
		return nil, err
	}

	address, err := s.deliveryAddress(ctx, uow, actor.Id, req.DeliveryAddress)
	if err != nil {
		return nil, err
	}

	order := schedule.NewDailyOrder(actor.Id, milk, deliveryDate, req.Quantity, address, strings.TrimSpace(req.Notes), now)
	if err := uow.OrderRepository().Create(ctx, order); err != nil {
		return nil, apperror.Internal("failed to create order", err)
	}

	res, err := s.load(ctx, uow, order.Id)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, SellerAudience(order.SellerId), constant.EventNewOrder, res)
	return res, nil
}

func (s *orderService) ListForCustomer(ctx context.Context, actor entity.Principal, query *dto.CustomerOrderQuery) ([]*dto.OrderResponse, error) {
	specs := []specification.Specification{
		specification.OwnedByCustomer{CustomerID: actor.Id},
		specification.With("Seller", "Milk", "Subscription"),
		specification.OrderBy{Field: "delivery_date", Desc: true},
	}
	if query.Status != "" {
		if !entity.OrderStatus(query.Status).Valid() {
			return nil, apperror.Validation("Invalid order status: %s", query.Status)
		}
		specs = append(specs, specification.ByStatus{Status: query.Status})
	}
	dateRange, err := parseDateRange(s.calendar, "delivery_date", query.StartDate, query.EndDate)
	if err != nil {
		return nil, err
	}
	specs = append(specs, dateRange)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	orders, err := uow.OrderRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.Internal("failed to list orders", err)
	}
	return toOrderResponses(orders), nil
}

func (s *orderService) ListForSeller(ctx context.Context, actor entity.Principal, query *dto.SellerOrderQuery) ([]*dto.OrderResponse, error) {
	specs := []specification.Specification{
		specification.OwnedBySeller{SellerID: actor.Id},
		specification.With("Customer", "Milk", "Subscription"),
		specification.OrderBy{Field: "delivery_date"},
	}
	if query.Status != "" {
		if !entity.OrderStatus(query.Status).Valid() {
			return nil, apperror.Validation("Invalid order status: %s", query.Status)
		}
		specs = append(specs, specification.ByStatus{Status: query.Status})
	}
	if query.Date != "" {
		day, err := s.calendar.ParseDate(query.Date)
		if err != nil {
			return nil, err
		}
		specs = append(specs, specification.DeliveredOn{Day: day})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	orders, err := uow.OrderRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.Internal("failed to list orders", err)
	}
	return toOrderResponses(orders), nil
}

func (s *orderService) Get(ctx context.Context, actor entity.Principal, id uuid.UUID) (*dto.OrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: id}, orderRelations)
	if err != nil {
		return nil, apperror.Internal("failed to load order", err)
	}
	if order == nil {
		return nil, apperror.NotFound("Order not found")
	}
	if !actor.IsAdmin() && order.CustomerId != actor.Id && order.SellerId != actor.Id {
		return nil, apperror.Forbidden("Not authorized to view this order")
	}
	return toOrderResponse(order), nil
}

func (s *orderService) UpdateStatus(ctx context.Context, actor entity.Principal, id uuid.UUID, req *dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	next := entity.OrderStatus(req.Status)
	if !next.Valid() {
		return nil, apperror.Validation("Invalid order status: %s", req.Status)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Internal("failed to load order", err)
	}
	if order == nil {
		return nil, apperror.NotFound("Order not found")
	}
	if order.SellerId != actor.Id {
		return nil, apperror.Forbidden("Not authorized to update this order")
	}
	if err := order.TransitionTo(next, s.calendar.Now()); err != nil {
		return nil, err
	}
	if err := uow.OrderRepository().Update(ctx, order); err != nil {
		return nil, apperror.Internal("failed to update order", err)
	}

	res, err := s.load(ctx, uow, order.Id)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, CustomerAudience(order.CustomerId), constant.EventOrderStatusUpdated, res)
	return res, nil
}

func (s *orderService) Cancel(ctx context.Context, actor entity.Principal, id uuid.UUID, req *dto.CancelOrderRequest) (*dto.OrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Internal("failed to load order", err)
	}
	if order == nil {
		return nil, apperror.NotFound("Order not found")
	}
	if order.CustomerId != actor.Id {
		return nil, apperror.Forbidden("Not authorized to cancel this order")
	}
	if err := order.Cancel(strings.TrimSpace(req.Reason), s.calendar.Now()); err != nil {
		return nil, err
	}
	if err := uow.OrderRepository().Update(ctx, order); err != nil {
		return nil, apperror.Internal("failed to cancel order", err)
	}

	res, err := s.load(ctx, uow, order.Id)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, SellerAudience(order.SellerId), constant.EventOrderCancelled, res)
	return res, nil
}

func (s *orderService) load(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: id}, orderRelations)
	if err != nil {
		return nil, apperror.Internal("failed to load order", err)
	}
	if order == nil {
		return nil, apperror.NotFound("Order not found")
	}
	return toOrderResponse(order), nil
}

// deliveryAddress falls back to the customer's profile address.
func (s *orderService) deliveryAddress(ctx context.Context, uow unitofwork.UnitOfWork, customerId uuid.UUID, req *dto.AddressDto) (entity.Address, error) {
	if req != nil && *req != (dto.AddressDto{}) {
		return toAddressEntity(*req), nil
	}
	customer, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: customerId})
	if err != nil {
		return entity.Address{}, apperror.Internal("failed to load customer", err)
	}
	if customer == nil {
		return entity.Address{}, apperror.NotFound("Customer not found")
	}
	return customer.Address, nil
}

// parseDateRange turns inclusive date bounds into a half-open range on field.
func parseDateRange(cal schedule.Calendar, field, start, end string) (specification.TimeRange, error) {
	r := specification.TimeRange{Field: field}
	if start != "" {
		from, err := cal.ParseDate(start)
		if err != nil {
			return r, err
		}
		r.From = from
	}
	if end != "" {
		to, err := cal.ParseDate(end)
		if err != nil {
			return r, err
		}
		r.To = schedule.AddDays(to, 1)
	}
	return r, nil
}
