package service

import (
	"context"
	"testing"
	"time"

	"milk-platform-be/internal/constant"
	"milk-platform-be/internal/dto"
	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/pkg/apperror"
	"milk-platform-be/internal/pkg/logger"
	"milk-platform-be/pkg/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type subscriptionFixture struct {
	store    *fakeStore
	notifier *recordingNotifier
	svc      ISubscriptionService
	customer *entity.User
	seller   *entity.User
	milk     *entity.Milk
}

// Now is 2026-06-10 08:00 IST throughout.
func newSubscriptionFixture() *subscriptionFixture {
	store := newFakeStore()
	notifier := &recordingNotifier{}
	seller := newSeller(store)
	f := &subscriptionFixture{
		store:    store,
		notifier: notifier,
		svc:      NewSubscriptionService(store, fixedCalendar(2026, 6, 10, 8), notifier, logger.NewNopLogger()),
		customer: newCustomer(store),
		seller:   seller,
		milk:     newMilk(store, seller, 50),
	}
	return f
}

func (f *subscriptionFixture) subscribe(t *testing.T) *dto.SubscriptionResponse {
	t.Helper()
	res, err := f.svc.Create(context.Background(), principal(f.customer), &dto.CreateSubscriptionRequest{
		MilkId:         f.milk.Id,
		StartDate:      "2026-06-11",
		NumberOfDays:   5,
		QuantityPerDay: 2,
	})
	require.NoError(t, err)
	return res.Subscription
}

func day(d int) time.Time {
	return time.Date(2026, 6, d, 0, 0, 0, 0, ist)
}

func TestCreateSubscriptionGeneratesOrders(t *testing.T) {
	f := newSubscriptionFixture()

	res, err := f.svc.Create(context.Background(), principal(f.customer), &dto.CreateSubscriptionRequest{
		MilkId:         f.milk.Id,
		StartDate:      "2026-06-11",
		NumberOfDays:   5,
		QuantityPerDay: 2,
	})
	require.NoError(t, err)

	sub := res.Subscription
	assert.Equal(t, 5, res.OrdersCreated)
	assert.Equal(t, 500.0, sub.TotalAmount)
	assert.Equal(t, 500.0, sub.RemainingAmount)
	assert.Equal(t, "active", sub.Status)
	assert.True(t, sub.EndDate.Equal(day(15)))
	assert.Equal(t, "Pune", sub.DeliveryAddress.City, "falls back to the profile address")

	orders := f.store.ordersOf(sub.Id)
	require.Len(t, orders, 5)
	for i, o := range orders {
		assert.True(t, o.DeliveryDate.Equal(day(11+i)))
		assert.Equal(t, 100.0, o.TotalAmount)
		assert.Equal(t, entity.OrderStatusPending, o.Status)
		assert.Equal(t, entity.OrderTypeSubscription, o.OrderType)
	}

	last := f.notifier.last()
	assert.Equal(t, SellerAudience(f.seller.Id), last.Audience)
	assert.Equal(t, constant.EventNewSubscription, last.Event)
}

func TestCreateSubscriptionIsAtomic(t *testing.T) {
	f := newSubscriptionFixture()
	f.store.failOn["orders.CreateBatch"] = true

	_, err := f.svc.Create(context.Background(), principal(f.customer), &dto.CreateSubscriptionRequest{
		MilkId:         f.milk.Id,
		StartDate:      "2026-06-11",
		NumberOfDays:   5,
		QuantityPerDay: 2,
	})

	require.Error(t, err)
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
	assert.Zero(t, f.store.subscriptionCount())
	assert.Zero(t, f.store.orderCount())
	assert.Empty(t, f.notifier.events())
}

func TestCreateSubscriptionRejects(t *testing.T) {
	f := newSubscriptionFixture()
	unavailable := newMilk(f.store, f.seller, 40)
	unavailable.IsAvailable = false
	require.NoError(t, fakeMilks{f.store}.Update(context.Background(), unavailable))

	tests := []struct {
		name  string
		actor entity.Principal
		req   dto.CreateSubscriptionRequest
		kind  apperror.Kind
	}{
		{"seller cannot subscribe", principal(f.seller),
			dto.CreateSubscriptionRequest{MilkId: f.milk.Id, StartDate: "2026-06-11", NumberOfDays: 3, QuantityPerDay: 1}, apperror.KindForbidden},
		{"start in the past", principal(f.customer),
			dto.CreateSubscriptionRequest{MilkId: f.milk.Id, StartDate: "2026-06-09", NumberOfDays: 3, QuantityPerDay: 1}, apperror.KindValidation},
		{"unavailable milk", principal(f.customer),
			dto.CreateSubscriptionRequest{MilkId: unavailable.Id, StartDate: "2026-06-11", NumberOfDays: 3, QuantityPerDay: 1}, apperror.KindValidation},
		{"unknown milk", principal(f.customer),
			dto.CreateSubscriptionRequest{MilkId: uuid.New(), StartDate: "2026-06-11", NumberOfDays: 3, QuantityPerDay: 1}, apperror.KindNotFound},
		{"bad date", principal(f.customer),
			dto.CreateSubscriptionRequest{MilkId: f.milk.Id, StartDate: "11/06/2026", NumberOfDays: 3, QuantityPerDay: 1}, apperror.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := f.svc.Create(context.Background(), tt.actor, &req)
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperror.KindOf(err))
		})
	}
	assert.Zero(t, f.store.subscriptionCount())
}

func TestPauseDateExtendsAndReschedules(t *testing.T) {
	f := newSubscriptionFixture()
	sub := f.subscribe(t)

	res, err := f.svc.PauseDate(context.Background(), principal(f.customer), sub.Id, &dto.PauseDateRequest{PauseDate: "2026-06-13"})
	require.NoError(t, err)

	assert.Equal(t, 6, res.Subscription.TotalDays)
	assert.Equal(t, 1, res.Subscription.ExtendedDays)
	assert.Equal(t, 500.0, res.Subscription.TotalAmount)
	assert.True(t, res.Subscription.EndDate.Equal(day(16)))
	require.Len(t, res.Subscription.PausedDates, 1)
	assert.True(t, res.Subscription.PausedDates[0].Date.Equal(day(13)))

	require.NotNil(t, res.CancelledOrder)
	assert.Equal(t, "cancelled", res.CancelledOrder.Status)
	assert.Equal(t, entity.CancelReasonPaused, res.CancelledOrder.CancelReason)
	require.NotNil(t, res.MakeUpOrder)
	assert.True(t, res.MakeUpOrder.DeliveryDate.Equal(day(16)))
	assert.Equal(t, 100.0, res.MakeUpOrder.TotalAmount)

	orders := f.store.ordersOf(sub.Id)
	require.Len(t, orders, 6)
	pending := 0
	for _, o := range orders {
		if o.DeliveryDate.Equal(day(13)) {
			assert.Equal(t, entity.OrderStatusCancelled, o.Status)
			continue
		}
		assert.Equal(t, entity.OrderStatusPending, o.Status)
		pending++
	}
	assert.Equal(t, 5, pending)

	last := f.notifier.last()
	assert.Equal(t, constant.EventSubscriptionPaused, last.Event)
	payload, ok := last.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "2026-06-13", payload["pausedDate"])
}

func TestPauseDateWithoutPendingOrderOnlyExtends(t *testing.T) {
	f := newSubscriptionFixture()
	sub := f.subscribe(t)
	for _, o := range f.store.ordersOf(sub.Id) {
		if o.DeliveryDate.Equal(day(12)) {
			o.Status = entity.OrderStatusConfirmed
			require.NoError(t, fakeOrders{f.store}.Update(context.Background(), o))
		}
	}

	res, err := f.svc.PauseDate(context.Background(), principal(f.customer), sub.Id, &dto.PauseDateRequest{PauseDate: "2026-06-12"})
	require.NoError(t, err)

	assert.Nil(t, res.CancelledOrder)
	assert.Nil(t, res.MakeUpOrder)
	assert.Equal(t, 6, res.Subscription.TotalDays)
	assert.Len(t, f.store.ordersOf(sub.Id), 5)
}

func TestPauseDateRejections(t *testing.T) {
	f := newSubscriptionFixture()
	sub := f.subscribe(t)
	other := newCustomer(f.store)

	_, err := f.svc.PauseDate(context.Background(), principal(f.customer), sub.Id, &dto.PauseDateRequest{PauseDate: "2026-06-13"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		actor entity.Principal
		date  string
		want  error
		kind  apperror.Kind
	}{
		{"already paused", principal(f.customer), "2026-06-13", schedule.ErrAlreadyPaused, apperror.KindState},
		{"today", principal(f.customer), "2026-06-10", schedule.ErrPauseTooLate, apperror.KindValidation},
		{"outside period", principal(f.customer), "2026-06-30", schedule.ErrPauseOutOfPeriod, apperror.KindValidation},
		{"not the owner", principal(other), "2026-06-14", nil, apperror.KindForbidden},
		{"seller", principal(f.seller), "2026-06-14", nil, apperror.KindForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.PauseDate(context.Background(), tt.actor, sub.Id, &dto.PauseDateRequest{PauseDate: tt.date})
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
			assert.Equal(t, tt.kind, apperror.KindOf(err))
		})
	}

	stored := f.store.subscription(sub.Id)
	assert.Equal(t, 1, stored.ExtendedDays)
	assert.Len(t, stored.PausedDates, 1)
	assert.Len(t, f.store.ordersOf(sub.Id), 6)
}

func TestPauseDateOnPausedSubscription(t *testing.T) {
	f := newSubscriptionFixture()
	sub := f.subscribe(t)

	_, err := f.svc.UpdateStatus(context.Background(), principal(f.customer), sub.Id, &dto.UpdateSubscriptionStatusRequest{Status: "paused"})
	require.NoError(t, err)

	_, err = f.svc.PauseDate(context.Background(), principal(f.customer), sub.Id, &dto.PauseDateRequest{PauseDate: "2026-06-13"})
	assert.ErrorIs(t, err, schedule.ErrPauseNotActive)
}

func TestCancelSubscriptionCascades(t *testing.T) {
	f := newSubscriptionFixture()
	sub := f.subscribe(t)
	first := f.store.ordersOf(sub.Id)[0]
	first.Status = entity.OrderStatusConfirmed
	require.NoError(t, fakeOrders{f.store}.Update(context.Background(), first))

	_, err := f.svc.Cancel(context.Background(), principal(f.seller), sub.Id)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	res, err := f.svc.Cancel(context.Background(), principal(f.customer), sub.Id)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", res.Status)

	for _, o := range f.store.ordersOf(sub.Id) {
		if o.Id == first.Id {
			assert.Equal(t, entity.OrderStatusConfirmed, o.Status)
			continue
		}
		assert.Equal(t, entity.OrderStatusCancelled, o.Status)
		assert.Equal(t, entity.CancelReasonSubscriptionCancelled, o.CancelReason)
		assert.NotNil(t, o.CancelledAt)
	}
	assert.Equal(t, constant.EventSubscriptionCancelled, f.notifier.last().Event)

	_, err = f.svc.Cancel(context.Background(), principal(f.customer), sub.Id)
	assert.Equal(t, apperror.KindState, apperror.KindOf(err))
}

func TestUpdateStatusPausesAndResumes(t *testing.T) {
	f := newSubscriptionFixture()
	sub := f.subscribe(t)

	res, err := f.svc.UpdateStatus(context.Background(), principal(f.customer), sub.Id, &dto.UpdateSubscriptionStatusRequest{Status: "paused"})
	require.NoError(t, err)
	assert.Equal(t, "paused", res.Status)
	assert.Equal(t, constant.EventSubscriptionPaused, f.notifier.last().Event)

	for _, o := range f.store.ordersOf(sub.Id) {
		assert.Equal(t, entity.OrderStatusPending, o.Status)
	}

	res, err = f.svc.UpdateStatus(context.Background(), principal(f.customer), sub.Id, &dto.UpdateSubscriptionStatusRequest{Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, "active", res.Status)
	assert.Equal(t, constant.EventSubscriptionResumed, f.notifier.last().Event)

	_, err = f.svc.UpdateStatus(context.Background(), principal(f.customer), sub.Id, &dto.UpdateSubscriptionStatusRequest{Status: "completed"})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestGetSubscriptionLedger(t *testing.T) {
	f := newSubscriptionFixture()
	sub := f.subscribe(t)
	subId := sub.Id
	for _, p := range []struct {
		amount float64
		status entity.PaymentStatus
	}{{200, entity.PaymentStatusCompleted}, {100, entity.PaymentStatusCompleted}, {50, entity.PaymentStatusPending}} {
		f.store.addPayment(&entity.Payment{
			Id:             uuid.New(),
			CustomerId:     f.customer.Id,
			SellerId:       f.seller.Id,
			SubscriptionId: &subId,
			Amount:         p.amount,
			PaymentMethod:  entity.PaymentMethodCash,
			PaymentStatus:  p.status,
		})
	}

	res, err := f.svc.Get(context.Background(), principal(f.seller), sub.Id)
	require.NoError(t, err)

	assert.Equal(t, 300.0, res.TotalPaid)
	assert.Equal(t, 200.0, res.RemainingAmount)
	assert.Equal(t, 5, res.RemainingDays)
	assert.Equal(t, 0, res.CompletedDays)
	assert.Len(t, res.Orders, 5)

	_, err = f.svc.Get(context.Background(), principal(newCustomer(f.store)), sub.Id)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	_, err = f.svc.Get(context.Background(), principal(f.customer), uuid.New())
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestListSubscriptionsFiltersByStatus(t *testing.T) {
	f := newSubscriptionFixture()
	keep := f.subscribe(t)
	drop := f.subscribe(t)
	_, err := f.svc.Cancel(context.Background(), principal(f.customer), drop.Id)
	require.NoError(t, err)

	active, err := f.svc.ListForCustomer(context.Background(), principal(f.customer), &dto.SubscriptionListQuery{Status: "active"})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, keep.Id, active[0].Id)

	all, err := f.svc.ListForSeller(context.Background(), principal(f.seller), &dto.SubscriptionListQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.svc.ListForCustomer(context.Background(), principal(f.customer), &dto.SubscriptionListQuery{Status: "expired"})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestCompleteExpired(t *testing.T) {
	f := newSubscriptionFixture()
	subs := fakeSubs{f.store}
	ended := &entity.Subscription{Id: uuid.New(), CustomerId: f.customer.Id, SellerId: f.seller.Id, MilkId: f.milk.Id,
		StartDate: day(1), EndDate: day(9), Status: entity.SubscriptionStatusActive}
	endsToday := &entity.Subscription{Id: uuid.New(), CustomerId: f.customer.Id, SellerId: f.seller.Id, MilkId: f.milk.Id,
		StartDate: day(2), EndDate: day(10), Status: entity.SubscriptionStatusActive}
	cancelled := &entity.Subscription{Id: uuid.New(), CustomerId: f.customer.Id, SellerId: f.seller.Id, MilkId: f.milk.Id,
		StartDate: day(1), EndDate: day(5), Status: entity.SubscriptionStatusCancelled}
	for _, s := range []*entity.Subscription{ended, endsToday, cancelled} {
		require.NoError(t, subs.Create(context.Background(), s))
	}

	n, err := f.svc.CompleteExpired(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, n)
	assert.Equal(t, entity.SubscriptionStatusCompleted, f.store.subscription(ended.Id).Status)
	assert.Equal(t, entity.SubscriptionStatusActive, f.store.subscription(endsToday.Id).Status)
	assert.Equal(t, entity.SubscriptionStatusCancelled, f.store.subscription(cancelled.Id).Status)
}
