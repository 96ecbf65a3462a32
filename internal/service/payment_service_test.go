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
	"milk-platform-be/internal/pkg/paymentgateway"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentFixture struct {
	store    *fakeStore
	notifier *recordingNotifier
	gateway  *fakeGateway
	svc      IPaymentService
	customer *entity.User
	seller   *entity.User
	order    *entity.Order
	sub      *entity.Subscription
}

func newPaymentFixture(t *testing.T, gatewayEnabled bool) *paymentFixture {
	store := newFakeStore()
	notifier := &recordingNotifier{}
	gateway := &fakeGateway{enabled: gatewayEnabled}
	customer, seller := newCustomer(store), newSeller(store)
	milk := newMilk(store, seller, 50)

	order := store.addOrder(&entity.Order{
		Id: uuid.New(), CustomerId: customer.Id, SellerId: seller.Id, MilkId: milk.Id,
		OrderType: entity.OrderTypeDaily, DeliveryDate: day(11), Quantity: 1.5, PricePerLiter: 50, TotalAmount: 75,
		Status: entity.OrderStatusPending,
	})
	sub := &entity.Subscription{
		Id: uuid.New(), CustomerId: customer.Id, SellerId: seller.Id, MilkId: milk.Id,
		StartDate: day(11), EndDate: day(15), OriginalDays: 5, TotalDays: 5,
		QuantityPerDay: 2, PricePerLiter: 50, TotalAmount: 500, Status: entity.SubscriptionStatusActive,
	}
	require.NoError(t, fakeSubs{store}.Create(context.Background(), sub))

	return &paymentFixture{
		store:    store,
		notifier: notifier,
		gateway:  gateway,
		svc:      NewPaymentService(store, gateway, fixedCalendar(2026, 6, 10, 8), notifier, logger.NewNopLogger()),
		customer: customer,
		seller:   seller,
		order:    order,
		sub:      sub,
	}
}

func (f *paymentFixture) pay(t *testing.T, subId *uuid.UUID, amount float64) *dto.CreatePaymentResponse {
	t.Helper()
	res, err := f.svc.Create(context.Background(), principal(f.customer), &dto.CreatePaymentRequest{
		SubscriptionId: subId,
		Amount:         amount,
		PaymentMethod:  "cash",
	})
	require.NoError(t, err)
	return res
}

func TestCreateCashPaymentCompletes(t *testing.T) {
	f := newPaymentFixture(t, true)
	orderId := f.order.Id

	res, err := f.svc.Create(context.Background(), principal(f.customer), &dto.CreatePaymentRequest{
		OrderId:       &orderId,
		Amount:        75,
		PaymentMethod: "cash",
		TransactionId: " RCPT-1 ",
	})
	require.NoError(t, err)

	assert.Equal(t, "completed", res.Payment.PaymentStatus)
	assert.Equal(t, f.seller.Id, res.Payment.SellerId)
	assert.Equal(t, "RCPT-1", res.Payment.TransactionId)
	assert.NotNil(t, res.Payment.PaidAt)
	assert.Empty(t, res.SnapToken)
	assert.Empty(t, f.gateway.created)

	last := f.notifier.last()
	assert.Equal(t, SellerAudience(f.seller.Id), last.Audience)
	assert.Equal(t, constant.EventPaymentReceived, last.Event)
}

func TestCreatePaymentWithoutGatewayCompletes(t *testing.T) {
	f := newPaymentFixture(t, false)
	subId := f.sub.Id

	res, err := f.svc.Create(context.Background(), principal(f.customer), &dto.CreatePaymentRequest{
		SubscriptionId: &subId,
		Amount:         200,
		PaymentMethod:  "upi",
	})
	require.NoError(t, err)
	assert.Equal(t, "completed", res.Payment.PaymentStatus)
	assert.Empty(t, res.SnapToken)
}

func TestCreatePaymentRejects(t *testing.T) {
	f := newPaymentFixture(t, false)
	orderId, subId, missing := f.order.Id, f.sub.Id, uuid.New()

	otherSeller := newSeller(f.store)
	foreign := f.store.addOrder(&entity.Order{
		Id: uuid.New(), CustomerId: f.customer.Id, SellerId: otherSeller.Id, MilkId: uuid.New(),
		Status: entity.OrderStatusPending,
	})
	foreignId := foreign.Id

	tests := []struct {
		name  string
		actor entity.Principal
		req   dto.CreatePaymentRequest
		kind  apperror.Kind
	}{
		{"no reference", principal(f.customer), dto.CreatePaymentRequest{Amount: 10, PaymentMethod: "cash"}, apperror.KindValidation},
		{"zero amount", principal(f.customer), dto.CreatePaymentRequest{OrderId: &orderId, PaymentMethod: "cash"}, apperror.KindValidation},
		{"gateway method", principal(f.customer), dto.CreatePaymentRequest{OrderId: &orderId, Amount: 10, PaymentMethod: "gateway"}, apperror.KindValidation},
		{"unknown order", principal(f.customer), dto.CreatePaymentRequest{OrderId: &missing, Amount: 10, PaymentMethod: "cash"}, apperror.KindNotFound},
		{"someone else's order", principal(newCustomer(f.store)), dto.CreatePaymentRequest{OrderId: &orderId, Amount: 10, PaymentMethod: "cash"}, apperror.KindForbidden},
		{"different sellers", principal(f.customer), dto.CreatePaymentRequest{OrderId: &foreignId, SubscriptionId: &subId, Amount: 10, PaymentMethod: "cash"}, apperror.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := f.svc.Create(context.Background(), tt.actor, &req)
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperror.KindOf(err))
		})
	}
	assert.Empty(t, f.notifier.events())
}

func webhook(paymentId uuid.UUID, status, fraud string) *dto.MidtransWebhookRequest {
	req := &dto.MidtransWebhookRequest{
		TransactionStatus: status,
		OrderId:           paymentId.String(),
		FraudStatus:       fraud,
		StatusCode:        "200",
		GrossAmount:       "200.00",
		TransactionId:     "mt-" + status,
	}
	req.SignatureKey = paymentgateway.Sign(req.OrderId, req.StatusCode, req.GrossAmount, "test-key")
	return req
}

func TestOnlinePaymentSettlesOnce(t *testing.T) {
	f := newPaymentFixture(t, true)
	subId := f.sub.Id

	res, err := f.svc.Create(context.Background(), principal(f.customer), &dto.CreatePaymentRequest{
		SubscriptionId: &subId,
		Amount:         200,
		PaymentMethod:  "upi",
	})
	require.NoError(t, err)

	paymentId := res.Payment.Id
	assert.Equal(t, "pending", res.Payment.PaymentStatus)
	assert.Nil(t, res.Payment.PaidAt)
	assert.Equal(t, "snap-"+paymentId.String(), res.SnapToken)
	require.Len(t, f.gateway.created, 1)
	assert.Equal(t, f.customer.Email, f.gateway.created[0].Customer.Email)
	assert.Empty(t, f.notifier.events())

	require.NoError(t, f.svc.HandleNotification(context.Background(), webhook(paymentId, "settlement", "")))

	settled := f.store.payment(paymentId)
	assert.Equal(t, entity.PaymentStatusCompleted, settled.PaymentStatus)
	assert.Equal(t, "mt-settlement", settled.TransactionId)
	assert.NotNil(t, settled.PaidAt)
	assert.Equal(t, []string{constant.EventPaymentReceived}, f.notifier.events())

	require.NoError(t, f.svc.HandleNotification(context.Background(), webhook(paymentId, "deny", "")))
	assert.Equal(t, entity.PaymentStatusCompleted, f.store.payment(paymentId).PaymentStatus)
	assert.Len(t, f.notifier.events(), 1)
}

func TestHandleNotification(t *testing.T) {
	f := newPaymentFixture(t, true)
	subId := f.sub.Id

	newPending := func() uuid.UUID {
		res, err := f.svc.Create(context.Background(), principal(f.customer), &dto.CreatePaymentRequest{
			SubscriptionId: &subId, Amount: 200, PaymentMethod: "card",
		})
		require.NoError(t, err)
		return res.Payment.Id
	}

	t.Run("bad signature", func(t *testing.T) {
		id := newPending()
		req := webhook(id, "settlement", "")
		req.SignatureKey = "forged"

		err := f.svc.HandleNotification(context.Background(), req)
		assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
		assert.Equal(t, entity.PaymentStatusPending, f.store.payment(id).PaymentStatus)
	})

	t.Run("expired", func(t *testing.T) {
		id := newPending()
		require.NoError(t, f.svc.HandleNotification(context.Background(), webhook(id, "expire", "")))
		assert.Equal(t, entity.PaymentStatusFailed, f.store.payment(id).PaymentStatus)
	})

	t.Run("challenged capture stays pending", func(t *testing.T) {
		id := newPending()
		require.NoError(t, f.svc.HandleNotification(context.Background(), webhook(id, "capture", "challenge")))
		assert.Equal(t, entity.PaymentStatusPending, f.store.payment(id).PaymentStatus)
	})

	t.Run("unknown payment", func(t *testing.T) {
		err := f.svc.HandleNotification(context.Background(), webhook(uuid.New(), "settlement", ""))
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}

func TestGatewayFailureMarksPaymentFailed(t *testing.T) {
	f := newPaymentFixture(t, true)
	f.gateway.fail = true
	orderId := f.order.Id

	_, err := f.svc.Create(context.Background(), principal(f.customer), &dto.CreatePaymentRequest{
		OrderId: &orderId, Amount: 75, PaymentMethod: "wallet",
	})
	require.Error(t, err)

	payments, err := fakePayments{f.store}.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, entity.PaymentStatusFailed, payments[0].PaymentStatus)
}

func TestSubscriptionPaymentSummary(t *testing.T) {
	f := newPaymentFixture(t, false)
	subId := f.sub.Id
	f.pay(t, &subId, 200)
	f.pay(t, &subId, 100)

	res, err := f.svc.ListForSubscription(context.Background(), principal(f.seller), subId)
	require.NoError(t, err)
	assert.Len(t, res.Payments, 2)
	assert.Equal(t, 500.0, res.Summary.TotalAmount)
	assert.Equal(t, 300.0, res.Summary.TotalPaid)
	assert.Equal(t, 200.0, res.Summary.RemainingAmount)

	f.pay(t, &subId, 250)
	res, err = f.svc.ListForSubscription(context.Background(), principal(f.customer), subId)
	require.NoError(t, err)
	assert.Equal(t, -50.0, res.Summary.RemainingAmount, "overpayment is reported, not rejected")

	_, err = f.svc.ListForSubscription(context.Background(), principal(newSeller(f.store)), subId)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
}

func TestSellerSummaryBucketsByLocalMonth(t *testing.T) {
	f := newPaymentFixture(t, false)
	orderId := f.order.Id
	// 02:00 on 1 June in the app timezone, stored as UTC on 31 May
	paid := time.Date(2026, 5, 31, 20, 30, 0, 0, time.UTC)
	f.store.addPayment(&entity.Payment{
		Id: uuid.New(), CustomerId: f.customer.Id, SellerId: f.seller.Id, OrderId: &orderId,
		Amount: 40, PaymentMethod: entity.PaymentMethodCash, PaymentStatus: entity.PaymentStatusCompleted,
		PaidAt: &paid, CreatedAt: paid,
	})

	res, err := f.svc.SellerSummary(context.Background(), principal(f.seller))
	require.NoError(t, err)
	require.Len(t, res.MonthlyEarnings, 1)
	assert.Equal(t, dto.MonthlyEarningDto{Year: 2026, Month: 6, Total: 40, Count: 1}, res.MonthlyEarnings[0])
}

func TestSellerSummary(t *testing.T) {
	f := newPaymentFixture(t, false)
	subId, orderId := f.sub.Id, f.order.Id
	may := time.Date(2026, 5, 20, 9, 0, 0, 0, ist)
	f.store.addPayment(&entity.Payment{
		Id: uuid.New(), CustomerId: f.customer.Id, SellerId: f.seller.Id, OrderId: &orderId,
		Amount: 75, PaymentMethod: entity.PaymentMethodCash, PaymentStatus: entity.PaymentStatusCompleted,
		PaidAt: &may, CreatedAt: may,
	})
	f.pay(t, &subId, 300)
	f.store.addPayment(&entity.Payment{
		Id: uuid.New(), CustomerId: f.customer.Id, SellerId: f.seller.Id, SubscriptionId: &subId,
		Amount: 120, PaymentMethod: entity.PaymentMethodCard, PaymentStatus: entity.PaymentStatusPending,
	})

	res, err := f.svc.SellerSummary(context.Background(), principal(f.seller))
	require.NoError(t, err)

	assert.Equal(t, 375.0, res.TotalEarnings)
	assert.Equal(t, 200.0, res.PendingAmount)
	require.Len(t, res.MonthlyEarnings, 2)
	assert.Equal(t, dto.MonthlyEarningDto{Year: 2026, Month: 6, Total: 300, Count: 1}, res.MonthlyEarnings[0])
	assert.Equal(t, dto.MonthlyEarningDto{Year: 2026, Month: 5, Total: 75, Count: 1}, res.MonthlyEarnings[1])

	list, err := f.svc.ListForSeller(context.Background(), principal(f.seller), &dto.SellerPaymentQuery{CustomerId: f.customer.Id.String()})
	require.NoError(t, err)
	assert.Len(t, list.Payments, 3)
	assert.Equal(t, 375.0, list.TotalEarnings)

	_, err = f.svc.ListForSeller(context.Background(), principal(f.seller), &dto.SellerPaymentQuery{CustomerId: "nope"})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}
