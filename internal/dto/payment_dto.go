package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePaymentRequest struct {
	OrderId        *uuid.UUID `json:"orderId"`
	SubscriptionId *uuid.UUID `json:"subscriptionId"`
	Amount         float64    `json:"amount" validate:"required,gt=0"`
	PaymentMethod  string     `json:"paymentMethod" validate:"required,oneof=cash upi card netbanking wallet"`
	TransactionId  string     `json:"transactionId"`
	Notes          string     `json:"notes"`
}

type SellerPaymentQuery struct {
	StartDate  string `query:"startDate"`
	EndDate    string `query:"endDate"`
	CustomerId string `query:"customerId"`
}

type MidtransWebhookRequest struct {
	TransactionStatus string `json:"transaction_status"`
	OrderId           string `json:"order_id"`
	FraudStatus       string `json:"fraud_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionId     string `json:"transaction_id"`
}

type PaymentResponse struct {
	Id             uuid.UUID        `json:"id"`
	CustomerId     uuid.UUID        `json:"customerId"`
	SellerId       uuid.UUID        `json:"sellerId"`
	Customer       *UserSummary     `json:"customer,omitempty"`
	Seller         *UserSummary     `json:"seller,omitempty"`
	OrderId        *uuid.UUID       `json:"orderId,omitempty"`
	SubscriptionId *uuid.UUID       `json:"subscriptionId,omitempty"`
	Order          *OrderResponse   `json:"order,omitempty"`
	Subscription   *SubscriptionRef `json:"subscription,omitempty"`
	Amount         float64          `json:"amount"`
	PaymentMethod  string           `json:"paymentMethod"`
	PaymentStatus  string           `json:"paymentStatus"`
	TransactionId  string           `json:"transactionId,omitempty"`
	Notes          string           `json:"notes,omitempty"`
	PaidAt         *time.Time       `json:"paidAt,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
}

type CreatePaymentResponse struct {
	Payment     *PaymentResponse `json:"payment"`
	SnapToken   string           `json:"snapToken,omitempty"`
	RedirectUrl string           `json:"redirectUrl,omitempty"`
}

type SellerPaymentsResponse struct {
	Payments      []*PaymentResponse `json:"payments"`
	TotalEarnings float64            `json:"totalEarnings"`
}

type SubscriptionPaymentSummary struct {
	TotalAmount     float64 `json:"totalAmount"`
	TotalPaid       float64 `json:"totalPaid"`
	RemainingAmount float64 `json:"remainingAmount"`
}

type SubscriptionPaymentsResponse struct {
	Payments []*PaymentResponse         `json:"payments"`
	Summary  SubscriptionPaymentSummary `json:"summary"`
}

type MonthlyEarningDto struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

type EarningsSummaryResponse struct {
	TotalEarnings   float64             `json:"totalEarnings"`
	PendingAmount   float64             `json:"pendingAmount"`
	MonthlyEarnings  []MonthlyEarningDto `json:"monthlyEarnings"`
}
