package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string
type PaymentStatus string

const (
	PaymentMethodCash       PaymentMethod = "cash"
	PaymentMethodUPI        PaymentMethod = "upi"
	PaymentMethodCard       PaymentMethod = "card"
	PaymentMethodNetbanking PaymentMethod = "netbanking"
	PaymentMethodWallet     PaymentMethod = "wallet"
	PaymentMethodGateway    PaymentMethod = "gateway"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodUPI, PaymentMethodCard, PaymentMethodNetbanking, PaymentMethodWallet, PaymentMethodGateway:
		return true
	}
	return false
}

type Payment struct {
	Id             uuid.UUID
	CustomerId     uuid.UUID
	SellerId       uuid.UUID
	OrderId        *uuid.UUID
	SubscriptionId *uuid.UUID
	Amount         float64
	PaymentMethod  PaymentMethod
	PaymentStatus  PaymentStatus
	TransactionId  string
	Notes          string
	PaidAt         *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Customer     *User
	Seller       *User
	Order        *Order
	Subscription *Subscription
}

type MonthlyEarning struct {
	Year  int
	Month int
	Total float64
	Count int
}
