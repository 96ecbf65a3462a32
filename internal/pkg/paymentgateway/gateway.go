package paymentgateway

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

type Customer struct {
	Name  string
	Email string
	Phone string
}

type Transaction struct {
	Reference string
	Amount    float64
	ItemName  string
	Customer  Customer
}

type Checkout struct {
	Token       string
	RedirectURL string
}

// Settlement is the outcome of a gateway notification.
type Settlement string

const (
	SettlementPaid    Settlement = "paid"
	SettlementFailed  Settlement = "failed"
	SettlementPending Settlement = "pending"
)

type Gateway interface {
	Enabled() bool
	CreateTransaction(tx Transaction) (*Checkout, error)
	VerifySignature(orderId, statusCode, grossAmount, signature string) bool
}

type midtransGateway struct {
	serverKey string
	client    snap.Client
}

// NewMidtransGateway returns a gateway backed by midtrans snap. An empty server key
// yields a disabled gateway, and every payment is then recorded as completed.
func NewMidtransGateway(serverKey string, production bool) Gateway {
	g := &midtransGateway{serverKey: serverKey}
	if serverKey == "" {
		return g
	}
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	g.client.New(serverKey, env)
	return g
}

func (g *midtransGateway) Enabled() bool {
	return g.serverKey != ""
}

func (g *midtransGateway) CreateTransaction(tx Transaction) (*Checkout, error) {
	if !g.Enabled() {
		return nil, fmt.Errorf("payment gateway is not configured")
	}
	amount := int64(math.Round(tx.Amount))

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  tx.Reference,
			GrossAmt: amount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: tx.Customer.Name,
			Email: tx.Customer.Email,
			Phone: tx.Customer.Phone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    tx.Reference,
				Price: amount,
				Qty:   1,
				Name:  tx.ItemName,
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	resp, midErr := g.client.CreateTransaction(req)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}
	return &Checkout{Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

// VerifySignature checks SHA512(order_id + status_code + gross_amount + server_key).
func (g *midtransGateway) VerifySignature(orderId, statusCode, grossAmount, signature string) bool {
	if !g.Enabled() {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(Sign(orderId, statusCode, grossAmount, g.serverKey)), []byte(signature)) == 1
}

func Sign(orderId, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderId + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// SettlementOf maps a midtrans transaction status to a payment outcome.
func SettlementOf(transactionStatus, fraudStatus string) Settlement {
	switch transactionStatus {
	case "capture":
		if fraudStatus == "challenge" {
			return SettlementPending
		}
		return SettlementPaid
	case "settlement":
		return SettlementPaid
	case "deny", "cancel", "expire", "failure":
		return SettlementFailed
	}
	return SettlementPending
}
