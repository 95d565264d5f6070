package payment

import (
	"errors"
	"time"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

const (
	DefaultCurrency = "USD"
	TypeRefund      = "refund"
	// RecentLimit is how many entries ListTransactions returns.
	RecentLimit = 50
)

var (
	ErrInvalidRequest = errors.New("invalid payment request")
	ErrNotFound       = errors.New("transaction not found")
	ErrInvalidState   = errors.New("transaction cannot be refunded")
)

// Transaction is one entry of the log. Payments leave Type empty and set
// PaymentMethod and OrderID; refunds set Type to "refund" and point back at the
// payment through OriginalTransactionID.
type Transaction struct {
	ID                    string    `json:"id"`
	OrderID               string    `json:"orderId,omitempty"`
	OriginalTransactionID string    `json:"originalTransactionId,omitempty"`
	Amount                float64   `json:"amount"`
	Currency              string    `json:"currency"`
	PaymentMethod         string    `json:"paymentMethod,omitempty"`
	Type                  string    `json:"type,omitempty"`
	Status                Status    `json:"status"`
	Reason                string    `json:"reason,omitempty"`
	Timestamp             time.Time `json:"timestamp"`
	ProcessedAt           time.Time `json:"processedAt"`
}

func (t Transaction) IsRefund() bool { return t.Type == TypeRefund }

type PaymentRequest struct {
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	PaymentMethod string  `json:"paymentMethod"`
	OrderID       string  `json:"orderId"`
}

type RefundRequest struct {
	TransactionID string   `json:"transactionId"`
	Amount        *float64 `json:"amount"`
	Reason        string   `json:"reason"`
}

type Method struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

var methods = []Method{
	{ID: "credit_card", Name: "Credit Card", Description: "Visa, MasterCard, American Express", Icon: "💳"},
	{ID: "debit_card", Name: "Debit Card", Description: "Direct bank account payment", Icon: "🏦"},
	{ID: "paypal", Name: "PayPal", Description: "Pay with your PayPal account", Icon: "📧"},
	{ID: "crypto", Name: "Cryptocurrency", Description: "Bitcoin, Ethereum, and more", Icon: "₿"},
}

// Methods lists the accepted payment methods.
func Methods() []Method {
	out := make([]Method, len(methods))
	copy(out, methods)
	return out
}
