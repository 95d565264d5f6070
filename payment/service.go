// Package payment simulates a payment processor: charges are approved or
// declined by a Decider after a fixed delay and every attempt, together with
// every refund, is recorded in an in-memory Ledger.
package payment

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/junaidrashid-git/trendy-shop/events"
	"github.com/shopspring/decimal"
)

// DefaultDelay stands in for network and processor latency.
const DefaultDelay = time.Second

// RequestError is a validation failure. It matches ErrInvalidRequest.
type RequestError struct {
	Msg string
}

func (e *RequestError) Error() string { return e.Msg }

func (e *RequestError) Is(target error) bool { return target == ErrInvalidRequest }

func invalid(msg string) error { return &RequestError{Msg: msg} }

// StateError explains why a transaction cannot be refunded. It matches
// ErrInvalidState.
type StateError struct {
	Msg string
}

func (e *StateError) Error() string { return e.Msg }

func (e *StateError) Is(target error) bool { return target == ErrInvalidState }

type Service struct {
	ledger  *Ledger
	decider Decider
	delay   time.Duration
	events  events.Publisher
	now     func() time.Time
	newID   func() string

	// refundMu makes the refundable-balance check and the append one step.
	refundMu sync.Mutex
}

type Option func(*Service)

func WithDecider(d Decider) Option { return func(s *Service) { s.decider = d } }

func WithDelay(d time.Duration) Option { return func(s *Service) { s.delay = d } }

func WithPublisher(p events.Publisher) Option { return func(s *Service) { s.events = p } }

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func WithIDGenerator(f func() string) Option { return func(s *Service) { s.newID = f } }

func NewService(ledger *Ledger, opts ...Option) *Service {
	s := &Service{
		ledger:  ledger,
		decider: RandomDecider{Rate: DefaultSuccessRate},
		delay:   DefaultDelay,
		events:  events.Nop{},
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessPayment validates req, settles it and appends the result to the log
// whatever the outcome. A decline is returned as a transaction with status
// failed and a nil error. A cancelled ctx cuts the delay short but the
// transaction is already recorded.
func (s *Service) ProcessPayment(ctx context.Context, req PaymentRequest) (Transaction, error) {
	if req.Amount <= 0 {
		return Transaction{}, invalid("Invalid amount")
	}
	if strings.TrimSpace(req.PaymentMethod) == "" {
		return Transaction{}, invalid("Payment method is required")
	}
	currency := req.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	status := StatusFailed
	if s.decider.Approve() {
		status = StatusSuccess
	}
	now := s.now()
	tx := Transaction{
		ID:            s.newID(),
		OrderID:       req.OrderID,
		Amount:        req.Amount,
		Currency:      currency,
		PaymentMethod: req.PaymentMethod,
		Status:        status,
		Timestamp:     now,
		ProcessedAt:   now,
	}
	s.ledger.Append(tx)
	s.events.Publish(events.TopicPaymentProcessed, tx.ID, tx)

	if err := s.wait(ctx); err != nil {
		return tx, err
	}
	return tx, nil
}

func (s *Service) GetTransaction(id string) (Transaction, error) {
	tx, ok := s.ledger.Get(id)
	if !ok {
		return Transaction{}, ErrNotFound
	}
	return tx, nil
}

// ListTransactions returns the newest RecentLimit log entries, oldest first.
func (s *Service) ListTransactions() []Transaction {
	return s.ledger.Recent(RecentLimit)
}

// Refund records a refund against a successful payment. Without an amount the
// full remaining balance of the payment is refunded. Refunds are never
// declined.
func (s *Service) Refund(ctx context.Context, req RefundRequest) (Transaction, error) {
	s.refundMu.Lock()
	orig, ok := s.ledger.Get(req.TransactionID)
	if !ok {
		s.refundMu.Unlock()
		return Transaction{}, ErrNotFound
	}
	if orig.IsRefund() {
		s.refundMu.Unlock()
		return Transaction{}, &StateError{Msg: "Cannot refund a refund"}
	}
	if orig.Status != StatusSuccess {
		s.refundMu.Unlock()
		return Transaction{}, &StateError{Msg: "Cannot refund failed transaction"}
	}

	remaining := decimal.NewFromFloat(orig.Amount).Sub(s.refunded(orig.ID))
	amount := remaining
	if req.Amount != nil && *req.Amount != 0 {
		amount = decimal.NewFromFloat(*req.Amount)
	}
	switch {
	case !remaining.IsPositive():
		s.refundMu.Unlock()
		return Transaction{}, &StateError{Msg: "Transaction already fully refunded"}
	case !amount.IsPositive():
		s.refundMu.Unlock()
		return Transaction{}, invalid("Invalid refund amount")
	case amount.GreaterThan(remaining):
		s.refundMu.Unlock()
		return Transaction{}, invalid("Refund amount exceeds refundable balance")
	}

	now := s.now()
	refundAmount, _ := amount.Float64()
	if amount.Equal(decimal.NewFromFloat(orig.Amount)) {
		refundAmount = orig.Amount
	}
	refund := Transaction{
		ID:                    s.newID(),
		OriginalTransactionID: orig.ID,
		Amount:                refundAmount,
		Currency:              orig.Currency,
		Type:                  TypeRefund,
		Status:                StatusSuccess,
		Reason:                req.Reason,
		Timestamp:             now,
		ProcessedAt:           now,
	}
	s.ledger.Append(refund)
	s.refundMu.Unlock()

	s.events.Publish(events.TopicPaymentRefunded, refund.ID, refund)

	if err := s.wait(ctx); err != nil {
		return refund, err
	}
	return refund, nil
}

// PaymentMethods lists the static set of accepted methods.
func (s *Service) PaymentMethods() []Method {
	return Methods()
}

// refunded sums the refunds already recorded against a payment.
func (s *Service) refunded(originalID string) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range s.ledger.Refunds(originalID) {
		total = total.Add(decimal.NewFromFloat(tx.Amount))
	}
	return total
}

func (s *Service) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
