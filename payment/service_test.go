package payment

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingPublisher remembers the topics it was asked to publish.
type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
}

func (r *recordingPublisher) Publish(topic, key string, data interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.topics = append(r.topics, topic)
}

func newTestService(approve bool, opts ...Option) (*Service, *Ledger) {
	l := NewLedger()
	opts = append([]Option{WithDecider(Always(approve)), WithDelay(0)}, opts...)
	return NewService(l, opts...), l
}

func TestProcessPaymentValidation(t *testing.T) {
	s, l := newTestService(true)
	ctx := context.Background()

	cases := []PaymentRequest{
		{Amount: 0, PaymentMethod: "credit_card"},
		{Amount: -5, PaymentMethod: "credit_card"},
		{Amount: 10, PaymentMethod: ""},
		{Amount: 10, PaymentMethod: "   "},
	}
	for _, req := range cases {
		_, err := s.ProcessPayment(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidRequest, "%+v", req)
	}
	assert.Equal(t, 0, l.Len(), "rejected requests are not logged")
}

func TestProcessPaymentOutcomes(t *testing.T) {
	for _, approve := range []bool{true, false} {
		t.Run(fmt.Sprintf("approve=%v", approve), func(t *testing.T) {
			pub := &recordingPublisher{}
			s, l := newTestService(approve, WithPublisher(pub))

			tx, err := s.ProcessPayment(context.Background(), PaymentRequest{
				Amount:        50,
				PaymentMethod: "credit_card",
				OrderID:       "order-1",
			})
			require.NoError(t, err)
			assert.NotEmpty(t, tx.ID)
			assert.Equal(t, DefaultCurrency, tx.Currency)
			assert.Equal(t, "order-1", tx.OrderID)
			assert.Equal(t, 1, l.Len())
			if approve {
				assert.Equal(t, StatusSuccess, tx.Status)
			} else {
				assert.Equal(t, StatusFailed, tx.Status)
			}

			logged, err := s.GetTransaction(tx.ID)
			require.NoError(t, err)
			assert.Equal(t, tx, logged)
			assert.Equal(t, []string{"payment.processed"}, pub.topics)
		})
	}
}

func TestProcessPaymentIDsAreUnique(t *testing.T) {
	s, l := newTestService(true)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		tx, err := s.ProcessPayment(context.Background(), PaymentRequest{Amount: 1, PaymentMethod: "paypal"})
		require.NoError(t, err)
		assert.False(t, seen[tx.ID])
		seen[tx.ID] = true
		assert.Equal(t, i+1, l.Len())
	}
}

func TestRandomDeciderRate(t *testing.T) {
	assert.True(t, RandomDecider{Rate: 1}.Approve())
	assert.False(t, RandomDecider{Rate: 0}.Approve())

	approved := 0
	d := RandomDecider{Rate: DefaultSuccessRate}
	for i := 0; i < 10000; i++ {
		if d.Approve() {
			approved++
		}
	}
	assert.InDelta(t, 9000, approved, 300)
}

func TestProcessPaymentHonoursDelayAndCancellation(t *testing.T) {
	s, l := newTestService(true, WithDelay(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tx, err := s.ProcessPayment(ctx, PaymentRequest{Amount: 5, PaymentMethod: "crypto"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, 1, l.Len(), "the attempt is recorded before the delay")
}

func TestGetTransactionNotFound(t *testing.T) {
	s, _ := newTestService(true)
	_, err := s.GetTransaction("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListTransactionsReturnsLastFifty(t *testing.T) {
	s, _ := newTestService(true)
	var last Transaction
	for i := 0; i < 55; i++ {
		tx, err := s.ProcessPayment(context.Background(), PaymentRequest{Amount: 1, PaymentMethod: "paypal"})
		require.NoError(t, err)
		last = tx
	}
	list := s.ListTransactions()
	require.Len(t, list, 50)
	assert.Equal(t, last.ID, list[49].ID)
}

func TestRefundDefaultsToFullAmount(t *testing.T) {
	pub := &recordingPublisher{}
	s, l := newTestService(true, WithPublisher(pub))
	ctx := context.Background()

	paid, err := s.ProcessPayment(ctx, PaymentRequest{Amount: 29.99, Currency: "EUR", PaymentMethod: "debit_card"})
	require.NoError(t, err)

	refund, err := s.Refund(ctx, RefundRequest{TransactionID: paid.ID, Reason: "damaged"})
	require.NoError(t, err)
	assert.Equal(t, paid.Amount, refund.Amount)
	assert.Equal(t, "EUR", refund.Currency)
	assert.Equal(t, TypeRefund, refund.Type)
	assert.Equal(t, StatusSuccess, refund.Status)
	assert.Equal(t, paid.ID, refund.OriginalTransactionID)
	assert.Equal(t, "damaged", refund.Reason)
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, []string{"payment.processed", "payment.refunded"}, pub.topics)
}

func TestRefundOfFailedTransactionIsInvalidState(t *testing.T) {
	s, _ := newTestService(false)
	ctx := context.Background()

	failed, err := s.ProcessPayment(ctx, PaymentRequest{Amount: 20, PaymentMethod: "credit_card"})
	require.NoError(t, err)
	require.Equal(t, StatusFailed, failed.Status)

	amounts := []*float64{nil, floatPtr(1), floatPtr(20), floatPtr(-3), floatPtr(1000)}
	for _, amount := range amounts {
		for _, reason := range []string{"", "customer request"} {
			_, err := s.Refund(ctx, RefundRequest{TransactionID: failed.ID, Amount: amount, Reason: reason})
			assert.ErrorIs(t, err, ErrInvalidState)
		}
	}
}

func TestRefundErrors(t *testing.T) {
	s, _ := newTestService(true)
	ctx := context.Background()

	_, err := s.Refund(ctx, RefundRequest{})
	assert.ErrorIs(t, err, ErrNotFound, "an empty id names no transaction")

	_, err = s.Refund(ctx, RefundRequest{TransactionID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)

	paid, err := s.ProcessPayment(ctx, PaymentRequest{Amount: 40, PaymentMethod: "paypal"})
	require.NoError(t, err)

	_, err = s.Refund(ctx, RefundRequest{TransactionID: paid.ID, Amount: floatPtr(-1)})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = s.Refund(ctx, RefundRequest{TransactionID: paid.ID, Amount: floatPtr(40.01)})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	refund, err := s.Refund(ctx, RefundRequest{TransactionID: paid.ID, Amount: floatPtr(15)})
	require.NoError(t, err)

	_, err = s.Refund(ctx, RefundRequest{TransactionID: refund.ID})
	assert.ErrorIs(t, err, ErrInvalidState, "a refund cannot itself be refunded")
}

func TestPartialRefundsStopAtOriginalAmount(t *testing.T) {
	s, _ := newTestService(true)
	ctx := context.Background()

	paid, err := s.ProcessPayment(ctx, PaymentRequest{Amount: 0.3, PaymentMethod: "paypal"})
	require.NoError(t, err)

	_, err = s.Refund(ctx, RefundRequest{TransactionID: paid.ID, Amount: floatPtr(0.1)})
	require.NoError(t, err)
	_, err = s.Refund(ctx, RefundRequest{TransactionID: paid.ID, Amount: floatPtr(0.2)})
	require.NoError(t, err)

	_, err = s.Refund(ctx, RefundRequest{TransactionID: paid.ID})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestConcurrentRefundsNeverExceedPayment(t *testing.T) {
	s, l := newTestService(true)
	ctx := context.Background()

	paid, err := s.ProcessPayment(ctx, PaymentRequest{Amount: 10, PaymentMethod: "credit_card"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Refund(ctx, RefundRequest{TransactionID: paid.ID, Amount: floatPtr(1)})
		}()
	}
	wg.Wait()

	assert.Len(t, l.Refunds(paid.ID), 10)
}

func TestPaymentMethods(t *testing.T) {
	s, _ := newTestService(true)
	methods := s.PaymentMethods()
	require.Len(t, methods, 4)

	ids := make([]string, len(methods))
	for i, m := range methods {
		ids[i] = m.ID
	}
	assert.Equal(t, []string{"credit_card", "debit_card", "paypal", "crypto"}, ids)

	methods[0].Name = "changed"
	assert.Equal(t, "Credit Card", s.PaymentMethods()[0].Name)
}

func floatPtr(f float64) *float64 { return &f }
