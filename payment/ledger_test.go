package payment

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerGetAndRecent(t *testing.T) {
	l := NewLedger()
	for i := 0; i < 60; i++ {
		l.Append(Transaction{ID: fmt.Sprintf("t-%d", i), Amount: float64(i)})
	}

	tx, ok := l.Get("t-7")
	require.True(t, ok)
	assert.Equal(t, 7.0, tx.Amount)

	_, ok = l.Get("t-99")
	assert.False(t, ok)

	recent := l.Recent(RecentLimit)
	require.Len(t, recent, RecentLimit)
	assert.Equal(t, "t-10", recent[0].ID)
	assert.Equal(t, "t-59", recent[len(recent)-1].ID)

	assert.Len(t, l.Recent(100), 60)
}

func TestLedgerRecentIsACopy(t *testing.T) {
	l := NewLedger()
	l.Append(Transaction{ID: "a", Status: StatusSuccess})

	recent := l.Recent(1)
	recent[0].Status = StatusFailed

	tx, _ := l.Get("a")
	assert.Equal(t, StatusSuccess, tx.Status)
}

func TestLedgerConcurrentAppend(t *testing.T) {
	l := NewLedger()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				id := fmt.Sprintf("w%d-%d", w, i)
				l.Append(Transaction{ID: id})
				_, ok := l.Get(id)
				assert.True(t, ok)
				_ = l.Recent(RecentLimit)
			}
		}(w)
	}
	wg.Wait()
	assert.Equal(t, 800, l.Len())
}

func TestLedgerRefunds(t *testing.T) {
	l := NewLedger()
	l.Append(Transaction{ID: "p1", Status: StatusSuccess})
	l.Append(Transaction{ID: "r1", Type: TypeRefund, OriginalTransactionID: "p1"})
	l.Append(Transaction{ID: "r2", Type: TypeRefund, OriginalTransactionID: "other"})

	refunds := l.Refunds("p1")
	require.Len(t, refunds, 1)
	assert.Equal(t, "r1", refunds[0].ID)
}
