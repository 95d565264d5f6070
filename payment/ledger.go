package payment

import "sync"

// Ledger is the in-memory transaction log shared by payments and refunds. It is
// append only; entries are never changed once written. Everything is lost when
// the process exits.
type Ledger struct {
	mu      sync.RWMutex
	entries []Transaction
	index   map[string]int // id -> position in entries
}

func NewLedger() *Ledger {
	return &Ledger{index: make(map[string]int)}
}

// Append adds tx to the end of the log. Ids are expected to be unique; a
// duplicate id shadows the earlier entry in Get.
func (l *Ledger) Append(tx Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.index[tx.ID] = len(l.entries)
	l.entries = append(l.entries, tx)
}

func (l *Ledger) Get(id string) (Transaction, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	pos, ok := l.index[id]
	if !ok {
		return Transaction{}, false
	}
	return l.entries[pos], true
}

// Recent returns up to n of the newest entries, oldest first.
func (l *Ledger) Recent(n int) []Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	start := len(l.entries) - n
	if start < 0 {
		start = 0
	}
	out := make([]Transaction, len(l.entries)-start)
	copy(out, l.entries[start:])
	return out
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Refunds returns the refund entries pointing at originalID. It is a linear scan.
func (l *Ledger) Refunds(originalID string) []Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []Transaction
	for _, tx := range l.entries {
		if tx.IsRefund() && tx.OriginalTransactionID == originalID {
			out = append(out, tx)
		}
	}
	return out
}
