package ledger

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Ledger is an append-only, in-memory list of transactions. It never
// performs I/O; the balance is derived from the list on every read.
type Ledger struct {
	mu     sync.Mutex
	txs    []Transaction
	nextID int
	subs   map[int]func([]Transaction)
}

func New() *Ledger {
	return &Ledger{subs: make(map[int]func([]Transaction))}
}

// RunTransaction appends tx. A missing ID or date is filled in; nothing else
// is validated, so zero and either sign are accepted.
func (l *Ledger) RunTransaction(tx Transaction) Transaction {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}

	if tx.Date.IsZero() {
		tx.Date = time.Now()
	}

	l.mu.Lock()
	l.txs = append(l.txs, tx)
	l.mu.Unlock()

	l.notify()

	return tx
}

// ClearTransactions drops every entry.
func (l *Ledger) ClearTransactions() {
	l.mu.Lock()
	l.txs = nil
	l.mu.Unlock()

	l.notify()
}

// Transactions returns a copy of the ledger in append order.
func (l *Ledger) Transactions() []Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Transaction, len(l.txs))
	copy(out, l.txs)

	return out
}

func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.txs)
}

// Subscribe registers fn to receive a snapshot after every mutation.
func (l *Ledger) Subscribe(fn func([]Transaction)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextID
	l.nextID++
	l.subs[id] = fn

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()

		delete(l.subs, id)
	}
}

func (l *Ledger) notify() {
	l.mu.Lock()
	if len(l.subs) == 0 {
		l.mu.Unlock()
		return
	}

	snapshot := make([]Transaction, len(l.txs))
	copy(snapshot, l.txs)

	subs := make([]func([]Transaction), 0, len(l.subs))
	for _, fn := range l.subs {
		subs = append(subs, fn)
	}
	l.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}
