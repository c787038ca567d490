package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	AppendTransactions(ctx context.Context, txs []Transaction) error
	ListTransactions(ctx context.Context) ([]Transaction, error)
	ClearTransactions(ctx context.Context) error
}

// Service keeps a Ledger in step with a Repository. The repository is
// written first so a failed write never shows up in the balance.
type Service struct {
	repo   Repository
	ledger *Ledger
}

func NewService(repo Repository, l *Ledger) *Service {
	return &Service{repo: repo, ledger: l}
}

func (s *Service) Ledger() *Ledger {
	return s.ledger
}

// Load replaces the in-memory ledger with the persisted transactions.
func (s *Service) Load(ctx context.Context) error {
	txs, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return fmt.Errorf("listing transactions: %w", err)
	}

	s.ledger.ClearTransactions()

	for _, tx := range txs {
		s.ledger.RunTransaction(tx)
	}

	return nil
}

func (s *Service) Run(ctx context.Context, params CreateParams) (Transaction, error) {
	txs, err := s.RunBatch(ctx, []CreateParams{params})
	if err != nil {
		return Transaction{}, err
	}

	return txs[0], nil
}

// RunBatch persists and appends params in order.
func (s *Service) RunBatch(ctx context.Context, params []CreateParams) ([]Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	txs := paramsToTransactions(params, time.Now())
	if err := s.repo.AppendTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("appending transactions: %w", err)
	}

	for _, tx := range txs {
		s.ledger.RunTransaction(tx)
	}

	return txs, nil
}

func (s *Service) Clear(ctx context.Context) error {
	if err := s.repo.ClearTransactions(ctx); err != nil {
		return fmt.Errorf("clearing transactions: %w", err)
	}

	s.ledger.ClearTransactions()

	return nil
}

func (s *Service) Transactions() []Transaction {
	return s.ledger.Transactions()
}

func (s *Service) Balance() decimal.Decimal {
	return s.ledger.Balance()
}

func paramsToTransactions(params []CreateParams, now time.Time) []Transaction {
	txs := make([]Transaction, len(params))
	for i, p := range params {
		date := p.Date
		if date.IsZero() {
			date = now
		}

		txs[i] = Transaction{
			ID:     uuid.NewString(),
			Amount: p.Amount,
			Title:  p.Title,
			Date:   date,
		}
	}

	return txs
}
