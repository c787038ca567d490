// Package transfer sends money out of the ledger to a phone number or an
// email address.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pocket/internal/currency"
	"github.com/MrJamesThe3rd/pocket/internal/ledger"
)

var (
	ErrInvalidAmount       = errors.New("please enter a valid amount")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidPhone        = errors.New("please enter a valid phone number (10-15 digits)")
	ErrInvalidEmail        = errors.New("please enter a valid email address")
	ErrUnknownKind         = errors.New("unknown recipient kind")
	ErrInvalidCurrency     = errors.New("invalid currency")
)

type Kind string

const (
	KindPhone Kind = "phone"
	KindEmail Kind = "email"
)

var (
	phonePattern = regexp.MustCompile(`^\d{10,15}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Request is a transfer as entered by the user. Amount is in Currency.
type Request struct {
	Kind      Kind            `json:"kind"`
	Recipient string          `json:"recipient"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  currency.Code   `json:"currency"`
}

// normalize fills the default currency and canonicalizes the code so that
// ToBase never sees anything outside the supported pair.
func (r Request) normalize() (Request, error) {
	if r.Currency == "" {
		r.Currency = currency.Base
		return r, nil
	}

	code, err := currency.ParseCode(string(r.Currency))
	if err != nil {
		return r, fmt.Errorf("%w: %w", ErrInvalidCurrency, err)
	}

	r.Currency = code

	return r, nil
}

func (r Request) validate() error {
	if !r.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	switch r.Kind {
	case KindPhone:
		if !phonePattern.MatchString(r.Recipient) {
			return ErrInvalidPhone
		}
	case KindEmail:
		if !emailPattern.MatchString(r.Recipient) {
			return ErrInvalidEmail
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, r.Kind)
	}

	return nil
}

type Service struct {
	ledger *ledger.Service
	conv   *currency.Converter
	now    func() time.Time
}

func NewService(l *ledger.Service, conv *currency.Converter) *Service {
	return &Service{ledger: l, conv: conv, now: time.Now}
}

// Send debits the ledger by the base-currency value of req. The balance
// check and the append are separate steps, so two concurrent transfers can
// both pass the check.
func (s *Service) Send(ctx context.Context, req Request) (ledger.Transaction, error) {
	req, err := req.normalize()
	if err != nil {
		return ledger.Transaction{}, err
	}

	if err := req.validate(); err != nil {
		return ledger.Transaction{}, err
	}

	amount := s.conv.ToBase(req.Amount, req.Currency)
	if amount.GreaterThan(s.ledger.Balance()) {
		return ledger.Transaction{}, ErrInsufficientBalance
	}

	tx, err := s.ledger.Run(ctx, ledger.CreateParams{
		Amount: amount.Neg(),
		Title:  "Transfer to " + req.Recipient,
		Date:   s.now(),
	})
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("running transfer: %w", err)
	}

	return tx, nil
}
