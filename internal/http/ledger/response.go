package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pocket/internal/currency"
	"github.com/MrJamesThe3rd/pocket/internal/ledger"
)

type transactionResponse struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Title     string          `json:"title"`
	Date      time.Time       `json:"date"`
	DateLabel string          `json:"date_label"`
	Display   currency.Amount `json:"display"`
}

type balanceResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	Primary   currency.Amount `json:"primary"`
	Secondary currency.Amount `json:"secondary"`
}

type ledgerResponse struct {
	Balance      balanceResponse       `json:"balance"`
	Transactions []transactionResponse `json:"transactions"`
}

func toResponse(tx ledger.Transaction, conv *currency.Converter, primary currency.Code) transactionResponse {
	return transactionResponse{
		ID:        tx.ID,
		Amount:    tx.Amount,
		Title:     tx.Title,
		Date:      tx.Date,
		DateLabel: ledger.FormatDate(tx.Date),
		Display:   conv.Format(tx.Amount, primary, true),
	}
}

func toResponseList(txs []ledger.Transaction, conv *currency.Converter, primary currency.Code) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx, conv, primary)
	}

	return resp
}

func toBalance(amount decimal.Decimal, conv *currency.Converter, primary currency.Code) balanceResponse {
	return balanceResponse{
		Amount:    amount,
		Primary:   conv.Format(amount, primary, true),
		Secondary: conv.Format(amount, primary.Other(), false),
	}
}
