package event_bus

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionCreatedEvent EventType = "transaction.created"
	TransactionDeletedEvent EventType = "transaction.deleted"
)

// TransactionChanged is published after a transaction is stored or removed.
type TransactionChanged struct {
	Id         int
	WalletId   int
	CategoryId int
	// Income is false for expenses.
	Income bool
	Amount decimal.Decimal
	// Date is the user-assigned transaction date.
	Date time.Time
}

// SignedAmount is the effect of the transaction on a wallet balance.
func (t TransactionChanged) SignedAmount() decimal.Decimal {
	if t.Income {
		return t.Amount
	}
	return t.Amount.Neg()
}
