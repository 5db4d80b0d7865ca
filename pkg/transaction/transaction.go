package transaction

import (
	"time"

	"github.com/pocketly/pocketly/internal/event_bus"
	"github.com/pocketly/pocketly/pkg/category"
	"github.com/shopspring/decimal"
)

type Transaction struct {
	Id         int
	WalletId   int
	CategoryId int
	Type       category.Type
	// Amount is always positive. Type decides the sign.
	Amount decimal.Decimal
	Note   string
	// Date is chosen by the user. CreatedAt is when the record was stored.
	Date      time.Time
	CreatedAt time.Time
}

func (t Transaction) IsIncome() bool {
	return t.Type == category.TypeIncome
}

func (t Transaction) changed() event_bus.TransactionChanged {
	return event_bus.TransactionChanged{
		Id:         t.Id,
		WalletId:   t.WalletId,
		CategoryId: t.CategoryId,
		Income:     t.IsIncome(),
		Amount:     t.Amount,
		Date:       t.Date,
	}
}
