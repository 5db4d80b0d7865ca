package wallet

import "github.com/shopspring/decimal"

type Wallet struct {
	Id       int
	Name     string
	Icon     string
	Currency string
	Balance  decimal.Decimal
}
