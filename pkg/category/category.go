package category

import "fmt"

type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func ParseType(value string) (Type, error) {
	switch Type(value) {
	case TypeIncome, TypeExpense:
		return Type(value), nil
	}
	return "", fmt.Errorf("unknown category type: %q", value)
}

type Category struct {
	Id       int
	Name     string
	Icon     string
	Type     Type
	Position int
}
