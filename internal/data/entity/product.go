package entity

import "github.com/shopspring/decimal"

type Product struct {
	Base
	Name        string          `db:"name"`
	Description *string         `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Quantity    int             `db:"quantity"`
}
