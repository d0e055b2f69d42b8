package entity

import "github.com/shopspring/decimal"

type Order struct {
	Base
	UserID     int64           `db:"user_id"`
	ProductID  int64           `db:"product_id"`
	Quantity   int             `db:"quantity"`
	TotalPrice decimal.Decimal `db:"total_price"`
}

// OrderView is the joined order x product x user projection used for listings.
// ProductName is empty when the product has been deleted since the order was placed.
type OrderView struct {
	Order
	Username    string `db:"username"`
	ProductName string `db:"product_name"`
}
