package response

import (
	"strconv"

	"storefront/internal/data/entity"

	"github.com/shopspring/decimal"
)

type OrderResponse struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Username    string          `json:"username,omitempty"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type OrderListResponse []OrderResponse

var orderHeader = []string{"ID", "USER", "PRODUCT", "QUANTITY", "TOTAL"}

func (o OrderResponse) Header() []string { return orderHeader }
func (o OrderResponse) Rows() [][]string { return [][]string{o.row()} }

func (l OrderListResponse) Header() []string { return orderHeader }

func (l OrderListResponse) Rows() [][]string {
	rows := make([][]string, len(l))
	for i, o := range l {
		rows[i] = o.row()
	}
	return rows
}

func (o OrderResponse) row() []string {
	user := o.Username
	if user == "" {
		user = "#" + strconv.FormatInt(o.UserID, 10)
	}
	product := o.ProductName
	if product == "" {
		product = "#" + strconv.FormatInt(o.ProductID, 10)
	}
	return []string{
		strconv.FormatInt(o.ID, 10),
		user,
		product,
		strconv.Itoa(o.Quantity),
		o.TotalPrice.StringFixed(2),
	}
}

func OrderToResponse(order *entity.Order) OrderResponse {
	return OrderResponse{
		ID:         order.ID,
		UserID:     order.UserID,
		ProductID:  order.ProductID,
		Quantity:   order.Quantity,
		TotalPrice: order.TotalPrice,
	}
}

func OrderViewToResponse(view *entity.OrderView) OrderResponse {
	resp := OrderToResponse(&view.Order)
	resp.Username = view.Username
	resp.ProductName = view.ProductName
	return resp
}

func OrderViewsToResponse(views []*entity.OrderView) OrderListResponse {
	list := make(OrderListResponse, len(views))
	for i, v := range views {
		list[i] = OrderViewToResponse(v)
	}
	return list
}
