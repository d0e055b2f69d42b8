package response

import (
	"strconv"

	"storefront/internal/data/entity"

	"github.com/shopspring/decimal"
)

type ProductResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

type ProductListResponse []ProductResponse

var productHeader = []string{"ID", "NAME", "DESCRIPTION", "PRICE", "QUANTITY"}

func (p ProductResponse) Header() []string { return productHeader }
func (p ProductResponse) Rows() [][]string { return [][]string{p.row()} }

func (l ProductListResponse) Header() []string { return productHeader }

func (l ProductListResponse) Rows() [][]string {
	rows := make([][]string, len(l))
	for i, p := range l {
		rows[i] = p.row()
	}
	return rows
}

func (p ProductResponse) row() []string {
	return []string{
		strconv.FormatInt(p.ID, 10),
		p.Name,
		p.Description,
		p.Price.StringFixed(2),
		strconv.Itoa(p.Quantity),
	}
}

func ProductToResponse(product *entity.Product) ProductResponse {
	resp := ProductResponse{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Quantity: product.Quantity,
	}
	if product.Description != nil {
		resp.Description = *product.Description
	}
	return resp
}

func ProductsToResponse(products []*entity.Product) ProductListResponse {
	list := make(ProductListResponse, len(products))
	for i, p := range products {
		list[i] = ProductToResponse(p)
	}
	return list
}
