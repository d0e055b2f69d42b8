package request

type ProductRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Price       float64 `json:"price" validate:"gte=0,lte=1000000000"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
}
