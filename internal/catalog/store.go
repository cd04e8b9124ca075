package catalog

import "context"

type Product struct {
	ID    int     `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// Stock is the maximum purchasable quantity of a product.
type Stock struct {
	ID     int `json:"id"`
	Amount int `json:"amount"`
}

type Store interface {
	Ping(ctx context.Context) error
	ListSortedByID(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id int) (Product, bool, error)
	GetStock(ctx context.Context, id int) (Stock, bool, error)
}
