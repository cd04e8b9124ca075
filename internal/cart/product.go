package cart

// Product is a cart entry: the catalog record plus the quantity held in the cart.
type Product struct {
	ID     int     `json:"id"`
	Title  string  `json:"title"`
	Price  float64 `json:"price"`
	Image  string  `json:"image"`
	Amount int     `json:"amount"`
}

// Stock is the maximum purchasable quantity for a product.
type Stock struct {
	ID     int `json:"id"`
	Amount int `json:"amount"`
}

type UpdateProductAmount struct {
	ProductID int `json:"productId"`
	Amount    int `json:"amount"`
}

func indexOf(cart []Product, id int) int {
	for i, p := range cart {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func clone(cart []Product) []Product {
	out := make([]Product, len(cart))
	copy(out, cart)
	return out
}

// valid reports whether ids are unique and every amount is at least one.
func valid(cart []Product) bool {
	seen := make(map[int]struct{}, len(cart))
	for _, p := range cart {
		if p.Amount < 1 {
			return false
		}
		if _, dup := seen[p.ID]; dup {
			return false
		}
		seen[p.ID] = struct{}{}
	}
	return true
}
