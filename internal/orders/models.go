package orders

import "time"

// Item is a single purchased line inside an order. Price is the unit price
// captured at checkout time; it does not track later catalog changes.
type Item struct {
	ProductID int     `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type Order struct {
	ID            int64     `json:"id"`
	CustomerEmail string    `json:"customer_email"`
	Status        Status    `json:"status"`
	Total         float64   `json:"total"`
	Items         []Item    `json:"items"`
	CreatedAt     time.Time `json:"created_at"`
}

// Subtotal is price x quantity for one line.
func (i Item) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// SumItems recomputes the order total from its lines. The backend never
// trusts a client-supplied total without checking it against this.
func SumItems(items []Item) float64 {
	var total float64
	for _, it := range items {
		total += it.Subtotal()
	}
	return total
}
