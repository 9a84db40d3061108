package catalog

import "strings"

// Card is one rendered product tile. Search toggles visibility on the
// rendered grid; the underlying product list is untouched.
type Card struct {
	Product Product
	Visible bool
}

type Grid struct {
	Cards []Card
}

// NewGrid renders a product list into a grid with every card visible.
func NewGrid(products []Product) *Grid {
	cards := make([]Card, len(products))
	for i, p := range products {
		cards[i] = Card{Product: p, Visible: true}
	}
	return &Grid{Cards: cards}
}

// ApplySearch shows only cards whose title contains term, case-insensitive.
// An empty term shows everything.
func (g *Grid) ApplySearch(term string) {
	term = strings.ToLower(term)
	for i := range g.Cards {
		title := strings.ToLower(g.Cards[i].Product.Title)
		g.Cards[i].Visible = strings.Contains(title, term)
	}
}

// Visible returns the products of the currently visible cards, in grid order.
func (g *Grid) Visible() []Product {
	var out []Product
	for _, c := range g.Cards {
		if c.Visible {
			out = append(out, c.Product)
		}
	}
	return out
}
