package cart

import "fmt"

// Row is one rendered cart line.
type Row struct {
	ProductID int
	Title     string
	UnitPrice string // "R$ 10.00"
	Quantity  int
	LineTotal string
}

// View is the rendered cart: same items in, same view out.
type View struct {
	Rows  []Row
	Badge int     // sum of quantities; hidden when 0
	Total float64 // sum of line totals
	Empty bool

	FormattedTotal string
}

// FormatPrice renders a currency amount the way the storefront displays it.
func FormatPrice(v float64) string {
	return fmt.Sprintf("R$ %.2f", v)
}

// BuildView renders a cart snapshot into its view model.
func BuildView(items []Item) View {
	v := View{Empty: len(items) == 0}
	for _, it := range items {
		line := it.Price * float64(it.Quantity)
		v.Total += line
		v.Badge += it.Quantity
		v.Rows = append(v.Rows, Row{
			ProductID: it.ID,
			Title:     it.Title,
			UnitPrice: FormatPrice(it.Price),
			Quantity:  it.Quantity,
			LineTotal: FormatPrice(line),
		})
	}
	v.FormattedTotal = FormatPrice(v.Total)
	return v
}
