package admin

import (
	"time"

	"github.com/lojinha/storefront/internal/cart"
)

// RowView is one rendered table row.
type RowView struct {
	ID        int64
	Email     string
	Total     string // "R$ 10.00"
	Status    string
	CreatedAt string
}

// PageButton is one pagination control; Active marks the current page.
type PageButton struct {
	Number int
	Active bool
}

type TableView struct {
	Rows  []RowView
	Pages []PageButton
	Empty bool
}

// View renders the current page plus its pagination row.
func (c *Client) View() TableView {
	rows := c.CurrentPage()
	v := TableView{Empty: len(rows) == 0}
	for _, o := range rows {
		v.Rows = append(v.Rows, RowView{
			ID:        o.ID,
			Email:     o.CustomerEmail,
			Total:     cart.FormatPrice(o.Total),
			Status:    string(o.Status),
			CreatedAt: o.CreatedAt.Local().Format(time.DateTime),
		})
	}
	for i := 1; i <= c.PageCount(); i++ {
		v.Pages = append(v.Pages, PageButton{Number: i, Active: i == c.page})
	}
	return v
}
