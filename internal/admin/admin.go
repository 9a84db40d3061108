// Package admin is the order administration screen: list, filter, paginate,
// edit, and delete orders against the backend orders API.
//
// Filtering and pagination are client-side: the whole collection is fetched
// once and the working list is sliced locally. Page clicks re-render without
// refetching; only Load and ApplyFilters hit the network.
package admin

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/lojinha/storefront/internal/notify"
	"github.com/lojinha/storefront/internal/orders"
	"github.com/lojinha/storefront/internal/ordersclient"
)

const PageSize = 10

// Filter is the current filter criteria. Status empty or the TODOS sentinel
// means no status filter.
type Filter struct {
	Email  string
	Status string
}

// Confirmer gates destructive actions behind an interactive confirmation.
type Confirmer interface {
	Confirm(message string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(message string) bool

func (f ConfirmFunc) Confirm(message string) bool { return f(message) }

// Client holds the admin screen's working state. It replaces what used to be
// scattered globals with a single owner whose mutations are explicit methods.
type Client struct {
	api      *ordersclient.Client
	notifier notify.Notifier
	confirm  Confirmer

	orders []orders.Order
	filter Filter
	page   int // 1-based
}

func NewClient(api *ordersclient.Client, notifier notify.Notifier, confirm Confirmer) *Client {
	return &Client{api: api, notifier: notifier, confirm: confirm, page: 1}
}

// Load fetches the full order collection and resets to the first page.
// Resetting avoids landing on a page that no longer exists after the result
// set shrank.
func (c *Client) Load(ctx context.Context) error {
	list, err := c.api.List(ctx)
	if err != nil {
		log.Printf("load orders: %v", err)
		c.notifier.Notify(notify.Error, "Erro ao carregar pedidos")
		return err
	}
	c.orders = list
	c.page = 1
	return nil
}

// SetFilter replaces the filter criteria and resets to page 1.
func (c *Client) SetFilter(f Filter) {
	c.filter = f
	c.page = 1
}

// SetPage switches the rendered page without refetching. Out-of-range pages
// are ignored.
func (c *Client) SetPage(page int) {
	if page >= 1 && page <= c.PageCount() {
		c.page = page
	}
}

func (c *Client) Page() int           { return c.page }
func (c *Client) Filter() Filter      { return c.filter }
func (c *Client) All() []orders.Order { return c.orders }

// Filtered derives the working subset: case-insensitive substring match on
// customer email AND exact status match unless the filter is unset or TODOS.
func (c *Client) Filtered() []orders.Order {
	email := strings.ToLower(c.filter.Email)
	status := c.filter.Status

	var out []orders.Order
	for _, o := range c.orders {
		if !strings.Contains(strings.ToLower(o.CustomerEmail), email) {
			continue
		}
		if status != "" && status != orders.StatusAll && string(o.Status) != status {
			continue
		}
		out = append(out, o)
	}
	return out
}

// PageCount is ceil(filtered count / PageSize).
func (c *Client) PageCount() int {
	return (len(c.Filtered()) + PageSize - 1) / PageSize
}

// CurrentPage slices the filtered subset for the active page: items
// [(page-1)*PageSize, page*PageSize).
func (c *Client) CurrentPage() []orders.Order {
	filtered := c.Filtered()
	start := (c.page - 1) * PageSize
	if start >= len(filtered) {
		return nil
	}
	end := start + PageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// Delete removes one order after interactive confirmation. Declining issues
// no request. On success the list is reloaded.
func (c *Client) Delete(ctx context.Context, id int64) error {
	if !c.confirm.Confirm(fmt.Sprintf("Deseja realmente excluir o pedido #%d?", id)) {
		return nil
	}
	if err := c.api.Delete(ctx, id); err != nil {
		log.Printf("delete order %d: %v", id, err)
		c.notifier.Notify(notify.Error, fmt.Sprintf("Erro ao excluir pedido: %s", err))
		return err
	}
	c.notifier.Notify(notify.Success, "Pedido excluído com sucesso!")
	return c.Load(ctx)
}
