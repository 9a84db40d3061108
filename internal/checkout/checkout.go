// Package checkout turns the cart into an order and submits it to the
// backend orders API.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/lojinha/storefront/internal/cart"
	"github.com/lojinha/storefront/internal/notify"
	"github.com/lojinha/storefront/internal/orders"
	"github.com/lojinha/storefront/internal/ordersclient"
)

// ErrEmptyCart is returned when checkout is attempted with nothing in the
// cart. No request is issued in that case.
var ErrEmptyCart = errors.New("cart is empty")

// PlaceholderEmail stands in until the storefront has customer accounts.
const PlaceholderEmail = "cliente@exemplo.com"

type Flow struct {
	Cart     *cart.Store
	Orders   *ordersclient.Client
	Notifier notify.Notifier
}

// Checkout submits the current cart as a new order. The total is recomputed
// from the items, never taken from a cached value. The cart is cleared only
// after the backend accepts the order; every failure path leaves it intact.
func (f *Flow) Checkout(ctx context.Context) (orders.Order, error) {
	items, err := f.Cart.Load(ctx)
	if err != nil {
		return orders.Order{}, err
	}
	if len(items) == 0 {
		f.Notifier.Notify(notify.Warning, "Seu carrinho está vazio!")
		return orders.Order{}, ErrEmptyCart
	}

	lines := make([]orders.Item, 0, len(items))
	for _, it := range items {
		lines = append(lines, orders.Item{
			ProductID: it.ID,
			Title:     it.Title,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}

	created, err := f.Orders.Create(ctx, ordersclient.CreateOrder{
		CustomerEmail: PlaceholderEmail,
		Status:        orders.StatusPendente,
		Total:         orders.SumItems(lines),
		Items:         lines,
	})
	if err != nil {
		log.Printf("checkout: %v", err)
		f.Notifier.Notify(notify.Error, fmt.Sprintf("Falha ao finalizar: %s", err))
		return orders.Order{}, err
	}

	if err := f.Cart.Clear(ctx); err != nil {
		return created, err
	}
	f.Notifier.Notify(notify.Success, "Compra finalizada com sucesso!")
	return created, nil
}
