package cart

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"golang.org/x/sync/singleflight"

	"github.com/lojinha/storefront/internal/catalog"
	"github.com/lojinha/storefront/internal/notify"
)

// ProductFetcher is the slice of the catalog client the controller needs.
type ProductFetcher interface {
	GetProduct(ctx context.Context, id int) (catalog.Product, error)
}

// Controller mutates one session's cart. All state lives in the Store; the
// controller reloads before every mutation so a stale in-memory copy never
// overwrites a newer persisted one.
type Controller struct {
	store    *Store
	products ProductFetcher
	notifier notify.Notifier

	// One flight per product id: rapid repeated clicks on the same product
	// collapse into a single add instead of starving unrelated ones.
	flights singleflight.Group
}

func NewController(store *Store, products ProductFetcher, notifier notify.Notifier) *Controller {
	return &Controller{store: store, products: products, notifier: notifier}
}

// AddToCart fetches the product, reloads the cart, increments the existing
// line or appends a new one with quantity 1, and persists. On failure the
// persisted cart is left unchanged.
func (c *Controller) AddToCart(ctx context.Context, productID int) error {
	_, err, _ := c.flights.Do(strconv.Itoa(productID), func() (any, error) {
		return nil, c.addToCart(ctx, productID)
	})
	return err
}

func (c *Controller) addToCart(ctx context.Context, productID int) error {
	product, err := c.products.GetProduct(ctx, productID)
	if err != nil {
		log.Printf("add to cart: %v", err)
		c.notifier.Notify(notify.Error, "Erro ao adicionar produto")
		return err
	}

	items, err := c.store.Load(ctx)
	if err != nil {
		c.notifier.Notify(notify.Error, "Erro ao adicionar produto")
		return err
	}

	found := false
	for i := range items {
		if items[i].ID == product.ID {
			items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		items = append(items, Item{
			ID:       product.ID,
			Title:    product.Title,
			Price:    product.Price,
			Image:    product.Image,
			Quantity: 1,
		})
	}

	if err := c.store.Save(ctx, items); err != nil {
		c.notifier.Notify(notify.Error, "Erro ao adicionar produto")
		return err
	}
	c.notifier.Notify(notify.Success, fmt.Sprintf("%s adicionado ao carrinho!", product.Title))
	return nil
}

// RemoveFromCart drops the whole line for productID. Removing an id that is
// not in the cart is a no-op that still notifies.
func (c *Controller) RemoveFromCart(ctx context.Context, productID int) error {
	items, err := c.store.Load(ctx)
	if err != nil {
		c.notifier.Notify(notify.Error, "Erro ao remover produto")
		return err
	}

	kept := items[:0]
	for _, it := range items {
		if it.ID != productID {
			kept = append(kept, it)
		}
	}

	if err := c.store.Save(ctx, kept); err != nil {
		c.notifier.Notify(notify.Error, "Erro ao remover produto")
		return err
	}
	c.notifier.Notify(notify.Warning, "Produto removido do carrinho")
	return nil
}

// Items returns the current persisted snapshot.
func (c *Controller) Items(ctx context.Context) ([]Item, error) {
	return c.store.Load(ctx)
}

// View renders the current cart. Rendering is idempotent: the same persisted
// state always yields the same view.
func (c *Controller) View(ctx context.Context) (View, error) {
	items, err := c.store.Load(ctx)
	if err != nil {
		return View{}, err
	}
	return BuildView(items), nil
}

// Store exposes the underlying store for the checkout flow.
func (c *Controller) Store() *Store { return c.store }
