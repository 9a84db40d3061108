package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/lojinha/storefront/internal/notify"
	"github.com/lojinha/storefront/internal/orders"
	"github.com/lojinha/storefront/internal/ordersclient"
)

// ErrInvalidItems means the items editor held text that is not valid JSON.
// Save aborts locally; no request is issued.
var ErrInvalidItems = errors.New("items field is not valid JSON")

// Form is the edit modal's contents. Total and items are the raw editable
// text the user sees; parsing happens on save.
type Form struct {
	ID        int64
	Email     string
	Status    string
	Total     string // formatted to two decimals
	ItemsJSON string // pretty-printed, editable
}

// OpenEdit fetches one order and populates the edit form.
func (c *Client) OpenEdit(ctx context.Context, id int64) (Form, error) {
	o, err := c.api.Get(ctx, id)
	if err != nil {
		log.Printf("open edit %d: %v", id, err)
		c.notifier.Notify(notify.Error, "Erro ao buscar pedido")
		return Form{}, err
	}
	items, err := json.MarshalIndent(o.Items, "", "  ")
	if err != nil {
		return Form{}, err
	}
	return Form{
		ID:        o.ID,
		Email:     o.CustomerEmail,
		Status:    string(o.Status),
		Total:     fmt.Sprintf("%.2f", o.Total),
		ItemsJSON: string(items),
	}, nil
}

// Save validates the form locally, then PUTs the update. Invalid items JSON
// or an unparseable total abort with a validation message before any network
// call. On success the list reloads (back on page 1).
func (c *Client) Save(ctx context.Context, f Form) error {
	var items []orders.Item
	if err := json.Unmarshal([]byte(f.ItemsJSON), &items); err != nil {
		c.notifier.Notify(notify.Error, "Erro ao converter os itens. Certifique-se de que o JSON está válido.")
		return ErrInvalidItems
	}

	total, err := strconv.ParseFloat(f.Total, 64)
	if err != nil {
		c.notifier.Notify(notify.Error, "Total inválido")
		return err
	}

	_, err = c.api.Update(ctx, f.ID, ordersclient.UpdateOrder{
		CustomerEmail: f.Email,
		Status:        orders.Normalize(f.Status),
		Total:         total,
		Items:         items,
	})
	if err != nil {
		log.Printf("save order %d: %v", f.ID, err)
		c.notifier.Notify(notify.Error, fmt.Sprintf("Erro: %s", err))
		return err
	}

	c.notifier.Notify(notify.Success, "Pedido atualizado com sucesso!")
	return c.Load(ctx)
}
