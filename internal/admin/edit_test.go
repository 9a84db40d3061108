package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojinha/storefront/internal/notify"
	"github.com/lojinha/storefront/internal/orders"
)

func TestOpenEditPopulatesForm(t *testing.T) {
	c, _ := newTestClient(t, newFakeBackend(makeOrders(3)), true)

	form, err := c.OpenEdit(context.Background(), 2)
	require.NoError(t, err)

	assert.EqualValues(t, 2, form.ID)
	assert.Equal(t, "Cliente2@Exemplo.com", form.Email)
	assert.Equal(t, "ENVIADO", form.Status)
	assert.Equal(t, "20.00", form.Total)
	assert.Contains(t, form.ItemsJSON, "\n", "items are pretty-printed")
	assert.Contains(t, form.ItemsJSON, `"product_id": 2`)
}

func TestOpenEditNotFound(t *testing.T) {
	c, rec := newTestClient(t, newFakeBackend(makeOrders(1)), true)

	_, err := c.OpenEdit(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, "Erro ao buscar pedido", rec.Last().Message)
}

func TestSaveInvalidItemsJSONIssuesNoRequest(t *testing.T) {
	backend := newFakeBackend(makeOrders(1))
	c, rec := newTestClient(t, backend, true)

	err := c.Save(context.Background(), Form{
		ID:        1,
		Email:     "cliente1@exemplo.com",
		Status:    "enviado",
		Total:     "10.00",
		ItemsJSON: "{not valid json",
	})
	require.ErrorIs(t, err, ErrInvalidItems)
	assert.Zero(t, backend.puts)
	assert.Contains(t, rec.Last().Message, "JSON está válido")
}

func TestSaveInvalidTotalIssuesNoRequest(t *testing.T) {
	backend := newFakeBackend(makeOrders(1))
	c, _ := newTestClient(t, backend, true)

	err := c.Save(context.Background(), Form{
		ID:        1,
		Email:     "cliente1@exemplo.com",
		Status:    "ENVIADO",
		Total:     "dez",
		ItemsJSON: "[]",
	})
	require.Error(t, err)
	assert.Zero(t, backend.puts)
}

func TestSaveUpperCasesStatusAndReloads(t *testing.T) {
	backend := newFakeBackend(makeOrders(15))
	c, rec := newTestClient(t, backend, true)
	require.NoError(t, c.Load(context.Background()))
	c.SetPage(2)

	err := c.Save(context.Background(), Form{
		ID:        1,
		Email:     "novo@exemplo.com",
		Status:    "entregue",
		Total:     "10.00",
		ItemsJSON: `[{"product_id":1,"title":"Produto","price":10,"quantity":1}]`,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, backend.puts)
	assert.Equal(t, orders.StatusEntregue, backend.orders[1].Status)
	assert.Equal(t, "novo@exemplo.com", backend.orders[1].CustomerEmail)

	assert.Equal(t, 1, c.Page(), "reload lands back on page 1")
	assert.Equal(t, notify.Success, rec.Last().Kind)
}

func TestSaveBackendErrorReportsDetail(t *testing.T) {
	backend := newFakeBackend(makeOrders(1))
	c, rec := newTestClient(t, backend, true)

	err := c.Save(context.Background(), Form{
		ID:        99,
		Email:     "x@exemplo.com",
		Status:    "ENVIADO",
		Total:     "10.00",
		ItemsJSON: "[]",
	})
	require.Error(t, err)
	assert.Contains(t, rec.Last().Message, "Pedido não encontrado")
}
