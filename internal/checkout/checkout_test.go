package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojinha/storefront/internal/cart"
	"github.com/lojinha/storefront/internal/notify"
	"github.com/lojinha/storefront/internal/orders"
	"github.com/lojinha/storefront/internal/ordersclient"
)

func newTestFlow(t *testing.T, backend http.Handler) (*Flow, *cart.Store, *notify.Recorder, *int64) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		backend.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	store := cart.NewStore(client, "sess")
	rec := &notify.Recorder{}
	flow := &Flow{Cart: store, Orders: ordersclient.New(srv.URL), Notifier: rec}
	return flow, store, rec, &hits
}

func TestCheckoutEmptyCartIssuesNoRequest(t *testing.T) {
	flow, _, rec, hits := newTestFlow(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	_, err := flow.Checkout(context.Background())
	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, atomic.LoadInt64(hits))
	assert.Equal(t, notify.Warning, rec.Last().Kind)
}

func TestCheckoutSuccessClearsCart(t *testing.T) {
	var got ordersclient.CreateOrder
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(orders.Order{ID: 7, CustomerEmail: got.CustomerEmail, Status: got.Status, Total: got.Total, Items: got.Items})
	})
	flow, store, rec, _ := newTestFlow(t, backend)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []cart.Item{
		{ID: 1, Title: "Mochila", Price: 10, Quantity: 2},
		{ID: 2, Title: "Camiseta", Price: 5, Quantity: 1},
	}))

	created, err := flow.Checkout(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 7, created.ID)

	// payload fields renamed id -> product_id, total recomputed
	require.Len(t, got.Items, 2)
	assert.Equal(t, 1, got.Items[0].ProductID)
	assert.InDelta(t, 25.0, got.Total, 1e-9)
	assert.Equal(t, PlaceholderEmail, got.CustomerEmail)
	assert.Equal(t, orders.StatusPendente, got.Status)

	items, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, items, "cart cleared after success")
	assert.Equal(t, notify.Success, rec.Last().Kind)
}

func TestCheckoutBackendErrorLeavesCartIntact(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"O total do pedido não corresponde à soma dos itens"}`))
	})
	flow, store, rec, _ := newTestFlow(t, backend)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []cart.Item{{ID: 1, Title: "Mochila", Price: 10, Quantity: 1}}))

	_, err := flow.Checkout(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "não corresponde")

	items, loadErr := store.Load(ctx)
	require.NoError(t, loadErr)
	assert.Len(t, items, 1, "cart untouched on failure")
	assert.Equal(t, notify.Error, rec.Last().Kind)
	assert.Contains(t, rec.Last().Message, "Falha ao finalizar")
}
