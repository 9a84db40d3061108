package cart

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStore(client, "sess-1"), mr
}

func TestStoreLoadMissingKey(t *testing.T) {
	store, _ := newTestStore(t)

	items, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	in := []Item{
		{ID: 1, Title: "Mochila", Price: 109.95, Image: "http://img/1.jpg", Quantity: 2},
		{ID: 2, Title: "Camiseta", Price: 22.3, Quantity: 1},
	}
	require.NoError(t, store.Save(ctx, in))

	out, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestStoreCorruptPayloadResetsToEmpty(t *testing.T) {
	store, mr := newTestStore(t)

	require.NoError(t, mr.Set("cart:sess-1", "{not json"))

	items, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestStoreClear(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []Item{{ID: 1, Quantity: 1}}))
	require.NoError(t, store.Clear(ctx))

	assert.False(t, mr.Exists("cart:sess-1"))

	items, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestStoreKeysAreSessionScoped(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	ctx := context.Background()

	a := NewStore(client, "sess-a")
	b := NewStore(client, "sess-b")

	require.NoError(t, a.Save(ctx, []Item{{ID: 1, Quantity: 1}}))

	items, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}
