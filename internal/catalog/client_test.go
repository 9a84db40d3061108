package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":1,"title":"Mochila","price":109.95,"image":"http://img/1.jpg","category":"bags"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	ps, err := c.ListProducts(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "Mochila", ps[0].Title)
	assert.InDelta(t, 109.95, ps[0].Price, 1e-9)
}

func TestListProductsByCategory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/category/electronics", r.URL.Path)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).ListProducts(context.Background(), "electronics")
	require.NoError(t, err)
}

func TestGetProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/3", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":3,"title":"Jaqueta","price":55.99}`))
	}))
	defer srv.Close()

	p, err := NewClient(srv.URL).GetProduct(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, p.ID)
	assert.Equal(t, "Jaqueta", p.Title)
}

func TestListProductsUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).ListProducts(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
