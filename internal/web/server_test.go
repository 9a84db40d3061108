package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojinha/storefront/internal/catalog"
	"github.com/lojinha/storefront/internal/orders"
	"github.com/lojinha/storefront/internal/ordersclient"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	catalogSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products":
			_, _ = w.Write([]byte(`[
				{"id":1,"title":"Mochila","price":10,"image":"http://img/1.jpg","category":"bags"},
				{"id":2,"title":"Camiseta","price":5,"image":"http://img/2.jpg","category":"clothes"}
			]`))
		case "/products/1":
			_, _ = w.Write([]byte(`{"id":1,"title":"Mochila","price":10,"image":"http://img/1.jpg"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(catalogSrv.Close)

	ordersSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode([]orders.Order{
				{ID: 1, CustomerEmail: "cliente@exemplo.com", Status: orders.StatusPendente, Total: 10},
			})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	t.Cleanup(ordersSrv.Close)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewServer(catalog.NewClient(catalogSrv.URL), ordersclient.New(ordersSrv.URL), client)
}

func TestStorePageSetsSessionCookie(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Router()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	cookies := rr.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, sessionCookie, cookies[0].Name)
	assert.Contains(t, rr.Body.String(), "Mochila")
	assert.Contains(t, rr.Body.String(), "Seu carrinho está vazio")
}

func TestCartAddRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Router()

	// establish a session
	first := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, first)
	session := rr.Result().Cookies()[0]

	add := httptest.NewRequest(http.MethodPost, "/cart/add", nil)
	add.AddCookie(session)
	add.PostForm = map[string][]string{"product_id": {"1"}}
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, add)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Contains(t, rr.Header().Get("Location"), "flash=")

	// the store page now shows the cart line
	page := httptest.NewRequest(http.MethodGet, "/", nil)
	page.AddCookie(session)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, page)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "R$ 10.00")
	assert.NotContains(t, rr.Body.String(), "Seu carrinho está vazio")
}

func TestAdminConcurrentRequestsSameSession(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Router()

	first := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, first)
	require.Equal(t, http.StatusOK, rr.Code)
	session := rr.Result().Cookies()[0]

	// Several tabs of the same session hammering filter and pagination at
	// once must not corrupt the shared admin state.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			target := "/admin?apply=1&email=cliente"
			if i%2 == 0 {
				target = "/admin?page=1"
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			req.AddCookie(session)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusOK, rec.Code)
		}(i)
	}
	wg.Wait()
}

func TestAdminPageRendersOrders(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Router()

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "cliente@exemplo.com")
	assert.Contains(t, rr.Body.String(), "PENDENTE")
}
