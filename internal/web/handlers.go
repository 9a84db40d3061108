package web

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lojinha/storefront/internal/admin"
	"github.com/lojinha/storefront/internal/cart"
	"github.com/lojinha/storefront/internal/catalog"
	"github.com/lojinha/storefront/internal/checkout"
	"github.com/lojinha/storefront/internal/notify"
	"github.com/lojinha/storefront/internal/orders"
)

// categories offered by the external catalog. The dropdown is static; the
// catalog API has no endpoint to list them.
var categories = []string{"electronics", "jewelery", "men's clothing", "women's clothing"}

type storeData struct {
	Flash      flash
	Cards      []catalog.Card
	LoadError  bool
	Categories []string
	Category   string
	Query      string
	Cart       cart.View
}

func (s *Server) storePage(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	ctx := r.Context()

	data := storeData{
		Flash:      flashFrom(r),
		Categories: categories,
		Category:   r.URL.Query().Get("category"),
		Query:      r.URL.Query().Get("q"),
	}

	products, err := s.Catalog.ListProducts(ctx, data.Category)
	if err != nil {
		log.Printf("load products: %v", err)
		data.LoadError = true
	} else {
		grid := catalog.NewGrid(products)
		if data.Query != "" {
			grid.ApplySearch(data.Query)
		}
		data.Cards = grid.Cards
	}

	view, err := cart.NewStore(s.Redis, sess).Load(ctx)
	if err != nil {
		log.Printf("load cart: %v", err)
	}
	data.Cart = cart.BuildView(view)

	s.render(w, "store.html", data)
}

func (s *Server) cartAdd(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	id, err := strconv.Atoi(r.FormValue("product_id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	rec := &notify.Recorder{}
	_ = s.cartController(sess, rec).AddToCart(r.Context(), id)
	redirectFlash(w, r, "/", rec.Last())
}

func (s *Server) cartRemove(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	id, err := strconv.Atoi(r.FormValue("product_id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	rec := &notify.Recorder{}
	_ = s.cartController(sess, rec).RemoveFromCart(r.Context(), id)
	redirectFlash(w, r, "/", rec.Last())
}

func (s *Server) checkoutSubmit(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	rec := &notify.Recorder{}
	flow := checkout.Flow{
		Cart:     cart.NewStore(s.Redis, sess),
		Orders:   s.Orders,
		Notifier: rec,
	}
	_, _ = flow.Checkout(r.Context())
	redirectFlash(w, r, "/", rec.Last())
}

type adminData struct {
	Flash    flash
	Filter   admin.Filter
	Statuses []orders.Status
	Table    admin.TableView
}

func (s *Server) adminPage(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sa := s.adminClient(sess)
	sa.mu.Lock()
	defer sa.mu.Unlock()
	ctx := r.Context()
	q := r.URL.Query()

	switch {
	case q.Has("apply"):
		// Apply filters refetches the collection; the filter itself is local.
		if err := sa.client.Load(ctx); err == nil {
			sa.client.SetFilter(admin.Filter{Email: q.Get("email"), Status: q.Get("status")})
		}
	case q.Has("page"):
		if page, err := strconv.Atoi(q.Get("page")); err == nil {
			sa.client.SetPage(page)
		}
	default:
		if sa.client.All() == nil {
			_ = sa.client.Load(ctx)
		}
	}

	data := adminData{
		Flash:    flashFrom(r),
		Filter:   sa.client.Filter(),
		Statuses: orders.Statuses(),
		Table:    sa.client.View(),
	}
	if data.Flash.Message == "" {
		if last := sa.drain(); last.Message != "" {
			data.Flash = flash{Message: last.Message, Kind: string(last.Kind)}
		}
	}
	s.render(w, "admin.html", data)
}

type editData struct {
	Flash flash
	Form  admin.Form
}

func (s *Server) adminEditPage(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sa := s.adminClient(sess)
	sa.mu.Lock()
	defer sa.mu.Unlock()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	form, err := sa.client.OpenEdit(r.Context(), id)
	if err != nil {
		redirectFlash(w, r, "/admin", sa.drain())
		return
	}
	s.render(w, "edit.html", editData{Flash: flashFrom(r), Form: form})
}

func (s *Server) adminSave(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sa := s.adminClient(sess)
	sa.mu.Lock()
	defer sa.mu.Unlock()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	form := admin.Form{
		ID:        id,
		Email:     r.FormValue("email"),
		Status:    r.FormValue("status"),
		Total:     r.FormValue("total"),
		ItemsJSON: r.FormValue("items"),
	}
	if err := sa.client.Save(r.Context(), form); err != nil {
		// Validation and backend errors alike send the user back to the
		// form with the message; nothing was changed on failure.
		redirectFlash(w, r, fmt.Sprintf("/admin/orders/%d/edit", id), sa.drain())
		return
	}
	redirectFlash(w, r, "/admin", sa.drain())
}

func (s *Server) adminDelete(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sa := s.adminClient(sess)
	sa.mu.Lock()
	defer sa.mu.Unlock()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	_ = sa.client.Delete(r.Context(), id)
	redirectFlash(w, r, "/admin", sa.drain())
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("render %s: %v", name, err)
	}
}
