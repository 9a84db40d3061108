// Package web is the server-rendered storefront: the shop page with catalog,
// cart and checkout, plus the order administration screen.
package web

import (
	"embed"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/lojinha/storefront/internal/admin"
	"github.com/lojinha/storefront/internal/cart"
	"github.com/lojinha/storefront/internal/catalog"
	"github.com/lojinha/storefront/internal/notify"
	"github.com/lojinha/storefront/internal/ordersclient"
)

//go:embed templates/*.html
var templateFS embed.FS

const sessionCookie = "storefront_session"

type Server struct {
	Catalog *catalog.Client
	Orders  *ordersclient.Client
	Redis   *redis.Client

	tmpl *template.Template

	// One admin client per session so page clicks re-render the already
	// fetched list without another round trip.
	mu     sync.Mutex
	admins map[string]*sessionAdmin
}

// sessionAdmin pairs the session's admin state with the recorder its
// notifications land in. The recorder is drained into a flash message after
// every action. mu serializes concurrent requests from the same session:
// handlers hold it for the whole client interaction, drain included.
type sessionAdmin struct {
	mu     sync.Mutex
	client *admin.Client
	rec    *notify.Recorder
}

func NewServer(cat *catalog.Client, oc *ordersclient.Client, rdb *redis.Client) *Server {
	return &Server{
		Catalog: cat,
		Orders:  oc,
		Redis:   rdb,
		tmpl:    template.Must(template.ParseFS(templateFS, "templates/*.html")),
		admins:  make(map[string]*sessionAdmin),
	}
}

func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/", s.storePage)
	r.Post("/cart/add", s.cartAdd)
	r.Post("/cart/remove", s.cartRemove)
	r.Post("/checkout", s.checkoutSubmit)

	r.Get("/admin", s.adminPage)
	r.Get("/admin/orders/{id}/edit", s.adminEditPage)
	r.Post("/admin/orders/{id}", s.adminSave)
	r.Post("/admin/orders/{id}/delete", s.adminDelete)

	return r
}

// session returns the caller's session id, setting the cookie on first visit.
func (s *Server) session(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int((30 * 24 * time.Hour).Seconds()),
	})
	return id
}

// cartController builds the per-session cart stack for one request.
func (s *Server) cartController(sessionID string, n notify.Notifier) *cart.Controller {
	return cart.NewController(cart.NewStore(s.Redis, sessionID), s.Catalog, n)
}

// adminClient returns the session's admin state, creating it on first use.
// The confirmer always accepts: the browser already asked before submitting
// the delete form.
func (s *Server) adminClient(sessionID string) *sessionAdmin {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.admins[sessionID]; ok {
		return a
	}
	rec := &notify.Recorder{}
	a := &sessionAdmin{
		client: admin.NewClient(s.Orders, rec, admin.ConfirmFunc(func(string) bool { return true })),
		rec:    rec,
	}
	s.admins[sessionID] = a
	return a
}

// drain pops the recorded notifications, returning the most recent one.
// Caller holds sa.mu.
func (sa *sessionAdmin) drain() notify.Entry {
	last := sa.rec.Last()
	sa.rec.Entries = nil
	return last
}

// redirectFlash sends the user back with a notification as a flash message
// in the query string.
func redirectFlash(w http.ResponseWriter, r *http.Request, to string, e notify.Entry) {
	if e.Message != "" {
		to += "?flash=" + template.URLQueryEscaper(e.Message) + "&kind=" + string(e.Kind)
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

type flash struct {
	Message string
	Kind    string
}

func flashFrom(r *http.Request) flash {
	return flash{
		Message: r.URL.Query().Get("flash"),
		Kind:    r.URL.Query().Get("kind"),
	}
}
