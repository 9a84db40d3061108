package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/lojinha/storefront/internal/kafka"
	"github.com/lojinha/storefront/internal/orders"
	"github.com/lojinha/storefront/internal/redisx"
)

// OrderStore is the slice of the repository the handler needs. Satisfied by
// *orders.Repo; tests plug in an in-memory fake.
type OrderStore interface {
	List(ctx context.Context) ([]orders.Order, error)
	Get(ctx context.Context, id int64) (orders.Order, error)
	Create(ctx context.Context, o orders.Order) (orders.Order, error)
	Update(ctx context.Context, id int64, o orders.Order) (orders.Order, error)
	Delete(ctx context.Context, id int64) error
}

// Publisher is satisfied by *kafka.Producer.
type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type OrdersHandler struct {
	Store   OrderStore
	Created Publisher
	Updated Publisher
	Deleted Publisher
	Redis   *redis.Client
	Service string
}

type OrderBody struct {
	CustomerEmail string        `json:"customer_email"`
	Status        string        `json:"status"`
	Total         float64       `json:"total"`
	Items         []orders.Item `json:"items"`
}

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Get("/", h.listOrders)
		r.Post("/", h.createOrder)
		r.Get("/{id}", h.getOrder)
		r.Put("/{id}", h.updateOrder)
		r.Delete("/{id}", h.deleteOrder)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail writes the FastAPI-shaped error body the clients expect.
func writeDetail(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, map[string]string{"detail": detail})
}

// validate checks an order body the way the original backend did: email
// shape, non-empty items with positive price and quantity, known status, and
// the client total within a cent of the recomputed item sum.
func validate(b OrderBody) (orders.Order, string) {
	if !emailRe.MatchString(b.CustomerEmail) {
		return orders.Order{}, "Email do cliente inválido"
	}
	if len(b.Items) == 0 {
		return orders.Order{}, "O pedido deve conter ao menos um item"
	}
	for _, it := range b.Items {
		if it.Price <= 0 || it.Quantity <= 0 {
			return orders.Order{}, "Itens devem ter preço e quantidade positivos"
		}
	}
	status := orders.Normalize(b.Status)
	if !status.Valid() {
		return orders.Order{}, fmt.Sprintf("Status inválido: %s", b.Status)
	}
	if math.Abs(orders.SumItems(b.Items)-b.Total) >= 0.01 {
		return orders.Order{}, "O total do pedido não corresponde à soma dos itens"
	}
	return orders.Order{
		CustomerEmail: b.CustomerEmail,
		Status:        status,
		Total:         b.Total,
		Items:         b.Items,
	}, ""
}

func (h *OrdersHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	list, err := h.Store.List(ctx)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, fmt.Sprintf("Erro ao buscar pedidos: %s", err))
		return
	}
	if list == nil {
		list = []orders.Order{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.Store.Get(ctx, id)
	if errors.Is(err, orders.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, fmt.Sprintf("Pedido com ID %d não encontrado", id))
		return
	}
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, fmt.Sprintf("Erro ao buscar pedido: %s", err))
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var body OrderBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	o, problem := validate(body)
	if problem != "" {
		writeDetail(w, http.StatusBadRequest, problem)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	created, err := h.Store.Create(ctx, o)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, fmt.Sprintf("Erro ao criar pedido: %s", err))
		return
	}

	h.cacheStatus(ctx, created.ID, created.Status)
	h.publish(r, h.Created, orders.EventOrderCreated, created.ID, orders.OrderCreatedPayload{
		OrderID:       created.ID,
		CustomerEmail: created.CustomerEmail,
		Status:        created.Status,
		Total:         created.Total,
		Items:         created.Items,
	})

	writeJSON(w, http.StatusCreated, created)
}

func (h *OrdersHandler) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	var body OrderBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	o, problem := validate(body)
	if problem != "" {
		writeDetail(w, http.StatusBadRequest, problem)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	updated, err := h.Store.Update(ctx, id, o)
	if errors.Is(err, orders.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "Pedido não encontrado")
		return
	}
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, fmt.Sprintf("Erro ao atualizar pedido: %s", err))
		return
	}

	h.cacheStatus(ctx, updated.ID, updated.Status)
	h.publish(r, h.Updated, orders.EventOrderUpdated, updated.ID, orders.OrderUpdatedPayload{
		OrderID:       updated.ID,
		CustomerEmail: updated.CustomerEmail,
		Status:        updated.Status,
		Total:         updated.Total,
	})

	writeJSON(w, http.StatusOK, updated)
}

func (h *OrdersHandler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := h.Store.Delete(ctx, id)
	if errors.Is(err, orders.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "Pedido não encontrado")
		return
	}
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, fmt.Sprintf("Erro ao excluir pedido: %s", err))
		return
	}

	if h.Redis != nil {
		_ = h.Redis.Del(ctx, fmt.Sprintf(redisx.KeyOrderStatus, id)).Err()
	}
	h.publish(r, h.Deleted, orders.EventOrderDeleted, id, orders.OrderDeletedPayload{OrderID: id})

	w.WriteHeader(http.StatusNoContent)
}

func orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "ID de pedido inválido")
		return 0, false
	}
	return id, true
}

func (h *OrdersHandler) cacheStatus(ctx context.Context, id int64, status orders.Status) {
	if h.Redis == nil {
		return
	}
	key := fmt.Sprintf(redisx.KeyOrderStatus, id)
	body := fmt.Sprintf(`{"status":%q}`, status)
	_ = h.Redis.Set(ctx, key, body, redisx.TTLStatusCache).Err()
}

func (h *OrdersHandler) publish(r *http.Request, p Publisher, eventType string, id int64, payload any) {
	if p == nil {
		return
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: strconv.FormatInt(id, 10),
		Payload:       kafkax.MustMarshal(payload),
	}
	p.Publish(orders.PartitionKey(id), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
