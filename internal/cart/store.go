// Package cart holds the persistent shopping cart and the controller that
// mutates it. The cart is one Redis key holding a JSON-serialized item list;
// concurrent writers are resolved last-write-wins.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/lojinha/storefront/internal/redisx"
)

// Item is one cart line. ID matches the catalog product id; the invariant is
// at most one Item per product id, quantity >= 1.
type Item struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

// Store owns the persisted cart key. Controllers reload through it before
// every mutation so changes from other sessions of the same customer are
// picked up.
type Store struct {
	rdb *redis.Client
	key string
}

// NewStore binds a store to one session's cart key.
func NewStore(rdb *redis.Client, sessionID string) *Store {
	return &Store{rdb: rdb, key: fmt.Sprintf(redisx.KeyCart, sessionID)}
}

// Load returns the persisted items. A missing key is an empty cart, and so
// is an unreadable payload: a corrupt cart is silently reset rather than
// wedging every page load.
func (s *Store) Load(ctx context.Context) ([]Item, error) {
	raw, err := s.rdb.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cart load: %w", err)
	}
	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, nil
	}
	return items, nil
}

func (s *Store) Save(ctx context.Context, items []Item) error {
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, s.key, b, redisx.TTLCart).Err(); err != nil {
		return fmt.Errorf("cart save: %w", err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("cart clear: %w", err)
	}
	return nil
}
