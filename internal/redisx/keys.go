package redisx

import "time"

const (
	// Persisted cart: cart:{session_id} -> JSON array of cart items.
	// A session with no cart simply has no key.
	KeyCart = "cart:%s"

	// Order status cache: order_status:{order_id} -> {"status": "..."}
	KeyOrderStatus = "order_status:%d"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	// Carts outlive sessions for a while so a returning customer finds
	// their items again.
	TTLCart        = 30 * 24 * time.Hour
	TTLStatusCache = 5 * time.Minute
	TTLDedup       = 48 * time.Hour
)
