package cart

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/nvteo/bakeshop-backend/pkg/logger"
)

const (
	guestKey  = "cart_guest"
	keyPrefix = "cart_"
)

// LineItem is one product line in a cart. Quantity never persists at or
// below zero, such updates remove the line instead.
type LineItem struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	ImageURL string `json:"imageUrl"`
	Quantity int    `json:"quantity"`
}

// Product is the catalog shape copied into a new line item.
type Product struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	ImageURL string `json:"imageUrl"`
}

// Keyspace is the key/value surface the store persists carts into,
// satisfied by *redis.Client.
type Keyspace interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// IdentityFunc resolves the current cart owner. An empty username means the
// guest cart. Centralizing this keeps every operation keyed consistently.
type IdentityFunc func(ctx context.Context) string

// Store is the single source of truth for shopping carts. Reads degrade to
// an empty cart on absent or corrupt state and never surface an error to the
// shopper; mutations persist the full line sequence and then notify the
// store's broadcaster.
type Store struct {
	keyspace    Keyspace
	identity    IdentityFunc
	broadcaster *Broadcaster
	logg        *logger.Logger
}

// NewStore builds a cart store. identity may be nil, in which case every
// caller shares the guest cart.
func NewStore(keyspace Keyspace, identity IdentityFunc, logg *logger.Logger) *Store {
	if identity == nil {
		identity = func(context.Context) string { return "" }
	}
	return &Store{
		keyspace:    keyspace,
		identity:    identity,
		broadcaster: NewBroadcaster(),
		logg:        logg,
	}
}

// Broadcaster exposes the store-scoped change feed for subscribers.
func (s *Store) Broadcaster() *Broadcaster {
	return s.broadcaster
}

// Identity resolves the cart owner for ctx, empty for guests. Change events
// carry the same value, so stream subscribers can filter on it.
func (s *Store) Identity(ctx context.Context) string {
	return s.identity(ctx)
}

// Get returns the current identity's cart. Absent, malformed or non-array
// stored state reads as empty.
func (s *Store) Get(ctx context.Context) []LineItem {
	key := s.key(ctx)
	raw, err := s.keyspace.Get(ctx, key)
	if err != nil || strings.TrimSpace(raw) == "" {
		return []LineItem{}
	}

	var items []LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "key", key), "discarding corrupt cart state")
		}
		return []LineItem{}
	}
	if items == nil {
		return []LineItem{}
	}
	return items
}

// Add merges the product into the cart: +1 on an existing line, otherwise a
// new line with quantity 1.
func (s *Store) Add(ctx context.Context, product Product) []LineItem {
	items := s.Get(ctx)
	found := false
	for i := range items {
		if items[i].ID == product.ID {
			items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		items = append(items, LineItem{
			ID:       product.ID,
			Name:     product.Name,
			Price:    product.Price,
			ImageURL: product.ImageURL,
			Quantity: 1,
		})
	}
	s.persist(ctx, items, ChangeAdd)
	return items
}

// UpdateQuantity sets the line's quantity, removing the line when the new
// quantity is zero or negative. Unknown ids are a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, id int64, quantity int) []LineItem {
	items := s.Get(ctx)
	next := make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.ID == id {
			if quantity <= 0 {
				continue
			}
			item.Quantity = quantity
		}
		next = append(next, item)
	}
	s.persist(ctx, next, ChangeUpdate)
	return next
}

// Remove drops the line by id. Unknown ids are a no-op.
func (s *Store) Remove(ctx context.Context, id int64) []LineItem {
	items := s.Get(ctx)
	next := make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			next = append(next, item)
		}
	}
	s.persist(ctx, next, ChangeRemove)
	return next
}

// Clear deletes the persisted key for the current identity.
func (s *Store) Clear(ctx context.Context) {
	key := s.key(ctx)
	if err := s.keyspace.Del(ctx, key); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "key", key), "cart clear failed")
	}
	s.broadcaster.Publish(ctx, ChangeEvent{Kind: ChangeClear, Identity: s.identity(ctx)})
}

func (s *Store) persist(ctx context.Context, items []LineItem, kind ChangeKind) {
	key := s.key(ctx)
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := s.keyspace.Set(ctx, key, string(raw), 0); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "key", key), "cart persist failed")
	}
	s.broadcaster.Publish(ctx, ChangeEvent{Kind: kind, Identity: s.identity(ctx), Items: items})
}

func (s *Store) key(ctx context.Context) string {
	username := strings.TrimSpace(s.identity(ctx))
	if username == "" {
		return guestKey
	}
	return keyPrefix + username
}
