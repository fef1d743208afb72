package shop

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/voicecart/voicecart-server/internal/app/model"
	"github.com/voicecart/voicecart-server/internal/storage"
	"github.com/voicecart/voicecart-server/pkg/logger"
)

// Store is the single source of truth for one shopper's cart and wishlist.
// Every mutation rewrites the full snapshot to durable storage; persistence
// is best-effort and a failed write never fails the mutation, the in-memory
// state stays authoritative for the rest of the session.
//
// The cart aggregates quantity per product while the wishlist is a
// membership set. The asymmetry is deliberate: buying the same product
// again increases quantity, wishing for it again is a no-op.
type Store struct {
	mu        sync.Mutex
	sessionID string
	storage   storage.Storage
	cart      []model.CartItem
	wishlist  []model.WishlistItem
}

// NewStore creates an empty store for a session. Call Load to restore a
// previously persisted snapshot.
func NewStore(sessionID string, st storage.Storage) *Store {
	return &Store{
		sessionID: sessionID,
		storage:   st,
		cart:      []model.CartItem{},
		wishlist:  []model.WishlistItem{},
	}
}

// Load restores cart and wishlist from durable storage. A missing or
// malformed snapshot yields an empty collection, never an error.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = loadList[model.CartItem](ctx, s.storage, s.cartKey())
	s.wishlist = loadList[model.WishlistItem](ctx, s.storage, s.wishlistKey())

	logger.Debug("Shop state restored", map[string]interface{}{
		"session_id":     s.sessionID,
		"cart_items":     len(s.cart),
		"wishlist_items": len(s.wishlist),
	})
}

func loadList[T any](ctx context.Context, st storage.Storage, key string) []T {
	data, err := st.Read(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("Failed to read shop state snapshot", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		logger.Warn("Discarding malformed shop state snapshot", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// Cart returns a copy of the cart in insertion order.
func (s *Store) Cart() []model.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.CartItem, len(s.cart))
	copy(out, s.cart)
	return out
}

// Wishlist returns a copy of the wishlist in insertion order.
func (s *Store) Wishlist() []model.WishlistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.WishlistItem, len(s.wishlist))
	copy(out, s.wishlist)
	return out
}

// AddToCart increments the quantity of an existing line or appends a new
// one with quantity 1. Always succeeds.
func (s *Store) AddToCart(ctx context.Context, product model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart {
		if s.cart[i].ID == product.ID {
			s.cart[i].Quantity++
			s.persistCart(ctx)
			return
		}
	}

	s.cart = append(s.cart, model.NewCartItem(product))
	s.persistCart(ctx)
}

// RemoveFromCart removes the line with the given product id. Removing an
// absent id is a no-op, not an error.
func (s *Store) RemoveFromCart(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart {
		if s.cart[i].ID == productID {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			s.persistCart(ctx)
			return
		}
	}
}

// UpdateCartQuantity sets the line's quantity to an absolute value. A
// quantity of zero or less removes the line instead. No-op for absent ids.
func (s *Store) UpdateCartQuantity(ctx context.Context, productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveFromCart(ctx, productID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart {
		if s.cart[i].ID == productID {
			s.cart[i].Quantity = quantity
			s.persistCart(ctx)
			return
		}
	}
}

// AddToWishlist appends the product unless it is already wished for.
func (s *Store) AddToWishlist(ctx context.Context, product model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.wishlist {
		if s.wishlist[i].ID == product.ID {
			return
		}
	}

	s.wishlist = append(s.wishlist, model.NewWishlistItem(product))
	s.persistWishlist(ctx)
}

// RemoveFromWishlist removes the entry with the given product id; no-op if
// absent.
func (s *Store) RemoveFromWishlist(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.wishlist {
		if s.wishlist[i].ID == productID {
			s.wishlist = append(s.wishlist[:i], s.wishlist[i+1:]...)
			s.persistWishlist(ctx)
			return
		}
	}
}

// MoveToCart adds the product to the cart and then removes it from the
// wishlist, in that order, so the cart addition never depends on prior
// wishlist membership.
func (s *Store) MoveToCart(ctx context.Context, product model.Product) {
	s.AddToCart(ctx, product)
	s.RemoveFromWishlist(ctx, product.ID)
}

// ClearCart empties the cart. There is no implicit clear on checkout; this
// is only reachable through an explicit shopper action.
func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = []model.CartItem{}
	s.persistCart(ctx)
}

func (s *Store) cartKey() string {
	return storage.SessionKey(s.sessionID, storage.KeyCartItems)
}

func (s *Store) wishlistKey() string {
	return storage.SessionKey(s.sessionID, storage.KeyWishlistItems)
}

// persistCart writes the full cart snapshot. Callers must hold s.mu.
func (s *Store) persistCart(ctx context.Context) {
	persistList(ctx, s.storage, s.cartKey(), s.cart)
}

// persistWishlist writes the full wishlist snapshot. Callers must hold s.mu.
func (s *Store) persistWishlist(ctx context.Context) {
	persistList(ctx, s.storage, s.wishlistKey(), s.wishlist)
}

func persistList[T any](ctx context.Context, st storage.Storage, key string, items []T) {
	data, err := json.Marshal(items)
	if err != nil {
		logger.Warn("Failed to serialize shop state snapshot", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return
	}
	if err := st.Write(ctx, key, data); err != nil {
		logger.Warn("Failed to persist shop state snapshot", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}
