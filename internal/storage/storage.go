package storage

import (
	"context"
	"errors"
	"fmt"
)

// Named keys within a session namespace. Cart and wishlist each hold a
// serialized list snapshot, rewritten whole on every mutation.
const (
	KeyCartItems     = "cartItems"
	KeyWishlistItems = "wishlistItems"

	// Credential locations. KeyAuthToken is the persistent "remember me"
	// slot, KeySessionToken the session-only slot.
	KeyAuthToken    = "authToken"
	KeySessionToken = "sessionToken"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// Storage is durable key-value storage for shopper session state. It is the
// server-side stand-in for the browser's local storage: read once at session
// start, rewritten on every mutation, best-effort by contract (callers keep
// in-memory state authoritative when writes fail).
type Storage interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// SessionKey namespaces a named key under a shopper session.
func SessionKey(sessionID, key string) string {
	return fmt.Sprintf("session:%s:%s", sessionID, key)
}
