package shop

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voicecart/voicecart-server/internal/app/model"
	"github.com/voicecart/voicecart-server/internal/storage"
)

func testProduct(id, name string, price float64) model.Product {
	return model.Product{ID: id, Name: name, Price: price, Stock: 10}
}

func setupStore(t *testing.T) (*Store, *storage.MemoryStorage) {
	t.Helper()
	st := storage.NewMemoryStorage()
	store := NewStore("session-1", st)
	store.Load(context.Background())
	return store, st
}

func TestStore_AddToCart_IncrementsQuantity(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	p := testProduct("p1", "Speaker", 49.99)

	for i := 0; i < 4; i++ {
		store.AddToCart(ctx, p)
	}

	cart := store.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, "p1", cart[0].ID)
	assert.Equal(t, 4, cart[0].Quantity)
}

func TestStore_AddToCart_PreservesInsertionOrder(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	store.AddToCart(ctx, testProduct("p1", "Speaker", 49.99))
	store.AddToCart(ctx, testProduct("p2", "Headphones", 89.99))
	store.AddToCart(ctx, testProduct("p3", "Microphone", 29.99))
	store.AddToCart(ctx, testProduct("p2", "Headphones", 89.99))

	cart := store.Cart()
	require.Len(t, cart, 3)
	assert.Equal(t, "p1", cart[0].ID)
	assert.Equal(t, "p2", cart[1].ID)
	assert.Equal(t, "p3", cart[2].ID)
	assert.Equal(t, 2, cart[1].Quantity)
}

func TestStore_RemoveFromCart(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	store.AddToCart(ctx, testProduct("p1", "Speaker", 49.99))
	store.AddToCart(ctx, testProduct("p2", "Headphones", 89.99))

	store.RemoveFromCart(ctx, "p1")

	cart := store.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, "p2", cart[0].ID)

	// Removing an absent id is a no-op
	store.RemoveFromCart(ctx, "p1")
	assert.Len(t, store.Cart(), 1)
}

func TestStore_UpdateCartQuantity_SetsAbsoluteValue(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	store.AddToCart(ctx, testProduct("p1", "Speaker", 49.99))
	store.AddToCart(ctx, testProduct("p1", "Speaker", 49.99))

	store.UpdateCartQuantity(ctx, "p1", 7)

	cart := store.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, 7, cart[0].Quantity)
}

func TestStore_UpdateCartQuantity_ZeroOrNegativeRemoves(t *testing.T) {
	for _, quantity := range []int{0, -1} {
		store, _ := setupStore(t)
		ctx := context.Background()

		store.AddToCart(ctx, testProduct("p1", "Speaker", 49.99))
		store.UpdateCartQuantity(ctx, "p1", quantity)

		assert.Empty(t, store.Cart())
	}
}

func TestStore_UpdateCartQuantity_AbsentIDIsNoop(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	store.UpdateCartQuantity(ctx, "missing", 3)
	assert.Empty(t, store.Cart())
}

func TestStore_AddToWishlist_Idempotent(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	p := testProduct("p1", "Speaker", 49.99)

	for i := 0; i < 5; i++ {
		store.AddToWishlist(ctx, p)
	}

	wishlist := store.Wishlist()
	require.Len(t, wishlist, 1)
	assert.Equal(t, "p1", wishlist[0].ID)
}

func TestStore_RemoveFromWishlist(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	store.AddToWishlist(ctx, testProduct("p1", "Speaker", 49.99))
	store.RemoveFromWishlist(ctx, "p1")
	assert.Empty(t, store.Wishlist())

	// No-op when absent
	store.RemoveFromWishlist(ctx, "p1")
	assert.Empty(t, store.Wishlist())
}

func TestStore_MoveToCart(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	p := testProduct("p1", "Speaker", 49.99)

	store.AddToWishlist(ctx, p)
	store.MoveToCart(ctx, p)

	cart := store.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, "p1", cart[0].ID)
	assert.Empty(t, store.Wishlist())
}

func TestStore_MoveToCart_WithoutPriorWishlistMembership(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	p := testProduct("p1", "Speaker", 49.99)

	// Never wished for: the cart addition still happens
	store.MoveToCart(ctx, p)

	require.Len(t, store.Cart(), 1)
	assert.Empty(t, store.Wishlist())
}

func TestStore_MoveToCart_AlreadyInCart(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	p := testProduct("p1", "Speaker", 49.99)

	store.AddToCart(ctx, p)
	store.AddToWishlist(ctx, p)
	store.MoveToCart(ctx, p)

	cart := store.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, 2, cart[0].Quantity)
	assert.Empty(t, store.Wishlist())
}

func TestStore_RoundTripThroughStorage(t *testing.T) {
	st := storage.NewMemoryStorage()
	ctx := context.Background()

	store := NewStore("session-1", st)
	store.Load(ctx)
	store.AddToCart(ctx, testProduct("p1", "Speaker", 49.99))
	store.AddToCart(ctx, testProduct("p2", "Headphones", 89.99))
	store.AddToCart(ctx, testProduct("p1", "Speaker", 49.99))
	store.AddToWishlist(ctx, testProduct("p3", "Microphone", 29.99))

	// A fresh store over the same storage reproduces the state
	reloaded := NewStore("session-1", st)
	reloaded.Load(ctx)

	assert.Equal(t, store.Cart(), reloaded.Cart())
	assert.Equal(t, store.Wishlist(), reloaded.Wishlist())
}

func TestStore_Load_MalformedSnapshotYieldsEmptyState(t *testing.T) {
	st := storage.NewMemoryStorage()
	ctx := context.Background()
	require.NoError(t, st.Write(ctx, storage.SessionKey("session-1", storage.KeyCartItems), []byte("{not json")))

	store := NewStore("session-1", st)
	store.Load(ctx)

	assert.Empty(t, store.Cart())
	assert.Empty(t, store.Wishlist())
}

func TestStore_ClearCart(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	store.AddToCart(ctx, testProduct("p1", "Speaker", 49.99))
	store.AddToWishlist(ctx, testProduct("p2", "Headphones", 89.99))

	store.ClearCart(ctx)

	assert.Empty(t, store.Cart())
	// Wishlist is untouched
	assert.Len(t, store.Wishlist(), 1)
}

// failingStorage rejects every write to verify persistence is best-effort.
type failingStorage struct{}

func (failingStorage) Read(context.Context, string) ([]byte, error) {
	return nil, storage.ErrNotFound
}

func (failingStorage) Write(context.Context, string, []byte) error {
	return errors.New("quota exceeded")
}

func (failingStorage) Delete(context.Context, string) error {
	return errors.New("quota exceeded")
}

func (failingStorage) Close() error { return nil }

func TestStore_PersistenceFailureKeepsInMemoryStateAuthoritative(t *testing.T) {
	store := NewStore("session-1", failingStorage{})
	ctx := context.Background()
	store.Load(ctx)

	store.AddToCart(ctx, testProduct("p1", "Speaker", 49.99))
	store.AddToWishlist(ctx, testProduct("p2", "Headphones", 89.99))

	assert.Len(t, store.Cart(), 1)
	assert.Len(t, store.Wishlist(), 1)
}
