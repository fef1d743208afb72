package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voicecart/voicecart-server/internal/app/model"
	"github.com/voicecart/voicecart-server/internal/shop"
	"github.com/voicecart/voicecart-server/internal/storage"
)

func setupWishlistRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager := shop.NewManager(storage.NewMemoryStorage())
	catalog := &stubCatalog{products: map[string]model.Product{
		"p1": {ID: "p1", Name: "Speaker", Price: 50},
		"p2": {ID: "p2", Name: "Headphones", Price: 120},
	}}
	wishlistCtrl := NewWishlistController(manager, catalog)
	cartCtrl := NewCartController(manager, catalog)

	r := gin.New()
	r.Use(withSession("sess-1"))
	r.GET("/wishlist", wishlistCtrl.GetWishlist)
	r.POST("/wishlist", wishlistCtrl.AddToWishlist)
	r.DELETE("/wishlist/:product_id", wishlistCtrl.RemoveFromWishlist)
	r.POST("/wishlist/:product_id/move-to-cart", wishlistCtrl.MoveToCart)
	r.GET("/cart", cartCtrl.GetCart)
	return r
}

type wishlistBody struct {
	WishlistItems []model.WishlistItem `json:"wishlist_items"`
	CartItems     []model.CartItem     `json:"cart_items"`
	Count         int                  `json:"count"`
}

func doWishlist(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, wishlistBody) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed wishlistBody
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func TestWishlistController_Add(t *testing.T) {
	r := setupWishlistRouter(t)

	w, body := doWishlist(t, r, http.MethodPost, "/wishlist", `{"product_id":"p1"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, body.WishlistItems, 1)
	assert.Equal(t, "Speaker", body.WishlistItems[0].Name)
}

func TestWishlistController_AddIsIdempotent(t *testing.T) {
	r := setupWishlistRouter(t)

	doWishlist(t, r, http.MethodPost, "/wishlist", `{"product_id":"p1"}`)
	_, body := doWishlist(t, r, http.MethodPost, "/wishlist", `{"product_id":"p1"}`)

	assert.Len(t, body.WishlistItems, 1)
}

func TestWishlistController_Remove(t *testing.T) {
	r := setupWishlistRouter(t)

	doWishlist(t, r, http.MethodPost, "/wishlist", `{"product_id":"p1"}`)
	_, body := doWishlist(t, r, http.MethodDelete, "/wishlist/p1", "")

	assert.Empty(t, body.WishlistItems)
}

func TestWishlistController_MoveToCart(t *testing.T) {
	r := setupWishlistRouter(t)

	doWishlist(t, r, http.MethodPost, "/wishlist", `{"product_id":"p1"}`)
	w, body := doWishlist(t, r, http.MethodPost, "/wishlist/p1/move-to-cart", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body.WishlistItems)
	require.Len(t, body.CartItems, 1)
	assert.Equal(t, "p1", body.CartItems[0].ID)
	assert.Equal(t, 1, body.CartItems[0].Quantity)
}

func TestWishlistController_MoveToCartWithoutWishlistEntry(t *testing.T) {
	r := setupWishlistRouter(t)

	// Never wished for: resolved through the catalog, still lands in the cart.
	w, body := doWishlist(t, r, http.MethodPost, "/wishlist/p2/move-to-cart", "")

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, body.CartItems, 1)
	assert.Equal(t, "p2", body.CartItems[0].ID)
}

func TestWishlistController_MoveToCartIncrementsExistingLine(t *testing.T) {
	r := setupWishlistRouter(t)

	doWishlist(t, r, http.MethodPost, "/wishlist", `{"product_id":"p1"}`)
	doWishlist(t, r, http.MethodPost, "/wishlist/p1/move-to-cart", "")
	_, body := doWishlist(t, r, http.MethodPost, "/wishlist/p1/move-to-cart", "")

	require.Len(t, body.CartItems, 1)
	assert.Equal(t, 2, body.CartItems[0].Quantity)
}
