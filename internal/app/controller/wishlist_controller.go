package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voicecart/voicecart-server/internal/app/model"
	"github.com/voicecart/voicecart-server/internal/app/service"
	"github.com/voicecart/voicecart-server/internal/errors"
	"github.com/voicecart/voicecart-server/internal/middleware"
	"github.com/voicecart/voicecart-server/internal/shop"
)

type WishlistController struct {
	shopManager    *shop.Manager
	catalogService service.CatalogService
}

func NewWishlistController(shopManager *shop.Manager, catalogService service.CatalogService) *WishlistController {
	return &WishlistController{
		shopManager:    shopManager,
		catalogService: catalogService,
	}
}

type AddToWishlistRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

func wishlistResponse(items []model.WishlistItem) gin.H {
	return gin.H{
		"wishlist_items": items,
		"count":          len(items),
	}
}

// GetWishlist returns the session's wishlist
// GET /api/v1/wishlist
func (ctrl *WishlistController) GetWishlist(c *gin.Context) {
	sessionID, _ := middleware.GetSessionID(c)
	store := ctrl.shopManager.Get(c.Request.Context(), sessionID)

	c.JSON(http.StatusOK, wishlistResponse(store.Wishlist()))
}

// AddToWishlist adds a product to the wishlist; adding a product that is
// already wished for is a no-op
// POST /api/v1/wishlist
func (ctrl *WishlistController) AddToWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID, _ := middleware.GetSessionID(c)

	var req AddToWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to wishlist request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	product, err := ctrl.catalogService.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		log.Warn("Cannot add to wishlist: product fetch failed", map[string]interface{}{
			"product_id": req.ProductID,
			"error":      err.Error(),
		})
		errors.Respond(c, err)
		return
	}

	store := ctrl.shopManager.Get(c.Request.Context(), sessionID)
	store.AddToWishlist(c.Request.Context(), *product)

	log.Info("Item added to wishlist", map[string]interface{}{
		"session_id": sessionID,
		"product_id": product.ID,
	})

	c.JSON(http.StatusOK, wishlistResponse(store.Wishlist()))
}

// RemoveFromWishlist removes a wishlist entry; absent ids are a no-op
// DELETE /api/v1/wishlist/:product_id
func (ctrl *WishlistController) RemoveFromWishlist(c *gin.Context) {
	sessionID, _ := middleware.GetSessionID(c)

	productID := c.Param("product_id")
	if productID == "" {
		errors.BadRequest(c, errors.ValidationInvalidID, "Product id is required")
		return
	}

	store := ctrl.shopManager.Get(c.Request.Context(), sessionID)
	store.RemoveFromWishlist(c.Request.Context(), productID)

	c.JSON(http.StatusOK, wishlistResponse(store.Wishlist()))
}

// MoveToCart moves a wishlist entry into the cart: the cart addition
// happens first, then the wishlist removal, so the item always lands in
// the cart even if it was never wished for
// POST /api/v1/wishlist/:product_id/move-to-cart
func (ctrl *WishlistController) MoveToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID, _ := middleware.GetSessionID(c)

	productID := c.Param("product_id")
	if productID == "" {
		errors.BadRequest(c, errors.ValidationInvalidID, "Product id is required")
		return
	}

	store := ctrl.shopManager.Get(c.Request.Context(), sessionID)

	// Prefer the wishlist snapshot; fall back to a catalog fetch when the
	// product was never wished for.
	var product *model.Product
	for _, item := range store.Wishlist() {
		if item.ID == productID {
			p := item.Product()
			product = &p
			break
		}
	}
	if product == nil {
		fetched, err := ctrl.catalogService.GetProduct(c.Request.Context(), productID)
		if err != nil {
			log.Warn("Cannot move to cart: product fetch failed", map[string]interface{}{
				"product_id": productID,
				"error":      err.Error(),
			})
			errors.Respond(c, err)
			return
		}
		product = fetched
	}

	store.MoveToCart(c.Request.Context(), *product)

	log.Info("Item moved from wishlist to cart", map[string]interface{}{
		"session_id": sessionID,
		"product_id": productID,
	})

	c.JSON(http.StatusOK, gin.H{
		"cart_items":     store.Cart(),
		"wishlist_items": store.Wishlist(),
	})
}
