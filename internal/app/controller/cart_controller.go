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

type CartController struct {
	shopManager    *shop.Manager
	catalogService service.CatalogService
}

func NewCartController(shopManager *shop.Manager, catalogService service.CatalogService) *CartController {
	return &CartController{
		shopManager:    shopManager,
		catalogService: catalogService,
	}
}

type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func cartResponse(items []model.CartItem) gin.H {
	total := 0.0
	for _, item := range items {
		total += item.Subtotal()
	}
	return gin.H{
		"cart_items": items,
		"count":      len(items),
		"total":      total,
	}
}

// GetCart returns the session's cart
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	sessionID, _ := middleware.GetSessionID(c)
	store := ctrl.shopManager.Get(c.Request.Context(), sessionID)

	c.JSON(http.StatusOK, cartResponse(store.Cart()))
}

// AddToCart snapshots the product and adds it to the cart, incrementing
// quantity when the product is already present
// POST /api/v1/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID, _ := middleware.GetSessionID(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	product, err := ctrl.catalogService.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		log.Warn("Cannot add to cart: product fetch failed", map[string]interface{}{
			"product_id": req.ProductID,
			"error":      err.Error(),
		})
		errors.Respond(c, err)
		return
	}

	store := ctrl.shopManager.Get(c.Request.Context(), sessionID)
	store.AddToCart(c.Request.Context(), *product)

	log.Info("Item added to cart", map[string]interface{}{
		"session_id": sessionID,
		"product_id": product.ID,
	})

	c.JSON(http.StatusOK, cartResponse(store.Cart()))
}

// UpdateCartItem sets the absolute quantity of a cart line; zero or less
// removes the line
// PUT /api/v1/cart/:id
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID, _ := middleware.GetSessionID(c)

	productID := c.Param("id")
	if productID == "" {
		errors.BadRequest(c, errors.ValidationInvalidID, "Product id is required")
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid cart update request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	store := ctrl.shopManager.Get(c.Request.Context(), sessionID)
	store.UpdateCartQuantity(c.Request.Context(), productID, req.Quantity)

	c.JSON(http.StatusOK, cartResponse(store.Cart()))
}

// RemoveFromCart removes a cart line; absent ids are a no-op
// DELETE /api/v1/cart/:id
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	sessionID, _ := middleware.GetSessionID(c)

	productID := c.Param("id")
	if productID == "" {
		errors.BadRequest(c, errors.ValidationInvalidID, "Product id is required")
		return
	}

	store := ctrl.shopManager.Get(c.Request.Context(), sessionID)
	store.RemoveFromCart(c.Request.Context(), productID)

	c.JSON(http.StatusOK, cartResponse(store.Cart()))
}

// ClearCart empties the cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID, _ := middleware.GetSessionID(c)

	store := ctrl.shopManager.Get(c.Request.Context(), sessionID)
	store.ClearCart(c.Request.Context())

	log.Info("Cart cleared", map[string]interface{}{
		"session_id": sessionID,
	})

	c.JSON(http.StatusOK, cartResponse(store.Cart()))
}
