package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voicecart/voicecart-server/internal/app/service"
	"github.com/voicecart/voicecart-server/internal/errors"
	"github.com/voicecart/voicecart-server/internal/middleware"
)

type ProductController struct {
	catalogService service.CatalogService
}

func NewProductController(catalogService service.CatalogService) *ProductController {
	return &ProductController{
		catalogService: catalogService,
	}
}

// GetAllProducts returns the catalog listing
// GET /api/v1/products
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.catalogService.ListProducts(c.Request.Context())
	if err != nil {
		log.Error("Failed to fetch products", err, nil)
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProductByID returns a single product
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID := c.Param("id")
	if productID == "" {
		errors.BadRequest(c, errors.ValidationInvalidID, "Product id is required")
		return
	}

	product, err := ctrl.catalogService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		log.Warn("Failed to fetch product", map[string]interface{}{
			"product_id": productID,
			"error":      err.Error(),
		})
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// GetDeals returns the cached deals listing
// GET /api/v1/products/deals
func (ctrl *ProductController) GetDeals(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	deals, err := ctrl.catalogService.Deals(c.Request.Context())
	if err != nil {
		log.Error("Failed to fetch deals", err, nil)
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": deals,
		"count":    len(deals),
	})
}

// SearchProducts returns products matching a free-text query. Voice
// capture feeds its transcript here as plain text.
// GET /api/v1/products/search?q=...
func (ctrl *ProductController) SearchProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	query := c.Query("q")
	if query == "" {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Search query is required")
		return
	}

	products, err := ctrl.catalogService.SearchProducts(c.Request.Context(), query)
	if err != nil {
		log.Error("Product search failed", err, map[string]interface{}{
			"query": query,
		})
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}
