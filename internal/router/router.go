package router

import (
	"github.com/gin-gonic/gin"
	"github.com/voicecart/voicecart-server/config"
	"github.com/voicecart/voicecart-server/internal/app/controller"
	"github.com/voicecart/voicecart-server/internal/middleware"
)

type Router struct {
	productController  *controller.ProductController
	cartController     *controller.CartController
	wishlistController *controller.WishlistController
	reviewController   *controller.ReviewController
	authController     *controller.AuthController
	sessionMiddleware  *middleware.SessionMiddleware
	config             *config.Config
}

func NewRouter(
	productController *controller.ProductController,
	cartController *controller.CartController,
	wishlistController *controller.WishlistController,
	reviewController *controller.ReviewController,
	authController *controller.AuthController,
	sessionMiddleware *middleware.SessionMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		productController:  productController,
		cartController:     cartController,
		wishlistController: wishlistController,
		reviewController:   reviewController,
		authController:     authController,
		sessionMiddleware:  sessionMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Voice Cart API is running",
		})
	})

	v1 := router.Group("/api/v1")
	v1.Use(r.sessionMiddleware.Attach())
	{
		auth := v1.Group("/auth")
		{
			auth.GET("/status", r.authController.Status)
			auth.POST("/token", r.authController.StoreToken)
			auth.DELETE("/token", r.authController.ClearToken)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.GetAllProducts)
			products.GET("/deals", r.productController.GetDeals)
			products.GET("/search", r.productController.SearchProducts)
			products.GET("/:id", r.productController.GetProductByID)

			products.GET("/:id/reviews", r.reviewController.GetReviewPage)
			products.POST("/:id/reviews", r.reviewController.SubmitReview)
			products.DELETE("/:id/reviews", r.reviewController.DeleteReview)
			products.POST("/:id/reviews/edit", r.reviewController.StartEdit)
			products.DELETE("/:id/reviews/edit", r.reviewController.CancelEdit)
		}

		cart := v1.Group("/cart")
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.PUT("/:id", r.cartController.UpdateCartItem)
			cart.DELETE("/:id", r.cartController.RemoveFromCart)
			cart.DELETE("", r.cartController.ClearCart)
		}

		wishlist := v1.Group("/wishlist")
		{
			wishlist.GET("", r.wishlistController.GetWishlist)
			wishlist.POST("", r.wishlistController.AddToWishlist)
			wishlist.DELETE("/:product_id", r.wishlistController.RemoveFromWishlist)
			wishlist.POST("/:product_id/move-to-cart", r.wishlistController.MoveToCart)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, X-Session-Token, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
