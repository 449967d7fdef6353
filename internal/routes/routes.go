package routes

import (
	"net/http"
	"os"
	"strings"

	"vegefood_back_end/internal/handlers"
	"vegefood_back_end/internal/middleware"
	"vegefood_back_end/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes câble la surface de navigation : catalogue et auth en accès
// libre, panier et checkout derrière le guard de session, 404 JSON sinon.
func RegisterRoutes(r *gin.Engine, h *handlers.Handler, sessions *session.Store) {
	allowed := os.Getenv("CORS_ORIGINS")
	if allowed == "" {
		allowed = "http://localhost:4200"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(allowed, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	api := r.Group("/api")

	// Catalogue (public)
	api.GET("/products", h.GetProducts)
	api.GET("/products/search", h.SearchProducts)
	api.GET("/products/:id", h.GetProductByID)
	api.GET("/categories", h.GetCategories)
	api.GET("/shipping/options", h.GetShippingOptions)

	// Auth (public)
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)

	// Routes protégées : l'équivalent du guard qui redirige vers /login
	auth := api.Group("")
	auth.Use(middleware.AuthRequired(sessions))
	{
		auth.POST("/auth/logout", h.Logout)
		auth.GET("/auth/me", h.Me)

		auth.GET("/cart", h.GetCart)
		auth.POST("/cart/add", h.AddToCart)
		auth.DELETE("/cart", h.ClearCart)
		auth.PUT("/cart/shipping", h.SetShippingMethod)
		auth.POST("/cart/coupon", h.ApplyCoupon)
		auth.DELETE("/cart/coupon", h.RemoveCoupon)
		auth.DELETE("/cart/saved/:productId", h.RemoveFromSaved)
		auth.PUT("/cart/:productId", h.UpdateQuantity)
		auth.DELETE("/cart/:productId", h.RemoveFromCart)
		auth.POST("/cart/:productId/save", h.SaveForLater)
		auth.POST("/cart/:productId/restore", h.MoveToCart)

		auth.POST("/checkout", h.Checkout)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page non trouvée"})
	})
}
