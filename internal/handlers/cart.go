package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

//
// 🟢 GET /api/cart
//
func (h *Handler) GetCart(c *gin.Context) {
	email := c.GetString("email")
	svc := h.Carts.ForUser(c.Request.Context(), email)
	c.JSON(http.StatusOK, svc.Snapshot())
}

//
// 🟢 POST /api/cart/add
//
func (h *Handler) AddToCart(c *gin.Context) {
	email := c.GetString("email")

	var input struct {
		ProductID int `json:"productId" binding:"required"`
		Quantity  int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Quantity <= 0 {
		input.Quantity = 1
	}

	// 🧩 Snapshot du produit depuis le catalogue au moment de l'ajout
	product, found, err := h.Catalog.ProductByID(c.Request.Context(), input.ProductID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catalogue"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	svc := h.Carts.ForUser(c.Request.Context(), email)
	svc.AddToCart(c.Request.Context(), product, input.Quantity)

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit ajouté au panier",
		"cart":    svc.Snapshot(),
	})
}

//
// 🔁 PUT /api/cart/:productId
//
func (h *Handler) UpdateQuantity(c *gin.Context) {
	email := c.GetString("email")

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	svc := h.Carts.ForUser(c.Request.Context(), email)
	svc.UpdateQuantity(c.Request.Context(), productID, input.Quantity)

	c.JSON(http.StatusOK, gin.H{
		"message": "Quantité mise à jour",
		"cart":    svc.Snapshot(),
	})
}

//
// ❌ DELETE /api/cart/:productId
//
func (h *Handler) RemoveFromCart(c *gin.Context) {
	email := c.GetString("email")

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	svc := h.Carts.ForUser(c.Request.Context(), email)
	svc.RemoveFromCart(c.Request.Context(), productID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit supprimé du panier",
		"cart":    svc.Snapshot(),
	})
}

//
// 🧹 DELETE /api/cart
// Vide le panier et retire le coupon ; les favoris et la livraison restent.
//
func (h *Handler) ClearCart(c *gin.Context) {
	email := c.GetString("email")

	svc := h.Carts.ForUser(c.Request.Context(), email)
	svc.ClearCart(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"message": "Panier vidé avec succès",
		"cart":    svc.Snapshot(),
	})
}

//
// 💾 POST /api/cart/:productId/save
//
func (h *Handler) SaveForLater(c *gin.Context) {
	email := c.GetString("email")

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	svc := h.Carts.ForUser(c.Request.Context(), email)
	svc.SaveForLater(c.Request.Context(), productID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Article mis de côté",
		"cart":    svc.Snapshot(),
	})
}

//
// 🔁 POST /api/cart/:productId/restore
//
func (h *Handler) MoveToCart(c *gin.Context) {
	email := c.GetString("email")

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	svc := h.Carts.ForUser(c.Request.Context(), email)
	svc.MoveToCart(c.Request.Context(), productID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Article remis dans le panier",
		"cart":    svc.Snapshot(),
	})
}

//
// ❌ DELETE /api/cart/saved/:productId
//
func (h *Handler) RemoveFromSaved(c *gin.Context) {
	email := c.GetString("email")

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	svc := h.Carts.ForUser(c.Request.Context(), email)
	svc.RemoveFromSaved(c.Request.Context(), productID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Article retiré des favoris",
		"cart":    svc.Snapshot(),
	})
}
