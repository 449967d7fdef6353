package handlers

import (
	"net/http"

	"vegefood_back_end/internal/cart"

	"github.com/gin-gonic/gin"
)

//
// 🎟️ POST /api/cart/coupon
// Le code est cherché dans le catalogue fixe, sans tenir compte de la casse.
// Un coupon déjà appliqué est remplacé, jamais cumulé.
//
func (h *Handler) ApplyCoupon(c *gin.Context) {
	email := c.GetString("email")

	var input struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code coupon requis"})
		return
	}

	svc := h.Carts.ForUser(c.Request.Context(), email)
	result := svc.ApplyCoupon(c.Request.Context(), input.Code)
	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": result.Message,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": result.Message,
		"cart":    svc.Snapshot(),
	})
}

//
// ❌ DELETE /api/cart/coupon
// Réussit toujours, même sans coupon appliqué.
//
func (h *Handler) RemoveCoupon(c *gin.Context) {
	email := c.GetString("email")

	svc := h.Carts.ForUser(c.Request.Context(), email)
	svc.RemoveCoupon(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"message": "Coupon retiré",
		"cart":    svc.Snapshot(),
	})
}

//
// 🚚 GET /api/shipping/options
//
func (h *Handler) GetShippingOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"options": cart.ShippingOptions()})
}

//
// 🚚 PUT /api/cart/shipping
// Une clé de livraison inconnue est ignorée : la sélection courante reste.
//
func (h *Handler) SetShippingMethod(c *gin.Context) {
	email := c.GetString("email")

	var input struct {
		Method string `json:"method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mode de livraison requis"})
		return
	}

	svc := h.Carts.ForUser(c.Request.Context(), email)
	svc.SetShippingMethod(c.Request.Context(), input.Method)

	c.JSON(http.StatusOK, gin.H{
		"message": "Mode de livraison mis à jour",
		"cart":    svc.Snapshot(),
	})
}
