package handlers

import (
	"log"
	"net/http"
	"time"

	"vegefood_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

//
// 🛒 POST /api/checkout
// Aucun paiement n'est traité : la commande est simulée comme dans la boutique
// d'origine. Les totaux sont figés, puis le panier est vidé (coupon compris).
//
func (h *Handler) Checkout(c *gin.Context) {
	email := c.GetString("email")

	var input struct {
		FirstName  string `json:"firstName" binding:"required"`
		LastName   string `json:"lastName" binding:"required"`
		Email      string `json:"email" binding:"required,email"`
		Address    string `json:"address" binding:"required"`
		City       string `json:"city" binding:"required"`
		ZipCode    string `json:"zipCode" binding:"required"`
		CardNumber string `json:"cardNumber" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	svc := h.Carts.ForUser(c.Request.Context(), email)
	snap := svc.Snapshot()
	if len(snap.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le panier est vide"})
		return
	}

	order := models.Order{
		ID:        uuid.NewString(),
		Email:     email,
		Items:     snap.Items,
		Totals:    snap.Totals,
		CreatedAt: time.Now(),
	}

	svc.ClearCart(c.Request.Context())

	log.Printf("✅ Commande %s passée pour %s (%.2f€)", order.ID, email, order.Totals.Total)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Commande passée avec succès",
		"order":   order,
	})
}
