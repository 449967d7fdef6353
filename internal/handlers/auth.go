package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ================== AUTH LOCALE ==================

//
// 🟢 POST /api/auth/register
//
func (h *Handler) Register(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	result := h.Sessions.Register(c.Request.Context(), input.Username, input.Email, input.Password)
	if !result.Success {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": result.Message})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": result.Message})
}

//
// 🟢 POST /api/auth/login
//
func (h *Handler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	result, token := h.Sessions.Login(c.Request.Context(), input.Email, input.Password)
	if !result.Success {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": result.Message})
		return
	}

	user, _ := h.Sessions.CurrentUser(c.Request.Context(), input.Email)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": result.Message,
		"token":   token,
		"user":    user,
	})
}

//
// 🟢 POST /api/auth/logout
//
func (h *Handler) Logout(c *gin.Context) {
	email := c.GetString("email")
	h.Sessions.Logout(c.Request.Context(), email)
	c.JSON(http.StatusOK, gin.H{"message": "Déconnexion réussie"})
}

//
// 🟢 GET /api/auth/me
//
func (h *Handler) Me(c *gin.Context) {
	email := c.GetString("email")
	user, ok := h.Sessions.CurrentUser(c.Request.Context(), email)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
