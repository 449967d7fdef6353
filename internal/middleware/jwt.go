package middleware

import (
	"net/http"
	"strings"

	"vegefood_back_end/internal/session"

	"github.com/gin-gonic/gin"
)

// AuthRequired protège les routes panier/checkout : l'équivalent serveur du
// guard de navigation qui renvoyait vers /login. Le jeton Bearer doit se
// parser ET la session doit encore exister dans le stockage durable.
func AuthRequired(sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Jeton manquant"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Format Authorization invalide"})
			c.Abort()
			return
		}

		email, err := session.ParseToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Jeton invalide"})
			c.Abort()
			return
		}

		if !sessions.IsAuthenticated(c.Request.Context(), email) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expirée, reconnectez-vous"})
			c.Abort()
			return
		}

		c.Set("email", email)
		c.Next()
	}
}
