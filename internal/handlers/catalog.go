package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"vegefood_back_end/internal/models"
	services "vegefood_back_end/internal/service"

	"github.com/gin-gonic/gin"
)

//
// 🟢 GET /api/products?category=...
//
func (h *Handler) GetProducts(c *gin.Context) {
	ctx := c.Request.Context()

	if category := c.Query("category"); category != "" {
		products, err := h.Catalog.ProductsByCategory(ctx, category)
		if err != nil {
			log.Printf("❌ Erreur lecture catalogue: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catalogue"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products, "total": len(products)})
		return
	}

	products, err := h.Catalog.Products(ctx)
	if err != nil {
		log.Printf("❌ Erreur lecture catalogue: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catalogue"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "total": len(products)})
}

//
// 🟢 GET /api/products/:id
//
func (h *Handler) GetProductByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	product, found, err := h.Catalog.ProductByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("❌ Erreur lecture catalogue: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catalogue"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	c.JSON(http.StatusOK, product)
}

//
// 🟢 GET /api/categories
//
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.Catalog.Categories(c.Request.Context())
	if err != nil {
		log.Printf("❌ Erreur lecture catégories: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catégories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

//
// 🔍 GET /api/products/search?q=...
// Elasticsearch quand il est configuré, sinon parcours linéaire du catalogue.
//
func (h *Handler) SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre q requis"})
		return
	}

	if results, err := services.SearchProducts(query); err == nil {
		c.JSON(http.StatusOK, gin.H{"products": results, "total": len(results)})
		return
	}

	products, err := h.Catalog.Products(c.Request.Context())
	if err != nil {
		log.Printf("❌ Erreur lecture catalogue: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catalogue"})
		return
	}

	needle := strings.ToLower(query)
	matched := []models.Product{}
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			matched = append(matched, p)
		}
	}
	c.JSON(http.StatusOK, gin.H{"products": matched, "total": len(matched)})
}
