package main

import (
	"context"
	"log"
	"os"

	"vegefood_back_end/internal/cart"
	"vegefood_back_end/internal/catalog"
	"vegefood_back_end/internal/config"
	"vegefood_back_end/internal/database"
	"vegefood_back_end/internal/handlers"
	"vegefood_back_end/internal/routes"
	services "vegefood_back_end/internal/service"
	"vegefood_back_end/internal/session"
	"vegefood_back_end/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()

	database.ConnectDatabases()
	defer database.CloseScylla()

	// 📦 Source catalogue : ScyllaDB si configuré, sinon les fichiers JSON
	catalogProvider := catalog.NewProvider(pickCatalogSource())

	// 🔍 Pré-indexation Elasticsearch du catalogue
	warmupSearchIndex(catalogProvider)

	// 🧠 Services d'état, construits explicitement sur le stockage durable
	store := storage.NewRedisStore(database.Redis)
	sessions := session.NewStore(store)
	carts := cart.NewManager(store)

	h := handlers.New(catalogProvider, carts, sessions)

	r := gin.Default()
	routes.RegisterRoutes(r, h, sessions)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur VegeFood lancé sur le port", port)
	r.Run(":" + port)
}

func pickCatalogSource() catalog.Source {
	if database.ScyllaConfigured() {
		log.Println("✅ Catalogue servi depuis ScyllaDB")
		return catalog.NewScyllaSource()
	}

	productsPath := os.Getenv("PRODUCTS_FILE")
	if productsPath == "" {
		productsPath = "assets/mock-data/products.json"
	}
	categoriesPath := os.Getenv("CATEGORIES_FILE")
	if categoriesPath == "" {
		categoriesPath = "assets/mock-data/categories.json"
	}
	log.Println("✅ Catalogue servi depuis les fichiers JSON")
	return catalog.NewFileSource(productsPath, categoriesPath)
}

func warmupSearchIndex(provider *catalog.Provider) {
	if database.Elastic == nil {
		return
	}
	products, err := provider.Products(context.Background())
	if err != nil {
		log.Println("⚠️ Indexation impossible, catalogue illisible:", err)
		return
	}
	services.IndexCatalog(products)
}
