package catalog

import (
	"context"
	"fmt"

	"vegefood_back_end/internal/database"
	"vegefood_back_end/internal/models"
)

// ScyllaSource lit le catalogue dans les tables products et categories du
// keyspace configuré. Tables en lecture seule, créées par script d'init.
type ScyllaSource struct{}

func NewScyllaSource() *ScyllaSource {
	return &ScyllaSource{}
}

func (s *ScyllaSource) Products(_ context.Context) ([]models.Product, error) {
	session, err := database.GetCatalogSession()
	if err != nil {
		return nil, fmt.Errorf("connexion catalogue: %w", err)
	}

	iter := session.Query(`SELECT product_id, name, category, price, image, description, in_stock, rating
	                       FROM products`).Iter()
	defer iter.Close()

	var products []models.Product
	var p models.Product
	for iter.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Image, &p.Description, &p.InStock, &p.Rating) {
		products = append(products, p)
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("lecture produits: %w", err)
	}
	return products, nil
}

func (s *ScyllaSource) Categories(_ context.Context) ([]models.Category, error) {
	session, err := database.GetCatalogSession()
	if err != nil {
		return nil, fmt.Errorf("connexion catalogue: %w", err)
	}

	iter := session.Query(`SELECT category_id, name, description, image_url FROM categories`).Iter()
	defer iter.Close()

	var categories []models.Category
	var c models.Category
	for iter.Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL) {
		categories = append(categories, c)
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("lecture catégories: %w", err)
	}
	return categories, nil
}
