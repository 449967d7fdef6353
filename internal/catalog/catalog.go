// Package catalog expose le catalogue produits/catégories en lecture seule.
// Les produits sont immuables une fois chargés ; les requêtes dérivées
// (par id, par catégorie) sont des parcours linéaires du catalogue complet.
package catalog

import (
	"context"

	"vegefood_back_end/internal/models"
)

// Source fournit les deux collections complètes du catalogue.
type Source interface {
	Products(ctx context.Context) ([]models.Product, error)
	Categories(ctx context.Context) ([]models.Category, error)
}

// Provider répond aux requêtes catalogue au-dessus d'une source.
type Provider struct {
	source Source
}

func NewProvider(source Source) *Provider {
	return &Provider{source: source}
}

func (p *Provider) Products(ctx context.Context) ([]models.Product, error) {
	return p.source.Products(ctx)
}

func (p *Provider) Categories(ctx context.Context) ([]models.Category, error) {
	return p.source.Categories(ctx)
}

// ProductByID retrouve un produit par son id ; false s'il n'existe pas.
func (p *Provider) ProductByID(ctx context.Context, id int) (models.Product, bool, error) {
	products, err := p.source.Products(ctx)
	if err != nil {
		return models.Product{}, false, err
	}
	for _, product := range products {
		if product.ID == id {
			return product, true, nil
		}
	}
	return models.Product{}, false, nil
}

// ProductsByCategory filtre le catalogue complet sur le nom de catégorie.
func (p *Provider) ProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	products, err := p.source.Products(ctx)
	if err != nil {
		return nil, err
	}
	filtered := []models.Product{}
	for _, product := range products {
		if product.Category == category {
			filtered = append(filtered, product)
		}
	}
	return filtered, nil
}
