package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productsJSON = `[
  {"id": 1, "name": "Carottes Bio", "category": "Légumes", "price": 2.5,
   "image": "carrots.jpg", "description": "Carottes bio", "inStock": true, "rating": 4.5},
  {"id": 2, "name": "Pommes Gala", "category": "Fruits", "price": 4.2,
   "image": "apples.jpg", "description": "Pommes juteuses", "inStock": true, "rating": 4.3},
  {"id": 3, "name": "Tomates Cerises", "category": "Légumes", "price": 3.9,
   "image": "tomatoes.jpg", "description": "Tomates sucrées", "inStock": false, "rating": 4.8}
]`

const categoriesJSON = `[
  {"id": 1, "name": "Légumes", "description": "Légumes frais"},
  {"id": 2, "name": "Fruits", "description": "Fruits de saison"}
]`

func writeCatalogFiles(t *testing.T, products, categories string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	productsPath := filepath.Join(dir, "products.json")
	categoriesPath := filepath.Join(dir, "categories.json")
	require.NoError(t, os.WriteFile(productsPath, []byte(products), 0o644))
	require.NoError(t, os.WriteFile(categoriesPath, []byte(categories), 0o644))
	return productsPath, categoriesPath
}

func newFileProvider(t *testing.T) *Provider {
	t.Helper()
	productsPath, categoriesPath := writeCatalogFiles(t, productsJSON, categoriesJSON)
	return NewProvider(NewFileSource(productsPath, categoriesPath))
}

func TestFileSource_ChargeLesDeuxCollections(t *testing.T) {
	p := newFileProvider(t)
	ctx := context.Background()

	products, err := p.Products(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 3)

	categories, err := p.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)
	assert.Equal(t, "Légumes", categories[0].Name)
}

func TestProductByID(t *testing.T) {
	p := newFileProvider(t)
	ctx := context.Background()

	product, found, err := p.ProductByID(ctx, 2)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Pommes Gala", product.Name)
	assert.InDelta(t, 4.2, product.Price, 1e-9)

	_, found, err = p.ProductByID(ctx, 99)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestProductsByCategory(t *testing.T) {
	p := newFileProvider(t)
	ctx := context.Background()

	legumes, err := p.ProductsByCategory(ctx, "Légumes")
	require.NoError(t, err)
	assert.Len(t, legumes, 2)

	vide, err := p.ProductsByCategory(ctx, "Surgelés")
	require.NoError(t, err)
	assert.Empty(t, vide)
}

func TestFileSource_FichierAbsent(t *testing.T) {
	source := NewFileSource("/nexiste/pas/products.json", "/nexiste/pas/categories.json")
	_, err := source.Products(context.Background())
	assert.Error(t, err)
}

func TestFileSource_JSONInvalide(t *testing.T) {
	productsPath, categoriesPath := writeCatalogFiles(t, "{pas du json", categoriesJSON)
	source := NewFileSource(productsPath, categoriesPath)
	_, err := source.Products(context.Background())
	assert.Error(t, err)
}
