package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"vegefood_back_end/internal/models"
)

// FileSource lit le catalogue depuis les deux fichiers JSON fixes, comme la
// boutique d'origine avec ses mock-data. Le contenu est chargé une seule fois.
type FileSource struct {
	productsPath   string
	categoriesPath string

	once       sync.Once
	loadErr    error
	products   []models.Product
	categories []models.Category
}

func NewFileSource(productsPath, categoriesPath string) *FileSource {
	return &FileSource{productsPath: productsPath, categoriesPath: categoriesPath}
}

func (s *FileSource) load() {
	data, err := os.ReadFile(s.productsPath)
	if err != nil {
		s.loadErr = fmt.Errorf("lecture %s: %w", s.productsPath, err)
		return
	}
	if err := json.Unmarshal(data, &s.products); err != nil {
		s.loadErr = fmt.Errorf("parsing %s: %w", s.productsPath, err)
		return
	}

	data, err = os.ReadFile(s.categoriesPath)
	if err != nil {
		s.loadErr = fmt.Errorf("lecture %s: %w", s.categoriesPath, err)
		return
	}
	if err := json.Unmarshal(data, &s.categories); err != nil {
		s.loadErr = fmt.Errorf("parsing %s: %w", s.categoriesPath, err)
	}
}

func (s *FileSource) Products(_ context.Context) ([]models.Product, error) {
	s.once.Do(s.load)
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.products, nil
}

func (s *FileSource) Categories(_ context.Context) ([]models.Category, error) {
	s.once.Do(s.load)
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.categories, nil
}
