// Package handlers expose l'API HTTP de la boutique. Les handlers ne portent
// aucun état : tout vit dans les services injectés à la construction.
package handlers

import (
	"vegefood_back_end/internal/cart"
	"vegefood_back_end/internal/catalog"
	"vegefood_back_end/internal/session"
)

type Handler struct {
	Catalog  *catalog.Provider
	Carts    *cart.Manager
	Sessions *session.Store
}

func New(catalogProvider *catalog.Provider, carts *cart.Manager, sessions *session.Store) *Handler {
	return &Handler{
		Catalog:  catalogProvider,
		Carts:    carts,
		Sessions: sessions,
	}
}
