package cart

import (
	"context"
	"sync"

	"vegefood_back_end/internal/storage"
)

// Manager distribue un Service par utilisateur, hydraté à la première demande.
// Les clés durables sont namespacées "cart:<userID>" etc. via le store préfixé.
type Manager struct {
	mu       sync.Mutex
	store    storage.Store
	services map[string]*Service
}

func NewManager(store storage.Store) *Manager {
	return &Manager{store: store, services: make(map[string]*Service)}
}

// ForUser retourne le service panier de l'utilisateur, en le créant au besoin.
func (m *Manager) ForUser(ctx context.Context, userID string) *Service {
	m.mu.Lock()
	defer m.mu.Unlock()

	if svc, ok := m.services[userID]; ok {
		return svc
	}
	svc := NewService(ctx, storage.ForUser(m.store, userID))
	m.services[userID] = svc
	return svc
}
