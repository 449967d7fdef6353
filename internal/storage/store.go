// Package storage fournit le stockage durable clé → blob de la boutique.
// Chaque valeur est un enregistrement JSON sérialisé ; une clé absente ou
// illisible vaut "non défini", jamais une erreur fatale pour la session.
package storage

import (
	"context"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

type Store interface {
	// Get retourne la valeur brute et false si la clé est absente ou illisible.
	Get(ctx context.Context, key string) (string, bool)
	// Set écrit la valeur. L'écriture est best-effort : l'appelant continue même en cas d'échec.
	Set(ctx context.Context, key, value string) error
	// Del supprime la clé ; supprimer une clé absente n'est pas une erreur.
	Del(ctx context.Context, key string) error
}

// =============================================
// REDIS
// =============================================

// RedisStore persiste les blobs dans Redis, sans TTL : comme le localStorage
// d'origine, une entrée ne disparaît que par action explicite.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool) {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		log.Printf("⚠️ Lecture Redis impossible pour '%s' : %v — valeur traitée comme absente", key, err)
		return "", false
	}
	return val, true
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *RedisStore) Del(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// =============================================
// MÉMOIRE (tests)
// =============================================

// MemoryStore garde les blobs en mémoire. Utilisé par les tests.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// =============================================
// PRÉFIXE PAR UTILISATEUR
// =============================================

// prefixed namespace les clés par utilisateur, façon "cart:<userID>" côté Redis,
// tout en laissant les composants manipuler les clés nues (cart, savedItems, …).
type prefixed struct {
	inner  Store
	suffix string
}

// ForUser retourne une vue du store dont chaque clé est suffixée par ":<userID>".
func ForUser(inner Store, userID string) Store {
	if userID == "" {
		return inner
	}
	return &prefixed{inner: inner, suffix: ":" + userID}
}

func (p *prefixed) Get(ctx context.Context, key string) (string, bool) {
	return p.inner.Get(ctx, key+p.suffix)
}

func (p *prefixed) Set(ctx context.Context, key, value string) error {
	return p.inner.Set(ctx, key+p.suffix, value)
}

func (p *prefixed) Del(ctx context.Context, key string) error {
	return p.inner.Del(ctx, key+p.suffix)
}
