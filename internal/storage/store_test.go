package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, ok := store.Get(ctx, "cart")
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "cart", `[]`))
	val, ok := store.Get(ctx, "cart")
	require.True(t, ok)
	assert.Equal(t, `[]`, val)

	require.NoError(t, store.Del(ctx, "cart"))
	_, ok = store.Get(ctx, "cart")
	assert.False(t, ok)

	// Supprimer une clé absente n'est pas une erreur
	assert.NoError(t, store.Del(ctx, "inconnue"))
}

func TestForUser_NamespaceLesCles(t *testing.T) {
	ctx := context.Background()
	root := NewMemoryStore()

	alice := ForUser(root, "alice@example.com")
	bob := ForUser(root, "bob@example.com")

	require.NoError(t, alice.Set(ctx, "cart", `[{"quantity":1}]`))

	_, ok := bob.Get(ctx, "cart")
	assert.False(t, ok)

	val, ok := alice.Get(ctx, "cart")
	require.True(t, ok)
	assert.Equal(t, `[{"quantity":1}]`, val)

	// Côté Redis la clé est bien "cart:<userID>"
	raw, ok := root.Get(ctx, "cart:alice@example.com")
	require.True(t, ok)
	assert.Equal(t, `[{"quantity":1}]`, raw)
}

func TestForUser_SansUtilisateurRetourneLeStoreNu(t *testing.T) {
	root := NewMemoryStore()
	assert.Equal(t, Store(root), ForUser(root, ""))
}
