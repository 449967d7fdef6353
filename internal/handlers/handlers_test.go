package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"vegefood_back_end/internal/cart"
	"vegefood_back_end/internal/catalog"
	"vegefood_back_end/internal/handlers"
	"vegefood_back_end/internal/routes"
	"vegefood_back_end/internal/session"
	"vegefood_back_end/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productsJSON = `[
  {"id": 1, "name": "Carottes Bio", "category": "Légumes", "price": 10,
   "image": "carrots.jpg", "description": "Carottes bio", "inStock": true, "rating": 4.5},
  {"id": 2, "name": "Pommes Gala", "category": "Fruits", "price": 5,
   "image": "apples.jpg", "description": "Pommes juteuses", "inStock": true, "rating": 4.3}
]`

const categoriesJSON = `[
  {"id": 1, "name": "Légumes", "description": "Légumes frais"},
  {"id": 2, "name": "Fruits", "description": "Fruits de saison"}
]`

func newTestRouter(t *testing.T) (*gin.Engine, *session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	productsPath := filepath.Join(dir, "products.json")
	categoriesPath := filepath.Join(dir, "categories.json")
	require.NoError(t, os.WriteFile(productsPath, []byte(productsJSON), 0o644))
	require.NoError(t, os.WriteFile(categoriesPath, []byte(categoriesJSON), 0o644))

	store := storage.NewMemoryStore()
	sessions := session.NewStore(store)
	carts := cart.NewManager(store)
	provider := catalog.NewProvider(catalog.NewFileSource(productsPath, categoriesPath))

	r := gin.New()
	routes.RegisterRoutes(r, handlers.New(provider, carts, sessions), sessions)
	return r, sessions
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func loginAs(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "alice", "email": email, "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": email, "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestCatalogueEstPublic(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)

	w = doJSON(t, r, http.MethodGet, "/api/products?category=Fruits", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)

	w = doJSON(t, r, http.MethodGet, "/api/categories", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecherche_ParcoursLineaireSansElastic(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/products/search?q=pommes", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
}

func TestPanierExigeUneSession(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/checkout", "", gin.H{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/cart", "pas-un-jeton", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestParcoursComplet_PanierCouponCheckout(t *testing.T) {
	r, _ := newTestRouter(t)
	token := loginAs(t, r, "alice@example.com")

	// Deux carottes à 10 et une pomme à 5 → sous-total 25
	w := doJSON(t, r, http.MethodPost, "/api/cart/add", token, gin.H{"productId": 1, "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/cart/add", token, gin.H{"productId": 2, "quantity": 1})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/cart/coupon", token, gin.H{"code": "SAVE20"})
	require.Equal(t, http.StatusOK, w.Code)

	var cartResp struct {
		Cart cart.Snapshot `json:"cart"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cartResp))
	assert.InDelta(t, 25.0, cartResp.Cart.Totals.Subtotal, 1e-9)
	assert.InDelta(t, 5.0, cartResp.Cart.Totals.Discount, 1e-9)
	assert.InDelta(t, 27.0, cartResp.Cart.Totals.Total, 1e-9)

	// Checkout simulé : commande créée, panier vidé
	w = doJSON(t, r, http.MethodPost, "/api/checkout", token, gin.H{
		"firstName": "Alice", "lastName": "Martin", "email": "alice@example.com",
		"address": "1 rue des Lilas", "city": "Namur", "zipCode": "5000",
		"cardNumber": "4242424242424242",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var snap cart.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Empty(t, snap.Items)
	assert.Nil(t, snap.Coupon)
}

func TestCouponInvalide(t *testing.T) {
	r, _ := newTestRouter(t)
	token := loginAs(t, r, "bob@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/cart/coupon", token, gin.H{"code": "NOPE"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Code coupon invalide", resp.Message)
}

func TestCheckoutPanierVide(t *testing.T) {
	r, _ := newTestRouter(t)
	token := loginAs(t, r, "carol@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/checkout", token, gin.H{
		"firstName": "Carol", "lastName": "Dubois", "email": "carol@example.com",
		"address": "2 avenue Verte", "city": "Liège", "zipCode": "4000",
		"cardNumber": "4242424242424242",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutFermeLaSession(t *testing.T) {
	r, sessions := newTestRouter(t)
	token := loginAs(t, r, "dave@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.False(t, sessions.IsAuthenticated(context.Background(), "dave@example.com"))

	// Le jeton seul ne suffit plus : la session n'existe plus côté stockage
	w = doJSON(t, r, http.MethodGet, "/api/cart", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouteInconnue(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/nimporte-quoi", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
