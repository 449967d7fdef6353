// Package cart porte l'état du panier : lignes, articles mis de côté, coupon
// appliqué et mode de livraison, avec calcul des montants dérivés. Chaque
// mutation est reflétée dans le stockage durable puis publiée aux listeners.
package cart

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"

	"vegefood_back_end/internal/models"
	"vegefood_back_end/internal/storage"
)

// Clés de stockage durable (préfixées par utilisateur côté Redis).
const (
	keyCart     = "cart"
	keySaved    = "savedItems"
	keyCoupon   = "appliedCoupon"
	keyShipping = "shippingMethod"
)

// Code du coupon livraison gratuite. Il n'affecte pas le sous-total :
// la réduction vaut 0 et les frais de port tombent à 0.
const freeShippingCode = "FREESHIP"

const taxRate = 0.10

// Coupons valides. Catalogue fixe, jamais persisté.
var availableCoupons = []models.Coupon{
	{Code: "SAVE10", Discount: 10, Description: "10% de réduction sur votre commande"},
	{Code: "SAVE20", Discount: 20, Description: "20% de réduction sur votre commande"},
	{Code: "WELCOME", Discount: 15, Description: "15% de réduction pour les nouveaux clients"},
	{Code: "FREESHIP", Discount: 0, Description: "Livraison gratuite"},
}

// Modes de livraison. Le premier est le choix par défaut.
var shippingOptions = []models.ShippingOption{
	{Method: "Standard", Cost: 5, EstimatedDays: "5-7 jours ouvrés"},
	{Method: "Express", Cost: 15, EstimatedDays: "2-3 jours ouvrés"},
	{Method: "Overnight", Cost: 25, EstimatedDays: "1 jour ouvré"},
}

// ShippingOptions retourne les modes de livraison disponibles.
func ShippingOptions() []models.ShippingOption {
	out := make([]models.ShippingOption, len(shippingOptions))
	copy(out, shippingOptions)
	return out
}

// Snapshot est l'état observable du panier à un instant donné.
type Snapshot struct {
	Items      []models.CartItem     `json:"items"`
	SavedItems []models.CartItem     `json:"savedItems"`
	Coupon     *models.Coupon        `json:"coupon,omitempty"`
	Shipping   models.ShippingOption `json:"shipping"`
	CartCount  int                   `json:"cartCount"`
	SavedCount int                   `json:"savedCount"`
	Totals     models.CartTotals     `json:"totals"`
}

// Listener reçoit un snapshot après chaque mutation, de façon synchrone.
type Listener func(Snapshot)

// Service détient l'état panier d'un utilisateur. Construit explicitement avec
// son store, hydraté à la création : pas de singleton, pas de cycle de vie implicite.
type Service struct {
	mu        sync.Mutex
	store     storage.Store
	items     []models.CartItem
	saved     []models.CartItem
	coupon    *models.Coupon
	shipping  models.ShippingOption
	listeners []Listener
}

// NewService hydrate le panier depuis le stockage durable. Un blob absent ou
// corrompu retombe sur la valeur vide ou par défaut, sans échec.
func NewService(ctx context.Context, store storage.Store) *Service {
	s := &Service{store: store, shipping: shippingOptions[0]}

	s.items = readItems(ctx, store, keyCart)
	s.saved = readItems(ctx, store, keySaved)

	if raw, ok := store.Get(ctx, keyCoupon); ok {
		var c models.Coupon
		if err := json.Unmarshal([]byte(raw), &c); err == nil && c.Code != "" {
			s.coupon = &c
		}
	}
	if raw, ok := store.Get(ctx, keyShipping); ok {
		var opt models.ShippingOption
		if err := json.Unmarshal([]byte(raw), &opt); err == nil && opt.Method != "" {
			s.shipping = opt
		}
	}

	return s
}

func readItems(ctx context.Context, store storage.Store, key string) []models.CartItem {
	raw, ok := store.Get(ctx, key)
	if !ok {
		return nil
	}
	var items []models.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Printf("⚠️ Blob '%s' illisible, panier réinitialisé: %v", key, err)
		return nil
	}
	return items
}

// Subscribe enregistre un listener notifié après chaque mutation.
func (s *Service) Subscribe(l Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// =============================================
// OPÉRATIONS PANIER
// =============================================

// AddToCart ajoute un produit. Si une ligne existe déjà pour ce produit, sa
// quantité est incrémentée ; aucune borne supérieure n'est appliquée.
func (s *Service) AddToCart(ctx context.Context, product models.Product, quantity int) {
	if quantity <= 0 {
		quantity = 1
	}

	s.mu.Lock()
	found := false
	for i := range s.items {
		if s.items[i].Product.ID == product.ID {
			s.items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, models.CartItem{Product: product, Quantity: quantity})
	}
	s.persistItems(ctx, keyCart, s.items)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
}

// UpdateQuantity fixe la quantité d'une ligne. Une quantité nulle ou négative
// équivaut à RemoveFromCart. Sans ligne correspondante, ne fait rien.
func (s *Service) UpdateQuantity(ctx context.Context, productID, quantity int) {
	if quantity <= 0 {
		s.RemoveFromCart(ctx, productID)
		return
	}

	s.mu.Lock()
	changed := false
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			s.items[i].Quantity = quantity
			changed = true
			break
		}
	}
	if !changed {
		s.mu.Unlock()
		return
	}
	s.persistItems(ctx, keyCart, s.items)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
}

// RemoveFromCart supprime la ligne du produit ; silencieux si elle n'existe pas.
func (s *Service) RemoveFromCart(ctx context.Context, productID int) {
	s.mu.Lock()
	s.items = removeItem(s.items, productID)
	s.persistItems(ctx, keyCart, s.items)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
}

// ClearCart vide le panier et retire le coupon appliqué.
// Les articles mis de côté et le mode de livraison sont conservés.
func (s *Service) ClearCart(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.coupon = nil
	s.persistItems(ctx, keyCart, s.items)
	if err := s.store.Del(ctx, keyCoupon); err != nil {
		log.Printf("⚠️ Suppression coupon impossible: %v", err)
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
}

// =============================================
// ARTICLES MIS DE CÔTÉ
// =============================================

// SaveForLater déplace une ligne du panier vers les articles mis de côté,
// en fusionnant les quantités si le produit y figure déjà.
func (s *Service) SaveForLater(ctx context.Context, productID int) {
	s.mu.Lock()
	var moved *models.CartItem
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			item := s.items[i]
			moved = &item
			break
		}
	}
	if moved == nil {
		s.mu.Unlock()
		return
	}

	merged := false
	for i := range s.saved {
		if s.saved[i].Product.ID == productID {
			s.saved[i].Quantity += moved.Quantity
			merged = true
			break
		}
	}
	if !merged {
		s.saved = append(s.saved, *moved)
	}
	s.items = removeItem(s.items, productID)

	s.persistItems(ctx, keyCart, s.items)
	s.persistItems(ctx, keySaved, s.saved)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
}

// MoveToCart remet un article mis de côté dans le panier, via AddToCart pour
// que les quantités fusionnent avec une ligne existante.
func (s *Service) MoveToCart(ctx context.Context, productID int) {
	s.mu.Lock()
	var saved *models.CartItem
	for i := range s.saved {
		if s.saved[i].Product.ID == productID {
			item := s.saved[i]
			saved = &item
			break
		}
	}
	if saved == nil {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.AddToCart(ctx, saved.Product, saved.Quantity)

	s.mu.Lock()
	s.saved = removeItem(s.saved, productID)
	s.persistItems(ctx, keySaved, s.saved)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
}

// RemoveFromSaved supprime un article mis de côté ; silencieux s'il n'existe pas.
func (s *Service) RemoveFromSaved(ctx context.Context, productID int) {
	s.mu.Lock()
	s.saved = removeItem(s.saved, productID)
	s.persistItems(ctx, keySaved, s.saved)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
}

// =============================================
// COUPON & LIVRAISON
// =============================================

// ApplyCoupon applique un coupon du catalogue (code insensible à la casse).
// Un coupon déjà appliqué est remplacé : pas de cumul.
func (s *Service) ApplyCoupon(ctx context.Context, code string) models.Result {
	var coupon *models.Coupon
	for i := range availableCoupons {
		if strings.EqualFold(availableCoupons[i].Code, code) {
			c := availableCoupons[i]
			coupon = &c
			break
		}
	}
	if coupon == nil {
		return models.Result{Success: false, Message: "Code coupon invalide"}
	}

	s.mu.Lock()
	s.coupon = coupon
	if data, err := json.Marshal(coupon); err == nil {
		if err := s.store.Set(ctx, keyCoupon, string(data)); err != nil {
			log.Printf("⚠️ Sauvegarde coupon impossible: %v", err)
		}
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
	return models.Result{Success: true, Message: "Coupon appliqué : " + coupon.Description}
}

// RemoveCoupon retire le coupon appliqué. Réussit toujours, même sans coupon.
func (s *Service) RemoveCoupon(ctx context.Context) {
	s.mu.Lock()
	s.coupon = nil
	if err := s.store.Del(ctx, keyCoupon); err != nil {
		log.Printf("⚠️ Suppression coupon impossible: %v", err)
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
}

// SetShippingMethod sélectionne un mode de livraison par sa clé.
// Une clé inconnue est ignorée silencieusement.
func (s *Service) SetShippingMethod(ctx context.Context, method string) {
	var option *models.ShippingOption
	for i := range shippingOptions {
		if shippingOptions[i].Method == method {
			opt := shippingOptions[i]
			option = &opt
			break
		}
	}
	if option == nil {
		return
	}

	s.mu.Lock()
	s.shipping = *option
	if data, err := json.Marshal(option); err == nil {
		if err := s.store.Set(ctx, keyShipping, string(data)); err != nil {
			log.Printf("⚠️ Sauvegarde mode de livraison impossible: %v", err)
		}
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
}

// =============================================
// LECTURES
// =============================================

// Snapshot retourne l'état courant et les montants recalculés.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Totals recalcule les montants dérivés depuis l'état courant.
func (s *Service) Totals() models.CartTotals {
	return s.Snapshot().Totals
}

// Items retourne une copie des lignes du panier.
func (s *Service) Items() []models.CartItem {
	return s.Snapshot().Items
}

// SavedItems retourne une copie des articles mis de côté.
func (s *Service) SavedItems() []models.CartItem {
	return s.Snapshot().SavedItems
}

// AppliedCoupon retourne le coupon appliqué, ou nil.
func (s *Service) AppliedCoupon() *models.Coupon {
	return s.Snapshot().Coupon
}

// ShippingMethod retourne le mode de livraison sélectionné.
func (s *Service) ShippingMethod() models.ShippingOption {
	return s.Snapshot().Shipping
}

// snapshotLocked recompose l'état observable. Les montants sont toujours
// dérivés dans cet ordre : sous-total, réduction, frais de port, taxe, total.
func (s *Service) snapshotLocked() Snapshot {
	items := make([]models.CartItem, len(s.items))
	copy(items, s.items)
	saved := make([]models.CartItem, len(s.saved))
	copy(saved, s.saved)

	var coupon *models.Coupon
	if s.coupon != nil {
		c := *s.coupon
		coupon = &c
	}

	subtotal := 0.0
	cartCount := 0
	for _, item := range items {
		subtotal += item.Product.Price * float64(item.Quantity)
		cartCount += item.Quantity
	}
	savedCount := 0
	for _, item := range saved {
		savedCount += item.Quantity
	}

	discount := 0.0
	if coupon != nil && coupon.Code != freeShippingCode {
		discount = subtotal * coupon.Discount / 100
	}

	shippingCost := s.shipping.Cost
	if coupon != nil && coupon.Code == freeShippingCode {
		shippingCost = 0
	}

	tax := (subtotal - discount) * taxRate
	total := subtotal - discount + shippingCost + tax

	return Snapshot{
		Items:      items,
		SavedItems: saved,
		Coupon:     coupon,
		Shipping:   s.shipping,
		CartCount:  cartCount,
		SavedCount: savedCount,
		Totals: models.CartTotals{
			Subtotal:     subtotal,
			Discount:     discount,
			ShippingCost: shippingCost,
			Tax:          tax,
			Total:        total,
		},
	}
}

func (s *Service) persistItems(ctx context.Context, key string, items []models.CartItem) {
	if items == nil {
		items = []models.CartItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := s.store.Set(ctx, key, string(data)); err != nil {
		log.Printf("⚠️ Sauvegarde '%s' impossible: %v", key, err)
	}
}

// publish notifie les listeners, hors verrou pour qu'un listener puisse relire le service.
func (s *Service) publish(snap Snapshot) {
	s.mu.Lock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}

func removeItem(items []models.CartItem, productID int) []models.CartItem {
	out := items[:0]
	for _, item := range items {
		if item.Product.ID != productID {
			out = append(out, item)
		}
	}
	return out
}
