package models

// CartItem associe un produit (copie figée au moment de l'ajout) à une quantité.
// Invariant : une seule ligne par produit dans une même liste (panier ou favoris).
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// CartTotals regroupe les montants dérivés du panier, recalculés à chaque lecture.
type CartTotals struct {
	Subtotal     float64 `json:"subtotal"`
	Discount     float64 `json:"discount"`
	ShippingCost float64 `json:"shippingCost"`
	Tax          float64 `json:"tax"`
	Total        float64 `json:"total"`
}
