package models

import "time"

// Order est le récapitulatif renvoyé par le checkout. Aucun paiement n'est traité :
// la commande est simulée, comme dans la boutique d'origine.
type Order struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Items     []CartItem `json:"items"`
	Totals    CartTotals `json:"totals"`
	CreatedAt time.Time  `json:"createdAt"`
}
