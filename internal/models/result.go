package models

// Result est le retour standard des règles métier (coupon, inscription, login).
// Les échecs métier ne sont jamais des erreurs Go : le message est affichable tel quel.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
