package models

type Coupon struct {
	Code        string  `json:"code"`
	Discount    float64 `json:"discount"` // Pourcentage de réduction (0–100)
	Description string  `json:"description"`
}
