package models

type ShippingOption struct {
	Method        string  `json:"method"`
	Cost          float64 `json:"cost"`
	EstimatedDays string  `json:"estimatedDays"`
}
