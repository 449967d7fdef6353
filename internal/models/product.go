package models

type Product struct {
	ID          int     `json:"id" db:"product_id"`
	Name        string  `json:"name" db:"name"`
	Category    string  `json:"category" db:"category"`
	Price       float64 `json:"price" db:"price"`
	Image       string  `json:"image" db:"image"`
	Description string  `json:"description" db:"description"`
	InStock     bool    `json:"inStock" db:"in_stock"`
	Rating      float64 `json:"rating" db:"rating"`
}
