package models

type Category struct {
	ID          int    `json:"id" db:"category_id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description,omitempty" db:"description"`
	ImageURL    string `json:"imageUrl,omitempty" db:"image_url"`
}
