package product

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("product not found")

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"imageUrl"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=120"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	ImageURL    string  `json:"imageUrl" binding:"required,url"`
	Description string  `json:"description" binding:"required,max=2000"`
}

// Updates replace the full field set, mirroring the create payload.
type UpdateProductRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=120"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	ImageURL    string  `json:"imageUrl" binding:"required,url"`
	Description string  `json:"description" binding:"required,max=2000"`
}
