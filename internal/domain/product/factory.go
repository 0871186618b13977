package product

import (
	"time"

	"github.com/google/uuid"
)

func NewFromCreateRequest(req CreateProductRequest) Product {
	now := time.Now().UTC()

	return Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
