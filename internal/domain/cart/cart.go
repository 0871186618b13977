package cart

import (
	"errors"
	"time"
)

var ErrItemNotFound = errors.New("cart item not found")

// Item is one line of a user's cart, joined with the product it points at.
type Item struct {
	UserID      string    `json:"userId"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	UnitPrice   float64   `json:"unitPrice"`
	Quantity    int       `json:"quantity"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Cart struct {
	UserID string  `json:"userId"`
	Items  []Item  `json:"items"`
	Total  float64 `json:"total"`
}

func New(userID string, items []Item) Cart {
	total := 0.0

	for _, it := range items {
		total += it.UnitPrice * float64(it.Quantity)
	}

	return Cart{
		UserID: userID,
		Items:  items,
		Total:  total,
	}
}

type AddItemRequest struct {
	UserID    string `json:"userId" binding:"required,uuid"`
	ProductID string `json:"productId" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=1000"`
}

type RemoveItemRequest struct {
	UserID    string `json:"userId" binding:"required,uuid"`
	ProductID string `json:"productId" binding:"required,uuid"`
}
