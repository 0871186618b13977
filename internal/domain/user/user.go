package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already in use")
	ErrAdminProtected = errors.New("admin accounts cannot be removed")
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Age          *int      `json:"age,omitempty"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CreateRequest struct {
	Name     string
	Age      *int
	Email    string
	Password string // already hashed by the caller
	IsAdmin  bool
}

// UpdateRequest carries the partial field set accepted by the admin update
// endpoint. Nil means "leave as is".
type UpdateRequest struct {
	Name  *string
	Email *string
	Age   *int
}

func (r UpdateRequest) Empty() bool {
	return r.Name == nil && r.Email == nil && r.Age == nil
}
