package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rodcosta/shophub/internal/domain/product"
	"github.com/rodcosta/shophub/internal/http/handlers"
)

// Make sure Gin does not spam the console during the test

func init() {
	gin.SetMode(gin.TestMode)
}

func newUUID() string {
	return uuid.NewString()
}

// Fake repository implementation of the handlers.ProductStore interface

type fakeProductsRepo struct {
	createFn func(ctx context.Context, req product.CreateProductRequest) (product.Product, error)
	listFn   func(ctx context.Context) ([]product.Product, error)
	getFn    func(ctx context.Context, id string) (product.Product, error)
	updateFn func(ctx context.Context, id string, req product.UpdateProductRequest) (product.Product, error)
	deleteFn func(ctx context.Context, id string) error
}

func (f *fakeProductsRepo) Create(ctx context.Context, req product.CreateProductRequest) (product.Product, error) {
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}

	return product.Product{}, nil
}

func (f *fakeProductsRepo) List(ctx context.Context) ([]product.Product, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}

	return nil, nil
}

func (f *fakeProductsRepo) GetByID(ctx context.Context, id string) (product.Product, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}

	return product.Product{}, nil
}

func (f *fakeProductsRepo) Update(ctx context.Context, id string, req product.UpdateProductRequest) (product.Product, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, req)
	}

	return product.Product{}, nil
}

func (f *fakeProductsRepo) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}

	return nil
}

// in-test cache that records interactions

type fakeProductCache struct {
	items       []product.Product
	has         bool
	setCalls    int
	invalidated int
}

func (f *fakeProductCache) Get(ctx context.Context) ([]product.Product, bool) {
	return f.items, f.has
}

func (f *fakeProductCache) Set(ctx context.Context, products []product.Product) {
	f.items = products
	f.has = true
	f.setCalls++
}

func (f *fakeProductCache) Invalidate(ctx context.Context) {
	f.items = nil
	f.has = false
	f.invalidated++
}

// small helper function which returns the gin engine to mount one handler per test

func setupRouter(method, path string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()

	r.Handle(method, path, h)

	return r
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

// Create product tests

func TestCreateProductHandler(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name           string
		body           string
		repoSetUp      func(*fakeProductsRepo)
		wantStatusCode int
	}{
		{
			name: "success",
			body: `{
				"name": "Coffee Mug",
				"price": 19.9,
				"imageUrl": "https://cdn.example.com/mug.png",
				"description": "A sturdy ceramic mug"
			}`,
			repoSetUp: func(f *fakeProductsRepo) {
				f.createFn = func(ctx context.Context, req product.CreateProductRequest) (product.Product, error) {
					return product.Product{
						ID:          newUUID(),
						Name:        req.Name,
						Price:       req.Price,
						ImageURL:    req.ImageURL,
						Description: req.Description,
						CreatedAt:   now,
						UpdatedAt:   now,
					}, nil
				}
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name: "missing_fields",
			body: `{"name": "Coffee Mug"}`,
			repoSetUp: func(f *fakeProductsRepo) {
				// invalid payload, the repo should never be called
				f.createFn = func(ctx context.Context, req product.CreateProductRequest) (product.Product, error) {
					t.Fatal("repo should not be called for invalid payload")
					return product.Product{}, nil
				}
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "zero_price",
			body: `{
				"name": "Coffee Mug",
				"price": 0,
				"imageUrl": "https://cdn.example.com/mug.png",
				"description": "A sturdy ceramic mug"
			}`,
			repoSetUp:      func(f *fakeProductsRepo) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "repo_error",
			body: `{
				"name": "Coffee Mug",
				"price": 19.9,
				"imageUrl": "https://cdn.example.com/mug.png",
				"description": "A sturdy ceramic mug"
			}`,
			repoSetUp: func(f *fakeProductsRepo) {
				f.createFn = func(ctx context.Context, req product.CreateProductRequest) (product.Product, error) {
					return product.Product{}, errors.New("db error")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeProductsRepo{}

			if tt.repoSetUp != nil {
				tt.repoSetUp(repo)
			}

			h := handlers.NewProductsHandler(repo, nil)

			r := setupRouter(http.MethodPost, "/produtos", h.CreateProduct)

			w := doJSON(t, r, http.MethodPost, "/produtos", tt.body)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestCreateProductInvalidatesCache(t *testing.T) {
	repo := &fakeProductsRepo{
		createFn: func(ctx context.Context, req product.CreateProductRequest) (product.Product, error) {
			return product.Product{ID: newUUID()}, nil
		},
	}
	c := &fakeProductCache{has: true, items: []product.Product{{ID: "stale"}}}

	h := handlers.NewProductsHandler(repo, c)
	r := setupRouter(http.MethodPost, "/produtos", h.CreateProduct)

	w := doJSON(t, r, http.MethodPost, "/produtos", `{
		"name": "Coffee Mug",
		"price": 19.9,
		"imageUrl": "https://cdn.example.com/mug.png",
		"description": "A sturdy ceramic mug"
	}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	if c.invalidated != 1 {
		t.Fatalf("cache invalidations = %d, want 1", c.invalidated)
	}
}

// List product tests

func TestListProductsHandler(t *testing.T) {
	now := time.Now().UTC()

	t.Run("miss_fills_cache", func(t *testing.T) {
		repo := &fakeProductsRepo{
			listFn: func(ctx context.Context) ([]product.Product, error) {
				return []product.Product{
					{ID: newUUID(), Name: "Mug", Price: 19.9, CreatedAt: now, UpdatedAt: now},
					{ID: newUUID(), Name: "Shirt", Price: 49.9, CreatedAt: now, UpdatedAt: now},
				}, nil
			},
		}
		c := &fakeProductCache{}

		h := handlers.NewProductsHandler(repo, c)
		r := setupRouter(http.MethodGet, "/produtos", h.ListProducts)

		w := doJSON(t, r, http.MethodGet, "/produtos", "")

		if w.Code != http.StatusOK {
			t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
		}

		var resp struct {
			Items []product.Product `json:"items"`
			Count int               `json:"count"`
		}

		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}

		if resp.Count != 2 || len(resp.Items) != 2 {
			t.Fatalf("count = %d items = %d, want 2", resp.Count, len(resp.Items))
		}

		if c.setCalls != 1 {
			t.Fatalf("cache set calls = %d, want 1", c.setCalls)
		}
	})

	t.Run("hit_skips_repo", func(t *testing.T) {
		repo := &fakeProductsRepo{
			listFn: func(ctx context.Context) ([]product.Product, error) {
				t.Fatal("repo should not be hit when the cache answers")
				return nil, nil
			},
		}
		c := &fakeProductCache{
			has:   true,
			items: []product.Product{{ID: newUUID(), Name: "Mug"}},
		}

		h := handlers.NewProductsHandler(repo, c)
		r := setupRouter(http.MethodGet, "/produtos", h.ListProducts)

		w := doJSON(t, r, http.MethodGet, "/produtos", "")

		if w.Code != http.StatusOK {
			t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("repo_error", func(t *testing.T) {
		repo := &fakeProductsRepo{
			listFn: func(ctx context.Context) ([]product.Product, error) {
				return nil, errors.New("db down")
			},
		}

		h := handlers.NewProductsHandler(repo, nil)
		r := setupRouter(http.MethodGet, "/produtos", h.ListProducts)

		w := doJSON(t, r, http.MethodGet, "/produtos", "")

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("etag_not_modified", func(t *testing.T) {
		repo := &fakeProductsRepo{
			listFn: func(ctx context.Context) ([]product.Product, error) {
				return []product.Product{{ID: "fixed", Name: "Mug"}}, nil
			},
		}

		h := handlers.NewProductsHandler(repo, nil)
		r := setupRouter(http.MethodGet, "/produtos", h.ListProducts)

		first := doJSON(t, r, http.MethodGet, "/produtos", "")
		etag := first.Header().Get("ETag")

		if etag == "" {
			t.Fatal("expected an ETag header")
		}

		req := httptest.NewRequest(http.MethodGet, "/produtos", nil)
		req.Header.Set("If-None-Match", etag)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotModified {
			t.Fatalf("got status %d, want 304", w.Code)
		}
	})
}

// Update product tests

func TestUpdateProductHandler(t *testing.T) {
	validBody := `{
		"name": "Coffee Mug",
		"price": 21.5,
		"imageUrl": "https://cdn.example.com/mug.png",
		"description": "A sturdy ceramic mug"
	}`

	tests := []struct {
		name           string
		id             string
		body           string
		repoSetUp      func(*fakeProductsRepo)
		wantStatusCode int
	}{
		{
			name: "success",
			id:   newUUID(),
			body: validBody,
			repoSetUp: func(f *fakeProductsRepo) {
				f.updateFn = func(ctx context.Context, id string, req product.UpdateProductRequest) (product.Product, error) {
					return product.Product{ID: id, Name: req.Name, Price: req.Price}, nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "invalid_id",
			id:             "not-a-uuid",
			body:           validBody,
			repoSetUp:      func(f *fakeProductsRepo) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "partial_payload",
			id:             newUUID(),
			body:           `{"name": "Coffee Mug"}`,
			repoSetUp:      func(f *fakeProductsRepo) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "not_found",
			id:   newUUID(),
			body: validBody,
			repoSetUp: func(f *fakeProductsRepo) {
				f.updateFn = func(ctx context.Context, id string, req product.UpdateProductRequest) (product.Product, error) {
					return product.Product{}, product.ErrNotFound
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeProductsRepo{}

			if tt.repoSetUp != nil {
				tt.repoSetUp(repo)
			}

			h := handlers.NewProductsHandler(repo, nil)

			r := setupRouter(http.MethodPut, "/produtos/:id", h.UpdateProduct)

			w := doJSON(t, r, http.MethodPut, "/produtos/"+tt.id, tt.body)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

// Delete product tests

func TestDeleteProductHandler(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		repoSetUp      func(*fakeProductsRepo)
		wantStatusCode int
	}{
		{
			name:           "success",
			id:             newUUID(),
			repoSetUp:      func(f *fakeProductsRepo) {},
			wantStatusCode: http.StatusNoContent,
		},
		{
			name:           "invalid_id",
			id:             "42",
			repoSetUp:      func(f *fakeProductsRepo) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "not_found",
			id:   newUUID(),
			repoSetUp: func(f *fakeProductsRepo) {
				f.deleteFn = func(ctx context.Context, id string) error {
					return product.ErrNotFound
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeProductsRepo{}

			if tt.repoSetUp != nil {
				tt.repoSetUp(repo)
			}

			h := handlers.NewProductsHandler(repo, nil)

			r := setupRouter(http.MethodDelete, "/produtos/:id", h.DeleteProduct)

			w := doJSON(t, r, http.MethodDelete, "/produtos/"+tt.id, "")

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}
