package product

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/wichananm65/select-shop-backend/internal/pagination"
)

var (
	ErrNotFound = errors.New("product not found")
)

type Repository interface {
	FindByID(ctx context.Context, id int) (Product, error)
	// Save inserts p when p.ID is zero and overwrites the stored row otherwise.
	Save(ctx context.Context, p Product) (Product, error)
	FindAllByUser(ctx context.Context, userID int, req pagination.PageRequest) (pagination.Page[Product], error)
	FindAll(ctx context.Context, req pagination.PageRequest) (pagination.Page[Product], error)
	FindAllByUserAndFolderID(ctx context.Context, userID, folderID int, req pagination.PageRequest) (pagination.Page[Product], error)
}

// LinkChecker answers folder membership for the in-memory repository.
type LinkChecker interface {
	Has(productID, folderID int) bool
}

// InMemoryRepository is a simple in-memory implementation useful for tests and
// seeding local data.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
	nextID  int

	// Links resolves folder membership; without it no product is in any folder.
	Links LinkChecker
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{
		storage: make([]Product, 0, len(seed)),
		nextID:  1,
	}

	maxID := 0
	for _, p := range seed {
		r.storage = append(r.storage, p)
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) FindByID(_ context.Context, id int) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Save(_ context.Context, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	p.ModifiedAt = now
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
		p.CreatedAt = now
		r.storage = append(r.storage, p)
		return p, nil
	}
	for i := range r.storage {
		if r.storage[i].ID == p.ID {
			p.CreatedAt = r.storage[i].CreatedAt
			r.storage[i] = p
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) FindAllByUser(_ context.Context, userID int, req pagination.PageRequest) (pagination.Page[Product], error) {
	return r.page(req, func(p Product) bool { return p.UserID == userID })
}

func (r *InMemoryRepository) FindAll(_ context.Context, req pagination.PageRequest) (pagination.Page[Product], error) {
	return r.page(req, func(Product) bool { return true })
}

func (r *InMemoryRepository) FindAllByUserAndFolderID(_ context.Context, userID, folderID int, req pagination.PageRequest) (pagination.Page[Product], error) {
	return r.page(req, func(p Product) bool {
		return p.UserID == userID && r.Links != nil && r.Links.Has(p.ID, folderID)
	})
}

func (r *InMemoryRepository) page(req pagination.PageRequest, keep func(Product) bool) (pagination.Page[Product], error) {
	if _, err := SortColumn(req.SortBy); err != nil {
		return pagination.Page[Product]{}, err
	}

	r.mu.RLock()
	matched := make([]Product, 0)
	for _, p := range r.storage {
		if keep(p) {
			matched = append(matched, p)
		}
	}
	r.mu.RUnlock()

	order := comparator(req.SortBy)
	slices.SortFunc(matched, func(a, b Product) int {
		if req.Ascending() {
			return order(a, b)
		}
		return order(b, a)
	})
	return pagination.Slice(matched, req), nil
}
