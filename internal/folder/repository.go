package folder

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrNotFound      = errors.New("folder not found")
	ErrLinkNotFound  = errors.New("product is not in folder")
	ErrDuplicateLink = errors.New("product already in folder")
	ErrDuplicateName = errors.New("folder name already exists")
)

type Repository interface {
	FindByID(ctx context.Context, id int) (Folder, error)
	FindAllByUser(ctx context.Context, userID int) ([]Folder, error)
	// FindByUserAndNames returns the user's folders whose name is in names.
	FindByUserAndNames(ctx context.Context, userID int, names []string) ([]Folder, error)
	Save(ctx context.Context, f Folder) (Folder, error)
}

type ProductFolderRepository interface {
	FindByProductAndFolder(ctx context.Context, productID, folderID int) (ProductFolder, error)
	Save(ctx context.Context, pf ProductFolder) (ProductFolder, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu      sync.RWMutex
	folders []Folder
	nextID  int
}

func NewInMemoryRepository(seed []Folder) *InMemoryRepository {
	r := &InMemoryRepository{folders: make([]Folder, 0, len(seed)), nextID: 1}
	maxID := 0
	for _, f := range seed {
		r.folders = append(r.folders, f)
		if f.ID > maxID {
			maxID = f.ID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) FindByID(_ context.Context, id int) (Folder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, f := range r.folders {
		if f.ID == id {
			return f, nil
		}
	}
	return Folder{}, ErrNotFound
}

func (r *InMemoryRepository) FindAllByUser(_ context.Context, userID int) ([]Folder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Folder, 0)
	for _, f := range r.folders {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) FindByUserAndNames(_ context.Context, userID int, names []string) ([]Folder, error) {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Folder, 0)
	for _, f := range r.folders {
		if f.UserID == userID && wanted[f.Name] {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Save(_ context.Context, f Folder) (Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f.ID == 0 {
		f.ID = r.nextID
		r.nextID++
		r.folders = append(r.folders, f)
		return f, nil
	}
	for i := range r.folders {
		if r.folders[i].ID == f.ID {
			r.folders[i] = f
			return f, nil
		}
	}
	r.folders = append(r.folders, f)
	if f.ID >= r.nextID {
		r.nextID = f.ID + 1
	}
	return f, nil
}

type linkKey struct{ productID, folderID int }

// InMemoryProductFolderRepository keeps links in a set keyed by the pair.
type InMemoryProductFolderRepository struct {
	mu     sync.RWMutex
	links  map[linkKey]ProductFolder
	nextID int
}

func NewInMemoryProductFolderRepository(seed []ProductFolder) *InMemoryProductFolderRepository {
	r := &InMemoryProductFolderRepository{links: make(map[linkKey]ProductFolder, len(seed)), nextID: 1}
	for _, pf := range seed {
		r.links[linkKey{pf.ProductID, pf.FolderID}] = pf
		if pf.ID >= r.nextID {
			r.nextID = pf.ID + 1
		}
	}
	return r
}

func (r *InMemoryProductFolderRepository) FindByProductAndFolder(_ context.Context, productID, folderID int) (ProductFolder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pf, ok := r.links[linkKey{productID, folderID}]
	if !ok {
		return ProductFolder{}, ErrLinkNotFound
	}
	return pf, nil
}

func (r *InMemoryProductFolderRepository) Save(_ context.Context, pf ProductFolder) (ProductFolder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := linkKey{pf.ProductID, pf.FolderID}
	if _, exists := r.links[key]; exists {
		return ProductFolder{}, ErrDuplicateLink
	}
	pf.ID = r.nextID
	r.nextID++
	r.links[key] = pf
	return pf, nil
}

// Has reports whether productID is linked to folderID.
func (r *InMemoryProductFolderRepository) Has(productID, folderID int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.links[linkKey{productID, folderID}]
	return ok
}

func (r *InMemoryProductFolderRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.links)
}
